package game

// Observer is notified by the engine. Refresh fires after every completed
// tick and every accepted direction change. PlayEnded fires on pause and on
// game over; read State() to tell them apart.
type Observer interface {
	Refresh(g *Game)
	PlayEnded(g *Game)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnRefresh   func(g *Game)
	OnPlayEnded func(g *Game)
}

func (o ObserverFuncs) Refresh(g *Game) {
	if o.OnRefresh != nil {
		o.OnRefresh(g)
	}
}

func (o ObserverFuncs) PlayEnded(g *Game) {
	if o.OnPlayEnded != nil {
		o.OnPlayEnded(g)
	}
}

// Observers fans a notification out to each non-nil member in order.
type Observers []Observer

func (obs Observers) Refresh(g *Game) {
	for _, o := range obs {
		if o != nil {
			o.Refresh(g)
		}
	}
}

func (obs Observers) PlayEnded(g *Game) {
	for _, o := range obs {
		if o != nil {
			o.PlayEnded(g)
		}
	}
}
