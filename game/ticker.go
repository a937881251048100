package game

import (
	"sync"
	"time"
)

// Scheduler arms repeating tick sources.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Handle
}

// Handle is an armed tick source. Cancel is idempotent.
type Handle interface {
	Cancel()
}

// waiter is implemented by handles whose goroutine can be joined.
type waiter interface {
	Wait()
}

// TickerScheduler runs each tick source on its own goroutine driven by a
// time.Ticker.
type TickerScheduler struct{}

func NewTickerScheduler() *TickerScheduler {
	return &TickerScheduler{}
}

func (s *TickerScheduler) Every(interval time.Duration, fn func()) Handle {
	h := &tickerHandle{stopChan: make(chan struct{})}
	ticker := time.NewTicker(interval)

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		defer ticker.Stop()

		for {
			select {
			case <-h.stopChan:
				return
			case <-ticker.C:
				// Both cases may be ready at once; prefer stopping.
				select {
				case <-h.stopChan:
					return
				default:
				}
				fn()
			}
		}
	}()
	return h
}

type tickerHandle struct {
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func (h *tickerHandle) Cancel() {
	h.stopOnce.Do(func() {
		close(h.stopChan)
	})
}

// Wait blocks until the ticker goroutine has exited. It must not be called
// from inside the tick function.
func (h *tickerHandle) Wait() {
	h.wg.Wait()
}
