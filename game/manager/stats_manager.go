package manager

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// GroupSize is the number of records folded into one summary record.
const GroupSize = 100

// SessionRecord is one finished session, or a summary of GamesCount sessions
// when CompressionIndex > 0.
type SessionRecord struct {
	ID               string    `json:"id"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	Score            int       `json:"score"`
	CompressionIndex int       `json:"compressionIndex"`
	GamesCount       int       `json:"gamesCount"`
	AverageScore     float64   `json:"averageScore"`
	MaxScore         int       `json:"maxScore"`
	MinScore         int       `json:"minScore"`
	AverageDuration  float64   `json:"averageDuration"`
}

// StatsManager keeps the score history of finished sessions. With an empty
// filename nothing is written to disk.
type StatsManager struct {
	filename string
	records  []SessionRecord
	mutex    sync.RWMutex
}

func NewStatsManager(filename string) *StatsManager {
	return &StatsManager{
		filename: filename,
		records:  make([]SessionRecord, 0),
	}
}

// NewSessionID returns a fresh identifier for a session.
func NewSessionID() string {
	return uuid.New().String()
}

// AddSession records a finished session and folds old records when needed.
func (sm *StatsManager) AddSession(id string, score int, startTime, endTime time.Time) {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	duration := endTime.Sub(startTime).Seconds()
	sm.records = append(sm.records, SessionRecord{
		ID:              id,
		StartTime:       startTime,
		EndTime:         endTime,
		Score:           score,
		GamesCount:      1,
		AverageScore:    float64(score),
		MaxScore:        score,
		MinScore:        score,
		AverageDuration: duration,
	})
	sm.groupRecords()
}

// groupRecords folds every GroupSize records of one compression level into a
// single record of the next level.
func (sm *StatsManager) groupRecords() {
	sort.SliceStable(sm.records, func(i, j int) bool {
		if sm.records[i].CompressionIndex != sm.records[j].CompressionIndex {
			return sm.records[i].CompressionIndex > sm.records[j].CompressionIndex
		}
		return sm.records[i].StartTime.Before(sm.records[j].StartTime)
	})

	for level := 0; ; level++ {
		var same, rest []SessionRecord
		for _, r := range sm.records {
			if r.CompressionIndex == level {
				same = append(same, r)
			} else {
				rest = append(rest, r)
			}
		}
		if len(same) < GroupSize {
			return
		}

		full := len(same) / GroupSize * GroupSize
		for i := 0; i < full; i += GroupSize {
			rest = append(rest, summarize(same[i:i+GroupSize], level+1))
		}
		sm.records = append(rest, same[full:]...)
	}
}

func summarize(group []SessionRecord, level int) SessionRecord {
	out := SessionRecord{
		ID:               group[0].ID,
		StartTime:        group[0].StartTime,
		EndTime:          group[0].EndTime,
		CompressionIndex: level,
		MaxScore:         group[0].MaxScore,
		MinScore:         group[0].MinScore,
	}
	var totalScore, totalDuration float64
	for _, r := range group {
		out.MaxScore = max(out.MaxScore, r.MaxScore)
		out.MinScore = min(out.MinScore, r.MinScore)
		if r.StartTime.Before(out.StartTime) {
			out.StartTime = r.StartTime
		}
		if r.EndTime.After(out.EndTime) {
			out.EndTime = r.EndTime
		}
		totalScore += r.AverageScore * float64(r.GamesCount)
		totalDuration += r.AverageDuration * float64(r.GamesCount)
		out.GamesCount += r.GamesCount
	}
	out.AverageScore = totalScore / float64(out.GamesCount)
	out.AverageDuration = totalDuration / float64(out.GamesCount)
	return out
}

// Records returns a copy of the current records.
func (sm *StatsManager) Records() []SessionRecord {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	out := make([]SessionRecord, len(sm.records))
	copy(out, sm.records)
	return out
}

func (sm *StatsManager) GamesPlayed() int {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	total := 0
	for _, r := range sm.records {
		total += r.GamesCount
	}
	return total
}

func (sm *StatsManager) HighScore() int {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	high := 0
	for _, r := range sm.records {
		high = max(high, r.MaxScore)
	}
	return high
}

func (sm *StatsManager) AverageScore() float64 {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	var total float64
	var games int
	for _, r := range sm.records {
		total += r.AverageScore * float64(r.GamesCount)
		games += r.GamesCount
	}
	if games == 0 {
		return 0
	}
	return total / float64(games)
}

// Save writes the records as JSON. It is a no-op without a filename.
func (sm *StatsManager) Save() error {
	if sm.filename == "" {
		return nil
	}

	sm.mutex.RLock()
	data, err := json.MarshalIndent(sm.records, "", "  ")
	sm.mutex.RUnlock()
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}

	if dir := filepath.Dir(sm.filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create stats directory: %w", err)
		}
	}
	if err := os.WriteFile(sm.filename, data, 0644); err != nil {
		return fmt.Errorf("write stats file: %w", err)
	}
	return nil
}

// Load replaces the records with the file contents. A missing file leaves
// the history empty.
func (sm *StatsManager) Load() error {
	if sm.filename == "" {
		return nil
	}

	data, err := os.ReadFile(sm.filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read stats file: %w", err)
	}

	var records []SessionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("decode stats file: %w", err)
	}

	sm.mutex.Lock()
	sm.records = records
	sm.mutex.Unlock()
	return nil
}
