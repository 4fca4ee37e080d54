package manager

import (
	"log"

	"github.com/pkg/errors"

	"snake-arcade/game/entity"
	"snake-arcade/game/types"
)

// Verdict is the outcome of comparing a finished session with the persisted best
type Verdict struct {
	Best        Results // best after this session, which is the session itself when NewBest
	HadBest     bool    // a usable record existed before this session
	NewBest     bool    // the session superseded the record and was persisted
	GamesPlayed int
}

// ResultsTracker times a session, snapshots its statistics and keeps the best record current
type ResultsTracker struct {
	store  BestStore
	watch  *Stopwatch
	clock  types.Clock
	logger *log.Logger
}

func NewResultsTracker(store BestStore, clock types.Clock, logger *log.Logger) *ResultsTracker {
	if clock == nil {
		clock = types.SystemClock{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &ResultsTracker{
		store:  store,
		watch:  NewStopwatch(clock),
		clock:  clock,
		logger: logger,
	}
}

// Begin zeroes and starts the session stopwatch
func (rt *ResultsTracker) Begin() {
	rt.watch.Reset()
	rt.watch.Start()
}

// Freeze stops the session stopwatch
func (rt *ResultsTracker) Freeze() {
	rt.watch.Stop()
}

// ElapsedMinutes is the session time so far
func (rt *ResultsTracker) ElapsedMinutes() float64 {
	return rt.watch.ElapsedMinutes()
}

// Snapshot collects the current statistics of s
func (rt *ResultsTracker) Snapshot(sessionID string, s *entity.Snake) Results {
	return Results{
		SessionID:    sessionID,
		ApplesEaten:  s.ApplesEaten(),
		OrangesEaten: s.OrangesEaten(),
		Length:       s.Len(),
		Elapsed:      rt.watch.Elapsed(),
		FinishedAt:   rt.clock.Now(),
	}
}

// LoadRecord reads the persisted record; ok is false when there is none or it is unreadable
func (rt *ResultsTracker) LoadRecord() (rec Record, ok bool) {
	rec, err := rt.store.Load()
	switch {
	case err == nil:
		return rec, true
	case errors.Is(err, ErrNoRecord):
	case errors.Is(err, ErrCorruptRecord):
		rt.logger.Printf("Ignoring best-result record: %v", err)
	default:
		rt.logger.Printf("Could not read best-result record: %v", err)
	}
	return Record{}, false
}

// Conclude compares current with the persisted best and saves the record.
// A missing or corrupt record never wins. On a failed save the verdict describes the
// record as it was before this session.
func (rt *ResultsTracker) Conclude(current Results) (Verdict, error) {
	rec, hadBest := rt.LoadRecord()
	stored := Verdict{Best: rec.Best, HadBest: hadBest, GamesPlayed: rec.GamesPlayed}

	v := Verdict{HadBest: hadBest}
	if !hadBest || Compare(current, rec.Best) > 0 {
		rec.Best = current
		v.NewBest = true
	}
	rec.GamesPlayed++
	v.Best = rec.Best
	v.GamesPlayed = rec.GamesPlayed

	if err := rt.store.Save(rec); err != nil {
		return stored, errors.Wrap(err, "persist best result")
	}
	return v, nil
}
