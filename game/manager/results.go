package manager

import (
	"time"
)

// Results are the statistics of one session
type Results struct {
	SessionID    string        `json:"sessionId"`
	ApplesEaten  int           `json:"applesEaten"`
	OrangesEaten int           `json:"orangesEaten"`
	Length       int           `json:"length"`
	Elapsed      time.Duration `json:"elapsed"`
	FinishedAt   time.Time     `json:"finishedAt"`
}

// Record is what a BestStore persists between sessions
type Record struct {
	Best        Results `json:"best"`
	GamesPlayed int     `json:"gamesPlayed"`
}

// Compare orders results, returning +1 when a outranks b, -1 when b outranks a and 0 on a tie.
// Precedence: longer snake, then more oranges, then more apples, then the shorter session.
func Compare(a, b Results) int {
	if c := compareInt(a.Length, b.Length); c != 0 {
		return c
	}
	if c := compareInt(a.OrangesEaten, b.OrangesEaten); c != 0 {
		return c
	}
	if c := compareInt(a.ApplesEaten, b.ApplesEaten); c != 0 {
		return c
	}
	switch {
	case a.Elapsed < b.Elapsed:
		return 1
	case a.Elapsed > b.Elapsed:
		return -1
	}
	return 0
}

func compareInt(a, b int) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	}
	return 0
}
