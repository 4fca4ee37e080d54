package ui

import (
	"fmt"
	"time"

	"snake-arcade/game"
	"snake-arcade/game/manager"
)

// BlinkWindow is how long before expiry a bonus fruit starts blinking
const BlinkWindow = 2 * time.Second

// StatusLine is the single line shown above the field while playing
func StatusLine(st manager.Results, minutes float64, best manager.Record, hasBest bool, winLength int) string {
	line := fmt.Sprintf("Apples %d  Oranges %d  Length %d/%d  Time %.2f min",
		st.ApplesEaten, st.OrangesEaten, st.Length, winLength, minutes)
	if hasBest {
		line += fmt.Sprintf("  Best %d", best.Best.Length)
	}
	return line
}

// EndMessage is the text of the end-of-session prompt
func EndMessage(ev game.SessionEnded) []string {
	lines := make([]string, 0, 5)
	if ev.Outcome == game.Win {
		lines = append(lines, "You win!")
	} else {
		lines = append(lines, fmt.Sprintf("Game over: %s", ev.Reason))
	}
	lines = append(lines, fmt.Sprintf("Length %d, apples %d, oranges %d, %.2f min",
		ev.Stats.Length, ev.Stats.ApplesEaten, ev.Stats.OrangesEaten, ev.Stats.Elapsed.Minutes()))

	switch {
	case ev.NewBest && ev.HadBest:
		lines = append(lines, "New best result!")
	case ev.NewBest:
		lines = append(lines, "First result recorded")
	default:
		lines = append(lines, fmt.Sprintf("Best: length %d, apples %d, oranges %d",
			ev.Best.Length, ev.Best.ApplesEaten, ev.Best.OrangesEaten))
	}
	lines = append(lines, fmt.Sprintf("Games played: %d", ev.GamesPlayed))
	lines = append(lines, "R to play again, Q to quit")
	return lines
}

// Hidden reports whether a fruit close to expiry is skipped this frame, which makes it blink
func Hidden(remaining time.Duration, now time.Time) bool {
	if remaining < 0 || remaining > BlinkWindow {
		return false
	}
	return now.UnixMilli()/250%2 == 1
}
