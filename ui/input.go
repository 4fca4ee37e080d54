package ui

import (
	"log"
	"unicode"

	"snake-arcade/game"
	"snake-arcade/game/types"
)

// Action is what a key press asks the frontend to do
type Action int

const (
	ActionNone Action = iota
	ActionSteer
	ActionTurnLeft
	ActionTurnRight
	ActionRestart
	ActionQuit
)

// RuneAction maps a typed character to an action. WASD steers, comma and period turn
// relative to the current heading, R restarts, Q quits.
func RuneAction(r rune) (Action, types.Direction) {
	switch unicode.ToLower(r) {
	case 'w':
		return ActionSteer, types.UP
	case 'a':
		return ActionSteer, types.LEFT
	case 's':
		return ActionSteer, types.DOWN
	case 'd':
		return ActionSteer, types.RIGHT
	case ',':
		return ActionTurnLeft, types.NONE
	case '.':
		return ActionTurnRight, types.NONE
	case 'r':
		return ActionRestart, types.NONE
	case 'q':
		return ActionQuit, types.NONE
	}
	return ActionNone, types.NONE
}

// player applies actions to a game on behalf of a frontend
type player struct {
	game   *game.Game
	logger *log.Logger
	ended  *game.SessionEnded // set while the end prompt is shown
}

// act performs action; false means quit
func (p *player) act(action Action, dir types.Direction) bool {
	switch action {
	case ActionQuit:
		return false
	case ActionSteer:
		if p.ended == nil {
			p.game.ChangeDirection(dir)
		}
	case ActionTurnLeft:
		if p.ended == nil {
			p.game.ChangeDirection(p.game.Direction().TurnLeft())
		}
	case ActionTurnRight:
		if p.ended == nil {
			p.game.ChangeDirection(p.game.Direction().TurnRight())
		}
	case ActionRestart:
		if p.ended != nil {
			p.ended = nil
			if err := p.game.InitGame(); err != nil {
				p.logger.Printf("Restart failed: %v", err)
			}
		}
	}
	return true
}
