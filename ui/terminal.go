package ui

import (
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"snake-arcade/game"
	"snake-arcade/game/entity"
	"snake-arcade/game/types"
)

const (
	terminalFrame  = 50 * time.Millisecond
	maxFieldRows   = int(types.Size / types.Step) // one row per tile
	minFieldRows   = 5
	statusRows     = 1
	borderRows     = 2
	cellsPerColumn = 2 // terminal cells are about twice as tall as wide
)

var (
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleText    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHead    = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	styleSegment = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleApple   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleOrange  = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleHit     = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// canvas is the part of tcell.Screen the drawing code needs
type canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// TerminalRenderer plays the game in a terminal through tcell
type TerminalRenderer struct {
	player
	scene *Scene
	sound *SoundPlayer
}

func NewTerminalRenderer(g *game.Game, scene *Scene, sound *SoundPlayer, logger *log.Logger) *TerminalRenderer {
	return &TerminalRenderer{player: player{game: g, logger: logger}, scene: scene, sound: sound}
}

// Run owns the terminal until the player quits
func (tr *TerminalRenderer) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "open terminal")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init terminal")
	}
	defer screen.Fini()
	screen.HideCursor()

	if err := tr.game.InitGame(); err != nil {
		return err
	}
	defer func() {
		tr.game.FinishGame()
		tr.game.Terminate()
	}()

	input := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case input <- ev:
			case <-done:
				return
			}
		}
	}()

	frame := time.NewTicker(terminalFrame)
	defer frame.Stop()

	events := tr.game.Events()
	for {
		select {
		case ev := <-input:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !tr.handleKey(ev.Key(), ev.Rune()) {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			tr.ended = &ev
			tr.sound.GameOver(ev.Outcome == game.Win)
		case <-frame.C:
		}

		screen.Clear()
		cols, rows := screen.Size()
		tr.draw(screen, cols, rows, tr.game.Now())
		screen.Show()
	}
}

// handleKey applies a key press; false means quit
func (tr *TerminalRenderer) handleKey(key tcell.Key, r rune) bool {
	return tr.act(keyAction(key, r))
}

func keyAction(key tcell.Key, r rune) (Action, types.Direction) {
	switch key {
	case tcell.KeyUp:
		return ActionSteer, types.UP
	case tcell.KeyDown:
		return ActionSteer, types.DOWN
	case tcell.KeyLeft:
		return ActionSteer, types.LEFT
	case tcell.KeyRight:
		return ActionSteer, types.RIGHT
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit, types.NONE
	case tcell.KeyRune:
		return RuneAction(r)
	}
	return ActionNone, types.NONE
}

// fieldSize picks the largest square-looking field that fits the terminal
func fieldSize(cols, rows int) (w, h int, ok bool) {
	h = rows - statusRows - borderRows
	if h > maxFieldRows {
		h = maxFieldRows
	}
	w = h * cellsPerColumn
	if w > cols-borderRows {
		w = (cols - borderRows) / cellsPerColumn * cellsPerColumn
		h = w / cellsPerColumn
	}
	return w, h, h >= minFieldRows
}

// cellFor maps a world position to a cell of a w by h field
func cellFor(p types.Point, w, h int) (x, y int) {
	x = clampCell(int(p.X*float64(w)/types.Size), w)
	y = clampCell(int(p.Y*float64(h)/types.Size), h)
	return x, y
}

func clampCell(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

func (tr *TerminalRenderer) draw(c canvas, cols, rows int, now time.Time) {
	w, h, ok := fieldSize(cols, rows)
	if !ok {
		drawText(c, 0, 0, "Terminal too small", styleText)
		return
	}

	best, hasBest := tr.game.Best()
	drawText(c, 0, 0, StatusLine(tr.game.Stats(), tr.game.ElapsedMinutes(), best, hasBest, tr.game.WinLength()), styleText)
	drawBox(c, 0, statusRows, w+2, h+2)

	var collision *types.Point
	if tr.ended != nil {
		collision = tr.ended.Collision
	}
	drawField(c, tr.scene.Objects(), 1, statusRows+1, w, h, now, collision)

	if tr.ended != nil {
		for i, line := range EndMessage(*tr.ended) {
			x := 1 + (w-len(line))/2
			if x < 1 {
				x = 1
			}
			drawText(c, x, statusRows+1+h/2-2+i, line, styleText)
		}
	}
}

func drawField(c canvas, objects []entity.Object, offX, offY, w, h int, now time.Time, collision *types.Point) {
	for _, o := range objects {
		r, style, visible := glyphFor(o, now)
		if !visible {
			continue
		}
		x, y := cellFor(o.Position(), w, h)
		c.SetContent(offX+x, offY+y, r, nil, style)
	}
	if collision != nil {
		x, y := cellFor(*collision, w, h)
		c.SetContent(offX+x, offY+y, 'X', nil, styleHit)
	}
}

func glyphFor(o entity.Object, now time.Time) (rune, tcell.Style, bool) {
	switch o.Kind() {
	case entity.KindHead:
		return '@', styleHead, true
	case entity.KindSegment:
		return 'o', styleSegment, true
	case entity.KindApple:
		return '*', styleApple, true
	case entity.KindOrange:
		if f, ok := o.(*entity.Fruit); ok && Hidden(f.Remaining(now), now) {
			return 0, styleOrange, false
		}
		return '%', styleOrange, true
	}
	return '?', styleText, true
}

func drawText(c canvas, x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		c.SetContent(x+i, y, r, nil, style)
	}
}

func drawBox(c canvas, x, y, w, h int) {
	for i := 1; i < w-1; i++ {
		c.SetContent(x+i, y, '─', nil, styleBorder)
		c.SetContent(x+i, y+h-1, '─', nil, styleBorder)
	}
	for j := 1; j < h-1; j++ {
		c.SetContent(x, y+j, '│', nil, styleBorder)
		c.SetContent(x+w-1, y+j, '│', nil, styleBorder)
	}
	c.SetContent(x, y, '┌', nil, styleBorder)
	c.SetContent(x+w-1, y, '┐', nil, styleBorder)
	c.SetContent(x, y+h-1, '└', nil, styleBorder)
	c.SetContent(x+w-1, y+h-1, '┘', nil, styleBorder)
}
