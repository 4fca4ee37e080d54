package ui

import (
	"log"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-arcade/game"
	"snake-arcade/game/entity"
	"snake-arcade/game/types"
)

const (
	hudHeight     = 40 // Strip above the field for the status line
	borderPadding = 10 // Padding around the field
	fontSize      = 20
)

// keys that produce no character; typed characters go through RuneAction
var specialKeys = []struct {
	key    int32
	action Action
	dir    types.Direction
}{
	{rl.KeyUp, ActionSteer, types.UP},
	{rl.KeyDown, ActionSteer, types.DOWN},
	{rl.KeyLeft, ActionSteer, types.LEFT},
	{rl.KeyRight, ActionSteer, types.RIGHT},
	{rl.KeyEscape, ActionQuit, types.NONE},
}

// Renderer plays the game in a raylib window. Raylib calls must stay on the main OS thread.
type Renderer struct {
	player
	scene *Scene
	sound *SoundPlayer

	offsetX      int32
	offsetY      int32
	screenWidth  int32
	screenHeight int32
}

func NewRenderer(g *game.Game, scene *Scene, sound *SoundPlayer, logger *log.Logger) *Renderer {
	return &Renderer{
		player:       player{game: g, logger: logger},
		scene:        scene,
		sound:        sound,
		offsetX:      borderPadding,
		offsetY:      hudHeight + borderPadding,
		screenWidth:  int32(types.Size) + 2*borderPadding,
		screenHeight: int32(types.Size) + hudHeight + 2*borderPadding,
	}
}

// Run opens the window and returns once the player quits or closes it
func (r *Renderer) Run() error {
	rl.InitWindow(r.screenWidth, r.screenHeight, "Snake")
	defer rl.CloseWindow()
	rl.SetExitKey(0)
	rl.SetTargetFPS(60)

	if err := r.game.InitGame(); err != nil {
		return err
	}
	// Closing the window ends a running session before the game shuts down
	defer func() {
		r.game.FinishGame()
		r.game.Terminate()
	}()

	events := r.game.Events()
	for !rl.WindowShouldClose() {
		select {
		case ev, ok := <-events:
			if ok {
				r.ended = &ev
				r.sound.GameOver(ev.Outcome == game.Win)
			} else {
				events = nil
			}
		default:
		}

		if !r.handleInput() {
			return nil
		}
		r.Draw()
	}
	return nil
}

// handleInput polls the keyboard; false means quit
func (r *Renderer) handleInput() bool {
	for _, k := range specialKeys {
		if rl.IsKeyPressed(k.key) && !r.act(k.action, k.dir) {
			return false
		}
	}
	for ch := rl.GetCharPressed(); ch != 0; ch = rl.GetCharPressed() {
		if !r.act(RuneAction(ch)) {
			return false
		}
	}
	return true
}

func (r *Renderer) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(rl.Black)

	best, hasBest := r.game.Best()
	rl.DrawText(StatusLine(r.game.Stats(), r.game.ElapsedMinutes(), best, hasBest, r.game.WinLength()), borderPadding, borderPadding, fontSize, rl.White)

	rl.DrawRectangle(r.offsetX, r.offsetY, int32(types.Size), int32(types.Size), rl.Color{R: 20, G: 20, B: 20, A: 255})
	rl.DrawRectangleLines(r.offsetX-1, r.offsetY-1, int32(types.Size)+2, int32(types.Size)+2, rl.DarkGray)

	now := r.game.Now()
	for _, o := range r.scene.Objects() {
		color, visible := colorFor(o, now)
		if !visible {
			continue
		}
		p := o.Position()
		rl.DrawCircle(r.offsetX+int32(p.X), r.offsetY+int32(p.Y), float32(o.Radius()), color)
	}

	if r.ended != nil {
		if c := r.ended.Collision; c != nil {
			rl.DrawCircle(r.offsetX+int32(c.X), r.offsetY+int32(c.Y), float32(types.HeadRadius), rl.Red)
		}
		r.drawEndOverlay(*r.ended)
	}
}

func (r *Renderer) drawEndOverlay(ev game.SessionEnded) {
	rl.DrawRectangle(r.offsetX, r.offsetY, int32(types.Size), int32(types.Size), rl.Fade(rl.Black, 0.6))

	lines := EndMessage(ev)
	lineHeight := int32(fontSize + 8)
	y := r.offsetY + int32(types.Size)/2 - lineHeight*int32(len(lines))/2
	for i, line := range lines {
		color := rl.White
		if i == 0 {
			color = rl.Gold
			if ev.Outcome == game.Loss {
				color = rl.Red
			}
		}
		width := rl.MeasureText(line, fontSize)
		rl.DrawText(line, r.offsetX+(int32(types.Size)-width)/2, y, fontSize, color)
		y += lineHeight
	}
}

func colorFor(o entity.Object, now time.Time) (rl.Color, bool) {
	switch o.Kind() {
	case entity.KindHead:
		return rl.Lime, true
	case entity.KindSegment:
		return rl.DarkGreen, true
	case entity.KindApple:
		return rl.Red, true
	case entity.KindOrange:
		if f, ok := o.(*entity.Fruit); ok && Hidden(f.Remaining(now), now) {
			return rl.Orange, false
		}
		return rl.Orange, true
	}
	return rl.Gray, true
}
