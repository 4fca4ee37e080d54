package entity

import (
	"errors"
	"testing"
	"time"

	"snake-arcade/game/types"
)

func mustSnake(t *testing.T) *Snake {
	t.Helper()
	s, err := NewSnake(types.StartPosition())
	if err != nil {
		t.Fatalf("NewSnake: %v", err)
	}
	return s
}

func TestSetPositionRejectsOutOfRange(t *testing.T) {
	s := mustSnake(t)
	before := s.Head().Position()

	err := s.Head().SetPosition(types.Point{X: types.Size + 2*types.Step, Y: 0})
	var ipe *types.InvalidPositionError
	if !errors.As(err, &ipe) {
		t.Fatalf("expected InvalidPositionError, got %v", err)
	}
	if s.Head().Position() != before {
		t.Errorf("position changed to %v after rejected set", s.Head().Position())
	}

	// One step past the edge is still settable, the game loop detects it
	if err := s.Head().SetPosition(types.Point{X: types.Size + 1, Y: 250}); err != nil {
		t.Errorf("Size+1 should be a legal head position: %v", err)
	}
}

func TestFruitPositionSetterNeverClamps(t *testing.T) {
	if _, err := NewApple(types.Point{X: 5, Y: 100}); !errors.Is(err, types.ErrInvalidPosition) {
		t.Errorf("apple at x=5 should be rejected, got %v", err)
	}
	a, err := NewApple(types.Point{X: 100, Y: 100})
	if err != nil {
		t.Fatalf("NewApple: %v", err)
	}
	if err := a.SetPosition(types.Point{X: types.Size, Y: 100}); err == nil {
		t.Error("apple on the edge should be rejected")
	}
	if a.Position() != (types.Point{X: 100, Y: 100}) {
		t.Errorf("apple moved to %v", a.Position())
	}
}

func TestMovePrimitives(t *testing.T) {
	s := mustSnake(t)
	start := s.Head().Position()

	s.MoveUp()
	s.MoveRight()
	s.MoveRight()
	s.MoveDown()
	s.MoveDown()
	s.MoveLeft()

	want := start.Add(types.Point{X: types.Step, Y: types.Step})
	if got := s.Head().Position(); got != want {
		t.Errorf("head at %v, want %v", got, want)
	}
}

func TestSnapshotPrecedesMovement(t *testing.T) {
	s := mustSnake(t)
	s.Grow(3)
	s.MoveBody() // spread nothing, all segments still on the head

	for tick := 0; tick < 5; tick++ {
		before := []types.Point{s.Head().Position()}
		for _, seg := range s.Segments() {
			before = append(before, seg.Position())
		}

		s.UpdatePreviousPositions()
		s.Move(types.LEFT)
		s.MoveBody()

		if s.Head().PreviousPosition() != before[0] {
			t.Fatalf("tick %d: head previous %v, want %v", tick, s.Head().PreviousPosition(), before[0])
		}
		for i, seg := range s.Segments() {
			if seg.PreviousPosition() != before[i+1] {
				t.Fatalf("tick %d: segment %d previous %v, want %v", tick, i, seg.PreviousPosition(), before[i+1])
			}
		}
	}
}

func TestMoveBodyFollowsChain(t *testing.T) {
	for _, n := range []int{1, 2, 5, 12} {
		s := mustSnake(t)
		segs := s.Grow(n)
		// Lay the body out to the right of the head
		for i, seg := range segs {
			p := types.StartPosition().Add(types.Point{X: float64(i+1) * types.Step})
			if err := seg.SetPosition(p); err != nil {
				t.Fatalf("SetPosition: %v", err)
			}
		}

		s.UpdatePreviousPositions()
		s.MoveUp()
		s.MoveBody()

		got := s.Segments()
		if got[0].Position() != s.Head().PreviousPosition() {
			t.Errorf("n=%d: segment 0 at %v, want head previous %v", n, got[0].Position(), s.Head().PreviousPosition())
		}
		for i := 1; i < len(got); i++ {
			if got[i].Position() != got[i-1].PreviousPosition() {
				t.Errorf("n=%d: segment %d at %v, want %v", n, i, got[i].Position(), got[i-1].PreviousPosition())
			}
		}
	}
}

func TestGrowAppendsAtTailWithoutMovingBody(t *testing.T) {
	s := mustSnake(t)
	first := s.Grow(1)[0]
	if err := first.SetPosition(types.Point{X: 260, Y: 250}); err != nil {
		t.Fatal(err)
	}

	added := s.Grow(3)
	if s.Len() != 4 || len(added) != 3 {
		t.Fatalf("len = %d, added = %d", s.Len(), len(added))
	}
	if first.Position() != (types.Point{X: 260, Y: 250}) {
		t.Errorf("existing segment moved to %v", first.Position())
	}
	for _, seg := range added {
		if seg.Position() != first.Position() {
			t.Errorf("new segment at %v, want tail %v", seg.Position(), first.Position())
		}
	}
	if s.Segments()[3] != added[2] {
		t.Error("growth must append in order")
	}
}

func TestRunIntoYourself(t *testing.T) {
	s := mustSnake(t)
	if _, hit := s.RunIntoYourself(); hit {
		t.Fatal("bodiless snake cannot collide with itself")
	}

	segs := s.Grow(2)
	_ = segs[0].SetPosition(types.Point{X: 100, Y: 100})
	_ = segs[1].SetPosition(s.Head().Position())

	idx, hit := s.RunIntoYourself()
	if !hit || idx != 1 {
		t.Errorf("RunIntoYourself = (%d, %v), want (1, true)", idx, hit)
	}
}

func TestDistanceTo(t *testing.T) {
	s := mustSnake(t)
	if _, ok := s.DistanceTo(nil); ok {
		t.Error("distance to a missing fruit must be skipped")
	}
	a, _ := NewApple(types.StartPosition().Add(types.Point{X: 30, Y: 40}))
	d, ok := s.DistanceTo(a)
	if !ok || d != 50 {
		t.Errorf("DistanceTo = (%v, %v), want (50, true)", d, ok)
	}
}

func TestCountersAndReset(t *testing.T) {
	s := mustSnake(t)
	s.IncrementApplesEaten()
	s.IncrementApplesEaten()
	s.IncrementOrangesEaten()
	s.Grow(4)
	if s.ApplesEaten() != 2 || s.OrangesEaten() != 1 {
		t.Errorf("counters = %d/%d", s.ApplesEaten(), s.OrangesEaten())
	}

	if err := s.Reset(types.StartPosition()); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 0 || s.ApplesEaten() != 0 || s.OrangesEaten() != 0 {
		t.Errorf("reset left len=%d apples=%d oranges=%d", s.Len(), s.ApplesEaten(), s.OrangesEaten())
	}
}

func TestOrangeLifetime(t *testing.T) {
	born := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	o, err := NewOrange(types.Point{X: 50, Y: 50}, born, 8*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if o.Value() != types.OrangeValue || o.Kind() != KindOrange {
		t.Errorf("orange value=%d kind=%v", o.Value(), o.Kind())
	}
	if o.Expired(born.Add(7 * time.Second)) {
		t.Error("expired too early")
	}
	if got := o.Remaining(born.Add(6 * time.Second)); got != 2*time.Second {
		t.Errorf("Remaining = %v, want 2s", got)
	}
	if !o.Expired(born.Add(8 * time.Second)) {
		t.Error("should expire at its lifetime")
	}

	a, _ := NewApple(types.Point{X: 50, Y: 50})
	if a.Expired(born.Add(time.Hour)) || a.Remaining(born) != -1 {
		t.Error("apples never expire")
	}
}
