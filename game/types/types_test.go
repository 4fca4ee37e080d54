package types

import (
	"errors"
	"testing"
	"time"
)

func TestDirectionOpposite(t *testing.T) {
	cases := []struct {
		d, want Direction
	}{
		{UP, DOWN},
		{DOWN, UP},
		{LEFT, RIGHT},
		{RIGHT, LEFT},
		{NONE, NONE},
	}
	for _, c := range cases {
		if got := c.d.Opposite(); got != c.want {
			t.Errorf("%v.Opposite() = %v, want %v", c.d, got, c.want)
		}
	}
}

func TestDirectionToPointIsUnit(t *testing.T) {
	for _, d := range []Direction{UP, RIGHT, DOWN, LEFT} {
		p := d.ToPoint()
		if p.DistanceTo(Point{}) != 1 {
			t.Errorf("%v.ToPoint() = %v, not a unit vector", d, p)
		}
		if sum := p.Add(d.Opposite().ToPoint()); sum != (Point{}) {
			t.Errorf("%v and its opposite do not cancel: %v", d, sum)
		}
	}
	if UP.ToPoint().Y >= 0 {
		t.Error("up must decrease Y")
	}
}

func TestDirectionTurns(t *testing.T) {
	for _, d := range []Direction{UP, RIGHT, DOWN, LEFT} {
		if d.TurnLeft().TurnRight() != d {
			t.Errorf("%v: left then right should be identity", d)
		}
		if d.TurnRight().TurnRight() != d.Opposite() {
			t.Errorf("%v: two right turns should reverse", d)
		}
	}
	if NONE.Valid() || Direction(9).Valid() {
		t.Error("NONE and out-of-range directions must be invalid")
	}
}

func TestBoundsContains(t *testing.T) {
	cases := []struct {
		name string
		b    Bounds
		p    Point
		want bool
	}{
		{"field origin", FieldBounds, Point{0, 0}, true},
		{"field far corner", FieldBounds, Point{Size, Size}, true},
		{"field past edge", FieldBounds, Point{Size + 1, 10}, false},
		{"segment one tile out", SegmentBounds, Point{-Step, Size + Step}, true},
		{"segment two tiles out", SegmentBounds, Point{-2 * Step, 0}, false},
		{"fruit at margin", FruitBounds, Point{SpawnMargin, Size - SpawnMargin}, true},
		{"fruit inside margin", FruitBounds, Point{SpawnMargin - 0.5, 100}, false},
	}
	for _, c := range cases {
		if got := c.b.Contains(c.p); got != c.want {
			t.Errorf("%s: Contains(%v) = %v, want %v", c.name, c.p, got, c.want)
		}
	}
}

func TestInvalidPositionErrorMatches(t *testing.T) {
	var err error = &InvalidPositionError{Entity: "apple", Pos: Point{1, 2}, Bounds: FruitBounds}
	if !errors.Is(err, ErrInvalidPosition) {
		t.Error("errors.Is should match ErrInvalidPosition")
	}
	var ipe *InvalidPositionError
	if !errors.As(err, &ipe) || ipe.Entity != "apple" {
		t.Errorf("errors.As failed: %v", err)
	}
}

func TestManualClockAdvance(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewManualClock(start)
	c.Advance(3 * time.Second)
	if got := c.Now().Sub(start); got != 3*time.Second {
		t.Errorf("advanced %v, want 3s", got)
	}
}
