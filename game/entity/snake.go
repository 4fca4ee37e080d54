package entity

import (
	"snake-arcade/game/types"
)

// Head is the player-controlled front of the snake
type Head struct {
	Entity
}

func (h *Head) Kind() Kind      { return KindHead }
func (h *Head) Radius() float64 { return types.HeadRadius }

// Segment is a body part trailing one tick behind the entity ahead of it
type Segment struct {
	Entity
}

func (s *Segment) Kind() Kind      { return KindSegment }
func (s *Segment) Radius() float64 { return types.HeadRadius }

// Snake owns the head and the ordered body; index 0 is the segment right behind the head.
// Snake is not safe for concurrent mutation, the game loop serializes access to it.
type Snake struct {
	head     *Head
	segments []*Segment

	applesEaten  int
	orangesEaten int
}

// NewSnake creates a snake with no body and its head at start
func NewSnake(start types.Point) (*Snake, error) {
	s := &Snake{}
	if err := s.Reset(start); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset drops every segment and counter and puts a fresh head at start
func (s *Snake) Reset(start types.Point) error {
	head := &Head{}
	head.init("head", types.SegmentBounds)
	if err := head.SetPosition(start); err != nil {
		return err
	}
	head.UpdatePreviousPosition()

	s.head = head
	s.segments = nil
	s.applesEaten = 0
	s.orangesEaten = 0
	return nil
}

// Head returns the head entity
func (s *Snake) Head() *Head {
	return s.head
}

// Segments returns a copy of the body, nearest to the head first
func (s *Snake) Segments() []*Segment {
	out := make([]*Segment, len(s.segments))
	copy(out, s.segments)
	return out
}

// Len returns the number of body segments
func (s *Snake) Len() int {
	return len(s.segments)
}

func (s *Snake) MoveUp()    { s.head.translate(types.UP.ToPoint().Scale(types.Step)) }
func (s *Snake) MoveDown()  { s.head.translate(types.DOWN.ToPoint().Scale(types.Step)) }
func (s *Snake) MoveLeft()  { s.head.translate(types.LEFT.ToPoint().Scale(types.Step)) }
func (s *Snake) MoveRight() { s.head.translate(types.RIGHT.ToPoint().Scale(types.Step)) }

// Move advances the head one step in dir
func (s *Snake) Move(dir types.Direction) {
	switch dir {
	case types.UP:
		s.MoveUp()
	case types.DOWN:
		s.MoveDown()
	case types.LEFT:
		s.MoveLeft()
	case types.RIGHT:
		s.MoveRight()
	}
}

// UpdatePreviousPositions snapshots the head and every segment. Must run before any movement in a tick.
func (s *Snake) UpdatePreviousPositions() {
	s.head.UpdatePreviousPosition()
	for _, seg := range s.segments {
		seg.UpdatePreviousPosition()
	}
}

// MoveBody moves every segment onto the previous position of the entity ahead of it.
// Runs from the tail towards the head so no segment reads data already advanced this tick.
func (s *Snake) MoveBody() {
	for i := len(s.segments) - 1; i > 0; i-- {
		s.segments[i].follow(&s.segments[i-1].Entity)
	}
	if len(s.segments) > 0 {
		s.segments[0].follow(&s.head.Entity)
	}
}

// Grow appends n segments at the tail and returns them.
// New segments start on top of the current tail; the next MoveBody spreads them out.
func (s *Snake) Grow(n int) []*Segment {
	tail := s.head.Position()
	if len(s.segments) > 0 {
		tail = s.segments[len(s.segments)-1].Position()
	}

	added := make([]*Segment, 0, n)
	for i := 0; i < n; i++ {
		seg := &Segment{}
		seg.init("segment", types.SegmentBounds)
		seg.place(tail)
		s.segments = append(s.segments, seg)
		added = append(added, seg)
	}
	return added
}

// DistanceTo returns the distance from the head to f; ok is false when f is nil
func (s *Snake) DistanceTo(f *Fruit) (float64, bool) {
	if f == nil {
		return 0, false
	}
	return s.head.Position().DistanceTo(f.Position()), true
}

// RunIntoYourself reports whether the head sits exactly on a segment, and which one
func (s *Snake) RunIntoYourself() (int, bool) {
	head := s.head.Position()
	for i, seg := range s.segments {
		if seg.Position() == head {
			return i, true
		}
	}
	return -1, false
}

func (s *Snake) IncrementApplesEaten()  { s.applesEaten++ }
func (s *Snake) IncrementOrangesEaten() { s.orangesEaten++ }
func (s *Snake) ApplesEaten() int       { return s.applesEaten }
func (s *Snake) OrangesEaten() int      { return s.orangesEaten }
