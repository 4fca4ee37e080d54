package entity

import (
	"sync"

	"snake-arcade/game/types"
)

// Kind identifies what an Object is, for drawing
type Kind int

const (
	KindHead Kind = iota
	KindSegment
	KindApple
	KindOrange
)

func (k Kind) String() string {
	switch k {
	case KindHead:
		return "head"
	case KindSegment:
		return "segment"
	case KindApple:
		return "apple"
	case KindOrange:
		return "orange"
	default:
		return "unknown"
	}
}

// Object is anything the presentation layer is told to add or remove
type Object interface {
	Kind() Kind
	Position() types.Point
	Radius() float64
}

// Entity is a positioned object that remembers where it was at the start of the current tick.
// Position reads are safe from any goroutine; writes come from the game loop.
type Entity struct {
	mu     sync.RWMutex
	pos    types.Point
	prev   types.Point
	bounds types.Bounds
	name   string
}

func (e *Entity) init(name string, bounds types.Bounds) {
	e.name = name
	e.bounds = bounds
}

// Position returns the current position
func (e *Entity) Position() types.Point {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.pos
}

// PreviousPosition returns the position captured by the last UpdatePreviousPosition
func (e *Entity) PreviousPosition() types.Point {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.prev
}

// SetPosition places the entity at p, rejecting anything outside its legal range
func (e *Entity) SetPosition(p types.Point) error {
	if !e.bounds.Contains(p) {
		return &types.InvalidPositionError{Entity: e.name, Pos: p, Bounds: e.bounds}
	}
	e.mu.Lock()
	e.pos = p
	e.mu.Unlock()
	return nil
}

// UpdatePreviousPosition snapshots the current position; call once per tick before any movement
func (e *Entity) UpdatePreviousPosition() {
	e.mu.Lock()
	e.prev = e.pos
	e.mu.Unlock()
}

// translate moves by d without a bounds check; boundary enforcement belongs to the game loop
func (e *Entity) translate(d types.Point) {
	e.mu.Lock()
	e.pos = e.pos.Add(d)
	e.mu.Unlock()
}

// follow moves onto the previous position of target
func (e *Entity) follow(target *Entity) {
	p := target.PreviousPosition()
	e.mu.Lock()
	e.pos = p
	e.mu.Unlock()
}

// place sets both positions at once, used for freshly created entities
func (e *Entity) place(p types.Point) {
	e.mu.Lock()
	e.pos = p
	e.prev = p
	e.mu.Unlock()
}
