package types

import (
	"fmt"
	"math"
	"time"
)

// Playfield geometry, in world units
const (
	Size        = 500.0 // Side of the square playfield
	Step        = 10.0  // One tile, the distance the head travels per tick
	SpawnMargin = 15.0  // Fruit never spawns closer than this to an edge

	HeadRadius   = 5.0
	AppleRadius  = 8.0
	OrangeRadius = 11.0
)

// Fruit values, in body segments gained when eaten
const (
	AppleValue  = 1
	OrangeValue = 3
)

// Session defaults, overridable through configuration
const (
	TickInterval        = 100 * time.Millisecond
	BonusSpawnPeriod    = 5 * time.Second
	BonusSpawnThreshold = 0.8 // Bonus spawns when a uniform draw exceeds this
	BonusLifetime       = 8 * time.Second
	WinLength           = 100 // Body segments needed to win
)

// Point is a position on the playfield
type Point struct {
	X, Y float64
}

// Add returns p translated by q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Scale multiplies both coordinates by k
func (p Point) Scale(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// DistanceTo returns the Euclidean distance between p and q
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Bounds is an inclusive coordinate range applied to both axes
type Bounds struct {
	Min, Max float64
}

// Contains reports whether both coordinates of p lie in [Min, Max]
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Min && p.X <= b.Max && p.Y >= b.Min && p.Y <= b.Max
}

var (
	// FieldBounds is the playfield itself; the head leaving it ends the session
	FieldBounds = Bounds{Min: 0, Max: Size}

	// SegmentBounds is where a head or body segment may be placed. It reaches one tile
	// past the field because the head is allowed to step out once before the loss is detected.
	SegmentBounds = Bounds{Min: -Step, Max: Size + Step}

	// FruitBounds is where a fruit may be placed
	FruitBounds = Bounds{Min: SpawnMargin, Max: Size - SpawnMargin}
)

// StartPosition is where the head is placed when a session starts
func StartPosition() Point {
	return Point{X: Size / 2, Y: Size / 2}
}
