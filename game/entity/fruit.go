package entity

import (
	"time"

	"snake-arcade/game/types"
)

// Fruit is a value-bearing object the snake grows by eating.
// Apples live until eaten; oranges also expire after their lifetime.
type Fruit struct {
	Entity
	kind      Kind
	value     int
	radius    float64
	spawnedAt time.Time
	lifetime  time.Duration // 0 means unlimited
}

// NewApple creates a regular fruit at p
func NewApple(p types.Point) (*Fruit, error) {
	f := &Fruit{
		kind:   KindApple,
		value:  types.AppleValue,
		radius: types.AppleRadius,
	}
	f.init("apple", types.FruitBounds)
	if err := f.SetPosition(p); err != nil {
		return nil, err
	}
	return f, nil
}

// NewOrange creates a bonus fruit at p that expires lifetime after spawnedAt
func NewOrange(p types.Point, spawnedAt time.Time, lifetime time.Duration) (*Fruit, error) {
	f := &Fruit{
		kind:      KindOrange,
		value:     types.OrangeValue,
		radius:    types.OrangeRadius,
		spawnedAt: spawnedAt,
		lifetime:  lifetime,
	}
	f.init("orange", types.FruitBounds)
	if err := f.SetPosition(p); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Fruit) Kind() Kind      { return f.kind }
func (f *Fruit) Value() int      { return f.value }
func (f *Fruit) Radius() float64 { return f.radius }

// Expired reports whether the fruit has outlived its lifetime at now
func (f *Fruit) Expired(now time.Time) bool {
	if f.lifetime <= 0 {
		return false
	}
	return now.Sub(f.spawnedAt) >= f.lifetime
}

// Remaining returns the lifetime left at now, or -1 for fruit that never expires
func (f *Fruit) Remaining(now time.Time) time.Duration {
	if f.lifetime <= 0 {
		return -1
	}
	left := f.lifetime - now.Sub(f.spawnedAt)
	if left < 0 {
		return 0
	}
	return left
}
