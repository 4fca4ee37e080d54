package manager

import (
	"snake-arcade/game/entity"
	"snake-arcade/game/types"
)

// CollisionType represents the type of collision
type CollisionType int

const (
	NoCollision CollisionType = iota
	WallCollision
	SelfCollision
)

func (c CollisionType) String() string {
	switch c {
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	default:
		return "none"
	}
}

type CollisionManager struct {
	field types.Bounds
}

func NewCollisionManager(field types.Bounds) *CollisionManager {
	return &CollisionManager{
		field: field,
	}
}

// CheckCollision tests the head against the walls first, then against the body.
// For a self collision it also returns the index of the segment that was hit.
func (cm *CollisionManager) CheckCollision(s *entity.Snake) (CollisionType, int) {
	if cm.IsWallCollision(s.Head().Position()) {
		return WallCollision, -1
	}
	if idx, hit := s.RunIntoYourself(); hit {
		return SelfCollision, idx
	}
	return NoCollision, -1
}

// IsWallCollision checks if a position has left the field
func (cm *CollisionManager) IsWallCollision(pos types.Point) bool {
	return !cm.field.Contains(pos)
}

// IsFoodCollision checks if the head is close enough to eat f; a missing fruit never collides
func (cm *CollisionManager) IsFoodCollision(s *entity.Snake, f *entity.Fruit, threshold float64) bool {
	d, ok := s.DistanceTo(f)
	return ok && d < threshold
}
