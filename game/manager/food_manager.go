package manager

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"snake-arcade/game/entity"
	"snake-arcade/game/types"
)

// FoodManager creates fruit on random positions and decides when a bonus fruit appears
type FoodManager struct {
	mu        sync.Mutex // rand.Rand is not safe for concurrent use
	rng       *rand.Rand
	threshold float64
	lifetime  time.Duration
}

// NewFoodManager creates a spawner drawing from rng. A bonus spawns when a draw exceeds
// threshold, and lives for lifetime.
func NewFoodManager(rng *rand.Rand, threshold float64, lifetime time.Duration) *FoodManager {
	return &FoodManager{
		rng:       rng,
		threshold: threshold,
		lifetime:  lifetime,
	}
}

func (fm *FoodManager) float64() float64 {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	return fm.rng.Float64()
}

// RandomPosition draws a point uniformly from the fruit area, inset by SpawnMargin on every side
func (fm *FoodManager) RandomPosition() types.Point {
	span := types.Size - 2*types.SpawnMargin
	return types.Point{
		X: types.SpawnMargin + fm.float64()*span,
		Y: types.SpawnMargin + fm.float64()*span,
	}
}

// CreateApple returns a regular fruit on a random position
func (fm *FoodManager) CreateApple() *entity.Fruit {
	apple, err := entity.NewApple(fm.RandomPosition())
	if err != nil {
		panic(fmt.Sprintf("spawner produced an illegal apple: %v", err))
	}
	return apple
}

// CreateOrange returns a bonus fruit on a random position, born at now
func (fm *FoodManager) CreateOrange(now time.Time) *entity.Fruit {
	orange, err := entity.NewOrange(fm.RandomPosition(), now, fm.lifetime)
	if err != nil {
		panic(fmt.Sprintf("spawner produced an illegal orange: %v", err))
	}
	return orange
}

// ShouldSpawnBonus makes one Bernoulli draw for the current spawn period
func (fm *FoodManager) ShouldSpawnBonus() bool {
	return fm.float64() > fm.threshold
}
