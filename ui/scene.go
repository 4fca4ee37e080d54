package ui

import (
	"sort"
	"sync"

	"snake-arcade/game/entity"
)

// Scene is the set of objects currently on the field. The game adds and removes objects from
// its own goroutines while a renderer reads them every frame.
type Scene struct {
	mu      sync.RWMutex
	objects []entity.Object
	onAdd   func(entity.Object)
}

func NewScene() *Scene {
	return &Scene{}
}

// OnAdd registers a hook called after every AddObject, outside the scene lock
func (s *Scene) OnAdd(fn func(entity.Object)) {
	s.mu.Lock()
	s.onAdd = fn
	s.mu.Unlock()
}

func (s *Scene) AddObject(o entity.Object) {
	s.mu.Lock()
	for _, have := range s.objects {
		if have == o {
			s.mu.Unlock()
			return
		}
	}
	s.objects = append(s.objects, o)
	hook := s.onAdd
	s.mu.Unlock()

	if hook != nil {
		hook(o)
	}
}

func (s *Scene) RemoveObject(o entity.Object) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, have := range s.objects {
		if have == o {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			return
		}
	}
}

func (s *Scene) Clear() {
	s.mu.Lock()
	s.objects = nil
	s.mu.Unlock()
}

func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// Objects returns a snapshot in paint order: fruit first, then the body, the head on top
func (s *Scene) Objects() []entity.Object {
	s.mu.RLock()
	out := make([]entity.Object, len(s.objects))
	copy(out, s.objects)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return paintOrder(out[i].Kind()) < paintOrder(out[j].Kind())
	})
	return out
}

func paintOrder(k entity.Kind) int {
	switch k {
	case entity.KindApple, entity.KindOrange:
		return 0
	case entity.KindSegment:
		return 1
	default:
		return 2
	}
}
