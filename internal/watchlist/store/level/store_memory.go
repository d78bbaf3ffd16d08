package level

import (
	"context"
	"strings"
	"sync"

	"foyer/internal/watchlist/models"
	id "foyer/pkg/domain"
	"foyer/pkg/platform/sentinel"
)

// InMemory is a map-backed level store for tests and local development.
// Name uniqueness is enforced case-insensitively, matching the postgres
// store's unique index on lower(name).
type InMemory struct {
	mu     sync.RWMutex
	levels map[id.LevelID]*models.Level
}

func NewInMemory() *InMemory {
	return &InMemory{levels: make(map[id.LevelID]*models.Level)}
}

// CreateIfNameAvailable stores the level unless another level already holds
// the name (case-insensitive). Returns sentinel.ErrConflict on collision.
func (s *InMemory) CreateIfNameAvailable(_ context.Context, level *models.Level) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.levels {
		if strings.EqualFold(existing.Name, level.Name) {
			return sentinel.ErrConflict
		}
	}

	clone := *level
	s.levels[level.ID] = &clone
	return nil
}

func (s *InMemory) FindByID(_ context.Context, levelID id.LevelID) (*models.Level, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	level, ok := s.levels[levelID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *level
	return &clone, nil
}

func (s *InMemory) List(_ context.Context) ([]*models.Level, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	levels := make([]*models.Level, 0, len(s.levels))
	for _, level := range s.levels {
		clone := *level
		levels = append(levels, &clone)
	}
	return levels, nil
}

// Update persists the level, re-checking name uniqueness against other levels.
func (s *InMemory) Update(_ context.Context, level *models.Level) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.levels[level.ID]; !ok {
		return sentinel.ErrNotFound
	}
	for existingID, existing := range s.levels {
		if existingID != level.ID && strings.EqualFold(existing.Name, level.Name) {
			return sentinel.ErrConflict
		}
	}

	clone := *level
	s.levels[level.ID] = &clone
	return nil
}

func (s *InMemory) Delete(_ context.Context, levelID id.LevelID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.levels[levelID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.levels, levelID)
	return nil
}
