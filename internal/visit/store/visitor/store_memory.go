package visitor

import (
	"context"
	"strings"
	"sync"

	"foyer/internal/visit/models"
	id "foyer/pkg/domain"
	"foyer/pkg/platform/sentinel"
)

// InMemory is a map-backed visitor store for tests and local development.
type InMemory struct {
	mu       sync.RWMutex
	visitors map[id.VisitorID]*models.Visitor
}

func NewInMemory() *InMemory {
	return &InMemory{visitors: make(map[id.VisitorID]*models.Visitor)}
}

func (s *InMemory) Create(_ context.Context, visitor *models.Visitor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.visitors[visitor.ID]; ok {
		return sentinel.ErrConflict
	}
	clone := *visitor
	s.visitors[visitor.ID] = &clone
	return nil
}

func (s *InMemory) FindByID(_ context.Context, visitorID id.VisitorID) (*models.Visitor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	visitor, ok := s.visitors[visitorID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *visitor
	return &clone, nil
}

// FindByEmail matches case-insensitively so a returning visitor reuses
// their profile regardless of how they typed the address.
func (s *InMemory) FindByEmail(_ context.Context, email string) (*models.Visitor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if email == "" {
		return nil, sentinel.ErrNotFound
	}
	for _, visitor := range s.visitors {
		if strings.EqualFold(visitor.Email, email) {
			clone := *visitor
			return &clone, nil
		}
	}
	return nil, sentinel.ErrNotFound
}
