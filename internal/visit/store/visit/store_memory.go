package visit

import (
	"context"
	"sort"
	"sync"

	"foyer/internal/visit/models"
	id "foyer/pkg/domain"
	"foyer/pkg/platform/sentinel"
)

// InMemory is a map-backed visit store for tests and local development.
type InMemory struct {
	mu     sync.RWMutex
	visits map[id.VisitID]*models.Visit
}

func NewInMemory() *InMemory {
	return &InMemory{visits: make(map[id.VisitID]*models.Visit)}
}

func (s *InMemory) Create(_ context.Context, visit *models.Visit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.visits[visit.ID]; ok {
		return sentinel.ErrConflict
	}
	s.visits[visit.ID] = cloneVisit(visit)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, visitID id.VisitID) (*models.Visit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	visit, ok := s.visits[visitID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneVisit(visit), nil
}

func (s *InMemory) Update(_ context.Context, visit *models.Visit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.visits[visit.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.visits[visit.ID] = cloneVisit(visit)
	return nil
}

// ListRecent returns up to limit visits, newest first.
func (s *InMemory) ListRecent(_ context.Context, limit int) ([]*models.Visit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	visits := s.sorted()
	if limit > 0 && limit < len(visits) {
		visits = visits[:limit]
	}
	return visits, nil
}

// ListPending returns visits awaiting an admin decision, oldest first so
// the approval queue is worked in arrival order.
func (s *InMemory) ListPending(_ context.Context) ([]*models.Visit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pending []*models.Visit
	for _, visit := range s.visits {
		if visit.IsPending() {
			pending = append(pending, cloneVisit(visit))
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	return pending, nil
}

// ListByVisitor returns the visitor's visits, newest first.
func (s *InMemory) ListByVisitor(_ context.Context, visitorID id.VisitorID) ([]*models.Visit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var visits []*models.Visit
	for _, visit := range s.visits {
		if visit.VisitorID == visitorID {
			visits = append(visits, cloneVisit(visit))
		}
	}
	sort.Slice(visits, func(i, j int) bool {
		return visits[i].CreatedAt.After(visits[j].CreatedAt)
	})
	return visits, nil
}

func (s *InMemory) sorted() []*models.Visit {
	visits := make([]*models.Visit, 0, len(s.visits))
	for _, visit := range s.visits {
		visits = append(visits, cloneVisit(visit))
	}
	sort.Slice(visits, func(i, j int) bool {
		return visits[i].CreatedAt.After(visits[j].CreatedAt)
	})
	return visits
}

func cloneVisit(visit *models.Visit) *models.Visit {
	clone := *visit
	clone.MatchedEntryIDs = append([]id.EntryID(nil), visit.MatchedEntryIDs...)
	if visit.ScheduledFor != nil {
		t := *visit.ScheduledFor
		clone.ScheduledFor = &t
	}
	if visit.CheckedInAt != nil {
		t := *visit.CheckedInAt
		clone.CheckedInAt = &t
	}
	if visit.CheckedOutAt != nil {
		t := *visit.CheckedOutAt
		clone.CheckedOutAt = &t
	}
	return &clone
}
