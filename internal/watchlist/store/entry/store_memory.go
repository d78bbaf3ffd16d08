package entry

import (
	"context"
	"sort"
	"sync"

	"foyer/internal/watchlist/models"
	id "foyer/pkg/domain"
	"foyer/pkg/platform/sentinel"
)

// InMemory is a map-backed entry store for tests and local development.
type InMemory struct {
	mu      sync.RWMutex
	entries map[id.EntryID]*models.Entry
}

func NewInMemory() *InMemory {
	return &InMemory{entries: make(map[id.EntryID]*models.Entry)}
}

func (s *InMemory) Create(_ context.Context, entry *models.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[entry.ID]; ok {
		return sentinel.ErrConflict
	}
	clone := cloneEntry(entry)
	s.entries[entry.ID] = clone
	return nil
}

func (s *InMemory) FindByID(_ context.Context, entryID id.EntryID) (*models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[entryID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneEntry(entry), nil
}

// List returns every entry regardless of status, newest mutation first.
func (s *InMemory) List(_ context.Context) ([]*models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*models.Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		entries = append(entries, cloneEntry(entry))
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LastUpdated.After(entries[j].LastUpdated)
	})
	return entries, nil
}

// ListActive returns entries eligible for match evaluation.
func (s *InMemory) ListActive(_ context.Context) ([]*models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*models.Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		if entry.IsActive() {
			entries = append(entries, cloneEntry(entry))
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LastUpdated.After(entries[j].LastUpdated)
	})
	return entries, nil
}

func (s *InMemory) Update(_ context.Context, entry *models.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[entry.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.entries[entry.ID] = cloneEntry(entry)
	return nil
}

// CountByLevel reports how many entries reference the level. The level
// service uses this to block deletion of levels still in use.
func (s *InMemory) CountByLevel(_ context.Context, levelID id.LevelID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, entry := range s.entries {
		if entry.LevelID == levelID {
			count++
		}
	}
	return count, nil
}

func cloneEntry(entry *models.Entry) *models.Entry {
	clone := *entry
	clone.AltFirstNames = append([]string(nil), entry.AltFirstNames...)
	clone.AltLastNames = append([]string(nil), entry.AltLastNames...)
	clone.AdditionalEmails = append([]string(nil), entry.AdditionalEmails...)
	clone.AdditionalPhones = append([]string(nil), entry.AdditionalPhones...)
	return &clone
}
