package settings

import "sync"

// StubStore is an in-memory Store for tests.
type StubStore struct {
	mu      sync.Mutex
	filters Filters
}

func NewStubStore() *StubStore {
	return &StubStore{filters: defaultFilters()}
}

func (s *StubStore) Filters() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyFilters(s.filters)
}

func (s *StubStore) ToggleType(eventType string) (Filters, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.EnabledTypes[eventType] = !s.filters.TypeEnabled(eventType)
	return copyFilters(s.filters), nil
}

func (s *StubStore) ToggleHolidays() (Filters, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.ShowHolidays = !s.filters.ShowHolidays
	return copyFilters(s.filters), nil
}
