package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Filters is the durable per-installation view state: which event types are
// visible and whether generated holidays are shown. A type missing from
// EnabledTypes counts as enabled, so fresh installations show everything.
type Filters struct {
	EnabledTypes map[string]bool `yaml:"enabledTypes"`
	ShowHolidays bool            `yaml:"showHolidays"`
}

// TypeEnabled reports whether events of the given type are visible.
func (f Filters) TypeEnabled(eventType string) bool {
	enabled, known := f.EnabledTypes[eventType]
	return !known || enabled
}

// Store persists filter choices across sessions.
type Store interface {
	Filters() Filters
	ToggleType(eventType string) (Filters, error)
	ToggleHolidays() (Filters, error)
}

func defaultFilters() Filters {
	return Filters{
		EnabledTypes: map[string]bool{},
		ShowHolidays: true,
	}
}

// FileStore keeps filters in a YAML file.
type FileStore struct {
	path string

	mu      sync.Mutex
	filters Filters
}

// NewFileStore loads filters from path, falling back to defaults when the
// file does not exist yet.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, filters: defaultFilters()}
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debugf("no settings file at %s, using defaults", path)
			return s, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	var filters Filters
	if err := yaml.Unmarshal(content, &filters); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	if filters.EnabledTypes == nil {
		filters.EnabledTypes = map[string]bool{}
	}
	s.filters = filters
	return s, nil
}

func (s *FileStore) Filters() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyFilters(s.filters)
}

func (s *FileStore) ToggleType(eventType string) (Filters, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.EnabledTypes[eventType] = !s.filters.TypeEnabled(eventType)
	if err := s.persist(); err != nil {
		return Filters{}, err
	}
	return copyFilters(s.filters), nil
}

func (s *FileStore) ToggleHolidays() (Filters, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.ShowHolidays = !s.filters.ShowHolidays
	if err := s.persist(); err != nil {
		return Filters{}, err
	}
	return copyFilters(s.filters), nil
}

func (s *FileStore) persist() error {
	content, err := yaml.Marshal(s.filters)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create settings directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

func copyFilters(f Filters) Filters {
	enabled := make(map[string]bool, len(f.EnabledTypes))
	for k, v := range f.EnabledTypes {
		enabled[k] = v
	}
	return Filters{EnabledTypes: enabled, ShowHolidays: f.ShowHolidays}
}
