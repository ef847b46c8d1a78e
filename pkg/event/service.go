package event

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/almanak/almanak/internal/event_bus"
	"github.com/almanak/almanak/pkg/filestore"
	"github.com/almanak/almanak/pkg/holiday"
	"github.com/almanak/almanak/pkg/settings"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ErrNotFound is returned when an update or delete names an unknown event.
var ErrNotFound = errors.New("event not found")

// Service is the authoritative in-memory event set over an abstract file
// store. All reads are served from memory; every mutation is persisted to the
// file store first and then broadcast on the bus.
type Service struct {
	files    filestore.Store
	settings settings.Store
	holidays *holiday.Calculator
	bus      *event_bus.EventBus

	mu     sync.RWMutex
	events map[string]Event
}

func NewService(files filestore.Store, settingsStore settings.Store, holidays *holiday.Calculator, bus *event_bus.EventBus) *Service {
	return &Service{
		files:    files,
		settings: settingsStore,
		holidays: holidays,
		bus:      bus,
		events:   make(map[string]Event),
	}
}

// LoadAll replaces the in-memory set wholesale from the file store. A file
// that cannot be read or parsed is logged and skipped; one corrupt file never
// aborts the load. A single change notification follows the full batch.
func (s *Service) LoadAll(ctx context.Context) error {
	keys, err := s.files.ListKeys()
	if err != nil {
		return fmt.Errorf("failed to list event files: %w", err)
	}
	loaded := make(map[string]Event)
	for _, key := range keys {
		if !strings.HasSuffix(key, ".md") {
			continue
		}
		content, found, err := s.files.Read(key)
		if err != nil {
			log.Errorf("skipping unreadable event file %s: %v", key, err)
			continue
		}
		if !found {
			continue
		}
		fields, body := ParseFrontmatter(content)
		e, ok := Decode(fields, body)
		if !ok {
			log.Warnf("skipping %s: frontmatter has no startDate", key)
			continue
		}
		e.filename = key
		loaded[e.ID] = e
	}
	s.mu.Lock()
	s.events = loaded
	s.mu.Unlock()
	log.Infof("loaded %d events from store", len(loaded))
	s.notifyChange(ctx, "load", "")
	return nil
}

// GetAll returns every stored event whose type is currently enabled, sorted
// by start date.
func (s *Service) GetAll() []Event {
	filters := s.settings.Filters()
	s.mu.RLock()
	events := make([]Event, 0, len(s.events))
	for _, e := range s.events {
		if filters.TypeEnabled(string(e.Type)) {
			events = append(events, e)
		}
	}
	s.mu.RUnlock()
	sortEvents(events)
	return events
}

// Get resolves an id, reducing a composite recurrence-instance id to its base
// event first.
func (s *Service) Get(id string) (Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[SplitInstanceID(id)]
	return e, ok
}

// GetRange returns every event visible in [from, to], both bounds inclusive:
// plain events whose date interval overlaps the range, occurrences of
// recurring events expanded into the range, and the public holidays of the
// spanned years when holiday visibility is on.
func (s *Service) GetRange(from, to string) ([]Event, error) {
	if !isCalendarDate(from) || !isCalendarDate(to) || to < from {
		return nil, fmt.Errorf("invalid date range [%s, %s]", from, to)
	}
	filters := s.settings.Filters()

	s.mu.RLock()
	bases := make([]Event, 0, len(s.events))
	for _, e := range s.events {
		if !filters.TypeEnabled(string(e.Type)) {
			continue
		}
		if e.Recurring() {
			// The base interval may lie before the range while occurrences
			// still fall inside it; the expander makes the final call.
			if e.StartDate <= to {
				bases = append(bases, e)
			}
		} else if e.StartDate <= to && e.EndDate >= from {
			bases = append(bases, e)
		}
	}
	s.mu.RUnlock()

	result := Expand(bases, from, to)
	if filters.ShowHolidays && filters.TypeEnabled(string(TypeHoliday)) {
		result = append(result, s.holidaysInRange(from, to)...)
	}
	sortEvents(result)
	return result, nil
}

// Create assigns a fresh id, applies the load-time defaults, persists the
// event under its computed filename, and inserts it into memory. The reserved
// holiday type is never assignable here.
func (s *Service) Create(ctx context.Context, e Event) (Event, error) {
	if !isCalendarDate(e.StartDate) {
		return Event{}, fmt.Errorf("invalid startDate %q", e.StartDate)
	}
	if e.Type == TypeHoliday {
		e.Type = TypeOther
	}
	// Mirrors the load-time default: an event without clock times is all-day.
	if e.StartTime == "" {
		e.AllDay = true
	}
	e.ID = uuid.NewString()
	e.IsInstance = false
	e.OriginalID = ""
	e.IsHoliday = false
	applyDefaults(&e)
	e.filename = Filename(e)

	if err := s.files.Write(e.filename, Serialize(e)); err != nil {
		return Event{}, fmt.Errorf("failed to persist event: %w", err)
	}
	s.mu.Lock()
	s.events[e.ID] = e
	s.mu.Unlock()
	s.notifyChange(ctx, "create", e.ID)
	return e, nil
}

// Patch is a partial update; nil fields leave the existing value untouched.
type Patch struct {
	Title              *string
	StartDate          *string
	EndDate            *string
	StartTime          *string
	EndTime            *string
	AllDay             *bool
	Color              *string
	Type               *Type
	Recurrence         *Recurrence
	RecurrenceEnd      *string
	RecurrenceInterval *int
	Description        *string
}

func (p Patch) applyTo(e Event) Event {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.StartDate != nil {
		e.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		e.EndDate = *p.EndDate
	}
	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		e.EndTime = *p.EndTime
	}
	if p.AllDay != nil {
		e.AllDay = *p.AllDay
	}
	if p.Color != nil {
		e.Color = *p.Color
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Recurrence != nil {
		e.Recurrence = *p.Recurrence
	}
	if p.RecurrenceEnd != nil {
		e.RecurrenceEnd = *p.RecurrenceEnd
	}
	if p.RecurrenceInterval != nil {
		e.RecurrenceInterval = *p.RecurrenceInterval
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	return e
}

// Update merges the patch onto the stored event, re-applies the defaults and
// the all-day/time invariant, and persists the result. When the slug-relevant
// fields changed, the event is written under its new filename and the old
// file is removed. A composite instance id resolves to its base event.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (Event, error) {
	baseID := SplitInstanceID(id)

	s.mu.Lock()
	existing, ok := s.events[baseID]
	if !ok {
		s.mu.Unlock()
		return Event{}, fmt.Errorf("%w: %s", ErrNotFound, baseID)
	}
	updated := patch.applyTo(existing)
	updated.ID = existing.ID
	// A patch that sets a start time without saying allDay turns the event
	// timed, as creation does.
	if patch.AllDay == nil && patch.StartTime != nil && *patch.StartTime != "" {
		updated.AllDay = false
	}
	if !isCalendarDate(updated.StartDate) {
		s.mu.Unlock()
		return Event{}, fmt.Errorf("invalid startDate %q", updated.StartDate)
	}
	applyDefaults(&updated)
	updated.filename = Filename(updated)

	if err := s.files.Write(updated.filename, Serialize(updated)); err != nil {
		s.mu.Unlock()
		return Event{}, fmt.Errorf("failed to persist event: %w", err)
	}
	if existing.filename != "" && existing.filename != updated.filename {
		if _, err := s.files.Remove(existing.filename); err != nil {
			log.Errorf("failed to remove renamed event file %s: %v", existing.filename, err)
		}
	}
	s.events[updated.ID] = updated
	s.mu.Unlock()

	s.notifyChange(ctx, "update", updated.ID)
	return updated, nil
}

// Delete removes the event's backing file and its in-memory entry and reports
// whether anything was removed. An already-absent file counts as success; a
// composite instance id resolves to its base event.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	baseID := SplitInstanceID(id)

	s.mu.Lock()
	e, ok := s.events[baseID]
	if !ok {
		s.mu.Unlock()
		return false, nil
	}
	if e.filename != "" {
		if _, err := s.files.Remove(e.filename); err != nil {
			s.mu.Unlock()
			return false, fmt.Errorf("failed to remove event file: %w", err)
		}
	}
	delete(s.events, baseID)
	s.mu.Unlock()

	s.notifyChange(ctx, "delete", baseID)
	return true, nil
}

// ToggleType flips visibility of one event type and persists the choice.
func (s *Service) ToggleType(ctx context.Context, t Type) (settings.Filters, error) {
	filters, err := s.settings.ToggleType(string(t))
	if err != nil {
		return settings.Filters{}, fmt.Errorf("failed to persist filter change: %w", err)
	}
	s.notifyFilters(ctx, filters)
	return filters, nil
}

// ToggleHolidays flips the global holiday visibility flag and persists it.
func (s *Service) ToggleHolidays(ctx context.Context) (settings.Filters, error) {
	filters, err := s.settings.ToggleHolidays()
	if err != nil {
		return settings.Filters{}, fmt.Errorf("failed to persist filter change: %w", err)
	}
	s.notifyFilters(ctx, filters)
	return filters, nil
}

// Filters returns the current visibility state.
func (s *Service) Filters() settings.Filters {
	return s.settings.Filters()
}

// Subscribe registers a callback for calendar mutations and returns its
// unsubscribe function. Callback failures are isolated by the bus and never
// reach the mutation that triggered them.
func (s *Service) Subscribe(fn func(event_bus.CalendarChange)) (unsubscribe func()) {
	return s.bus.Subscribe(event_bus.CalendarChanged, func(e event_bus.Event) error {
		if change, ok := e.Data.(event_bus.CalendarChange); ok {
			fn(change)
		}
		return nil
	})
}

func (s *Service) holidaysInRange(from, to string) []Event {
	fromDate, err := parseDate(from)
	if err != nil {
		return nil
	}
	toDate, err := parseDate(to)
	if err != nil {
		return nil
	}
	var events []Event
	for year := fromDate.Year(); year <= toDate.Year(); year++ {
		for _, h := range s.holidays.ForYear(year) {
			if h.Date < from || h.Date > to {
				continue
			}
			events = append(events, holidayEvent(h))
		}
	}
	return events
}

func holidayEvent(h holiday.Holiday) Event {
	return Event{
		ID:                 "holiday-" + h.Date,
		Title:              h.LocalizedName,
		Description:        h.Name,
		StartDate:          h.Date,
		EndDate:            h.Date,
		AllDay:             true,
		Color:              DefaultColor(TypeHoliday),
		Type:               TypeHoliday,
		Recurrence:         RecurrenceNone,
		RecurrenceInterval: 1,
		IsHoliday:          true,
	}
}

func (s *Service) notifyChange(ctx context.Context, action, id string) {
	err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.CalendarChanged, event_bus.CalendarChange{
		Action:  action,
		EventID: id,
	}))
	if err != nil {
		log.Debugf("change notification: %v", err)
	}
}

func (s *Service) notifyFilters(ctx context.Context, filters settings.Filters) {
	err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.FiltersChanged, event_bus.FilterChange{
		EnabledTypes: filters.EnabledTypes,
		ShowHolidays: filters.ShowHolidays,
	}))
	if err != nil {
		log.Debugf("filter notification: %v", err)
	}
}

func sortEvents(events []Event) {
	sort.Slice(events, func(i, j int) bool {
		if events[i].StartDate != events[j].StartDate {
			return events[i].StartDate < events[j].StartDate
		}
		return events[i].Title < events[j].Title
	})
}
