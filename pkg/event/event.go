package event

import (
	"regexp"
	"strings"
	"time"
)

// Type categorizes an event. The set is closed; TypeHoliday is reserved for
// the generated holiday projections and can never be assigned at creation.
type Type string

const (
	TypePersonal Type = "personal"
	TypeWork     Type = "work"
	TypeBirthday Type = "birthday"
	TypeHoliday  Type = "holiday"
	TypeOther    Type = "other"
)

// AllTypes lists every event type in display order.
var AllTypes = []Type{TypePersonal, TypeWork, TypeBirthday, TypeHoliday, TypeOther}

// Recurrence is the repeat rule of an event. Only fixed-interval rules are
// supported.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceYearly  Recurrence = "yearly"
)

// DateLayout is the canonical calendar-date form. Lexicographic order on this
// form equals chronological order, which the store relies on.
const DateLayout = "2006-01-02"

// TimeLayout is the canonical clock-time form for timed events.
const TimeLayout = "15:04"

// Event is a calendar entry. Dates are naive local calendar dates in
// canonical YYYY-MM-DD form; times are HH:MM and only present on timed
// (non-all-day) events.
type Event struct {
	ID                 string
	Title              string
	StartDate          string
	EndDate            string
	StartTime          string
	EndTime            string
	AllDay             bool
	Color              string
	Type               Type
	Recurrence         Recurrence
	RecurrenceEnd      string
	RecurrenceInterval int
	Description        string

	// IsInstance marks an occurrence generated from a recurring event;
	// OriginalID then names the base event. Instances are never persisted.
	IsInstance bool
	OriginalID string

	// IsHoliday marks a generated public-holiday projection, never writable.
	IsHoliday bool

	// filename is the file-store key currently backing this event.
	filename string
}

var typeColors = map[Type]string{
	TypePersonal: "#3b82f6",
	TypeWork:     "#8b5cf6",
	TypeBirthday: "#ec4899",
	TypeHoliday:  "#ef4444",
	TypeOther:    "#6b7280",
}

// DefaultColor returns the palette color for an event type.
func DefaultColor(t Type) string {
	if color, ok := typeColors[t]; ok {
		return color
	}
	return typeColors[TypeOther]
}

// Recurring reports whether the event carries a repeat rule.
func (e Event) Recurring() bool {
	return e.Recurrence != "" && e.Recurrence != RecurrenceNone
}

func validType(t Type) bool {
	_, ok := typeColors[t]
	return ok
}

func validRecurrence(r Recurrence) bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

// applyDefaults fills the defaulted fields of an event in place, both at load
// time and at creation. The all-day/time-field invariant is enforced last:
// an all-day event carries no clock times.
func applyDefaults(e *Event) {
	if strings.TrimSpace(e.Title) == "" {
		e.Title = "Untitled"
	}
	if e.EndDate == "" {
		e.EndDate = e.StartDate
	}
	if !validType(e.Type) {
		e.Type = TypePersonal
	}
	if e.Recurrence == "" || !validRecurrence(e.Recurrence) {
		e.Recurrence = RecurrenceNone
	}
	if e.RecurrenceInterval <= 0 {
		e.RecurrenceInterval = 1
	}
	if e.Color == "" {
		e.Color = DefaultColor(e.Type)
	}
	if e.AllDay {
		e.StartTime = ""
		e.EndTime = ""
	}
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

const maxSlugLength = 50

// Slugify turns a title into its file-name form: lowercase, runs of
// non-alphanumerics collapsed to single hyphens, trimmed, at most 50
// characters, "event" when nothing remains.
func Slugify(title string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}
	if slug == "" {
		slug = "event"
	}
	return slug
}

// Filename computes the file-store key backing an event:
// {startDate}-{slug(title)}.md
func Filename(e Event) string {
	return e.StartDate + "-" + Slugify(e.Title) + ".md"
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func formatDate(t time.Time) string {
	return t.Format(DateLayout)
}
