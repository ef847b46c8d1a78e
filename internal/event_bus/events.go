package event_bus

// CalendarChanged is published after any mutation of the event set: a load,
// create, update, or delete.
const CalendarChanged EventType = "calendar.changed"

// FiltersChanged is published after a visibility toggle; no data reload
// accompanies it.
const FiltersChanged EventType = "filters.changed"

// CalendarChange describes what mutated the event set.
type CalendarChange struct {
	// Action is one of "load", "create", "update", "delete".
	Action string
	// EventID names the affected event; empty for a full load.
	EventID string
}

// FilterChange carries the new visibility state after a toggle.
type FilterChange struct {
	EnabledTypes map[string]bool
	ShowHolidays bool
}
