package event

import (
	"strings"
	"time"
)

// InstanceSeparator joins a base event id and an occurrence date into the
// composite id of a generated instance.
const InstanceSeparator = "_"

// maxInstancesPerEvent bounds the instances generated from a single recurring
// event in one expansion. Occurrences skipped because they fall before the
// query range do not count; a series may start years before the range and
// still fill it.
const maxInstancesPerEvent = 365

// SplitInstanceID reduces a composite recurrence-instance id to the id of its
// base event. Plain ids pass through unchanged.
func SplitInstanceID(id string) string {
	base, _, _ := strings.Cut(id, InstanceSeparator)
	return base
}

// Expand maps a set of events onto a query range. Non-recurring events pass
// through unchanged; each recurring event is replaced by its concrete
// occurrences overlapping [from, to], both bounds inclusive.
//
// Occurrence n starts at the base start date advanced by n periods. Monthly
// and yearly advances clamp to the last valid day of the target month, so a
// series anchored on Jan 31 visits Feb 28 (or 29) and returns to Mar 31
// without drifting. Generation stops at min(recurrenceEnd, to) or at the
// per-event safety cap, whichever comes first. The duration of the base event
// is preserved on every occurrence.
func Expand(events []Event, from, to string) []Event {
	result := make([]Event, 0, len(events))
	for _, e := range events {
		if !e.Recurring() {
			result = append(result, e)
			continue
		}
		result = append(result, expandEvent(e, from, to)...)
	}
	return result
}

func expandEvent(e Event, from, to string) []Event {
	start, err := parseDate(e.StartDate)
	if err != nil {
		return []Event{e}
	}
	end, err := parseDate(e.EndDate)
	if err != nil {
		end = start
	}
	rangeStart, err := parseDate(from)
	if err != nil {
		return nil
	}
	rangeEnd, err := parseDate(to)
	if err != nil {
		return nil
	}

	durationDays := int(end.Sub(start).Hours() / 24)

	ceiling := rangeEnd
	if e.RecurrenceEnd != "" {
		if recEnd, err := parseDate(e.RecurrenceEnd); err == nil && recEnd.Before(ceiling) {
			ceiling = recEnd
		}
	}

	var instances []Event
	previous := time.Time{}
	for n := 0; len(instances) < maxInstancesPerEvent; n++ {
		occurrenceStart := advance(start, e.Recurrence, e.RecurrenceInterval, n)
		// A cursor that stops moving (interval 0 in a hand-edited file) would
		// loop forever; one occurrence per distinct date is all a series gets.
		if n > 0 && !occurrenceStart.After(previous) {
			break
		}
		previous = occurrenceStart
		if occurrenceStart.After(ceiling) {
			break
		}
		occurrenceEnd := occurrenceStart.AddDate(0, 0, durationDays)
		if occurrenceEnd.Before(rangeStart) {
			continue
		}
		instances = append(instances, makeInstance(e, occurrenceStart, occurrenceEnd))
	}
	return instances
}

// advance returns the start of occurrence n of a series.
func advance(start time.Time, rule Recurrence, interval, n int) time.Time {
	steps := n * interval
	switch rule {
	case RecurrenceDaily:
		return start.AddDate(0, 0, steps)
	case RecurrenceWeekly:
		return start.AddDate(0, 0, 7*steps)
	case RecurrenceMonthly:
		return addMonthsClamped(start, steps)
	case RecurrenceYearly:
		return addMonthsClamped(start, 12*steps)
	}
	return start.AddDate(0, 0, steps)
}

// addMonthsClamped adds months to a date, clamping the day to the last valid
// day of the target month instead of letting it roll over.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	total := int(month) - 1 + months
	year += total / 12
	month = time.Month(total%12 + 1)
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func makeInstance(e Event, start, end time.Time) Event {
	instance := e
	instance.StartDate = formatDate(start)
	instance.EndDate = formatDate(end)
	instance.ID = e.ID + InstanceSeparator + instance.StartDate
	instance.IsInstance = true
	instance.OriginalID = e.ID
	instance.filename = ""
	return instance
}
