// Package export renders range query results as an iCalendar feed.
package export

import (
	"fmt"
	"time"

	"github.com/almanak/almanak/pkg/event"
	ical "github.com/arran4/golang-ical"
)

const productID = "-//Almanak//Calendar//EN"

// Render serializes events into an iCalendar document. Recurring events are
// expected to arrive already expanded; every element becomes its own VEVENT.
// Holiday projections are marked transparent so importing clients do not
// treat them as busy time.
func Render(events []event.Event) (string, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, e := range events {
		start, err := time.Parse(event.DateLayout, e.StartDate)
		if err != nil {
			return "", fmt.Errorf("event %s has invalid start date %q: %w", e.ID, e.StartDate, err)
		}
		end, err := time.Parse(event.DateLayout, e.EndDate)
		if err != nil {
			return "", fmt.Errorf("event %s has invalid end date %q: %w", e.ID, e.EndDate, err)
		}

		ve := cal.AddEvent(e.ID)
		ve.SetDtStampTime(time.Now().UTC())
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.AllDay {
			ve.SetAllDayStartAt(start)
			// DTEND is exclusive in iCalendar; the stored end date is
			// inclusive.
			ve.SetAllDayEndAt(end.AddDate(0, 0, 1))
		} else {
			startAt, err := atClock(start, e.StartTime)
			if err != nil {
				return "", fmt.Errorf("event %s has invalid start time %q: %w", e.ID, e.StartTime, err)
			}
			endAt := startAt.Add(time.Hour)
			if e.EndTime != "" {
				endAt, err = atClock(end, e.EndTime)
				if err != nil {
					return "", fmt.Errorf("event %s has invalid end time %q: %w", e.ID, e.EndTime, err)
				}
			}
			ve.SetStartAt(startAt)
			ve.SetEndAt(endAt)
		}
		if e.IsHoliday {
			ve.SetTimeTransparency(ical.TransparencyTransparent)
		}
	}

	return cal.Serialize(), nil
}

func atClock(date time.Time, clock string) (time.Time, error) {
	if clock == "" {
		return date, nil
	}
	t, err := time.Parse(event.TimeLayout, clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
}
