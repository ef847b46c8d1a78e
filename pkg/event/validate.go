package event

import (
	"regexp"
	"strings"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// Validate runs all structural checks on a candidate event and returns every
// failure message in check order. It never stops at the first failure; an
// empty result means the candidate is valid.
func Validate(e Event) []string {
	var errs []string

	if strings.TrimSpace(e.Title) == "" {
		errs = append(errs, "Title is required")
	}

	startValid := isCalendarDate(e.StartDate)
	if !startValid {
		errs = append(errs, "Start date must be in YYYY-MM-DD format")
	}

	endValid := true
	if e.EndDate != "" {
		endValid = isCalendarDate(e.EndDate)
		if !endValid {
			errs = append(errs, "End date must be in YYYY-MM-DD format")
		}
		if startValid && endValid && e.EndDate < e.StartDate {
			errs = append(errs, "End date must be on or after start date")
		}
	}

	if !e.AllDay {
		if e.StartTime != "" && !timePattern.MatchString(e.StartTime) {
			errs = append(errs, "Start time must be in HH:MM format")
		}
		if e.EndTime != "" && !timePattern.MatchString(e.EndTime) {
			errs = append(errs, "End time must be in HH:MM format")
		}
	}

	return errs
}

// isCalendarDate checks both the canonical form and that the date actually
// exists (2026-02-31 has the right shape but is not a calendar date).
func isCalendarDate(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	_, err := parseDate(s)
	return err == nil
}
