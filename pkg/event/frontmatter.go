package event

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// The on-disk format is one event per markdown file: a frontmatter block of
// "key: value" lines between two "---" delimiter lines, a blank line, then
// the free-text description body.

const frontmatterDelimiter = "---"

var integerPattern = regexp.MustCompile(`^\d+$`)

// ParseFrontmatter splits a document into its metadata fields and body.
// Values are coerced: one layer of matching quotes is stripped (the value then
// stays a string), bare "true"/"false" become booleans, bare digit runs become
// integers. Text that does not carry a frontmatter block yields empty fields
// and the whole text as body; this function never fails.
func ParseFrontmatter(text string) (map[string]any, string) {
	fields := map[string]any{}
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(normalized, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != frontmatterDelimiter {
		return fields, strings.TrimSpace(normalized)
	}
	closing := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontmatterDelimiter {
			closing = i
			break
		}
	}
	if closing < 0 {
		return fields, strings.TrimSpace(normalized)
	}
	for _, line := range lines[1:closing] {
		key, rawValue, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		fields[key] = coerceValue(strings.TrimSpace(rawValue))
	}
	body := strings.TrimSpace(strings.Join(lines[closing+1:], "\n"))
	return fields, body
}

func coerceValue(value string) any {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			inner := value[1 : len(value)-1]
			if first == '"' {
				inner = strings.ReplaceAll(inner, `\"`, `"`)
			}
			return inner
		}
	}
	switch value {
	case "true":
		return true
	case "false":
		return false
	}
	if integerPattern.MatchString(value) {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return value
}

// Serialize renders an event into its on-disk document form. Field order is
// fixed; fields equal to their load-time default are omitted so that
// Parse(Serialize(e)) plus default application reconstructs e exactly.
func Serialize(e Event) string {
	var b strings.Builder
	writeString := func(key, value string) {
		escaped := strings.ReplaceAll(value, `"`, `\"`)
		fmt.Fprintf(&b, "%s: \"%s\"\n", key, escaped)
	}
	b.WriteString(frontmatterDelimiter + "\n")
	writeString("id", e.ID)
	writeString("title", e.Title)
	writeString("startDate", e.StartDate)
	if e.EndDate != "" && e.EndDate != e.StartDate {
		writeString("endDate", e.EndDate)
	}
	fmt.Fprintf(&b, "allDay: %t\n", e.AllDay)
	if !e.AllDay {
		if e.StartTime != "" {
			writeString("startTime", e.StartTime)
		}
		if e.EndTime != "" {
			writeString("endTime", e.EndTime)
		}
	}
	writeString("color", e.Color)
	writeString("type", string(e.Type))
	if e.Recurring() {
		writeString("recurrence", string(e.Recurrence))
		if e.RecurrenceEnd != "" {
			writeString("recurrenceEnd", e.RecurrenceEnd)
		}
		if e.RecurrenceInterval > 1 {
			fmt.Fprintf(&b, "recurrenceInterval: %d\n", e.RecurrenceInterval)
		}
	}
	b.WriteString(frontmatterDelimiter + "\n\n")
	if e.Description != "" {
		b.WriteString(e.Description)
		b.WriteString("\n")
	}
	return b.String()
}

// Decode reconstructs an event from parsed frontmatter fields and body,
// applying the load-time defaults. It reports false when the fields lack a
// startDate, which marks the document as not an event.
func Decode(fields map[string]any, body string) (Event, bool) {
	startDate := stringField(fields, "startDate")
	if startDate == "" {
		return Event{}, false
	}
	e := Event{
		ID:            stringField(fields, "id"),
		Title:         stringField(fields, "title"),
		StartDate:     startDate,
		EndDate:       stringField(fields, "endDate"),
		StartTime:     stringField(fields, "startTime"),
		EndTime:       stringField(fields, "endTime"),
		Color:         stringField(fields, "color"),
		Type:          Type(stringField(fields, "type")),
		Recurrence:    Recurrence(stringField(fields, "recurrence")),
		RecurrenceEnd: stringField(fields, "recurrenceEnd"),
		Description:   body,
	}
	if n, ok := fields["recurrenceInterval"].(int); ok {
		e.RecurrenceInterval = n
	}
	// An event is all-day unless allDay is explicitly false or a start time
	// is present. An explicit "allDay: false" without times stays timed with
	// empty time fields.
	e.AllDay = stringField(fields, "startTime") == ""
	if explicit, ok := fields["allDay"].(bool); ok && !explicit {
		e.AllDay = false
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
		log.Debugf("event file without id, assigned %s", e.ID)
	}
	applyDefaults(&e)
	return e, true
}

func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	}
	return ""
}
