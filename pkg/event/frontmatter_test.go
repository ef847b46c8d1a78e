package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrontmatter(t *testing.T) {
	testCases := []struct {
		name       string
		text       string
		wantFields map[string]any
		wantBody   string
	}{
		{
			name: "full document",
			text: "---\n" +
				"id: \"abc-123\"\n" +
				"title: \"Team Meeting\"\n" +
				"startDate: \"2026-01-15\"\n" +
				"allDay: true\n" +
				"recurrenceInterval: 2\n" +
				"---\n" +
				"\n" +
				"Agenda in *markdown*.\n",
			wantFields: map[string]any{
				"id":                 "abc-123",
				"title":              "Team Meeting",
				"startDate":          "2026-01-15",
				"allDay":             true,
				"recurrenceInterval": 2,
			},
			wantBody: "Agenda in *markdown*.",
		},
		{
			name:       "no frontmatter falls back to body",
			text:       "Just some notes.\nSecond line.",
			wantFields: map[string]any{},
			wantBody:   "Just some notes.\nSecond line.",
		},
		{
			name:       "unterminated frontmatter falls back to body",
			text:       "---\ntitle: \"Broken\"\nno closing delimiter",
			wantFields: map[string]any{},
			wantBody:   "---\ntitle: \"Broken\"\nno closing delimiter",
		},
		{
			name:       "single quotes stripped",
			text:       "---\ntitle: 'Quoted'\n---\n\nbody",
			wantFields: map[string]any{"title": "Quoted"},
			wantBody:   "body",
		},
		{
			name:       "escaped double quotes restored",
			text:       "---\ntitle: \"Say \\\"hi\\\"\"\n---\n\n",
			wantFields: map[string]any{"title": `Say "hi"`},
			wantBody:   "",
		},
		{
			name:       "value with colon splits on first colon only",
			text:       "---\nstartTime: \"10:30\"\n---\n\n",
			wantFields: map[string]any{"startTime": "10:30"},
			wantBody:   "",
		},
		{
			name:       "bare booleans and integers coerced",
			text:       "---\nallDay: false\nrecurrenceInterval: 3\n---\n\n",
			wantFields: map[string]any{"allDay": false, "recurrenceInterval": 3},
			wantBody:   "",
		},
		{
			name:       "unknown keys preserved",
			text:       "---\nstartDate: \"2026-01-01\"\ncustomField: \"kept\"\n---\n\n",
			wantFields: map[string]any{"startDate": "2026-01-01", "customField": "kept"},
			wantBody:   "",
		},
		{
			name:       "empty text",
			text:       "",
			wantFields: map[string]any{},
			wantBody:   "",
		},
		{
			name:       "windows line endings",
			text:       "---\r\ntitle: \"CRLF\"\r\n---\r\n\r\nbody\r\n",
			wantFields: map[string]any{"title": "CRLF"},
			wantBody:   "body",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fields, body := ParseFrontmatter(tc.text)
			assert.Equal(t, tc.wantFields, fields)
			assert.Equal(t, tc.wantBody, body)
		})
	}
}

func TestSerialize(t *testing.T) {
	t.Run("all-day single-day event omits endDate and times", func(t *testing.T) {
		e := Event{
			ID:        "abc",
			Title:     "Team Meeting",
			StartDate: "2026-01-15",
			EndDate:   "2026-01-15",
			AllDay:    true,
			Color:     "#3b82f6",
			Type:      TypePersonal,
			Description: "Notes here",
		}
		want := "---\n" +
			"id: \"abc\"\n" +
			"title: \"Team Meeting\"\n" +
			"startDate: \"2026-01-15\"\n" +
			"allDay: true\n" +
			"color: \"#3b82f6\"\n" +
			"type: \"personal\"\n" +
			"---\n" +
			"\n" +
			"Notes here\n"
		assert.Equal(t, want, Serialize(e))
	})

	t.Run("timed multi-day recurring event emits every field", func(t *testing.T) {
		e := Event{
			ID:                 "abc",
			Title:              "Standup",
			StartDate:          "2026-01-05",
			EndDate:            "2026-01-06",
			StartTime:          "09:00",
			EndTime:            "09:15",
			AllDay:             false,
			Color:              "#8b5cf6",
			Type:               TypeWork,
			Recurrence:         RecurrenceWeekly,
			RecurrenceEnd:      "2026-06-01",
			RecurrenceInterval: 2,
		}
		got := Serialize(e)
		assert.Contains(t, got, "endDate: \"2026-01-06\"\n")
		assert.Contains(t, got, "allDay: false\n")
		assert.Contains(t, got, "startTime: \"09:00\"\n")
		assert.Contains(t, got, "endTime: \"09:15\"\n")
		assert.Contains(t, got, "recurrence: \"weekly\"\n")
		assert.Contains(t, got, "recurrenceEnd: \"2026-06-01\"\n")
		assert.Contains(t, got, "recurrenceInterval: 2\n")
	})

	t.Run("embedded double quotes escaped", func(t *testing.T) {
		e := Event{ID: "abc", Title: `Say "hi"`, StartDate: "2026-01-01", AllDay: true, Color: "#3b82f6", Type: TypeOther}
		assert.Contains(t, Serialize(e), "title: \"Say \\\"hi\\\"\"\n")
	})

	t.Run("interval of one is omitted", func(t *testing.T) {
		e := Event{
			ID: "abc", Title: "Daily", StartDate: "2026-01-01", AllDay: true,
			Color: "#3b82f6", Type: TypePersonal,
			Recurrence: RecurrenceDaily, RecurrenceInterval: 1,
		}
		assert.NotContains(t, Serialize(e), "recurrenceInterval")
	})
}

func TestRoundTrip(t *testing.T) {
	events := []Event{
		{
			ID:          "11111111-2222-3333-4444-555555555555",
			Title:       "Lunch \"med\" teamet",
			StartDate:   "2026-01-15",
			EndDate:     "2026-01-17",
			StartTime:   "12:00",
			EndTime:     "13:00",
			AllDay:      false,
			Color:       "#8b5cf6",
			Type:        TypeWork,
			Recurrence:  RecurrenceNone,
			RecurrenceInterval: 1,
			Description: "Boka bord.\n\nMer *text*.",
		},
		{
			ID:                 "aaaa",
			Title:              "Veckomöte",
			StartDate:          "2026-01-05",
			EndDate:            "2026-01-05",
			AllDay:             true,
			Color:              "#3b82f6",
			Type:               TypePersonal,
			Recurrence:         RecurrenceWeekly,
			RecurrenceEnd:      "2026-06-01",
			RecurrenceInterval: 2,
		},
	}

	for _, original := range events {
		t.Run(original.Title, func(t *testing.T) {
			fields, body := ParseFrontmatter(Serialize(original))
			decoded, ok := Decode(fields, body)
			require.True(t, ok)
			assert.Equal(t, original, decoded)
		})
	}
}

func TestDecode(t *testing.T) {
	t.Run("missing startDate is discarded", func(t *testing.T) {
		_, ok := Decode(map[string]any{"title": "No date"}, "")
		assert.False(t, ok)
	})

	t.Run("explicit allDay false without times stays timed", func(t *testing.T) {
		e, ok := Decode(map[string]any{"startDate": "2026-01-01", "allDay": false}, "")
		require.True(t, ok)
		assert.False(t, e.AllDay)
		assert.Empty(t, e.StartTime)
		assert.Empty(t, e.EndTime)
	})

	t.Run("startTime implies timed even when allDay true", func(t *testing.T) {
		e, ok := Decode(map[string]any{"startDate": "2026-01-01", "allDay": true, "startTime": "10:00"}, "")
		require.True(t, ok)
		assert.False(t, e.AllDay)
		assert.Equal(t, "10:00", e.StartTime)
	})

	t.Run("defaults applied", func(t *testing.T) {
		e, ok := Decode(map[string]any{"startDate": "2026-01-01"}, "")
		require.True(t, ok)
		assert.Equal(t, "Untitled", e.Title)
		assert.Equal(t, "2026-01-01", e.EndDate)
		assert.True(t, e.AllDay)
		assert.Equal(t, TypePersonal, e.Type)
		assert.Equal(t, RecurrenceNone, e.Recurrence)
		assert.Equal(t, 1, e.RecurrenceInterval)
		assert.NotEmpty(t, e.ID)
		assert.NotEmpty(t, e.Color)
	})
}
