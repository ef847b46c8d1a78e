package event

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/almanak/almanak/internal/rest"
	"github.com/almanak/almanak/pkg/filestore"
	"github.com/almanak/almanak/pkg/settings"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

// EventDTO is the JSON wire form of an event.
type EventDTO struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	StartDate          string `json:"startDate"`
	EndDate            string `json:"endDate,omitempty"`
	StartTime          string `json:"startTime,omitempty"`
	EndTime            string `json:"endTime,omitempty"`
	AllDay             bool   `json:"allDay"`
	Color              string `json:"color,omitempty"`
	Type               string `json:"type"`
	Recurrence         string `json:"recurrence,omitempty"`
	RecurrenceEnd      string `json:"recurrenceEnd,omitempty"`
	RecurrenceInterval int    `json:"recurrenceInterval,omitempty"`
	Description        string `json:"description,omitempty"`
	IsInstance         bool   `json:"isInstance,omitempty"`
	OriginalID         string `json:"originalId,omitempty"`
	IsHoliday          bool   `json:"isHoliday,omitempty"`
}

// PatchDTO is the JSON form of a partial update; absent fields stay
// untouched.
type PatchDTO struct {
	Title              *string `json:"title"`
	StartDate          *string `json:"startDate"`
	EndDate            *string `json:"endDate"`
	StartTime          *string `json:"startTime"`
	EndTime            *string `json:"endTime"`
	AllDay             *bool   `json:"allDay"`
	Color              *string `json:"color"`
	Type               *string `json:"type"`
	Recurrence         *string `json:"recurrence"`
	RecurrenceEnd      *string `json:"recurrenceEnd"`
	RecurrenceInterval *int    `json:"recurrenceInterval"`
	Description        *string `json:"description"`
}

type FiltersDTO struct {
	EnabledTypes map[string]bool `json:"enabledTypes"`
	ShowHolidays bool            `json:"showHolidays"`
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, eventsToDTOs(h.service.GetAll()))
}

func (h *Handler) GetRange(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	events, err := h.service.GetRange(from, to)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, rest.ErrorResponse{
			Error:   "Invalid date range",
			Details: "'from' and 'to' must be YYYY-MM-DD with from <= to",
		})
		return
	}
	writeJSON(w, http.StatusOK, eventsToDTOs(events))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto PatchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	candidate := dtoToPatch(dto).applyTo(Event{})
	if dto.AllDay == nil {
		candidate.AllDay = candidate.StartTime == ""
	}
	if validationErrs := Validate(candidate); len(validationErrs) > 0 {
		writeJSON(w, http.StatusBadRequest, rest.ValidationErrorResponse{
			Error:  "Validation failed",
			Errors: validationErrs,
		})
		return
	}
	created, err := h.service.Create(r.Context(), candidate)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, eventToDTO(created))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto PatchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if validationErrs := validatePatch(dto); len(validationErrs) > 0 {
		writeJSON(w, http.StatusBadRequest, rest.ValidationErrorResponse{
			Error:  "Validation failed",
			Errors: validationErrs,
		})
		return
	}
	updated, err := h.service.Update(r.Context(), mux.Vars(r)["eventId"], dtoToPatch(dto))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusNotFound, rest.ErrorResponse{Error: "Event not found"})
			return
		}
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eventToDTO(updated))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	removed, err := h.service.Delete(r.Context(), mux.Vars(r)["eventId"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.service.LoadAll(r.Context()); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eventsToDTOs(h.service.GetAll()))
}

func (h *Handler) GetFilters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, filtersToDTO(h.service.Filters()))
}

func (h *Handler) ToggleType(w http.ResponseWriter, r *http.Request) {
	eventType := Type(mux.Vars(r)["type"])
	if !validType(eventType) {
		writeJSON(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Unknown event type"})
		return
	}
	filters, err := h.service.ToggleType(r.Context(), eventType)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, filtersToDTO(filters))
}

func (h *Handler) ToggleHolidays(w http.ResponseWriter, r *http.Request) {
	filters, err := h.service.ToggleHolidays(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, filtersToDTO(filters))
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, filestore.ErrNoLocation) {
		writeJSON(w, http.StatusServiceUnavailable, rest.ErrorResponse{
			Error:   "Storage not configured",
			Details: err.Error(),
		})
		return
	}
	log.Errorf("event handler: %v", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// validatePatch checks only the fields the patch carries; the merged result
// keeps its invariants inside the service.
func validatePatch(dto PatchDTO) []string {
	candidate := Event{Title: "placeholder", StartDate: "2000-01-01", AllDay: true}
	if dto.Title != nil {
		candidate.Title = *dto.Title
	}
	if dto.StartDate != nil {
		candidate.StartDate = *dto.StartDate
	}
	if dto.EndDate != nil {
		candidate.EndDate = *dto.EndDate
	}
	if dto.AllDay != nil {
		candidate.AllDay = *dto.AllDay
	}
	if dto.StartTime != nil {
		candidate.StartTime = *dto.StartTime
		candidate.AllDay = false
	}
	if dto.EndTime != nil {
		candidate.EndTime = *dto.EndTime
		candidate.AllDay = false
	}
	// Date ordering can only be judged when the patch names both dates.
	if dto.EndDate != nil && dto.StartDate == nil {
		candidate.StartDate = *dto.EndDate
	}
	return Validate(candidate)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

func eventsToDTOs(events []Event) []EventDTO {
	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, eventToDTO(e))
	}
	return dtos
}

func eventToDTO(e Event) EventDTO {
	return EventDTO{
		ID:                 e.ID,
		Title:              e.Title,
		StartDate:          e.StartDate,
		EndDate:            e.EndDate,
		StartTime:          e.StartTime,
		EndTime:            e.EndTime,
		AllDay:             e.AllDay,
		Color:              e.Color,
		Type:               string(e.Type),
		Recurrence:         string(e.Recurrence),
		RecurrenceEnd:      e.RecurrenceEnd,
		RecurrenceInterval: e.RecurrenceInterval,
		Description:        e.Description,
		IsInstance:         e.IsInstance,
		OriginalID:         e.OriginalID,
		IsHoliday:          e.IsHoliday,
	}
}

func dtoToPatch(dto PatchDTO) Patch {
	patch := Patch{
		Title:              dto.Title,
		StartDate:          dto.StartDate,
		EndDate:            dto.EndDate,
		StartTime:          dto.StartTime,
		EndTime:            dto.EndTime,
		AllDay:             dto.AllDay,
		Color:              dto.Color,
		RecurrenceEnd:      dto.RecurrenceEnd,
		RecurrenceInterval: dto.RecurrenceInterval,
		Description:        dto.Description,
	}
	if dto.Type != nil {
		t := Type(*dto.Type)
		patch.Type = &t
	}
	if dto.Recurrence != nil {
		rec := Recurrence(*dto.Recurrence)
		patch.Recurrence = &rec
	}
	return patch
}

func filtersToDTO(f settings.Filters) FiltersDTO {
	enabled := make(map[string]bool, len(AllTypes))
	for _, t := range AllTypes {
		enabled[string(t)] = f.TypeEnabled(string(t))
	}
	return FiltersDTO{EnabledTypes: enabled, ShowHolidays: f.ShowHolidays}
}
