package app

import (
	"github.com/almanak/almanak/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Events
	r.HandleFunc("/api/event", deps.EventHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/event/range", deps.EventHandler.GetRange).Queries("from", "{from}", "to", "{to}").Methods("GET")
	r.HandleFunc("/api/event", deps.EventHandler.Create).Methods("POST")
	r.HandleFunc("/api/event/reload", deps.EventHandler.Reload).Methods("POST")
	r.HandleFunc("/api/event/{eventId}", deps.EventHandler.Update).Methods("PUT")
	r.HandleFunc("/api/event/{eventId}", deps.EventHandler.Delete).Methods("DELETE")

	// Visibility filters
	r.HandleFunc("/api/filters", deps.EventHandler.GetFilters).Methods("GET")
	r.HandleFunc("/api/filters/type/{type}/toggle", deps.EventHandler.ToggleType).Methods("POST")
	r.HandleFunc("/api/filters/holidays/toggle", deps.EventHandler.ToggleHolidays).Methods("POST")

	// Holidays
	r.HandleFunc("/api/holiday", deps.HolidayHandler.GetYear).Methods("GET")

	// iCalendar export
	r.HandleFunc("/api/export/calendar.ics", deps.ExportHandler.GetCalendar).Methods("GET")
}
