package export

import (
	"net/http"

	"github.com/almanak/almanak/internal/utils"
	"github.com/almanak/almanak/pkg/event"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	events *event.Service
	clock  utils.Clock
}

func NewHandler(events *event.Service, clock utils.Clock) *Handler {
	return &Handler{events: events, clock: clock}
}

// GetCalendar streams the visible events of a date range as text/calendar.
// Without explicit bounds it covers one month back and one year ahead.
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	now := h.clock.Now()
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" {
		from = now.AddDate(0, -1, 0).Format(event.DateLayout)
	}
	if to == "" {
		to = now.AddDate(1, 0, 0).Format(event.DateLayout)
	}

	events, err := h.events.GetRange(from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	feed, err := Render(events)
	if err != nil {
		log.Errorf("calendar export failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="almanak.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(feed)); err != nil {
		log.Errorf("failed to write calendar export: %v", err)
	}
}
