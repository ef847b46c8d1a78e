package holiday

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/almanak/almanak/internal/rest"
	"github.com/almanak/almanak/internal/utils"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	calculator *Calculator
	clock      utils.Clock
}

func NewHandler(c *Calculator, clock utils.Clock) *Handler {
	return &Handler{calculator: c, clock: clock}
}

// GetYear returns the holidays of the requested year, defaulting to the
// current one.
func (h *Handler) GetYear(w http.ResponseWriter, r *http.Request) {
	year := h.clock.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1583 || parsed > 9999 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			if err := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid year",
				Details: "'year' must be a Gregorian calendar year",
			}); err != nil {
				log.Errorf("failed to encode response: %v", err)
			}
			return
		}
		year = parsed
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(h.calculator.ForYear(year)); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}
