package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dromero/financepro/internal/savings"
)

// SavingsHandler serves the savings goal.
type SavingsHandler struct {
	engine *savings.Engine
	log    zerolog.Logger
	now    func() time.Time
}

// NewSavingsHandler creates a savings handler.
func NewSavingsHandler(engine *savings.Engine, log zerolog.Logger) *SavingsHandler {
	return &SavingsHandler{engine: engine, log: log, now: time.Now}
}

// Get handles GET /api/savings: the derived balance against the goal
// plus the goal ETA projection.
func (h *SavingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, err := h.engine.Recalculate(); err != nil {
		h.log.Error().Err(err).Msg("failed to recalculate savings")
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     h.engine.Status(),
		"projection": h.engine.Project(h.now()),
	})
}

// Update handles PUT /api/savings: sets the goal and optionally
// overrides the derived current value.
func (h *SavingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Goal    decimal.Decimal  `json:"goal"`
		Current *decimal.Decimal `json:"current,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}
	if req.Goal.Sign() <= 0 {
		writeBadRequestMsg(w, "goal must be positive")
		return
	}

	if err := h.engine.UpdateGoal(req.Goal, req.Current); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.engine.Status())
}
