package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dromero/financepro/internal/domain"
	"github.com/dromero/financepro/internal/ledger"
	"github.com/dromero/financepro/internal/savings"
)

// TransactionsHandler serves the general ledger.
type TransactionsHandler struct {
	store   *ledger.Store
	savings *savings.Engine
	log     zerolog.Logger
}

// NewTransactionsHandler creates a transactions handler.
func NewTransactionsHandler(store *ledger.Store, savingsEngine *savings.Engine, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{store: store, savings: savingsEngine, log: log}
}

// List handles GET /api/transactions with optional search, category,
// type, status and date-range filters.
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := strings.ToLower(strings.TrimSpace(q.Get("search")))
	category := q.Get("category")
	typ := q.Get("type")
	status := q.Get("status")

	var from, to *domain.Date
	if s := q.Get("from"); s != "" {
		d, err := domain.ParseDate(s)
		if err != nil {
			writeBadRequest(w, err)
			return
		}
		from = &d
	}
	if s := q.Get("to"); s != "" {
		d, err := domain.ParseDate(s)
		if err != nil {
			writeBadRequest(w, err)
			return
		}
		to = &d
	}

	var result []domain.Transaction
	for _, t := range h.store.Transactions() {
		if search != "" && !strings.Contains(strings.ToLower(t.Name), search) &&
			!strings.Contains(strings.ToLower(t.Category), search) {
			continue
		}
		if category != "" && t.Category != category {
			continue
		}
		if typ != "" && string(t.Type) != typ {
			continue
		}
		if status != "" && string(t.Status) != status {
			continue
		}
		if from != nil && t.Date.Before(from.Time) {
			continue
		}
		if to != nil && t.Date.After(to.Time) {
			continue
		}
		result = append(result, t)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": result,
		"count":        len(result),
	})
}

// Create handles POST /api/transactions.
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.Transaction
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadRequest(w, err)
		return
	}
	if input.Name == "" {
		writeBadRequestMsg(w, "name is required")
		return
	}

	created, err := h.store.AddTransaction(input)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	h.recalcSavings()
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/transactions/{id}.
func (h *TransactionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeBadRequestMsg(w, "invalid transaction id")
		return
	}
	var input domain.Transaction
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadRequest(w, err)
		return
	}
	input.ID = id

	updated, err := h.store.UpdateTransaction(input)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	h.recalcSavings()
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/transactions/{id}.
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeBadRequestMsg(w, "invalid transaction id")
		return
	}
	if err := h.store.DeleteTransaction(id); err != nil {
		writeEngineError(w, err)
		return
	}
	h.recalcSavings()
	w.WriteHeader(http.StatusNoContent)
}

// recalcSavings keeps the derived savings balance in sync after every
// ledger mutation, mirroring the recompute-then-persist flow.
func (h *TransactionsHandler) recalcSavings() {
	if _, err := h.savings.Recalculate(); err != nil {
		h.log.Error().Err(err).Msg("failed to recalculate savings")
	}
}
