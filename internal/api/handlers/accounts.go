package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dromero/financepro/internal/accounts"
	"github.com/dromero/financepro/internal/domain"
)

// AccountsHandler serves accounts and the per-account ledger.
type AccountsHandler struct {
	engine *accounts.Engine
	log    zerolog.Logger
}

// NewAccountsHandler creates an accounts handler.
func NewAccountsHandler(engine *accounts.Engine, log zerolog.Logger) *AccountsHandler {
	return &AccountsHandler{engine: engine, log: log}
}

// List handles GET /api/accounts.
func (h *AccountsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"accounts":         h.engine.Accounts(),
		"currentAccountId": h.engine.CurrentAccountID(),
		"accountTypes":     domain.AccountTypes,
	})
}

// Create handles POST /api/accounts.
func (h *AccountsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input accounts.AccountInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadRequest(w, err)
		return
	}
	created, err := h.engine.AddAccount(input)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/accounts/{id}.
func (h *AccountsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeBadRequestMsg(w, "invalid account id")
		return
	}
	var input accounts.AccountInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadRequest(w, err)
		return
	}
	input.ID = id

	updated, err := h.engine.UpdateAccount(input)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/accounts/{id}.
func (h *AccountsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeBadRequestMsg(w, "invalid account id")
		return
	}
	if err := h.engine.DeleteAccount(id); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetMain handles POST /api/accounts/{id}/main.
func (h *AccountsHandler) SetMain(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeBadRequestMsg(w, "invalid account id")
		return
	}
	if err := h.engine.SetMainAccount(id); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Totals handles GET /api/accounts/totals.
func (h *AccountsHandler) Totals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Totals())
}

// History handles GET /api/accounts/{id}/transactions with optional
// from/to/limit query parameters.
func (h *AccountsHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeBadRequestMsg(w, "invalid account id")
		return
	}

	q := r.URL.Query()
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
	limit := 0
	if s := q.Get("limit"); s != "" {
		limit, err = strconv.Atoi(s)
		if err != nil || limit < 0 {
			writeBadRequestMsg(w, "invalid limit")
			return
		}
	}

	history := h.engine.History(id, from, to, limit)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": history,
		"count":        len(history),
	})
}

// Transfer handles POST /api/transfers.
func (h *AccountsHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FromAccountID uint64          `json:"fromAccountId"`
		ToAccountID   uint64          `json:"toAccountId"`
		Amount        decimal.Decimal `json:"amount"`
		Description   string          `json:"description"`
		Date          domain.Date     `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}

	if err := h.engine.Transfer(req.FromAccountID, req.ToAccountID, req.Amount, req.Description, req.Date); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateTransaction handles POST /api/account-transactions.
func (h *AccountsHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var input accounts.AccountTransactionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadRequest(w, err)
		return
	}
	created, err := h.engine.AddAccountTransaction(input)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateTransaction handles PUT /api/account-transactions/{id}.
func (h *AccountsHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeBadRequestMsg(w, "invalid transaction id")
		return
	}
	var input accounts.AccountTransactionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadRequest(w, err)
		return
	}
	input.ID = id

	updated, err := h.engine.UpdateAccountTransaction(input)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteTransaction handles DELETE /api/account-transactions/{id}.
func (h *AccountsHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeBadRequestMsg(w, "invalid transaction id")
		return
	}
	if err := h.engine.DeleteAccountTransaction(id); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
