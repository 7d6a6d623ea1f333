// Package handlers implements the HTTP presentation layer: thin JSON
// adapters over the engines. No business rule lives here.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dromero/financepro/internal/accounts"
	"github.com/dromero/financepro/internal/api/middleware"
	"github.com/dromero/financepro/internal/ledger"
)

// writeJSON and the error helpers delegate to the middleware package so
// every handler responds with the same shape.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	middleware.WriteJSON(w, status, data)
}

func writeBadRequest(w http.ResponseWriter, err error) {
	middleware.WriteError(w, http.StatusBadRequest, err.Error())
}

func writeBadRequestMsg(w http.ResponseWriter, msg string) {
	middleware.WriteError(w, http.StatusBadRequest, msg)
}

// idParam parses a uint64 chi URL parameter.
func idParam(r *http.Request, name string) (uint64, error) {
	return strconv.ParseUint(chi.URLParam(r, name), 10, 64)
}

// writeEngineError maps engine errors onto HTTP statuses: validation
// failures are 400, missing entities 404, referential refusals 409.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accounts.ErrNameRequired),
		errors.Is(err, accounts.ErrInvalidAccountType),
		errors.Is(err, accounts.ErrInvalidAmount),
		errors.Is(err, accounts.ErrSameAccount):
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, accounts.ErrAccountNotFound),
		errors.Is(err, ledger.ErrTransactionNotFound):
		middleware.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, accounts.ErrAccountHasTransactions):
		middleware.WriteError(w, http.StatusConflict, err.Error())
	default:
		middleware.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
