// Package api assembles the HTTP presentation layer.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/dromero/financepro/internal/accounts"
	"github.com/dromero/financepro/internal/api/handlers"
	"github.com/dromero/financepro/internal/api/middleware"
	"github.com/dromero/financepro/internal/bills"
	"github.com/dromero/financepro/internal/ledger"
	"github.com/dromero/financepro/internal/notify"
	"github.com/dromero/financepro/internal/savings"
)

// Deps carries the engines the router exposes.
type Deps struct {
	Store    *ledger.Store
	Accounts *accounts.Engine
	Bills    *bills.Engine
	Savings  *savings.Engine
	Center   *notify.Center
	Log      zerolog.Logger
}

// NewRouter wires every endpoint of the presentation layer.
func NewRouter(deps Deps) *chi.Mux {
	transactionsHandler := handlers.NewTransactionsHandler(deps.Store, deps.Savings, deps.Log)
	accountsHandler := handlers.NewAccountsHandler(deps.Accounts, deps.Log)
	billsHandler := handlers.NewBillsHandler(deps.Bills, deps.Log)
	savingsHandler := handlers.NewSavingsHandler(deps.Savings, deps.Log)
	notificationsHandler := handlers.NewNotificationsHandler(deps.Center, deps.Log)
	dashboardHandler := handlers.NewDashboardHandler(deps.Store, deps.Accounts, deps.Bills, deps.Savings, deps.Log)

	r := chi.NewRouter()
	r.Use(middleware.Recovery(deps.Log))
	r.Use(middleware.RequestID(deps.Log))
	r.Use(middleware.Logger(deps.Log))
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", dashboardHandler.Summary)

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", transactionsHandler.List)
			r.Post("/", transactionsHandler.Create)
			r.Put("/{id}", transactionsHandler.Update)
			r.Delete("/{id}", transactionsHandler.Delete)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", accountsHandler.List)
			r.Post("/", accountsHandler.Create)
			r.Get("/totals", accountsHandler.Totals)
			r.Put("/{id}", accountsHandler.Update)
			r.Delete("/{id}", accountsHandler.Delete)
			r.Post("/{id}/main", accountsHandler.SetMain)
			r.Get("/{id}/transactions", accountsHandler.History)
		})
		r.Post("/transfers", accountsHandler.Transfer)

		r.Route("/account-transactions", func(r chi.Router) {
			r.Post("/", accountsHandler.CreateTransaction)
			r.Put("/{id}", accountsHandler.UpdateTransaction)
			r.Delete("/{id}", accountsHandler.DeleteTransaction)
		})

		r.Route("/bills", func(r chi.Router) {
			r.Get("/upcoming", billsHandler.Upcoming)
			r.Get("/report", billsHandler.Report)
			r.Post("/pay", billsHandler.Pay)
		})

		r.Route("/savings", func(r chi.Router) {
			r.Get("/", savingsHandler.Get)
			r.Put("/", savingsHandler.Update)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", notificationsHandler.List)
			r.Post("/read-all", notificationsHandler.MarkAllRead)
			r.Post("/{id}/read", notificationsHandler.MarkRead)
		})
	})

	return r
}
