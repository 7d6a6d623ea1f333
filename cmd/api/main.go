package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dromero/financepro/internal/accounts"
	"github.com/dromero/financepro/internal/api"
	"github.com/dromero/financepro/internal/bills"
	"github.com/dromero/financepro/internal/config"
	"github.com/dromero/financepro/internal/ledger"
	"github.com/dromero/financepro/internal/logger"
	"github.com/dromero/financepro/internal/notify"
	"github.com/dromero/financepro/internal/savings"
	"github.com/dromero/financepro/internal/storage"
	"github.com/dromero/financepro/internal/storage/file"
	"github.com/dromero/financepro/internal/storage/memory"
)

func main() {
	cfg := config.Load()
	log := logger.New()

	var kv storage.KV
	if cfg.DataDir != "" {
		store, err := file.NewStore(cfg.DataDir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("Failed to open data directory")
		}
		kv = store
		log.Info().Str("dir", cfg.DataDir).Msg("Using file-backed storage")
	} else {
		kv = memory.NewStore()
		log.Warn().Msg("No data directory configured - state will not survive restarts")
	}

	center := notify.NewCenter(kv, log)
	if err := center.Load(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load notifications")
	}

	store := ledger.NewStore(kv, center, log)
	if err := store.Load(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load ledgers")
	}

	accountsEngine := accounts.NewEngine(kv, store, center, log)
	if err := accountsEngine.Load(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load accounts")
	}

	savingsEngine := savings.NewEngine(kv, store, center, log)
	if err := savingsEngine.Load(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load savings goal")
	}

	billsEngine := bills.NewEngine(store, center, log)

	router := api.NewRouter(api.Deps{
		Store:    store,
		Accounts: accountsEngine,
		Bills:    billsEngine,
		Savings:  savingsEngine,
		Center:   center,
		Log:      log,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
