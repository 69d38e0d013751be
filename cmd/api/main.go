package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/folio/internal/config"
	"github.com/MrJamesThe3rd/folio/internal/database"
	"github.com/MrJamesThe3rd/folio/internal/export"
	"github.com/MrJamesThe3rd/folio/internal/holding"
	holdingStore "github.com/MrJamesThe3rd/folio/internal/holding/store"
	folioHttp "github.com/MrJamesThe3rd/folio/internal/http"
	cashHandler "github.com/MrJamesThe3rd/folio/internal/http/cash"
	exportHandler "github.com/MrJamesThe3rd/folio/internal/http/export"
	holdingHandler "github.com/MrJamesThe3rd/folio/internal/http/holding"
	importHandler "github.com/MrJamesThe3rd/folio/internal/http/importcsv"
	performanceHandler "github.com/MrJamesThe3rd/folio/internal/http/performance"
	priceHandler "github.com/MrJamesThe3rd/folio/internal/http/price"
	symbolHandler "github.com/MrJamesThe3rd/folio/internal/http/symbol"
	txHandler "github.com/MrJamesThe3rd/folio/internal/http/transaction"
	"github.com/MrJamesThe3rd/folio/internal/importer"
	"github.com/MrJamesThe3rd/folio/internal/importer/tradebook"
	"github.com/MrJamesThe3rd/folio/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/folio/internal/ledger/store"
	"github.com/MrJamesThe3rd/folio/internal/logger"
	"github.com/MrJamesThe3rd/folio/internal/performance"
	performanceStore "github.com/MrJamesThe3rd/folio/internal/performance/store"
	"github.com/MrJamesThe3rd/folio/internal/portfolio"
	portfolioStore "github.com/MrJamesThe3rd/folio/internal/portfolio/store"
	"github.com/MrJamesThe3rd/folio/internal/pricing"
	pricingStore "github.com/MrJamesThe3rd/folio/internal/pricing/store"
	"github.com/MrJamesThe3rd/folio/internal/symbolmap"
	symbolStore "github.com/MrJamesThe3rd/folio/internal/symbolmap/store"
	"github.com/MrJamesThe3rd/folio/internal/transaction"
	txStore "github.com/MrJamesThe3rd/folio/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.New(os.Stdout, cfg.Log.Level)

	if cfg.Auth.Secret == "" {
		slog.Error("AUTH_SECRET is required")
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := database.Migrate(db); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	var (
		transactionService = transaction.NewService(txStore.New(db))
		holdingService     = holding.NewService(holdingStore.New(db))
		ledgerService      = ledger.NewService(ledgerStore.New(db))
		priceService       = pricing.NewCachedService(pricing.NewService(pricingStore.New(db)), cfg.Prices.CacheTTL, cfg.Prices.ProvisionalTTL)
		portfolioService   = portfolio.NewService(portfolioStore.New(db))
		performanceService = performance.NewService(performanceStore.New(db), priceService)
		symbolService      = symbolmap.NewService(symbolStore.New(db))
		exportService      = export.NewService(holdingService, transactionService, priceService)
		importService      = importer.NewService(tradebook.NewParser(), holdingService, symbolService, transactionService, portfolioService)
	)

	handlers := folioHttp.Handlers{
		Holdings:     holdingHandler.NewHandler(holdingService, portfolioService),
		Transactions: txHandler.NewHandler(transactionService, holdingService, portfolioService),
		Cash:         cashHandler.NewHandler(ledgerService, performanceService),
		Performance:  performanceHandler.NewHandler(performanceService),
		Prices:       priceHandler.NewHandler(priceService),
		Import:       importHandler.NewHandler(importService),
		Symbols:      symbolHandler.NewHandler(symbolService),
		Export:       exportHandler.NewHandler(exportService),
	}

	router := folioHttp.New(handlers, folioHttp.Options{
		AuthSecret:  []byte(cfg.Auth.Secret),
		CORSOrigins: cfg.Server.CORSOrigins,
		Timeout:     cfg.Server.Timeout,
		RateLimit:   cfg.Server.RateLimit,
		RateBurst:   cfg.Server.RateBurst,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("starting server", "addr", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shut down server", "error", err)
	}
}
