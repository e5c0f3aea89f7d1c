package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/mateoAlonso06/core-banking-api-sub001/internal/adapter/http/handler"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/adapter/http/middleware"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler     *handler.AccountHandler
	TransferHandler    *handler.TransferHandler
	TransactionHandler *handler.TransactionHandler
	HoldHandler        *handler.HoldHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	IdempotencyTTL     time.Duration
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	logging := middleware.NewLoggingMiddleware(cfg.Logger)

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(logging.Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	// Prometheus scrape endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Open)
			r.Get("/number/{number}", cfg.AccountHandler.GetByNumber)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Post("/{id}/freeze", cfg.AccountHandler.Freeze)
			r.Post("/{id}/unfreeze", cfg.AccountHandler.Unfreeze)
			r.Post("/{id}/close", cfg.AccountHandler.Close)
			r.Get("/{id}/transactions", cfg.TransactionHandler.ListByAccount)
			r.Get("/{id}/transfers", cfg.TransferHandler.ListByAccount)
			r.Get("/{id}/holds", cfg.HoldHandler.ListByAccount)
			r.Post("/{id}/holds", cfg.HoldHandler.Place)

			// Deposits and withdrawals replay through Redis; transfers
			// rely on the idempotency key column instead.
			r.Group(func(r chi.Router) {
				if cfg.IdempotencyStore != nil {
					idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
					r.Use(idempotencyMiddleware.Wrap)
				}

				r.Post("/{id}/deposits", cfg.TransferHandler.Deposit)
				r.Post("/{id}/withdrawals", cfg.TransferHandler.Withdraw)
			})
		})

		// Customers
		r.Get("/customers/{customerID}/accounts", cfg.AccountHandler.ListByCustomer)

		// Transfers
		r.Route("/transfers", func(r chi.Router) {
			r.Post("/", cfg.TransferHandler.Execute)
			r.Get("/{id}", cfg.TransferHandler.Get)
			r.Post("/{id}/reverse", cfg.TransferHandler.Reverse)
		})

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Get("/reference/{reference}", cfg.TransactionHandler.GetByReference)
			r.Get("/{id}", cfg.TransactionHandler.Get)
		})

		// Holds
		r.Route("/holds", func(r chi.Router) {
			r.Post("/{id}/release", cfg.HoldHandler.Release)
			r.Post("/{id}/capture", cfg.HoldHandler.Capture)
		})
	})

	return r
}
