package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/mateoAlonso06/core-banking-api-sub001/internal/adapter/http"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/adapter/http/handler"
	postgresRepo "github.com/mateoAlonso06/core-banking-api-sub001/internal/adapter/repository/postgres"
	redisRepo "github.com/mateoAlonso06/core-banking-api-sub001/internal/adapter/repository/redis"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/domain"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/infrastructure/config"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/infrastructure/logger"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/infrastructure/metrics"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/infrastructure/postgres"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/infrastructure/redis"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	appMetrics := metrics.New()

	// Repositories and generators
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	transferRepo := postgresRepo.NewTransferRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	holdRepo := postgresRepo.NewHoldRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	refGen := postgresRepo.NewReferenceGenerator()

	numbers := domain.NewAccountNumberGenerator(rand.NewSource(accountNumberSeed(cfg)))
	ledger := domain.NewLedgerService(idGen, refGen)

	// Use cases
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, numbers, idGen, appMetrics)
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, transferRepo, transactionRepo, ledger, cache, appMetrics)
	holdUC := usecase.NewHoldUseCase(txManager, accountRepo, holdRepo, transactionRepo, ledger, idGen, appMetrics)
	statementUC := usecase.NewStatementUseCase(transactionRepo)

	// Handlers
	accountHandler := handler.NewAccountHandler(accountUC)
	transferHandler := handler.NewTransferHandler(transferUC)
	transactionHandler := handler.NewTransactionHandler(statementUC)
	holdHandler := handler.NewHoldHandler(holdUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     accountHandler,
		TransferHandler:    transferHandler,
		TransactionHandler: transactionHandler,
		HoldHandler:        holdHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		Logger:             appLogger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// accountNumberSeed picks the configured seed, or derives one from the
// clock when unset.
func accountNumberSeed(cfg *config.Config) int64 {
	if cfg.AccountNumberSeed != 0 {
		return cfg.AccountNumberSeed
	}

	return time.Now().UnixNano()
}
