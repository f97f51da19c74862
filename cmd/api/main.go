package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chatledger/backend/internal/api"
	"github.com/chatledger/backend/internal/auth"
	"github.com/chatledger/backend/internal/config"
	"github.com/chatledger/backend/internal/db"
	"github.com/chatledger/backend/internal/logger"
	"github.com/chatledger/backend/internal/metrics"
	"github.com/chatledger/backend/internal/middleware"
	"github.com/chatledger/backend/internal/repository/postgres"
	"github.com/chatledger/backend/internal/services"
	"github.com/chatledger/backend/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if config.IsEnabled(os.Getenv("APP_MIGRATE")) {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	userSvc := services.NewUserService(repos.Users)
	balanceSvc := services.NewBalanceService(repos.Transactions, repos.Balances, repos.AuditLogs, wp)
	querySvc := services.NewQueryService(repos.Users, repos.Balances, repos.Conversations, repos.Messages, repos.Stats, cfg.CheckBalance)
	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, 15*time.Minute, 7*24*time.Hour)

	metrics.Init()
	middleware.RegisterHTTPMetrics()

	r := api.NewRouter(api.Deps{
		Cfg:        cfg,
		Repos:      repos,
		UserSvc:    userSvc,
		BalanceSvc: balanceSvc,
		QuerySvc:   querySvc,
		TM:         tm,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "check_balance", cfg.CheckBalance)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
