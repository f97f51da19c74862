package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chatledger/backend/internal/api/handlers"
	"github.com/chatledger/backend/internal/auth"
	"github.com/chatledger/backend/internal/config"
	"github.com/chatledger/backend/internal/middleware"
	"github.com/chatledger/backend/internal/repository/postgres"
	"github.com/chatledger/backend/internal/services"
)

type Deps struct {
	Cfg        config.Config
	Repos      postgres.Repositories
	UserSvc    *services.UserService
	BalanceSvc *services.BalanceService
	QuerySvc   *services.QueryService
	TM         *auth.TokenManager
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("OK")) })
	r.Handle("/metrics", promhttp.Handler())

	balanceH := &handlers.BalanceHandler{
		Query:               d.QuerySvc,
		Balance:             d.BalanceSvc,
		Users:               d.Repos.Users,
		CheckBalanceEnabled: d.Cfg.CheckBalance,
	}
	userH := &handlers.UserHandler{Users: d.UserSvc, Query: d.QuerySvc}
	statsH := &handlers.StatsHandler{Query: d.QuerySvc}
	authH := &handlers.AuthHandler{TM: d.TM, Users: d.UserSvc}
	txnH := &handlers.TransactionHandler{Transactions: d.Repos.Transactions}

	authMW := middleware.NewAuthMiddleware(d.TM)

	r.Route("/api", func(r chi.Router) {
		r.Get("/check-balance", balanceH.CheckBalance)
		r.Get("/user-conversations", userH.UserConversations)
		r.Post("/create-user", userH.CreateUser)
		r.Post("/add-balance", balanceH.AddBalance)
		r.Get("/user-stats", statsH.UserStats)

		r.Post("/auth/login", authH.Login)
		r.Post("/auth/refresh", authH.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(authMW.Auth)
			r.Get("/transactions", txnH.List)
		})
	})

	return r
}
