// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/ecocondor/auth"
	"github.com/danielhkuo/ecocondor/cliparse"
	"github.com/danielhkuo/ecocondor/handlers"
	"github.com/danielhkuo/ecocondor/metrics"
	"github.com/danielhkuo/ecocondor/middleware"
	"github.com/danielhkuo/ecocondor/profile"
	"github.com/danielhkuo/ecocondor/recycling"
	"github.com/danielhkuo/ecocondor/rewards"
	"github.com/danielhkuo/ecocondor/store"
)

func NewRouter(conn *sqlx.DB, verifier auth.Verifier, cfg cliparse.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.WithLogging)
	r.Use(middleware.Recover)
	r.Use(middleware.CORS)
	r.Use(metrics.InstrumentHandler)
	if cfg.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.RequestTimeout))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Endpoint no encontrado")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.ErrorResponse(w, http.StatusMethodNotAllowed, "Método no permitido")
	})

	// Initialize handlers
	s := store.New(conn)
	authHandler := handlers.NewAuthHandler(profile.NewManager(s))
	recyclingHandler := handlers.NewRecyclingHandler(recycling.NewLedger(s))
	rewardsHandler := handlers.NewRewardsHandler(rewards.NewEngine(s))
	healthHandler := handlers.NewHealthHandler(s)

	requireAuth := middleware.RequireAuth(verifier)

	r.Get("/", healthHandler.Root)
	r.Get("/api/health", healthHandler.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/profile", authHandler.GetProfile)
			r.Put("/profile", authHandler.UpdateProfile)
		})
	})

	r.Route("/api/recycling", func(r chi.Router) {
		r.Get("/materials", recyclingHandler.GetMaterials)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/register", recyclingHandler.RegisterActivity)
			r.Get("/history", recyclingHandler.GetHistory)
			r.Get("/stats", recyclingHandler.GetStats)
		})
	})

	r.Route("/api/rewards", func(r chi.Router) {
		r.Get("/", rewardsHandler.ListRewards)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/points", rewardsHandler.GetPoints)
			r.Post("/redeem", rewardsHandler.Redeem)
			r.Get("/my-redemptions", rewardsHandler.MyRedemptions)
		})
	})

	return r
}
