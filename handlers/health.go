// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/ecocondor/middleware"
	"github.com/danielhkuo/ecocondor/models"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Pinger reports whether the record store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store Pinger
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// Health handles GET /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := models.HealthResponse{
		Success:   true,
		Message:   "ECOCONDOR API funcionando correctamente",
		Version:   Version,
		Database:  "ok",
		Timestamp: time.Now().UTC(),
	}
	status := http.StatusOK

	if err := h.store.Ping(ctx); err != nil {
		slog.Error("health check failed", "error", err)
		resp.Success = false
		resp.Database = "unavailable"
		status = http.StatusServiceUnavailable
	}

	middleware.JSONResponse(w, status, resp)
}

// Root handles GET /
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.RootResponse{
		Name:        "ECOCONDOR API",
		Description: "Backend para plataforma de reciclaje",
		Endpoints: map[string]string{
			"health":    "/api/health",
			"auth":      "/api/auth",
			"recycling": "/api/recycling",
			"rewards":   "/api/rewards",
			"metrics":   "/metrics",
		},
	})
}
