// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/danielhkuo/ecocondor/middleware"
	"github.com/danielhkuo/ecocondor/models"
	"github.com/danielhkuo/ecocondor/recycling"
)

type RecyclingHandler struct {
	ledger *recycling.Ledger
}

func NewRecyclingHandler(ledger *recycling.Ledger) *RecyclingHandler {
	return &RecyclingHandler{ledger: ledger}
}

// RegisterActivity handles POST /api/recycling/register
func (h *RecyclingHandler) RegisterActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	var req models.RegisterActivityRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	activity, msg, err := h.ledger.Register(r.Context(), id.UID, req)
	if err != nil {
		writeError(w, r, err, "Error al registrar reciclaje")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.Response{
		Success: true,
		Message: msg,
		Data:    activity,
	})
}

// GetHistory handles GET /api/recycling/history?limit=N
func (h *RecyclingHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	// Unparseable limits fall back to the ledger default
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	activities, err := h.ledger.History(r.Context(), id.UID, limit)
	if err != nil {
		writeError(w, r, err, "Error al obtener historial")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.Response{Success: true, Data: activities})
}

// GetStats handles GET /api/recycling/stats
func (h *RecyclingHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	stats, err := h.ledger.Stats(r.Context(), id.UID)
	if err != nil {
		writeError(w, r, err, "Error al obtener estadísticas")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.Response{Success: true, Data: stats})
}

// GetMaterials handles GET /api/recycling/materials
func (h *RecyclingHandler) GetMaterials(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.Response{Success: true, Data: recycling.Rates()})
}
