// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/ecocondor/middleware"
	"github.com/danielhkuo/ecocondor/models"
	"github.com/danielhkuo/ecocondor/rewards"
)

type RewardsHandler struct {
	engine *rewards.Engine
}

func NewRewardsHandler(engine *rewards.Engine) *RewardsHandler {
	return &RewardsHandler{engine: engine}
}

// ListRewards handles GET /api/rewards
func (h *RewardsHandler) ListRewards(w http.ResponseWriter, r *http.Request) {
	list, err := h.engine.List(r.Context())
	if err != nil {
		writeError(w, r, err, "Error al obtener recompensas")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.Response{Success: true, Data: list})
}

// GetPoints handles GET /api/rewards/points
func (h *RewardsHandler) GetPoints(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	balance, err := h.engine.Points(r.Context(), id.UID)
	if err != nil {
		writeError(w, r, err, "Error al obtener puntos")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.Response{Success: true, Data: balance})
}

// Redeem handles POST /api/rewards/redeem
func (h *RewardsHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	var req models.RedeemRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	result, msg, err := h.engine.Redeem(r.Context(), id.UID, req)
	if err != nil {
		writeError(w, r, err, "Error al canjear recompensa")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.Response{
		Success: true,
		Message: msg,
		Data:    result,
	})
}

// MyRedemptions handles GET /api/rewards/my-redemptions
func (h *RewardsHandler) MyRedemptions(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	list, err := h.engine.MyRedemptions(r.Context(), id.UID)
	if err != nil {
		writeError(w, r, err, "Error al obtener canjes")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.Response{Success: true, Data: list})
}
