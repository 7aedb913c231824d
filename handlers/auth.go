// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/ecocondor/middleware"
	"github.com/danielhkuo/ecocondor/models"
	"github.com/danielhkuo/ecocondor/profile"
)

type AuthHandler struct {
	profiles *profile.Manager
}

func NewAuthHandler(profiles *profile.Manager) *AuthHandler {
	return &AuthHandler{profiles: profiles}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterUserRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	p, err := h.profiles.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "Error al registrar usuario")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.Response{
		Success: true,
		Message: "Usuario registrado exitosamente",
		Data:    p,
	})
}

// GetProfile handles GET /api/auth/profile
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	p, err := h.profiles.Get(r.Context(), id.UID)
	if err != nil {
		writeError(w, r, err, "Error al obtener perfil")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.Response{Success: true, Data: p})
}

// UpdateProfile handles PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if err := h.profiles.Update(r.Context(), id.UID, req); err != nil {
		writeError(w, r, err, "Error al actualizar perfil")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.Response{
		Success: true,
		Message: "Perfil actualizado",
	})
}
