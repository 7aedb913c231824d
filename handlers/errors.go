// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/danielhkuo/ecocondor/apperr"
	"github.com/danielhkuo/ecocondor/middleware"
	"github.com/danielhkuo/ecocondor/models"
)

// writeError answers err with its mapped status. Store failures and
// unclassified errors are logged in full and answered with fallback, so
// no internal detail reaches the client.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	kind := apperr.KindOf(err)
	msg := apperr.Message(err)
	if msg == "" {
		slog.Error(fallback,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimw.GetReqID(r.Context()),
			"error", err,
		)
		middleware.ErrorResponse(w, http.StatusInternalServerError, fallback)
		return
	}
	middleware.ErrorResponse(w, apperr.HTTPStatus(kind), msg)
}

// caller returns the identity attached by the auth gate. Routes without the
// gate in front of them answer 401.
func caller(w http.ResponseWriter, r *http.Request) (models.Identity, bool) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok || id.UID == "" {
		writeError(w, r, apperr.Unauthenticated("Token de autenticación no proporcionado"), "")
		return models.Identity{}, false
	}
	return id, true
}
