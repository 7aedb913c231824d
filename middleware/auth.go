// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/danielhkuo/ecocondor/auth"
	"github.com/danielhkuo/ecocondor/models"
)

type identityKey struct{}

// RequireAuth rejects requests without a valid bearer token. On success the
// verified identity is attached to the request context; see IdentityFrom.
func RequireAuth(v auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				ErrorResponse(w, http.StatusUnauthorized, "Token de autenticación no proporcionado")
				return
			}

			id, err := v.Verify(r.Context(), token)
			if err != nil {
				slog.Debug("token rejected",
					"path", r.URL.Path,
					"request_id", chimw.GetReqID(r.Context()),
					"error", err,
				)
				if errors.Is(err, auth.ErrTokenExpired) {
					ErrorResponse(w, http.StatusUnauthorized, "Token expirado. Por favor, inicia sesión nuevamente.")
					return
				}
				ErrorResponse(w, http.StatusUnauthorized, "Token inválido")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity attached by RequireAuth.
func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(models.Identity)
	return id, ok
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
