// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers.

# Auth Gate

RequireAuth extracts the bearer token from the Authorization header, verifies
it and attaches the caller's identity to the request context:

	r.With(middleware.RequireAuth(verifier)).Get("/profile", h.GetProfile)

	id, _ := middleware.IdentityFrom(r.Context())

Missing tokens, expired tokens and any other rejection each answer 401 with
their own message. The downstream handler is never reached.

# Request Logging and Recovery

WithLogging logs method, path, request id, status and duration_ms once the
request completes. Recover converts handler panics into a JSON 500.

# CORS Middleware

CORS echoes the request origin and allows GET, POST, PUT, DELETE, OPTIONS
with headers Content-Type, Authorization. Preflight requests stop here.
Credentials are not allowed; clients authenticate with bearer tokens.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, models.Response{Success: true, Data: data})
	middleware.ErrorResponse(w, http.StatusBadRequest, "JSON inválido")

Every error body has the shape {"success": false, "error": "..."}.
*/
package middleware
