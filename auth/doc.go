// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth verifies bearer ID tokens.

# Verification

JWTVerifier accepts HS256 tokens signed with a shared secret, RS256 tokens
signed by the identity provider's key, or both:

	v, err := auth.NewJWTVerifier(auth.VerifierConfig{
		Secret:   cfg.TokenSecret,
		Issuer:   cfg.TokenIssuer,
		Audience: cfg.TokenAudience,
	})
	id, err := v.Verify(ctx, token)

The subject claim becomes the user id; email and email_verified are copied
into the identity. An expiry claim is required.

# Errors

  - ErrTokenExpired: the token was valid but its exp has passed
  - ErrInvalidToken: anything else (bad signature, wrong issuer, no subject)

Callers only distinguish the expired case; see middleware.RequireAuth.

# Signing

Signer mints HS256 tokens for development and tests:

	token, err := auth.NewSigner(secret, "", "").Sign(identity, time.Hour)
*/
package auth
