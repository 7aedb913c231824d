// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/danielhkuo/ecocondor/models"
)

// Signer issues HS256 ID tokens accepted by a JWTVerifier sharing the same
// secret. It exists for local development and tests; production tokens come
// from the identity provider.
type Signer struct {
	secret   []byte
	issuer   string
	audience string
}

func NewSigner(secret, issuer, audience string) *Signer {
	return &Signer{secret: []byte(secret), issuer: issuer, audience: audience}
}

// Sign creates a token for id valid for ttl. A negative ttl yields an
// already-expired token.
func (s *Signer) Sign(id models.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:         id.Email,
		EmailVerified: id.EmailVerified,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if s.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
