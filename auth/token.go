// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/danielhkuo/ecocondor/models"
)

var (
	ErrNoVerificationKey = errors.New("no token verification key configured")
	ErrTokenExpired      = errors.New("token expired")
	ErrInvalidToken      = errors.New("invalid token")
)

// Verifier turns an opaque bearer token into a verified identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (models.Identity, error)
}

// Claims is the ID token payload: the subject is the user id.
type Claims struct {
	Email         string `json:"email,omitempty"`
	EmailVerified bool   `json:"email_verified,omitempty"`
	jwt.RegisteredClaims
}

type VerifierConfig struct {
	Secret       string // HS256 shared secret
	PublicKeyPEM []byte // RS256 public key
	Issuer       string
	Audience     string
	Leeway       time.Duration
}

// JWTVerifier validates HS256 and/or RS256 signed ID tokens.
type JWTVerifier struct {
	secret    []byte
	publicKey *rsa.PublicKey
	parser    *jwt.Parser
}

func NewJWTVerifier(cfg VerifierConfig) (*JWTVerifier, error) {
	v := &JWTVerifier{}
	var methods []string

	if cfg.Secret != "" {
		v.secret = []byte(cfg.Secret)
		methods = append(methods, jwt.SigningMethodHS256.Alg())
	}
	if len(cfg.PublicKeyPEM) > 0 {
		key, err := jwt.ParseRSAPublicKeyFromPEM(cfg.PublicKeyPEM)
		if err != nil {
			return nil, fmt.Errorf("failed to parse token public key: %w", err)
		}
		v.publicKey = key
		methods = append(methods, jwt.SigningMethodRS256.Alg())
	}
	if len(methods) == 0 {
		return nil, ErrNoVerificationKey
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods(methods),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	if cfg.Leeway > 0 {
		opts = append(opts, jwt.WithLeeway(cfg.Leeway))
	}
	v.parser = jwt.NewParser(opts...)

	return v, nil
}

// Verify checks signature, expiry and the configured issuer/audience.
// Expired tokens yield ErrTokenExpired; every other rejection wraps ErrInvalidToken.
func (v *JWTVerifier) Verify(ctx context.Context, raw string) (models.Identity, error) {
	if err := ctx.Err(); err != nil {
		return models.Identity{}, err
	}

	var claims Claims
	_, err := v.parser.ParseWithClaims(raw, &claims, v.keyFunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Identity{}, ErrTokenExpired
		}
		return models.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return models.Identity{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return models.Identity{
		UID:           claims.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
	}, nil
}

func (v *JWTVerifier) keyFunc(t *jwt.Token) (any, error) {
	switch t.Method.(type) {
	case *jwt.SigningMethodHMAC:
		if v.secret == nil {
			return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return v.secret, nil
	case *jwt.SigningMethodRSA:
		if v.publicKey == nil {
			return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return v.publicKey, nil
	}
	return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
}
