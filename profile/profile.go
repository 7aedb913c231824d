// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package profile

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/ecocondor/apperr"
	"github.com/danielhkuo/ecocondor/models"
	"github.com/danielhkuo/ecocondor/store"
)

// Store is the subset of the record store the profile manager needs.
type Store interface {
	PutUser(ctx context.Context, p models.UserProfile) (bool, error)
	GetUser(ctx context.Context, uid string) (models.UserProfile, error)
	UpdateUser(ctx context.Context, uid string, displayName *string, at time.Time) error
}

// Manager creates, reads and updates user profiles.
type Manager struct {
	store Store
	now   func() time.Time
}

func NewManager(s Store) *Manager {
	return &Manager{store: s, now: time.Now}
}

// Register writes a fresh profile for uid with a zero balance. An existing
// profile at uid is overwritten.
func (m *Manager) Register(ctx context.Context, req models.RegisterUserRequest) (models.UserProfile, error) {
	uid := strings.TrimSpace(req.UID)
	email := strings.TrimSpace(req.Email)
	if uid == "" || email == "" {
		return models.UserProfile{}, apperr.InvalidArgument("uid y email son requeridos")
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = emailLocalPart(email)
	}

	p := models.UserProfile{
		UID:         uid,
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   m.now().UTC().Truncate(time.Microsecond),
	}

	// Only read for the log line below; the write does not depend on it.
	prev, prevErr := m.store.GetUser(ctx, uid)

	replaced, err := m.store.PutUser(ctx, p)
	if err != nil {
		return models.UserProfile{}, apperr.StoreFailure("put user", err)
	}
	if replaced {
		attrs := []any{"uid", uid}
		if prevErr == nil {
			attrs = append(attrs, "previous_points", prev.Points, "previous_total_recycled", prev.TotalRecycled)
		}
		slog.Warn("registration overwrote existing profile", attrs...)
	} else {
		slog.Info("user registered", "uid", uid)
	}
	return p, nil
}

// Get returns the profile stored at uid.
func (m *Manager) Get(ctx context.Context, uid string) (models.UserProfile, error) {
	p, err := m.store.GetUser(ctx, uid)
	if errors.Is(err, store.ErrNotFound) {
		return models.UserProfile{}, apperr.NotFound("Perfil no encontrado")
	}
	if err != nil {
		return models.UserProfile{}, apperr.StoreFailure("get user", err)
	}
	return p, nil
}

// Update sets the display name when one is given and always stamps
// updatedAt.
func (m *Manager) Update(ctx context.Context, uid string, req models.UpdateProfileRequest) error {
	var displayName *string
	if name := strings.TrimSpace(req.DisplayName); name != "" {
		displayName = &name
	}

	err := m.store.UpdateUser(ctx, uid, displayName, m.now())
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("Perfil no encontrado")
	}
	if err != nil {
		return apperr.StoreFailure("update user", err)
	}
	return nil
}

func emailLocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return email
	}
	return local
}
