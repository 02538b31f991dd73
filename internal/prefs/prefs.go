// Package prefs stores the shopper's role preference. It is a display toggle, not authorization.
package prefs

import (
	"context"
	"errors"
	"fmt"

	"github.com/safar/artisan-market/internal/kv"
	"github.com/safar/artisan-market/internal/models"
)

const RoleKey = "userRole"

var ErrInvalidRole = errors.New("role must be customer, seller or admin")

// Role returns the stored role, or customer when none is stored or the stored value is unknown.
func Role(ctx context.Context, store kv.Store) (models.Role, error) {
	raw, err := store.Get(ctx, RoleKey)
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return models.RoleCustomer, nil
		}
		return "", fmt.Errorf("load role: %w", err)
	}

	role := models.Role(raw)
	if !role.Valid() {
		return models.RoleCustomer, nil
	}
	return role, nil
}

func SetRole(ctx context.Context, store kv.Store, role models.Role) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	if err := store.Set(ctx, RoleKey, string(role)); err != nil {
		return fmt.Errorf("save role: %w", err)
	}
	return nil
}
