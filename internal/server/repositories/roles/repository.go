// Package roles is the read-only Role Store. Roles are provisioned by
// deployment; nothing here creates them.
package roles

import (
	"context"

	"github.com/dmitrijs2005/courseauth/internal/server/models"
)

type Repository interface {
	// GetRoleByName returns common.ErrorNotFound when the role is absent.
	GetRoleByName(ctx context.Context, name string) (*models.Role, error)
}
