// Package users holds the User Store: a collection of accounts keyed by
// email. Every backend enforces email uniqueness itself and reports a clash
// as common.ErrorAlreadyExists.
package users

import (
	"context"

	"github.com/dmitrijs2005/courseauth/internal/server/models"
)

type Repository interface {
	// Create stores user and returns it with ID and CreatedAt filled in.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByEmail returns common.ErrorNotFound when no user has email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
