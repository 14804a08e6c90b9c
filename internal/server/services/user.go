// Package services contains server-side business logic. This file implements
// UserService, which handles registration and login: validation, password
// hashing, token issuance and persistence.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/courseauth/internal/common"
	"github.com/dmitrijs2005/courseauth/internal/logging"
	"github.com/dmitrijs2005/courseauth/internal/server/auth"
	"github.com/dmitrijs2005/courseauth/internal/server/avatars"
	"github.com/dmitrijs2005/courseauth/internal/server/config"
	"github.com/dmitrijs2005/courseauth/internal/server/models"
	"github.com/dmitrijs2005/courseauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/courseauth/internal/server/validation"
)

// AuthResult is what a successful sign-up or sign-in hands back: the user
// (password hash included, callers must not expose it) and the bearer token.
type AuthResult struct {
	User  *models.User
	Token string
}

// UserService provides authentication-related operations:
// - Register: validate, hash, mint a token and create the user
// - Login: verify credentials and return the stored token
type UserService struct {
	repomanager repomanager.RepositoryManager
	validator   *validation.Validator
	hasher      *auth.Hasher
	issuer      *auth.Issuer
	avatars     avatars.Resolver
	defaultRole string
	logger      logging.Logger
}

// NewUserService constructs a UserService. It fails when no signing secret
// is configured.
func NewUserService(m repomanager.RepositoryManager, r avatars.Resolver, cfg *config.Config, l logging.Logger) (*UserService, error) {
	issuer, err := auth.NewIssuer(cfg.SecretKey)
	if err != nil {
		return nil, err
	}
	if r == nil {
		r = avatars.PassThrough{}
	}

	return &UserService{
		repomanager: m,
		validator:   validation.New(),
		hasher:      auth.NewHasher(cfg.BcryptCost),
		issuer:      issuer,
		avatars:     r,
		defaultRole: cfg.DefaultRole,
		logger:      l.With("module", "user_service"),
	}, nil
}

// DefaultRole is the role name every new user gets.
func (s *UserService) DefaultRole() string {
	return s.defaultRole
}

// Register creates a user with the default role.
//
// Errors: *validation.ValidationError, ErrUserAlreadyExists, ErrRoleNotFound,
// or ErrorInternal wrapping the store or signer failure.
func (s *UserService) Register(ctx context.Context, req validation.RegisterRequest) (*AuthResult, error) {
	req, err := s.validator.Register(req)
	if err != nil {
		return nil, err
	}

	users := s.repomanager.Users()

	_, err = users.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return nil, common.ErrUserAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("%w: user lookup: %w", common.ErrorInternal, err)
	}

	role, err := s.repomanager.Roles().GetRoleByName(ctx, s.defaultRole)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: %q", common.ErrRoleNotFound, s.defaultRole)
		}
		return nil, fmt.Errorf("%w: role lookup: %w", common.ErrorInternal, err)
	}

	hash, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: hashing password: %w", common.ErrorInternal, err)
	}

	token, err := s.issuer.GenerateToken(req.Email, role.ID, req.FirstName, req.LastName)
	if err != nil {
		return nil, fmt.Errorf("%w: signing token: %w", common.ErrorInternal, err)
	}

	user, err := users.Create(ctx, &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hash,
		RoleID:    role.ID,
		Token:     token,
	})
	if err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("%w: creating user: %w", common.ErrorInternal, err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID, "role_id", user.RoleID)

	return &AuthResult{User: s.withAvatar(ctx, user), Token: token}, nil
}

// Login checks credentials and returns the token stored at registration.
// Nothing is written.
//
// Errors: *validation.ValidationError, ErrUserNotFound, ErrInvalidCredentials,
// or ErrorInternal.
func (s *UserService) Login(ctx context.Context, req validation.LoginRequest) (*AuthResult, error) {
	req, err := s.validator.Login(req)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users().GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: user lookup: %w", common.ErrorInternal, err)
	}

	ok, err := s.hasher.CheckPassword(user.Password, req.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: checking password: %w", common.ErrorInternal, err)
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	s.logger.Debug(ctx, "user logged in", "user_id", user.ID)

	return &AuthResult{User: s.withAvatar(ctx, user), Token: user.Token}, nil
}

// withAvatar swaps the stored avatar reference for a fetchable URL. On a
// presign failure the stored reference is kept.
func (s *UserService) withAvatar(ctx context.Context, u *models.User) *models.User {
	resolved, err := s.avatars.Resolve(ctx, u.AvatarURL)
	if err != nil {
		s.logger.Warn(ctx, "avatar resolve failed", "user_id", u.ID, "error", err)
		return u
	}
	out := *u
	out.AvatarURL = resolved
	return &out
}
