package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/courseauth/internal/common"
	"github.com/dmitrijs2005/courseauth/internal/server/models"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const keyPrefix = "user"

type redisUser struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	RoleID    string    `json:"roleId"`
	Token     string    `json:"token"`
	AvatarURL string    `json:"avatarURL,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// RedisRepository keeps one JSON value per user under user:{email}.
type RedisRepository struct {
	client redis.UniversalClient
}

func NewRedisRepository(client redis.UniversalClient) *RedisRepository {
	return &RedisRepository{client: client}
}

func userKey(email string) string {
	return keyPrefix + ":" + email
}

// Create uses SETNX, so of two concurrent registrations only one lands.
func (r *RedisRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	doc := redisUser{
		ID:        uuid.NewString(),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Password:  user.Password,
		RoleID:    user.RoleID,
		Token:     user.Token,
		AvatarURL: user.AvatarURL,
		CreatedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user: %w", err)
	}

	ok, err := r.client.SetNX(ctx, userKey(user.Email), data, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if !ok {
		return nil, common.ErrorAlreadyExists
	}

	user.ID = doc.ID
	user.CreatedAt = doc.CreatedAt
	return user, nil
}

func (r *RedisRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	data, err := r.client.Get(ctx, userKey(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	var doc redisUser
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return &models.User{
		ID:        doc.ID,
		FirstName: doc.FirstName,
		LastName:  doc.LastName,
		Email:     doc.Email,
		Password:  doc.Password,
		RoleID:    doc.RoleID,
		Token:     doc.Token,
		AvatarURL: doc.AvatarURL,
		CreatedAt: doc.CreatedAt,
	}, nil
}
