package roles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/courseauth/internal/common"
	"github.com/dmitrijs2005/courseauth/internal/server/models"
	"github.com/go-redis/redis/v8"
)

const keyPrefix = "role"

type redisRole struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RedisRepository reads roles stored as JSON under role:{name}.
type RedisRepository struct {
	client redis.UniversalClient
}

func NewRedisRepository(client redis.UniversalClient) *RedisRepository {
	return &RedisRepository{client: client}
}

func roleKey(name string) string {
	return keyPrefix + ":" + name
}

func (r *RedisRepository) GetRoleByName(ctx context.Context, name string) (*models.Role, error) {
	data, err := r.client.Get(ctx, roleKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	var doc redisRole
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal role: %w", err)
	}
	return &models.Role{ID: doc.ID, Name: doc.Name}, nil
}
