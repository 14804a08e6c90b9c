package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/courseauth/internal/server/repositories/roles"
	"github.com/dmitrijs2005/courseauth/internal/server/repositories/users"
	"github.com/go-redis/redis/v8"
)

type RedisRepositoryManager struct {
	client redis.UniversalClient
	users  users.Repository
	roles  roles.Repository
}

func NewRedisRepositoryManager(dsn string) (*RedisRepositoryManager, error) {
	opts, err := redis.ParseURL(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid redis DSN: %w", err)
	}

	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:     []string{opts.Addr},
		Username:  opts.Username,
		Password:  opts.Password,
		DB:        opts.DB,
		TLSConfig: opts.TLSConfig,
	})

	return newRedisRepositoryManager(client), nil
}

func newRedisRepositoryManager(client redis.UniversalClient) *RedisRepositoryManager {
	return &RedisRepositoryManager{
		client: client,
		users:  users.NewRedisRepository(client),
		roles:  roles.NewRedisRepository(client),
	}
}

func (m *RedisRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *RedisRepositoryManager) Roles() roles.Repository {
	return m.roles
}

// RunMigrations is a no-op: SETNX on the email key is the uniqueness guard.
func (m *RedisRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *RedisRepositoryManager) Ping(ctx context.Context) error {
	if err := m.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping error: %w", err)
	}
	return nil
}

func (m *RedisRepositoryManager) Close(ctx context.Context) error {
	return m.client.Close()
}
