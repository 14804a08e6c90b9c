package repomanager

import (
	"context"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/courseauth/internal/common"
	"github.com/dmitrijs2005/courseauth/internal/server/models"
	"github.com/dmitrijs2005/courseauth/internal/server/repositories/roles"
	"github.com/dmitrijs2005/courseauth/internal/server/repositories/users"
)

// InMemoryRepositoryManager keeps everything in process memory. Used by
// tests and by memory:// DSNs for local runs.
type InMemoryRepositoryManager struct {
	users *users.MemoryRepository
	roles *roles.MemoryRepository
}

// NewInMemoryRepositoryManager seeds roles from the DSN query, for example
// memory://?roles=user,admin. Without a roles parameter the default role is
// seeded so a local run can register users.
func NewInMemoryRepositoryManager(dsn *url.URL) *InMemoryRepositoryManager {
	names := []string{common.DefaultRoleName}
	if dsn != nil && dsn.Query().Has("roles") {
		names = nil
		for _, n := range strings.Split(dsn.Query().Get("roles"), ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
	}

	seed := make([]models.Role, 0, len(names))
	for _, n := range names {
		seed = append(seed, models.Role{Name: n})
	}

	return NewInMemoryRepositoryManagerWith(users.NewMemoryRepository(), roles.NewMemoryRepository(seed...))
}

func NewInMemoryRepositoryManagerWith(u *users.MemoryRepository, r *roles.MemoryRepository) *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{users: u, roles: r}
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Roles() roles.Repository {
	return m.roles
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *InMemoryRepositoryManager) Close(ctx context.Context) error {
	return nil
}
