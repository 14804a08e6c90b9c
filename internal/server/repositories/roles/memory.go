package roles

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/courseauth/internal/common"
	"github.com/dmitrijs2005/courseauth/internal/server/models"
	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	byName map[string]models.Role
}

// NewMemoryRepository returns a store preloaded with roles. Roles without an
// ID get a random one.
func NewMemoryRepository(roles ...models.Role) *MemoryRepository {
	r := &MemoryRepository{byName: make(map[string]models.Role, len(roles))}
	for _, role := range roles {
		if role.ID == "" {
			role.ID = uuid.NewString()
		}
		r.byName[role.Name] = role
	}
	return r
}

func (r *MemoryRepository) GetRoleByName(ctx context.Context, name string) (*models.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	role, ok := r.byName[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &role, nil
}
