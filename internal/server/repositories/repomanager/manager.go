// Package repomanager opens a storage backend from a DSN and vends the
// repositories bound to it.
package repomanager

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/courseauth/internal/logging"
	"github.com/dmitrijs2005/courseauth/internal/server/repositories/roles"
	"github.com/dmitrijs2005/courseauth/internal/server/repositories/users"
	"github.com/sethvargo/go-retry"
)

var ErrUnsupportedScheme = errors.New("unsupported DSN scheme")

type RepositoryManager interface {
	Users() users.Repository
	Roles() roles.Repository
	// RunMigrations brings the schema (tables, indexes) up to date.
	RunMigrations(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Open picks a backend by DSN scheme. dbName selects the MongoDB database
// and is ignored elsewhere.
func Open(ctx context.Context, dsn, dbName string) (RepositoryManager, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid DSN: %w", err)
	}

	switch u.Scheme {
	case "mongodb", "mongodb+srv":
		m, err := NewMongoRepositoryManager(ctx, dsn, dbName)
		if err != nil {
			return nil, err
		}
		return m, nil
	case "postgres", "postgresql":
		m, err := NewPostgresRepositoryManager(dsn)
		if err != nil {
			return nil, err
		}
		return m, nil
	case "redis", "rediss":
		m, err := NewRedisRepositoryManager(dsn)
		if err != nil {
			return nil, err
		}
		return m, nil
	case "memory":
		return NewInMemoryRepositoryManager(u), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

// OpenWithRetry calls Open and Ping with exponential backoff until the store
// answers or maxWait elapses. An unsupported scheme fails immediately.
func OpenWithRetry(ctx context.Context, dsn, dbName string, maxWait time.Duration, log logging.Logger) (RepositoryManager, error) {
	b := retry.NewExponential(200 * time.Millisecond)
	b = retry.WithCappedDuration(5*time.Second, b)
	b = retry.WithMaxDuration(maxWait, b)

	var m RepositoryManager
	attempt := 0
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++

		mgr, err := Open(ctx, dsn, dbName)
		if err != nil {
			if errors.Is(err, ErrUnsupportedScheme) {
				return err
			}
			log.Warn(ctx, "store open failed", "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}

		if err := mgr.Ping(ctx); err != nil {
			_ = mgr.Close(ctx)
			log.Warn(ctx, "store ping failed", "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}

		m = mgr
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store unavailable after %d attempts: %w", attempt, err)
	}

	return m, nil
}
