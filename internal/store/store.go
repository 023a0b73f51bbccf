// Package store holds the persistence backends for the event collection.
// Every backend reads and writes the whole collection as one unit.
package store

import (
	"context"
	"fmt"

	"github.com/nhle/eventcal/internal/model"
)

// Store persists the event collection.
type Store interface {
	Load(ctx context.Context) ([]model.Event, error)
	Save(ctx context.Context, events []model.Event) error
	Close() error
}

// Open returns the backend selected by cfg.Backend. password is only used
// by the redis backend.
func Open(ctx context.Context, cfg model.StorageConfig, password string) (Store, error) {
	switch cfg.Backend {
	case model.BackendFile, "":
		return NewFileStore(cfg.Path), nil
	case model.BackendSQLite:
		return NewSQLiteStore(cfg.Path)
	case model.BackendRedis:
		return NewRedisStore(ctx, cfg, password)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
