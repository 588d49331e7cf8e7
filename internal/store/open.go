package store

import (
	"context"
	"fmt"
	"log"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/chrisdamba/foodinsights/internal/repositories/postgres"
)

// Store is both readable and writable; both backends satisfy it.
type Store interface {
	Source
	Sink
}

// Open builds the store named by cfg.Kind.
func Open(ctx context.Context, cfg models.StoreConfig) (Store, error) {
	switch cfg.Kind {
	case "file":
		log.Printf("Using snapshot file: %s", cfg.SnapshotFile)
		return NewFileStore(cfg.SnapshotFile), nil
	case "postgres":
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		log.Printf("Connected to postgres")
		return NewPostgresStore(pool), nil
	default:
		return nil, fmt.Errorf("unsupported store kind: %s", cfg.Kind)
	}
}
