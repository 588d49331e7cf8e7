package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrisdamba/foodinsights/internal/models"
)

// FileStore keeps a snapshot as a single JSON document. The file is re-read
// on every Load so edits show up without a restart.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(ctx context.Context, scope models.Scope) (*models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot file %s: %w", s.path, err)
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot file %s: %w", s.path, err)
	}

	if scope.TenantID != "" {
		hotels := snap.Hotels[:0]
		for _, h := range snap.Hotels {
			if h.TenantID == scope.TenantID {
				hotels = append(hotels, h)
			}
		}
		snap.Hotels = hotels
		snap.Orders = filterOrders(snap.Orders, func(o *models.Order) bool {
			return o.TenantID == scope.TenantID
		})
	}
	if scope.CustomerID != "" {
		snap.Orders = filterOrders(snap.Orders, func(o *models.Order) bool {
			return o.CustomerID == scope.CustomerID
		})
	}
	if !scope.WithUsers {
		snap.Users = nil
	}
	return &snap, nil
}

// Save writes the snapshot to a temp file next to the target and renames it
// into place.
func (s *FileStore) Save(ctx context.Context, snap *models.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snap == nil {
		return errors.New("nil snapshot")
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *FileStore) Close() error {
	return nil
}
