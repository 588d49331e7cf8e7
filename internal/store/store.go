package store

import (
	"context"

	"github.com/chrisdamba/foodinsights/internal/models"
)

// Source reads the slice of data one analytics request needs.
type Source interface {
	Load(ctx context.Context, scope models.Scope) (*models.Snapshot, error)
	Close() error
}

// Sink persists a full snapshot, replacing what was there.
type Sink interface {
	Save(ctx context.Context, snap *models.Snapshot) error
}

func filterOrders(orders []models.Order, keep func(*models.Order) bool) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for i := range orders {
		if keep(&orders[i]) {
			out = append(out, orders[i])
		}
	}
	return out
}
