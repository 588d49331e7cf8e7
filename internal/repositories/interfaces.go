package repositories

import (
	"context"
	"errors"

	"github.com/chrisdamba/foodinsights/internal/models"
)

var ErrNotFound = errors.New("record not found")

type UserRepository interface {
	BulkCreate(ctx context.Context, users []*models.User) error
	Create(ctx context.Context, user *models.User) error
	GetAll(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type HotelRepository interface {
	BulkCreate(ctx context.Context, hotels []*models.Hotel) error
	Create(ctx context.Context, hotel *models.Hotel) error
	GetAll(ctx context.Context) ([]models.Hotel, error)
	// GetByTenantID returns ErrNotFound when the tenant has no hotel.
	GetByTenantID(ctx context.Context, tenantID string) (*models.Hotel, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type OrderRepository interface {
	BulkCreate(ctx context.Context, orders []*models.Order) error
	Create(ctx context.Context, order *models.Order) error
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByTenantID(ctx context.Context, tenantID string) ([]models.Order, error)
	GetByCustomerID(ctx context.Context, customerID string) ([]models.Order, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

// Repositories groups the per-entity repositories bound to one connection
// or one transaction.
type Repositories struct {
	Hotels HotelRepository
	Orders OrderRepository
	Users  UserRepository
}

// TxRunner runs fn with repositories that share a single transaction. The
// transaction commits only if fn returns nil.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(repos Repositories) error) error
}
