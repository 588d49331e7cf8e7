package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/chrisdamba/foodinsights/internal/repositories"
	"github.com/chrisdamba/foodinsights/internal/repositories/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryStore assembles snapshots from the per-entity repositories.
// Hotels and orders are read independently, without a shared transaction;
// Save replaces everything inside one transaction.
type RepositoryStore struct {
	hotels repositories.HotelRepository
	orders repositories.OrderRepository
	users  repositories.UserRepository
	tx     repositories.TxRunner
	close  func()
}

func NewRepositoryStore(repos repositories.Repositories, tx repositories.TxRunner) *RepositoryStore {
	return &RepositoryStore{hotels: repos.Hotels, orders: repos.Orders, users: repos.Users, tx: tx}
}

// NewPostgresStore wires the postgres repositories onto one pool. Close
// releases the pool.
func NewPostgresStore(pool *pgxpool.Pool) *RepositoryStore {
	s := NewRepositoryStore(postgres.NewRepositories(pool), postgres.NewTxRunner(pool))
	s.close = pool.Close
	return s
}

func (s *RepositoryStore) Load(ctx context.Context, scope models.Scope) (*models.Snapshot, error) {
	snap := &models.Snapshot{}

	switch {
	case scope.TenantID != "":
		hotel, err := s.hotels.GetByTenantID(ctx, scope.TenantID)
		switch {
		case errors.Is(err, repositories.ErrNotFound):
		case err != nil:
			return nil, fmt.Errorf("failed to load hotel for tenant %s: %w", scope.TenantID, err)
		default:
			snap.Hotels = []models.Hotel{*hotel}
		}
		orders, err := s.orders.GetByTenantID(ctx, scope.TenantID)
		if err != nil {
			return nil, fmt.Errorf("failed to load orders for tenant %s: %w", scope.TenantID, err)
		}
		snap.Orders = orders
	default:
		hotels, err := s.hotels.GetAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load hotels: %w", err)
		}
		snap.Hotels = hotels
		var orders []models.Order
		if scope.CustomerID != "" {
			orders, err = s.orders.GetByCustomerID(ctx, scope.CustomerID)
		} else {
			orders, err = s.orders.GetAll(ctx)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load orders: %w", err)
		}
		snap.Orders = orders
	}

	if scope.CustomerID != "" && scope.TenantID != "" {
		snap.Orders = filterOrders(snap.Orders, func(o *models.Order) bool {
			return o.CustomerID == scope.CustomerID
		})
	}

	if scope.WithUsers {
		users, err := s.users.GetAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load users: %w", err)
		}
		snap.Users = users
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return snap, nil
}

// Save truncates and bulk loads every table in one transaction. A failed
// insert leaves the previous contents untouched.
func (s *RepositoryStore) Save(ctx context.Context, snap *models.Snapshot) error {
	if snap == nil {
		return errors.New("nil snapshot")
	}
	if s.tx == nil {
		return errors.New("repository store has no transaction runner")
	}
	return s.tx.WithinTx(ctx, func(repos repositories.Repositories) error {
		if err := repos.Orders.DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to clear orders: %w", err)
		}
		if err := repos.Hotels.DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to clear hotels: %w", err)
		}
		if err := repos.Users.DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to clear users: %w", err)
		}

		if err := repos.Users.BulkCreate(ctx, pointers(snap.Users)); err != nil {
			return fmt.Errorf("failed to insert users: %w", err)
		}
		if err := repos.Hotels.BulkCreate(ctx, pointers(snap.Hotels)); err != nil {
			return fmt.Errorf("failed to insert hotels: %w", err)
		}
		if err := repos.Orders.BulkCreate(ctx, pointers(snap.Orders)); err != nil {
			return fmt.Errorf("failed to insert orders: %w", err)
		}
		return nil
	})
}

func (s *RepositoryStore) Close() error {
	if s.close != nil {
		s.close()
	}
	return nil
}

func pointers[T any](s []T) []*T {
	out := make([]*T, len(s))
	for i := range s {
		out[i] = &s[i]
	}
	return out
}
