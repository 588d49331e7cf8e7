package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/chrisdamba/foodinsights/internal/repositories"
	"github.com/jackc/pgx/v5"
)

// Menu, staff and expenses are stored as jsonb next to the hotel row; pgx
// encodes and decodes them through encoding/json.
const hotelColumns = `
    id, tenant_id, owner_id, name, is_active, menu, staff, expenses,
    subscription_plan, subscription_status, subscription_end_date, created_at`

type HotelRepository struct {
	db DBTX
}

func NewHotelRepository(db DBTX) *HotelRepository {
	return &HotelRepository{db: db}
}

func hotelValues(h *models.Hotel) []interface{} {
	return []interface{}{
		h.ID,
		h.TenantID,
		h.OwnerID,
		h.Name,
		h.IsActive,
		nonNil(h.Menu),
		nonNil(h.Staff),
		nonNil(h.Expenses),
		h.Subscription.Plan,
		h.Subscription.Status,
		h.Subscription.EndDate,
		h.CreatedAt,
	}
}

func (r *HotelRepository) BulkCreate(ctx context.Context, hotels []*models.Hotel) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO hotels (` + hotelColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	for _, hotel := range hotels {
		if _, err := tx.Exec(ctx, query, hotelValues(hotel)...); err != nil {
			return fmt.Errorf("insert hotel %s: %w", hotel.ID, err)
		}
	}
	return tx.Commit(ctx)
}

func (r *HotelRepository) Create(ctx context.Context, hotel *models.Hotel) error {
	query := `INSERT INTO hotels (` + hotelColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.Exec(ctx, query, hotelValues(hotel)...)
	return err
}

func (r *HotelRepository) GetAll(ctx context.Context) ([]models.Hotel, error) {
	rows, err := r.db.Query(ctx, `SELECT `+hotelColumns+` FROM hotels ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hotels []models.Hotel
	for rows.Next() {
		hotel, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		hotels = append(hotels, *hotel)
	}
	return hotels, rows.Err()
}

func (r *HotelRepository) GetByTenantID(ctx context.Context, tenantID string) (*models.Hotel, error) {
	row := r.db.QueryRow(ctx, `SELECT `+hotelColumns+` FROM hotels WHERE tenant_id = $1`, tenantID)
	hotel, err := scanHotel(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return hotel, nil
}

func (r *HotelRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM hotels").Scan(&count)
	return count, err
}

func (r *HotelRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, "TRUNCATE TABLE hotels CASCADE")
	return err
}

func scanHotel(row pgx.Row) (*models.Hotel, error) {
	hotel := &models.Hotel{}
	err := row.Scan(
		&hotel.ID,
		&hotel.TenantID,
		&hotel.OwnerID,
		&hotel.Name,
		&hotel.IsActive,
		&hotel.Menu,
		&hotel.Staff,
		&hotel.Expenses,
		&hotel.Subscription.Plan,
		&hotel.Subscription.Status,
		&hotel.Subscription.EndDate,
		&hotel.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return hotel, nil
}

// nonNil keeps jsonb columns as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
