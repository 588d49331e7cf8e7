package postgres

import (
	"context"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/jackc/pgx/v5"
)

var orderColumns = []string{
	"id", "tenant_id", "hotel_id", "customer_id", "items",
	"total_amount", "commission", "hotel_earnings", "platform_earnings",
	"status", "payment_status", "payment_method", "created_at",
	"actual_delivery_time",
}

const orderSelect = `
    SELECT id, tenant_id, hotel_id, customer_id, items,
           total_amount, commission, hotel_earnings, platform_earnings,
           status, payment_status, payment_method, created_at,
           actual_delivery_time
    FROM orders`

type OrderRepository struct {
	db DBTX
}

func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

func orderValues(o *models.Order) []interface{} {
	return []interface{}{
		o.ID,
		o.TenantID,
		o.HotelID,
		o.CustomerID,
		nonNil(o.Items),
		o.TotalAmount,
		o.Commission,
		o.HotelEarnings,
		o.PlatformEarnings,
		o.Status,
		o.PaymentStatus,
		o.PaymentMethod,
		o.CreatedAt,
		o.ActualDeliveryTime,
	}
}

func (r *OrderRepository) BulkCreate(ctx context.Context, orders []*models.Order) error {
	_, err := r.db.CopyFrom(
		ctx,
		pgx.Identifier{"orders"},
		orderColumns,
		pgx.CopyFromSlice(len(orders), func(i int) ([]interface{}, error) {
			return orderValues(orders[i]), nil
		}),
	)
	return err
}

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	query := `
        INSERT INTO orders (
            id, tenant_id, hotel_id, customer_id, items,
            total_amount, commission, hotel_earnings, platform_earnings,
            status, payment_status, payment_method, created_at,
            actual_delivery_time
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
        )
    `
	_, err := r.db.Exec(ctx, query, orderValues(order)...)
	return err
}

func (r *OrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	return r.query(ctx, orderSelect+` ORDER BY created_at, id`)
}

func (r *OrderRepository) GetByTenantID(ctx context.Context, tenantID string) ([]models.Order, error) {
	return r.query(ctx, orderSelect+` WHERE tenant_id = $1 ORDER BY created_at, id`, tenantID)
}

func (r *OrderRepository) GetByCustomerID(ctx context.Context, customerID string) ([]models.Order, error) {
	return r.query(ctx, orderSelect+` WHERE customer_id = $1 ORDER BY created_at, id`, customerID)
}

func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM orders").Scan(&count)
	return count, err
}

func (r *OrderRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, "TRUNCATE TABLE orders")
	return err
}

func (r *OrderRepository) query(ctx context.Context, sql string, args ...interface{}) ([]models.Order, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		if err := rows.Scan(
			&order.ID,
			&order.TenantID,
			&order.HotelID,
			&order.CustomerID,
			&order.Items,
			&order.TotalAmount,
			&order.Commission,
			&order.HotelEarnings,
			&order.PlatformEarnings,
			&order.Status,
			&order.PaymentStatus,
			&order.PaymentMethod,
			&order.CreatedAt,
			&order.ActualDeliveryTime,
		); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}
