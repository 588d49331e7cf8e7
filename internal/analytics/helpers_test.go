package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 16, 15, 30, 0, 0, time.UTC)

func testHotel(tenantID string, menu ...models.MenuItem) models.Hotel {
	return models.Hotel{
		ID:       "hotel-" + tenantID,
		TenantID: tenantID,
		OwnerID:  "owner-" + tenantID,
		Name:     "Hotel " + tenantID,
		IsActive: true,
		Menu:     menu,
		Subscription: models.Subscription{
			Plan:   models.SubscriptionPlanMonthly,
			Status: models.SubscriptionStatusActive,
		},
	}
}

func menuItem(id, name, category string, price float64) models.MenuItem {
	return models.MenuItem{ID: id, Name: name, Category: category, Price: price, IsAvailable: true, PrepTime: 20}
}

func line(item models.MenuItem, quantity int) models.OrderItem {
	return models.OrderItem{MenuItemID: item.ID, Name: item.Name, Price: item.Price, Quantity: quantity}
}

// placeOrder builds a priced order through models.NewOrder so the money
// invariants hold.
func placeOrder(t *testing.T, hotel models.Hotel, id, customerID string, at time.Time, items ...models.OrderItem) models.Order {
	t.Helper()
	order, err := models.NewOrder(id, &hotel, customerID, items, models.DefaultCommissionRate, at)
	require.NoError(t, err)
	order.Status = models.OrderStatusDelivered
	order.PaymentStatus = models.PaymentStatusPaid
	return *order
}

// earningOrder builds an order with a given hotel share, for tests that only
// care about earnings.
func earningOrder(tenantID string, n int, hotelEarnings float64, at time.Time) models.Order {
	total := hotelEarnings / (1 - models.DefaultCommissionRate)
	commission := total - hotelEarnings
	return models.Order{
		ID:               fmt.Sprintf("%s-order-%d", tenantID, n),
		TenantID:         tenantID,
		HotelID:          "hotel-" + tenantID,
		CustomerID:       "customer-1",
		TotalAmount:      total,
		Commission:       commission,
		HotelEarnings:    hotelEarnings,
		PlatformEarnings: commission,
		Status:           models.OrderStatusDelivered,
		PaymentStatus:    models.PaymentStatusPaid,
		CreatedAt:        at,
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(models.DefaultAnalyticsConfig())
	require.NoError(t, err)
	return engine
}
