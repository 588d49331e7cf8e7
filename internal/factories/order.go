package factories

import (
	"time"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/lucsky/cuid"
)

var finalStatuses = []string{
	models.OrderStatusDelivered, models.OrderStatusDelivered, models.OrderStatusDelivered,
	models.OrderStatusDelivered, models.OrderStatusDelivered, models.OrderStatusDelivered,
	models.OrderStatusCancelled,
	models.OrderStatusPreparing,
	models.OrderStatusReady,
	models.OrderStatusPending,
}

type OrderFactory struct {
	CommissionRate float64
}

// CreateOrder places an order against the hotel's available menu and walks
// it through the lifecycle to a random final status.
func (of *OrderFactory) CreateOrder(hotel *models.Hotel, customerID string, createdAt time.Time) (*models.Order, error) {
	available := make([]models.MenuItem, 0, len(hotel.Menu))
	for _, item := range hotel.Menu {
		if item.IsAvailable {
			available = append(available, item)
		}
	}
	if len(available) == 0 {
		available = hotel.Menu
	}
	if len(available) == 0 {
		return nil, models.ErrEmptyOrder
	}

	lines := fake.IntBetween(1, min(4, len(available)))
	items := make([]models.OrderItem, 0, lines)
	seen := make(map[string]bool, lines)
	for len(items) < lines {
		item := available[fake.IntBetween(0, len(available)-1)]
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		items = append(items, models.OrderItem{
			MenuItemID: item.ID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   fake.IntBetween(1, 3),
			Category:   item.Category,
		})
	}

	order, err := models.NewOrder(cuid.New(), hotel, customerID, items, of.CommissionRate, createdAt)
	if err != nil {
		return nil, err
	}
	if fake.IntBetween(0, 2) == 0 {
		order.PaymentMethod = models.PaymentMethodCOD
	}
	if err := of.advance(order, pick(finalStatuses)); err != nil {
		return nil, err
	}
	return order, nil
}

func (of *OrderFactory) advance(order *models.Order, target string) error {
	if target == models.OrderStatusCancelled {
		if err := order.Transition(models.OrderStatusCancelled); err != nil {
			return err
		}
		order.PaymentStatus = models.PaymentStatusFailed
		if order.PaymentMethod == models.PaymentMethodOnline {
			order.PaymentStatus = models.PaymentStatusRefunded
		}
		return nil
	}

	for _, next := range []string{
		models.OrderStatusConfirmed,
		models.OrderStatusPreparing,
		models.OrderStatusReady,
		models.OrderStatusDelivered,
	} {
		if order.Status == target {
			break
		}
		if err := order.Transition(next); err != nil {
			return err
		}
	}

	switch {
	case order.Status == models.OrderStatusDelivered:
		order.PaymentStatus = models.PaymentStatusPaid
		delivered := order.CreatedAt.Add(time.Duration(fake.IntBetween(20, 70)) * time.Minute)
		order.ActualDeliveryTime = &delivered
	case order.PaymentMethod == models.PaymentMethodOnline:
		order.PaymentStatus = models.PaymentStatusPaid
	}
	return nil
}
