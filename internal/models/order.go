package models

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// moneyTolerance absorbs float rounding when checking the order money invariants.
const moneyTolerance = 0.01

var (
	ErrEmptyOrder            = errors.New("order has no items")
	ErrInvalidQuantity       = errors.New("order item quantity must be positive")
	ErrTotalMismatch         = errors.New("order total does not match its items")
	ErrEarningsMismatch      = errors.New("hotel earnings and commission do not add up to the order total")
	ErrInvalidStatusTransfer = errors.New("invalid order status transition")
)

type OrderItem struct {
	MenuItemID          string  `json:"menu_item_id"`
	Name                string  `json:"name"`
	Price               float64 `json:"price"`
	Quantity            int     `json:"quantity"`
	SpecialInstructions string  `json:"special_instructions,omitempty"`
	Category            string  `json:"category,omitempty"`
}

type Order struct {
	ID                 string      `json:"id"`
	TenantID           string      `json:"tenant_id"`
	HotelID            string      `json:"hotel_id"`
	CustomerID         string      `json:"customer_id"`
	Items              []OrderItem `json:"items"`
	TotalAmount        float64     `json:"total_amount"`
	Commission         float64     `json:"commission"`
	HotelEarnings      float64     `json:"hotel_earnings"`
	PlatformEarnings   float64     `json:"platform_earnings"`
	Status             string      `json:"status"`         // pending, confirmed, preparing, ready, delivered, cancelled
	PaymentStatus      string      `json:"payment_status"` // pending, paid, failed, refunded
	PaymentMethod      string      `json:"payment_method"` // online, cod
	CreatedAt          time.Time   `json:"created_at"`
	ActualDeliveryTime *time.Time  `json:"actual_delivery_time,omitempty"`
}

// NewOrder prices the items and splits the total between the hotel and the
// platform using commissionRate.
func NewOrder(id string, hotel *Hotel, customerID string, items []OrderItem, commissionRate float64, createdAt time.Time) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	var total float64
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidQuantity, item.MenuItemID)
		}
		total += item.Price * float64(item.Quantity)
	}
	commission := total * commissionRate

	return &Order{
		ID:               id,
		TenantID:         hotel.TenantID,
		HotelID:          hotel.ID,
		CustomerID:       customerID,
		Items:            items,
		TotalAmount:      total,
		Commission:       commission,
		HotelEarnings:    total - commission,
		PlatformEarnings: commission,
		Status:           OrderStatusPending,
		PaymentStatus:    PaymentStatusPending,
		PaymentMethod:    PaymentMethodOnline,
		CreatedAt:        createdAt,
	}, nil
}

// Validate checks the money invariants of a settled order.
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return fmt.Errorf("order %s: %w", o.ID, ErrEmptyOrder)
	}
	var total float64
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("order %s item %s: %w", o.ID, item.MenuItemID, ErrInvalidQuantity)
		}
		total += item.Price * float64(item.Quantity)
	}
	if math.Abs(total-o.TotalAmount) > moneyTolerance {
		return fmt.Errorf("order %s: %w (items %.2f, total %.2f)", o.ID, ErrTotalMismatch, total, o.TotalAmount)
	}
	if math.Abs(o.HotelEarnings+o.Commission-o.TotalAmount) > moneyTolerance ||
		math.Abs(o.PlatformEarnings-o.Commission) > moneyTolerance {
		return fmt.Errorf("order %s: %w", o.ID, ErrEarningsMismatch)
	}
	return nil
}

// Transition moves the order to the next status, enforcing the linear
// lifecycle and the cancel exit.
func (o *Order) Transition(to string) error {
	if !CanTransition(o.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransfer, o.Status, to)
	}
	o.Status = to
	return nil
}

func CanTransition(from, to string) bool {
	if from == OrderStatusDelivered || from == OrderStatusCancelled {
		return false
	}
	if to == OrderStatusCancelled {
		return true
	}
	for i, status := range orderLifecycle {
		if status == from {
			return i+1 < len(orderLifecycle) && orderLifecycle[i+1] == to
		}
	}
	return false
}

func IsOrderStatus(status string) bool {
	if status == OrderStatusCancelled {
		return true
	}
	for _, s := range orderLifecycle {
		if s == status {
			return true
		}
	}
	return false
}
