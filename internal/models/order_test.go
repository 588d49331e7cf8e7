package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder_SplitsCommission(t *testing.T) {
	hotel := &Hotel{ID: "h1", TenantID: "t1"}
	items := []OrderItem{
		{MenuItemID: "m1", Name: "Paneer Tikka", Price: 250, Quantity: 2},
		{MenuItemID: "m2", Name: "Naan", Price: 50, Quantity: 4},
	}

	order, err := NewOrder("o1", hotel, "c1", items, DefaultCommissionRate, time.Now())
	require.NoError(t, err)

	assert.Equal(t, "t1", order.TenantID)
	assert.Equal(t, "h1", order.HotelID)
	assert.InDelta(t, 700, order.TotalAmount, 1e-9)
	assert.InDelta(t, 210, order.Commission, 1e-9)
	assert.InDelta(t, 490, order.HotelEarnings, 1e-9)
	assert.Equal(t, order.Commission, order.PlatformEarnings)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.NoError(t, order.Validate())
}

func TestNewOrder_RejectsBadItems(t *testing.T) {
	hotel := &Hotel{ID: "h1", TenantID: "t1"}

	_, err := NewOrder("o1", hotel, "c1", nil, DefaultCommissionRate, time.Now())
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = NewOrder("o1", hotel, "c1", []OrderItem{{MenuItemID: "m1", Price: 10, Quantity: 0}}, DefaultCommissionRate, time.Now())
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestOrderValidate(t *testing.T) {
	valid := func() Order {
		return Order{
			ID:               "o1",
			Items:            []OrderItem{{MenuItemID: "m1", Price: 100, Quantity: 2}},
			TotalAmount:      200,
			Commission:       60,
			HotelEarnings:    140,
			PlatformEarnings: 60,
		}
	}

	tests := []struct {
		name    string
		mutate  func(o *Order)
		wantErr error
	}{
		{name: "valid order", mutate: func(o *Order) {}},
		{name: "total drifts from items", mutate: func(o *Order) { o.TotalAmount = 250 }, wantErr: ErrTotalMismatch},
		{name: "earnings do not add up", mutate: func(o *Order) { o.HotelEarnings = 100 }, wantErr: ErrEarningsMismatch},
		{name: "platform share differs from commission", mutate: func(o *Order) { o.PlatformEarnings = 10 }, wantErr: ErrEarningsMismatch},
		{name: "no items", mutate: func(o *Order) { o.Items = nil }, wantErr: ErrEmptyOrder},
		{name: "negative quantity", mutate: func(o *Order) { o.Items[0].Quantity = -1 }, wantErr: ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := valid()
			tt.mutate(&o)
			err := o.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOrderTransition(t *testing.T) {
	tests := []struct {
		from, to string
		allowed  bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusConfirmed, OrderStatusPreparing, true},
		{OrderStatusPreparing, OrderStatusReady, true},
		{OrderStatusReady, OrderStatusDelivered, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusReady, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusReady, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusPreparing, OrderStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			o := &Order{ID: "o1", Status: tt.from}
			err := o.Transition(tt.to)
			if tt.allowed {
				assert.NoError(t, err)
				assert.Equal(t, tt.to, o.Status)
			} else {
				assert.ErrorIs(t, err, ErrInvalidStatusTransfer)
				assert.Equal(t, tt.from, o.Status)
			}
		})
	}
}

func TestIsOrderStatus(t *testing.T) {
	assert.True(t, IsOrderStatus(OrderStatusReady))
	assert.True(t, IsOrderStatus(OrderStatusCancelled))
	assert.False(t, IsOrderStatus("ready_for_pickup"))
}

func TestHotelTotals(t *testing.T) {
	hotel := Hotel{
		Menu:     []MenuItem{{ID: "m1", Name: "Dal", Category: "Main"}},
		Expenses: []Expense{{Amount: 1200}, {Amount: 800}},
		Staff:    []StaffMember{{Salary: 15000, IsActive: true}, {Salary: 9000}},
	}

	assert.Equal(t, 2000.0, hotel.TotalExpenses())
	assert.Equal(t, 24000.0, hotel.TotalSalaries())
	item, ok := hotel.MenuItem("m1")
	assert.True(t, ok)
	assert.Equal(t, "Dal", item.Name)
	_, ok = hotel.MenuItem("missing")
	assert.False(t, ok)
}

func TestSnapshotValidate(t *testing.T) {
	hotel := &Hotel{ID: "h1", TenantID: "t1"}
	order, err := NewOrder("o1", hotel, "c1", []OrderItem{{MenuItemID: "m1", Price: 100, Quantity: 1}}, DefaultCommissionRate, time.Now())
	require.NoError(t, err)

	snap := &Snapshot{Orders: []Order{*order}}
	assert.NoError(t, snap.Validate())
	assert.NoError(t, (&Snapshot{}).Validate())

	snap.Orders[0].TotalAmount = 500
	assert.ErrorIs(t, snap.Validate(), ErrTotalMismatch)
}
