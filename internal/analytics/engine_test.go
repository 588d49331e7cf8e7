package analytics

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble_OwnerScenario(t *testing.T) {
	engine := newTestEngine(t)
	hotel := *hotelWithCosts(12000, 3000)
	orders := ordersWithin(25, 15000, 3*24*time.Hour)
	orders = append(orders, earningOrder("other-tenant", 1, 5000, testNow))

	payload, err := engine.Assemble(Owner{TenantID: "t1"}, &models.Snapshot{
		Orders: orders,
		Hotels: []models.Hotel{hotel, testHotel("other-tenant")},
	}, testNow)
	require.NoError(t, err)

	owner, ok := payload.(*OwnerAnalytics)
	require.True(t, ok)
	assert.Equal(t, RoleOwner, owner.Role())
	assert.Equal(t, 25, owner.TotalOrders)
	assert.InDelta(t, 15000, owner.TotalRevenue, 1e-6)
	assert.InDelta(t, 600, owner.AvgOrderValue, 1e-9)
	assert.Equal(t, 25, owner.RecentOrdersCount)
	assert.Equal(t, 0.30, owner.FailureRisk)
	assert.Equal(t, []string{ReasonHighExpenses}, owner.FailureReasons)
	assert.Equal(t, []string{RecommendCutCosts}, owner.Recommendations)
	assert.Len(t, owner.RevenueChart, 7)
	assert.Equal(t, Breakeven{Target: 50000, Current: owner.TotalRevenue, Percentage: 30}, owner.Breakeven)
}

func TestAssemble_OwnerHotelNotFound(t *testing.T) {
	engine := newTestEngine(t)

	payload, err := engine.Assemble(Owner{TenantID: "missing"}, &models.Snapshot{
		Hotels: []models.Hotel{testHotel("t1")},
	}, testNow)

	assert.ErrorIs(t, err, ErrHotelNotFound)
	assert.Nil(t, payload)
	assert.Equal(t, ErrorResult{Error: "hotel not found"}, NewErrorResult(err))
}

func TestAssemble_OwnerWithNoOrders(t *testing.T) {
	engine := newTestEngine(t)

	payload, err := engine.Assemble(Owner{TenantID: "t1"}, &models.Snapshot{
		Hotels: []models.Hotel{testHotel("t1", menuItem("m1", "Vada", "Snacks", 40))},
	}, testNow)
	require.NoError(t, err)

	owner := payload.(*OwnerAnalytics)
	assert.Zero(t, owner.TotalRevenue)
	assert.Zero(t, owner.AvgOrderValue)
	assert.Len(t, owner.RevenueChart, 7)
	assert.Equal(t, 0.5, owner.FailureRisk)
	assert.Len(t, owner.MenuAnalytics.NotItems, 1)
	assert.Zero(t, owner.Breakeven.Percentage)
}

func TestAssemble_BreakevenCapsAtHundred(t *testing.T) {
	engine := newTestEngine(t)
	orders := ordersWithin(10, 80000, time.Hour)

	payload, err := engine.Assemble(Owner{TenantID: "t1"}, &models.Snapshot{
		Orders: orders,
		Hotels: []models.Hotel{testHotel("t1")},
	}, testNow)
	require.NoError(t, err)

	assert.Equal(t, 100.0, payload.(*OwnerAnalytics).Breakeven.Percentage)
}

func TestAssemble_CustomerScenario(t *testing.T) {
	engine := newTestEngine(t)
	thali := menuItem("m1", "Thali", "Main", 200)
	chai := menuItem("m2", "Chai", "Drinks", 50)
	hotel := testHotel("t1", thali, chai)

	orders := []models.Order{
		placeOrder(t, hotel, "o1", "c1", testNow.Add(-3*time.Hour), line(thali, 1)),
		placeOrder(t, hotel, "o2", "c1", testNow.Add(-2*time.Hour), line(thali, 1), line(chai, 3)),
		placeOrder(t, hotel, "o3", "c1", testNow.Add(-1*time.Hour), line(thali, 1), line(chai, 5)),
		placeOrder(t, hotel, "o4", "someone-else", testNow, line(thali, 10)),
	}

	payload, err := engine.Assemble(Customer{CustomerID: "c1"}, &models.Snapshot{
		Orders: orders,
		Hotels: []models.Hotel{hotel},
	}, testNow)
	require.NoError(t, err)

	customer := payload.(*CustomerAnalytics)
	assert.Equal(t, 3, customer.TotalOrders)
	assert.InDelta(t, 1000, customer.TotalSpent, 1e-9)
	assert.Equal(t, 333.33, customer.AvgOrderValue)
	assert.Equal(t, []CategoryCount{{Category: "Drinks", Count: 8}, {Category: "Main", Count: 3}}, customer.FavoriteCategories)
	require.Len(t, customer.OrderHistory, 3)
	assert.Equal(t, "o3", customer.OrderHistory[2].ID)
}

func TestAssemble_CustomerCategoryFallbacks(t *testing.T) {
	engine := newTestEngine(t)
	order := earningOrder("t1", 1, 70, testNow)
	order.CustomerID = "c1"
	order.Items = []models.OrderItem{
		{MenuItemID: "unknown", Name: "Mystery", Price: 50, Quantity: 1},
		{MenuItemID: "x", Name: "Tagged", Price: 50, Quantity: 2, Category: "Desserts"},
	}

	payload, err := engine.Assemble(Customer{CustomerID: "c1"}, &models.Snapshot{Orders: []models.Order{order}}, testNow)
	require.NoError(t, err)

	assert.Equal(t, []CategoryCount{{Category: "Desserts", Count: 2}, {Category: "Other", Count: 1}},
		payload.(*CustomerAnalytics).FavoriteCategories)
}

func TestAssemble_CustomerHistoryLimit(t *testing.T) {
	engine := newTestEngine(t)
	var orders []models.Order
	for i := 0; i < 12; i++ {
		o := earningOrder("t1", i, 70, testNow.Add(-time.Duration(12-i)*time.Hour))
		o.CustomerID = "c1"
		orders = append(orders, o)
	}

	payload, err := engine.Assemble(Customer{CustomerID: "c1"}, &models.Snapshot{Orders: orders}, testNow)
	require.NoError(t, err)

	history := payload.(*CustomerAnalytics).OrderHistory
	require.Len(t, history, 10)
	assert.Equal(t, "t1-order-2", history[0].ID)
	assert.Equal(t, "t1-order-11", history[9].ID)

	cfg := models.DefaultAnalyticsConfig()
	cfg.HistoryLimit = 0
	unlimited, err := NewEngine(cfg)
	require.NoError(t, err)
	payload, err = unlimited.Assemble(Customer{CustomerID: "c1"}, &models.Snapshot{Orders: orders}, testNow)
	require.NoError(t, err)
	assert.Len(t, payload.(*CustomerAnalytics).OrderHistory, 12)
}

func TestAssemble_Admin(t *testing.T) {
	engine := newTestEngine(t)
	inactive := testHotel("t3")
	inactive.IsActive = false

	var orders []models.Order
	orders = append(orders, earningOrder("t1", 1, 700, testNow))
	orders = append(orders, earningOrder("t2", 1, 1400, testNow.Add(-2*24*time.Hour)))
	orders = append(orders, earningOrder("t3", 1, 7000, testNow.Add(-45*24*time.Hour)))

	users := []models.User{
		{ID: "u1", Role: models.RoleCustomer, CreatedAt: testNow.Add(-24 * time.Hour)},
		{ID: "u2", Role: models.RoleOwner, CreatedAt: testNow.Add(-90 * 24 * time.Hour)},
	}

	payload, err := engine.Assemble(Admin{}, &models.Snapshot{
		Orders: orders,
		Hotels: []models.Hotel{testHotel("t1"), testHotel("t2"), inactive},
		Users:  users,
	}, testNow)
	require.NoError(t, err)

	platform := payload.(*PlatformAnalytics)
	assert.Equal(t, 2, platform.TotalUsers)
	assert.Equal(t, 1, platform.NewUsersThisMonth)
	assert.Equal(t, 3, platform.TotalHotels)
	assert.Equal(t, 2, platform.ActiveHotels)
	assert.Equal(t, 3, platform.TotalOrders)
	assert.Equal(t, 2, platform.OrdersThisMonth)
	assert.InDelta(t, 300+600+3000, platform.PlatformRevenue, 1e-6)
	assert.Equal(t, 30.0, platform.AvgCommissionRate)
	require.Len(t, platform.TopPerformingHotels, 2)
	assert.Equal(t, "hotel-t2", platform.TopPerformingHotels[0].ID)
	assert.Equal(t, 1, platform.TopPerformingHotels[0].Orders)
	assert.Len(t, platform.RevenueChart, 7)
	assert.InDelta(t, 300, platform.RevenueChart[6].Revenue, 1e-6)
}

func TestAssemble_SalesAgent(t *testing.T) {
	engine := newTestEngine(t)
	end := testNow.AddDate(0, 1, 0)

	yearly := testHotel("t2")
	yearly.Subscription = models.Subscription{Plan: models.SubscriptionPlanYearly, Status: models.SubscriptionStatusActive, EndDate: end}
	cancelled := testHotel("t3")
	cancelled.Subscription.Status = models.SubscriptionStatusCancelled

	payload, err := engine.Assemble(SalesAgent{}, &models.Snapshot{
		Orders: []models.Order{earningOrder("t1", 1, 700, testNow)},
		Hotels: []models.Hotel{testHotel("t1"), yearly, cancelled},
	}, testNow)
	require.NoError(t, err)

	sales := payload.(*SalesAnalytics)
	assert.InDelta(t, 300, sales.TotalRevenue, 1e-6)
	assert.Equal(t, 2, sales.ActiveSubscriptions)
	assert.Equal(t, 1000.0, sales.MonthlyRecurring)
	assert.Equal(t, map[string]int{"active": 2, "inactive": 0, "cancelled": 1}, sales.SubscriptionsByStatus)
	assert.Equal(t, map[string]int{"monthly": 2, "yearly": 1}, sales.SubscriptionsByPlan)
	assert.Equal(t, Metric{Status: MetricNotComputed}, sales.ConversionRate)
	assert.Equal(t, Metric{Status: MetricNotComputed}, sales.ChurnRate)
	require.Len(t, sales.Subscriptions, 3)
	assert.Equal(t, 12000.0, sales.Subscriptions[1].Amount)
	require.NotNil(t, sales.Subscriptions[1].NextPayment)
	assert.True(t, end.Equal(*sales.Subscriptions[1].NextPayment))
	assert.Nil(t, sales.Subscriptions[0].NextPayment)
}

func TestAssemble_SalesAgentConfiguredPlaceholders(t *testing.T) {
	cfg := models.DefaultAnalyticsConfig()
	conversion, churn := 75.0, 5.0
	cfg.ConversionRate = &conversion
	cfg.ChurnRate = &churn
	engine, err := NewEngine(cfg)
	require.NoError(t, err)

	payload, err := engine.Assemble(SalesAgent{}, &models.Snapshot{}, testNow)
	require.NoError(t, err)

	sales := payload.(*SalesAnalytics)
	require.NotNil(t, sales.ConversionRate.Value)
	assert.Equal(t, 75.0, *sales.ConversionRate.Value)
	assert.Equal(t, MetricConfigured, sales.ChurnRate.Status)
}

func TestAssemble_SalesAgentIgnoresUnknownSubscriptions(t *testing.T) {
	engine := newTestEngine(t)
	blank := testHotel("t1")
	blank.Subscription = models.Subscription{}
	trial := testHotel("t2")
	trial.Subscription = models.Subscription{Plan: "trial", Status: "paused"}

	payload, err := engine.Assemble(SalesAgent{}, &models.Snapshot{Hotels: []models.Hotel{blank, trial}}, testNow)
	require.NoError(t, err)

	sales := payload.(*SalesAnalytics)
	assert.Equal(t, map[string]int{"active": 0, "inactive": 0, "cancelled": 0}, sales.SubscriptionsByStatus)
	assert.Equal(t, map[string]int{"monthly": 0, "yearly": 0}, sales.SubscriptionsByPlan)
	require.Len(t, sales.Subscriptions, 2)
	assert.Zero(t, sales.Subscriptions[0].Amount)
	assert.Zero(t, sales.Subscriptions[1].Amount)
	assert.Zero(t, sales.ActiveSubscriptions)
}

type rogueCaller struct{ Owner }

func TestAssemble_RejectsInvalidCallers(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name    string
		caller  Caller
		wantErr error
	}{
		{name: "nil caller", caller: nil, wantErr: ErrUnknownRole},
		{name: "caller outside the known set", caller: rogueCaller{}, wantErr: ErrUnknownRole},
		{name: "owner without tenant", caller: Owner{}, wantErr: ErrMissingTenant},
		{name: "customer without id", caller: Customer{}, wantErr: ErrMissingCustomer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := engine.Assemble(tt.caller, &models.Snapshot{}, testNow)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, payload)
		})
	}
}

func TestAssemble_EmptySnapshotIsWellFormed(t *testing.T) {
	engine := newTestEngine(t)

	for _, caller := range []Caller{Admin{}, SalesAgent{}, Customer{CustomerID: "c1"}} {
		payload, err := engine.Assemble(caller, nil, testNow)
		require.NoError(t, err)
		_, err = json.Marshal(payload)
		assert.NoError(t, err)
	}
}

func TestAssemble_IsIdempotent(t *testing.T) {
	engine := newTestEngine(t)
	snap := &models.Snapshot{
		Orders: ordersWithin(25, 15000, 3*24*time.Hour),
		Hotels: []models.Hotel{*hotelWithCosts(12000, 3000)},
	}

	first, err := engine.Assemble(Owner{TenantID: "t1"}, snap, testNow)
	require.NoError(t, err)
	second, err := engine.Assemble(Owner{TenantID: "t1"}, snap, testNow)
	require.NoError(t, err)

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	assert.JSONEq(t, string(a), string(b))
}

func TestOwnerAnalytics_JSONShape(t *testing.T) {
	engine := newTestEngine(t)
	payload, err := engine.Assemble(Owner{TenantID: "t1"}, &models.Snapshot{Hotels: []models.Hotel{testHotel("t1")}}, testNow)
	require.NoError(t, err)

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "error")
	chart := decoded["revenueChart"].([]interface{})
	assert.Equal(t, "2026-10-16", chart[6].(map[string]interface{})["date"])
	assert.Equal(t, float64(0), chart[6].(map[string]interface{})["revenue"])
	assert.Contains(t, decoded, "failureRisk")
	assert.Contains(t, decoded["menuAnalytics"], "hotItems")
}
