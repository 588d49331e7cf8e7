package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/chrisdamba/foodinsights/internal/models"
)

const otherCategory = "Other"

// Engine computes role-shaped analytics from a snapshot. It holds only
// configuration, so one Engine can serve concurrent requests.
type Engine struct {
	cfg models.AnalyticsConfig
	loc *time.Location
}

func NewEngine(cfg models.AnalyticsConfig) (*Engine, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg, loc: loc}, nil
}

func (e *Engine) Config() models.AnalyticsConfig { return e.cfg }

// Assemble dispatches on the caller and returns its payload. The only
// non-upstream failures are a missing hotel for an owner and an invalid
// caller.
func (e *Engine) Assemble(caller Caller, snap *models.Snapshot, now time.Time) (Payload, error) {
	if snap == nil {
		snap = &models.Snapshot{}
	}
	switch c := caller.(type) {
	case Owner:
		if c.TenantID == "" {
			return nil, ErrMissingTenant
		}
		return e.ownerAnalytics(c.TenantID, snap, now)
	case Admin:
		return e.platformAnalytics(snap, now), nil
	case SalesAgent:
		return e.salesAnalytics(snap), nil
	case Customer:
		if c.CustomerID == "" {
			return nil, ErrMissingCustomer
		}
		return e.customerAnalytics(c.CustomerID, snap), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownRole, caller)
	}
}

func (e *Engine) ownerAnalytics(tenantID string, snap *models.Snapshot, now time.Time) (*OwnerAnalytics, error) {
	hotel, ok := snap.HotelByTenant(tenantID)
	if !ok {
		return nil, ErrHotelNotFound
	}

	orders := make([]models.Order, 0, len(snap.Orders))
	var totalRevenue float64
	for _, o := range snap.Orders {
		if o.TenantID != tenantID {
			continue
		}
		orders = append(orders, o)
		totalRevenue += o.HotelEarnings
	}

	risk := ScoreFailureRisk(orders, hotel, now, e.cfg)

	return &OwnerAnalytics{
		TenantID:          tenantID,
		HotelID:           hotel.ID,
		HotelName:         hotel.Name,
		TotalRevenue:      totalRevenue,
		TotalOrders:       len(orders),
		AvgOrderValue:     average(totalRevenue, len(orders)),
		RecentOrdersCount: risk.RecentOrders,
		RevenueChart:      BuildRevenueSeries(orders, now, e.cfg.ChartDays, HotelEarnings, e.loc),
		MenuAnalytics:     ClassifyMenu(hotel.Menu, orders, e.cfg.TopItems, e.cfg.ItemRating),
		FailureRisk:       risk.Score,
		FailureReasons:    risk.Reasons,
		Recommendations:   risk.Recommendations,
		Breakeven:         breakeven(totalRevenue, e.cfg.BreakevenTarget),
	}, nil
}

func (e *Engine) platformAnalytics(snap *models.Snapshot, now time.Time) *PlatformAnalytics {
	cutoff := now.Add(-time.Duration(e.cfg.RiskWindowDays) * 24 * time.Hour)

	result := &PlatformAnalytics{
		TotalUsers:        len(snap.Users),
		TotalHotels:       len(snap.Hotels),
		TotalOrders:       len(snap.Orders),
		AvgCommissionRate: round2(e.cfg.CommissionRate * 100),
		RevenueChart:      BuildRevenueSeries(snap.Orders, now, e.cfg.ChartDays, PlatformEarnings, e.loc),
	}
	for _, u := range snap.Users {
		if !u.CreatedAt.Before(cutoff) {
			result.NewUsersThisMonth++
		}
	}
	for _, o := range snap.Orders {
		result.PlatformRevenue += o.PlatformEarnings
		if !o.CreatedAt.Before(cutoff) {
			result.OrdersThisMonth++
		}
	}

	byHotel := make(map[string]*HotelPerformance)
	ranked := make([]HotelPerformance, 0, len(snap.Hotels))
	for _, h := range snap.Hotels {
		if !h.IsActive {
			continue
		}
		result.ActiveHotels++
		ranked = append(ranked, HotelPerformance{ID: h.ID, Name: h.Name})
	}
	for i := range ranked {
		byHotel[ranked[i].ID] = &ranked[i]
	}
	for _, o := range snap.Orders {
		if perf, ok := byHotel[o.HotelID]; ok {
			perf.Revenue += o.HotelEarnings
			perf.Orders++
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Revenue > ranked[j].Revenue })
	result.TopPerformingHotels = head(ranked, e.cfg.TopItems)

	return result
}

func (e *Engine) salesAnalytics(snap *models.Snapshot) *SalesAnalytics {
	result := &SalesAnalytics{
		SubscriptionsByStatus: map[string]int{
			models.SubscriptionStatusActive:    0,
			models.SubscriptionStatusInactive:  0,
			models.SubscriptionStatusCancelled: 0,
		},
		SubscriptionsByPlan: map[string]int{
			models.SubscriptionPlanMonthly: 0,
			models.SubscriptionPlanYearly:  0,
		},
		ConversionRate: metricFrom(e.cfg.ConversionRate),
		ChurnRate:      metricFrom(e.cfg.ChurnRate),
		Subscriptions:  make([]SubscriptionSummary, 0, len(snap.Hotels)),
	}
	for _, o := range snap.Orders {
		result.TotalRevenue += o.PlatformEarnings
	}

	var activeMonthly int
	for _, h := range snap.Hotels {
		sub := h.Subscription
		if _, ok := result.SubscriptionsByStatus[sub.Status]; ok {
			result.SubscriptionsByStatus[sub.Status]++
		}
		if _, ok := result.SubscriptionsByPlan[sub.Plan]; ok {
			result.SubscriptionsByPlan[sub.Plan]++
		}
		if sub.Status == models.SubscriptionStatusActive {
			result.ActiveSubscriptions++
			if sub.Plan == models.SubscriptionPlanMonthly {
				activeMonthly++
			}
		}

		summary := SubscriptionSummary{
			ID:        h.ID,
			HotelName: h.Name,
			Plan:      sub.Plan,
			Status:    sub.Status,
			Amount:    e.subscriptionAmount(sub.Plan),
		}
		if !sub.EndDate.IsZero() {
			next := sub.EndDate
			summary.NextPayment = &next
		}
		result.Subscriptions = append(result.Subscriptions, summary)
	}
	result.MonthlyRecurring = float64(activeMonthly) * e.cfg.MonthlyFee

	return result
}

// subscriptionAmount is zero for a plan that is neither monthly nor yearly.
func (e *Engine) subscriptionAmount(plan string) float64 {
	switch plan {
	case models.SubscriptionPlanMonthly:
		return e.cfg.MonthlyFee
	case models.SubscriptionPlanYearly:
		return e.cfg.YearlyFee
	default:
		return 0
	}
}

func (e *Engine) customerAnalytics(customerID string, snap *models.Snapshot) *CustomerAnalytics {
	orders := make([]models.Order, 0)
	var totalSpent float64
	for _, o := range snap.Orders {
		if o.CustomerID != customerID {
			continue
		}
		orders = append(orders, o)
		totalSpent += o.TotalAmount
	}

	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.Before(orders[j].CreatedAt) })
	recent := orders
	if limit := e.cfg.HistoryLimit; limit > 0 && len(recent) > limit {
		recent = recent[len(recent)-limit:]
	}
	history := make([]OrderSummary, 0, len(recent))
	for _, o := range recent {
		history = append(history, OrderSummary{
			ID:          o.ID,
			HotelID:     o.HotelID,
			Status:      o.Status,
			TotalAmount: o.TotalAmount,
			Items:       len(o.Items),
			CreatedAt:   o.CreatedAt,
		})
	}

	return &CustomerAnalytics{
		CustomerID:         customerID,
		TotalOrders:        len(orders),
		TotalSpent:         totalSpent,
		AvgOrderValue:      average(totalSpent, len(orders)),
		FavoriteCategories: favoriteCategories(orders, snap.Hotels, e.cfg.TopItems),
		OrderHistory:       history,
	}
}

// favoriteCategories ranks categories by ordered quantity. A line's category
// comes from the line itself, then from its hotel's menu, then "Other".
func favoriteCategories(orders []models.Order, hotels []models.Hotel, limit int) []CategoryCount {
	menus := make(map[string]map[string]string, len(hotels))
	for _, h := range hotels {
		categories := make(map[string]string, len(h.Menu))
		for _, item := range h.Menu {
			categories[item.ID] = item.Category
		}
		menus[h.ID] = categories
	}

	counts := make([]CategoryCount, 0)
	index := make(map[string]int)
	for _, o := range orders {
		for _, line := range o.Items {
			category := line.Category
			if category == "" {
				category = menus[o.HotelID][line.MenuItemID]
			}
			if category == "" {
				category = otherCategory
			}
			i, ok := index[category]
			if !ok {
				i = len(counts)
				index[category] = i
				counts = append(counts, CategoryCount{Category: category})
			}
			counts[i].Count += line.Quantity
		}
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	return head(counts, limit)
}

func breakeven(current, target float64) Breakeven {
	b := Breakeven{Target: target, Current: current}
	if target > 0 {
		b.Percentage = round2(min(current/target*100, 100))
	}
	return b
}

func average(total float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return round2(total / float64(n))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
