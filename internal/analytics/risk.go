package analytics

import (
	"time"

	"github.com/chrisdamba/foodinsights/internal/models"
)

const (
	ReasonLowRevenue    = "Low monthly revenue"
	ReasonLowOrders     = "Low order frequency"
	ReasonHighExpenses  = "High operational expenses"
	ReasonHighStaffCost = "High staff costs"

	RecommendPromotions  = "Consider promotional offers"
	RecommendMarketing   = "Improve marketing reach"
	RecommendCutCosts    = "Optimize operational costs"
	RecommendReviewStaff = "Review staff allocation"
)

type FailureRisk struct {
	Score           float64  `json:"score"`
	Reasons         []string `json:"reasons"`
	Recommendations []string `json:"recommendations"`
	RecentRevenue   float64  `json:"recentRevenue"`
	RecentOrders    int      `json:"recentOrders"`
}

type riskCheck struct {
	triggered      bool
	delta          float64
	reason         string
	recommendation string
}

// ScoreFailureRisk adds up four independent checks over the orders created in
// the risk window. Cost checks compare against a multiple of the recent
// revenue, so zero revenue with any positive cost triggers them.
func ScoreFailureRisk(orders []models.Order, hotel *models.Hotel, now time.Time, cfg models.AnalyticsConfig) FailureRisk {
	recent := recentOrders(orders, now, cfg.RiskWindowDays)
	var recentRevenue float64
	for i := range recent {
		recentRevenue += recent[i].HotelEarnings
	}

	var expenses, salaries float64
	if hotel != nil {
		expenses = hotel.TotalExpenses()
		salaries = hotel.TotalSalaries()
	}

	checks := []riskCheck{
		{recentRevenue < cfg.LowRevenueThreshold, cfg.LowRevenueDelta, ReasonLowRevenue, RecommendPromotions},
		{len(recent) < cfg.LowOrderThreshold, cfg.LowOrderDelta, ReasonLowOrders, RecommendMarketing},
		{expenses > cfg.ExpenseRatio*recentRevenue, cfg.ExpenseDelta, ReasonHighExpenses, RecommendCutCosts},
		{salaries > cfg.StaffCostRatio*recentRevenue, cfg.StaffCostDelta, ReasonHighStaffCost, RecommendReviewStaff},
	}

	risk := FailureRisk{
		Reasons:         []string{},
		Recommendations: []string{},
		RecentRevenue:   recentRevenue,
		RecentOrders:    len(recent),
	}
	for _, c := range checks {
		if !c.triggered {
			continue
		}
		risk.Score += c.delta
		risk.Reasons = append(risk.Reasons, c.reason)
		risk.Recommendations = append(risk.Recommendations, c.recommendation)
	}
	risk.Score = round2(clamp(risk.Score, 0, 1))
	return risk
}

// recentOrders keeps orders created at or after now minus the window.
func recentOrders(orders []models.Order, now time.Time, windowDays int) []models.Order {
	cutoff := now.Add(-time.Duration(windowDays) * 24 * time.Hour)
	recent := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if !o.CreatedAt.Before(cutoff) {
			recent = append(recent, o)
		}
	}
	return recent
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
