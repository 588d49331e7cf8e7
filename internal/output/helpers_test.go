package output

import (
	"fmt"
	"time"

	"github.com/chrisdamba/foodinsights/internal/analytics"
)

var generatedAt = time.Date(2026, 10, 16, 15, 30, 0, 0, time.UTC)

func ownerPayload() *analytics.OwnerAnalytics {
	biryani := analytics.ItemStats{ID: "m1", Name: "Biryani", Category: "Main", Price: 300, OrderCount: 4, Revenue: 1200}
	return &analytics.OwnerAnalytics{
		TenantID:     "t1",
		HotelID:      "h1",
		HotelName:    "Spice Route",
		TotalRevenue: 840,
		TotalOrders:  4,
		RevenueChart: []analytics.RevenueBucket{
			{Date: "2026-10-15", Revenue: 420, Orders: 2},
			{Date: "2026-10-16", Revenue: 420, Orders: 2},
		},
		MenuAnalytics: analytics.MenuPerformance{
			HotItems:   []analytics.ItemStats{biryani},
			NotItems:   []analytics.ItemStats{{ID: "m2", Name: "Raita", Category: "Sides", Price: 40}},
			TopRevenue: []analytics.ItemStats{biryani},
		},
		FailureReasons:  []string{},
		Recommendations: []string{},
	}
}

func adminPayload() *analytics.PlatformAnalytics {
	return &analytics.PlatformAnalytics{
		TotalHotels:  2,
		ActiveHotels: 2,
		RevenueChart: []analytics.RevenueBucket{{Date: "2026-10-16", Revenue: 360, Orders: 4}},
		TopPerformingHotels: []analytics.HotelPerformance{
			{ID: "h1", Name: "Spice Route", Revenue: 840, Orders: 4},
			{ID: "h2", Name: "Coastal Kitchen", Revenue: 300, Orders: 1},
		},
	}
}

type recordingDestination struct {
	topics []string
	msgs   [][]byte
	failOn string
	closed bool
}

func (r *recordingDestination) WriteMessage(topic string, msg []byte) error {
	if topic == r.failOn {
		return fmt.Errorf("broker unavailable")
	}
	r.topics = append(r.topics, topic)
	r.msgs = append(r.msgs, msg)
	return nil
}

func (r *recordingDestination) Close() error {
	r.closed = true
	return nil
}
