package analytics

import "time"

// Payload is a role-shaped analytics result. Every implementation is plain
// data and serialises to JSON directly.
type Payload interface {
	Role() Role
}

type Breakeven struct {
	Target     float64 `json:"target"`
	Current    float64 `json:"current"`
	Percentage float64 `json:"percentage"`
}

type OwnerAnalytics struct {
	TenantID          string          `json:"tenantId"`
	HotelID           string          `json:"hotelId"`
	HotelName         string          `json:"hotelName"`
	TotalRevenue      float64         `json:"totalRevenue"`
	TotalOrders       int             `json:"totalOrders"`
	AvgOrderValue     float64         `json:"avgOrderValue"`
	RecentOrdersCount int             `json:"recentOrdersCount"`
	RevenueChart      []RevenueBucket `json:"revenueChart"`
	MenuAnalytics     MenuPerformance `json:"menuAnalytics"`
	FailureRisk       float64         `json:"failureRisk"`
	FailureReasons    []string        `json:"failureReasons"`
	Recommendations   []string        `json:"recommendations"`
	Breakeven         Breakeven       `json:"breakeven"`
}

type HotelPerformance struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type PlatformAnalytics struct {
	TotalUsers          int                `json:"totalUsers"`
	TotalHotels         int                `json:"totalHotels"`
	ActiveHotels        int                `json:"activeHotels"`
	TotalOrders         int                `json:"totalOrders"`
	PlatformRevenue     float64            `json:"platformRevenue"`
	NewUsersThisMonth   int                `json:"newUsersThisMonth"`
	OrdersThisMonth     int                `json:"ordersThisMonth"`
	AvgCommissionRate   float64            `json:"avgCommissionRate"` // percent
	RevenueChart        []RevenueBucket    `json:"revenueChart"`
	TopPerformingHotels []HotelPerformance `json:"topPerformingHotels"`
}

const (
	MetricConfigured  = "configured"
	MetricNotComputed = "not_computed"
)

// Metric is a figure that is not derived from data yet. Value is nil and
// Status is not_computed until someone configures or computes it.
type Metric struct {
	Value  *float64 `json:"value"`
	Status string   `json:"status"`
}

func metricFrom(v *float64) Metric {
	if v == nil {
		return Metric{Status: MetricNotComputed}
	}
	value := *v
	return Metric{Value: &value, Status: MetricConfigured}
}

type SubscriptionSummary struct {
	ID          string     `json:"id"`
	HotelName   string     `json:"hotelName"`
	Plan        string     `json:"plan"`
	Status      string     `json:"status"`
	Amount      float64    `json:"amount"`
	NextPayment *time.Time `json:"nextPayment,omitempty"`
}

type SalesAnalytics struct {
	TotalRevenue          float64               `json:"totalRevenue"`
	ActiveSubscriptions   int                   `json:"activeSubscriptions"`
	SubscriptionsByStatus map[string]int        `json:"subscriptionsByStatus"`
	SubscriptionsByPlan   map[string]int        `json:"subscriptionsByPlan"`
	MonthlyRecurring      float64               `json:"monthlyRecurring"`
	ConversionRate        Metric                `json:"conversionRate"`
	ChurnRate             Metric                `json:"churnRate"`
	Subscriptions         []SubscriptionSummary `json:"subscriptions"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type OrderSummary struct {
	ID          string    `json:"id"`
	HotelID     string    `json:"hotelId"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"totalAmount"`
	Items       int       `json:"items"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CustomerAnalytics struct {
	CustomerID         string          `json:"customerId"`
	TotalOrders        int             `json:"totalOrders"`
	TotalSpent         float64         `json:"totalSpent"`
	AvgOrderValue      float64         `json:"avgOrderValue"`
	FavoriteCategories []CategoryCount `json:"favoriteCategories"`
	OrderHistory       []OrderSummary  `json:"orderHistory"`
}

func (*OwnerAnalytics) Role() Role    { return RoleOwner }
func (*PlatformAnalytics) Role() Role { return RoleAdmin }
func (*SalesAnalytics) Role() Role    { return RoleSalesAgent }
func (*CustomerAnalytics) Role() Role { return RoleCustomer }

// ErrorResult is what boundaries return instead of a payload.
type ErrorResult struct {
	Error string `json:"error"`
}

func NewErrorResult(err error) ErrorResult {
	return ErrorResult{Error: err.Error()}
}
