package analytics

import (
	"time"

	"github.com/chrisdamba/foodinsights/internal/models"
)

const DateLayout = "2006-01-02"

// Earnings picks which side of the commission split a report counts.
type Earnings func(o *models.Order) float64

func HotelEarnings(o *models.Order) float64 { return o.HotelEarnings }

func PlatformEarnings(o *models.Order) float64 { return o.PlatformEarnings }

type RevenueBucket struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// BuildRevenueSeries returns exactly days buckets, oldest first, ending with
// the calendar day of now in loc. Orders outside the window are ignored.
func BuildRevenueSeries(orders []models.Order, now time.Time, days int, earnings Earnings, loc *time.Location) []RevenueBucket {
	if days <= 0 {
		return []RevenueBucket{}
	}
	if loc == nil {
		loc = time.UTC
	}
	if earnings == nil {
		earnings = HotelEarnings
	}

	today := startOfDay(now, loc)
	buckets := make([]RevenueBucket, days)
	index := make(map[string]int, days)
	for i := range buckets {
		date := today.AddDate(0, 0, i-(days-1)).Format(DateLayout)
		buckets[i].Date = date
		index[date] = i
	}

	for i := range orders {
		date := orders[i].CreatedAt.In(loc).Format(DateLayout)
		idx, ok := index[date]
		if !ok {
			continue
		}
		buckets[idx].Revenue += earnings(&orders[i])
		buckets[idx].Orders++
	}
	return buckets
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
