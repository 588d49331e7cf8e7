package analytics

import (
	"sort"

	"github.com/chrisdamba/foodinsights/internal/models"
)

type ItemStats struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Price      float64  `json:"price"`
	OrderCount int      `json:"orderCount"`
	Revenue    float64  `json:"revenue"`
	Rating     *float64 `json:"rating"`
}

type MenuPerformance struct {
	HotItems   []ItemStats `json:"hotItems"`
	NotItems   []ItemStats `json:"notItems"`
	TopRevenue []ItemStats `json:"topRevenue"`
}

// ClassifyMenu ranks the current menu by ordered quantity and revenue. Order
// lines for items no longer on the menu are not counted. Ties keep menu order.
func ClassifyMenu(menu []models.MenuItem, orders []models.Order, limit int, rating *float64) MenuPerformance {
	stats := make([]ItemStats, 0, len(menu))
	byID := make(map[string]int, len(menu))
	for _, item := range menu {
		if _, dup := byID[item.ID]; dup {
			continue
		}
		byID[item.ID] = len(stats)
		stats = append(stats, ItemStats{
			ID:       item.ID,
			Name:     item.Name,
			Category: item.Category,
			Price:    item.Price,
			Rating:   rating,
		})
	}

	for _, order := range orders {
		for _, line := range order.Items {
			idx, ok := byID[line.MenuItemID]
			if !ok {
				continue
			}
			stats[idx].OrderCount += line.Quantity
			stats[idx].Revenue += line.Price * float64(line.Quantity)
		}
	}

	hot := make([]ItemStats, len(stats))
	copy(hot, stats)
	sort.SliceStable(hot, func(i, j int) bool { return hot[i].OrderCount > hot[j].OrderCount })

	top := make([]ItemStats, len(stats))
	copy(top, stats)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Revenue > top[j].Revenue })

	not := make([]ItemStats, 0)
	for _, s := range stats {
		if len(not) == limit {
			break
		}
		if s.OrderCount == 0 {
			not = append(not, s)
		}
	}

	return MenuPerformance{
		HotItems:   head(hot, limit),
		NotItems:   not,
		TopRevenue: head(top, limit),
	}
}

func head[T any](s []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(s) > n {
		return s[:n]
	}
	return s
}
