package factories

import (
	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/lucsky/cuid"
)

type dish struct {
	name     string
	category string
	minPrice int
	maxPrice int
}

var cuisines = map[string][]dish{
	"Indian": {
		{"Butter Chicken", "Main Course", 280, 380},
		{"Paneer Tikka", "Appetizer", 220, 300},
		{"Chicken Biryani", "Rice", 250, 350},
		{"Dal Makhani", "Main Course", 180, 260},
		{"Garlic Naan", "Bread", 40, 70},
		{"Gulab Jamun", "Dessert", 60, 100},
		{"Masala Chai", "Beverage", 25, 50},
		{"Samosa", "Appetizer", 30, 60},
	},
	"Chinese": {
		{"Kung Pao Chicken", "Main Course", 260, 340},
		{"Veg Fried Rice", "Rice", 160, 220},
		{"Dumplings", "Appetizer", 150, 220},
		{"Hakka Noodles", "Main Course", 170, 240},
		{"Hot and Sour Soup", "Soup", 110, 160},
		{"Jasmine Tea", "Beverage", 60, 90},
	},
	"Italian": {
		{"Margherita Pizza", "Main Course", 300, 420},
		{"Spaghetti Carbonara", "Main Course", 320, 440},
		{"Bruschetta", "Appetizer", 160, 220},
		{"Tiramisu", "Dessert", 180, 260},
		{"Garlic Bread", "Bread", 90, 140},
		{"Lemonade", "Beverage", 70, 110},
	},
	"Street Food": {
		{"Pav Bhaji", "Main Course", 100, 160},
		{"Vada Pav", "Snacks", 20, 40},
		{"Pani Puri", "Snacks", 30, 60},
		{"Kathi Roll", "Main Course", 90, 150},
		{"Kulfi", "Dessert", 40, 80},
		{"Sugarcane Juice", "Beverage", 30, 50},
	},
}

type MenuItemFactory struct{}

// CreateMenu draws between 4 and all dishes of a cuisine, in catalogue order.
func (mf *MenuItemFactory) CreateMenu(cuisine string) []models.MenuItem {
	dishes := cuisines[cuisine]
	n := fake.IntBetween(min(4, len(dishes)), len(dishes))
	skip := len(dishes) - n

	menu := make([]models.MenuItem, 0, n)
	for _, d := range dishes {
		if skip > 0 && fake.IntBetween(0, 3) == 0 {
			skip--
			continue
		}
		if len(menu) == n {
			break
		}
		menu = append(menu, mf.CreateMenuItem(d))
	}
	return menu
}

func (mf *MenuItemFactory) CreateMenuItem(d dish) models.MenuItem {
	return models.MenuItem{
		ID:          cuid.New(),
		Name:        d.name,
		Description: fake.Lorem().Sentence(8),
		Category:    d.category,
		Price:       float64(fake.IntBetween(d.minPrice/10, d.maxPrice/10) * 10),
		IsAvailable: fake.IntBetween(0, 9) > 0,
		PrepTime:    float64(fake.IntBetween(5, 35)),
	}
}

func cuisineNames() []string {
	// fixed order keeps seeded runs reproducible
	return []string{"Indian", "Chinese", "Italian", "Street Food"}
}
