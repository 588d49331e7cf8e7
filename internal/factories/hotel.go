package factories

import (
	"fmt"
	"time"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/lucsky/cuid"
)

var (
	staffRoles        = []string{"chef", "cook", "waiter", "cashier", "cleaner", "manager"}
	expenseCategories = []string{"rent", "utilities", "ingredients", "maintenance", "marketing"}
	subscriptionMix   = []string{models.SubscriptionStatusActive, models.SubscriptionStatusActive, models.SubscriptionStatusActive, models.SubscriptionStatusInactive, models.SubscriptionStatusCancelled}
	subscriptionPlan  = []string{models.SubscriptionPlanMonthly, models.SubscriptionPlanMonthly, models.SubscriptionPlanYearly}
)

type HotelFactory struct {
	menus MenuItemFactory
}

// CreateHotel builds a tenant's hotel with menu, staff, expenses incurred in
// [from, to] and a subscription.
func (hf *HotelFactory) CreateHotel(owner *models.User, from, to time.Time) *models.Hotel {
	cuisine := pick(cuisineNames())
	name := fmt.Sprintf("%s %s", fake.Person().LastName(), pick([]string{"Kitchen", "Bistro", "Dhaba", "Diner", "House", "Canteen"}))

	plan := pick(subscriptionPlan)
	end := to.AddDate(0, 1, 0)
	if plan == models.SubscriptionPlanYearly {
		end = to.AddDate(1, 0, 0)
	}
	end = end.AddDate(0, 0, -fake.IntBetween(0, 25))

	return &models.Hotel{
		ID:       cuid.New(),
		TenantID: owner.TenantID,
		OwnerID:  owner.ID,
		Name:     name,
		IsActive: fake.IntBetween(0, 9) > 0,
		Menu:     hf.menus.CreateMenu(cuisine),
		Staff:    hf.createStaff(from),
		Expenses: hf.createExpenses(from, to),
		Subscription: models.Subscription{
			Plan:    plan,
			Status:  pick(subscriptionMix),
			EndDate: end,
		},
		CreatedAt: from,
	}
}

func (hf *HotelFactory) createStaff(joinedBy time.Time) []models.StaffMember {
	n := fake.IntBetween(2, 6)
	staff := make([]models.StaffMember, 0, n)
	for i := 0; i < n; i++ {
		staff = append(staff, models.StaffMember{
			ID:       cuid.New(),
			Name:     fake.Person().Name(),
			Role:     pick(staffRoles),
			Salary:   float64(fake.IntBetween(8, 30) * 1000),
			JoinDate: joinedBy.AddDate(0, -fake.IntBetween(0, 24), 0),
			IsActive: fake.IntBetween(0, 5) > 0,
		})
	}
	return staff
}

func (hf *HotelFactory) createExpenses(from, to time.Time) []models.Expense {
	span := int(to.Sub(from).Hours() / 24)
	n := fake.IntBetween(2, 5)
	expenses := make([]models.Expense, 0, n)
	for i := 0; i < n; i++ {
		expenses = append(expenses, models.Expense{
			ID:          cuid.New(),
			Category:    pick(expenseCategories),
			Amount:      float64(fake.IntBetween(5, 60) * 100),
			Description: fake.Lorem().Sentence(5),
			Date:        from.AddDate(0, 0, fake.IntBetween(0, max(span, 0))),
		})
	}
	return expenses
}
