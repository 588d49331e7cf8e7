package models

import "time"

type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	IsAvailable bool    `json:"is_available"`
	PrepTime    float64 `json:"prep_time"` // Preparation time in minutes
}

type StaffMember struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	Salary   float64   `json:"salary"` // monthly
	JoinDate time.Time `json:"join_date"`
	IsActive bool      `json:"is_active"`
}

type Expense struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
}

type Subscription struct {
	Plan    string    `json:"plan"`   // monthly, yearly
	Status  string    `json:"status"` // active, inactive, cancelled
	EndDate time.Time `json:"end_date"`
}

type Hotel struct {
	ID           string        `json:"id"`
	TenantID     string        `json:"tenant_id"`
	OwnerID      string        `json:"owner_id"`
	Name         string        `json:"name"`
	IsActive     bool          `json:"is_active"`
	Menu         []MenuItem    `json:"menu"`
	Staff        []StaffMember `json:"staff"`
	Expenses     []Expense     `json:"expenses"`
	Subscription Subscription  `json:"subscription"`
	CreatedAt    time.Time     `json:"created_at"`
}

func (h *Hotel) TotalExpenses() float64 {
	var total float64
	for _, e := range h.Expenses {
		total += e.Amount
	}
	return total
}

// TotalSalaries sums the monthly salary of every staff member on the books,
// active or not.
func (h *Hotel) TotalSalaries() float64 {
	var total float64
	for _, s := range h.Staff {
		total += s.Salary
	}
	return total
}

func (h *Hotel) MenuItem(id string) (MenuItem, bool) {
	for _, item := range h.Menu {
		if item.ID == id {
			return item, true
		}
	}
	return MenuItem{}, false
}
