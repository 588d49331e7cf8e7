package factories

import (
	"fmt"
	"time"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/lucsky/cuid"
)

// Generator builds a whole platform snapshot: one admin, one sales agent, an
// owner per hotel and a shared pool of customers ordering across hotels.
type Generator struct {
	cfg            models.SeedConfig
	commissionRate float64

	users  UserFactory
	hotels HotelFactory
	orders OrderFactory
}

func NewGenerator(cfg models.SeedConfig, commissionRate float64) *Generator {
	return &Generator{
		cfg:            cfg,
		commissionRate: commissionRate,
		orders:         OrderFactory{CommissionRate: commissionRate},
	}
}

// Total is the number of steps Generate reports through progress.
func (g *Generator) Total() int {
	return g.cfg.Hotels * (1 + g.cfg.OrdersPerHotel)
}

// Generate reseeds the factories from cfg.Seed and produces the snapshot.
// progress, when set, is called once per hotel and once per order.
func (g *Generator) Generate(progress func(n int)) (*models.Snapshot, error) {
	if g.cfg.Hotels < 0 || g.cfg.Customers < 0 || g.cfg.OrdersPerHotel < 0 || g.cfg.Days <= 0 {
		return nil, fmt.Errorf("invalid seed config: %+v", g.cfg)
	}
	if g.cfg.OrdersPerHotel > 0 && g.cfg.Customers == 0 {
		return nil, fmt.Errorf("seed config has orders but no customers")
	}
	if progress == nil {
		progress = func(int) {}
	}
	Reseed(g.cfg.Seed)

	end := g.cfg.EndDate
	if end.IsZero() {
		end = time.Now().UTC()
	}
	start := end.AddDate(0, 0, -g.cfg.Days)

	snap := &models.Snapshot{
		Users:  make([]models.User, 0, 2+g.cfg.Hotels+g.cfg.Customers),
		Hotels: make([]models.Hotel, 0, g.cfg.Hotels),
		Orders: make([]models.Order, 0, g.cfg.Hotels*g.cfg.OrdersPerHotel),
	}
	snap.Users = append(snap.Users,
		*g.users.CreateUser(models.RoleAdmin, "", start),
		*g.users.CreateUser(models.RoleSalesAgent, "", start),
	)

	customers := make([]string, 0, g.cfg.Customers)
	for i := 0; i < g.cfg.Customers; i++ {
		joined := g.within(start, end)
		customer := g.users.CreateUser(models.RoleCustomer, "", joined)
		customers = append(customers, customer.ID)
		snap.Users = append(snap.Users, *customer)
	}

	for i := 0; i < g.cfg.Hotels; i++ {
		owner := g.users.CreateUser(models.RoleOwner, cuid.New(), start)
		snap.Users = append(snap.Users, *owner)

		hotel := g.hotels.CreateHotel(owner, start, end)
		snap.Hotels = append(snap.Hotels, *hotel)
		progress(1)

		for j := 0; j < g.cfg.OrdersPerHotel; j++ {
			customerID := customers[fake.IntBetween(0, len(customers)-1)]
			order, err := g.orders.CreateOrder(hotel, customerID, g.orderTime(start, end))
			if err != nil {
				return nil, fmt.Errorf("failed to create order for hotel %s: %w", hotel.ID, err)
			}
			snap.Orders = append(snap.Orders, *order)
			progress(1)
		}
	}
	return snap, nil
}

func (g *Generator) within(start, end time.Time) time.Time {
	span := int(end.Sub(start).Seconds())
	return start.Add(time.Duration(fake.IntBetween(0, span)) * time.Second)
}
