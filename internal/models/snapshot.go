package models

import "fmt"

// Snapshot is the in-memory read the analytics engine works on. Orders and
// hotels may come from two independent reads.
type Snapshot struct {
	Orders []Order `json:"orders"`
	Hotels []Hotel `json:"hotels"`
	Users  []User  `json:"users"`
}

// Validate checks the money invariants of every order. Every store runs it
// on what it loaded, so a corrupt order fails the read instead of skewing
// totals.
func (s *Snapshot) Validate() error {
	for i := range s.Orders {
		if err := s.Orders[i].Validate(); err != nil {
			return fmt.Errorf("invalid snapshot: %w", err)
		}
	}
	return nil
}

func (s *Snapshot) HotelByTenant(tenantID string) (*Hotel, bool) {
	for i := range s.Hotels {
		if s.Hotels[i].TenantID == tenantID {
			return &s.Hotels[i], true
		}
	}
	return nil, false
}

// Scope narrows what a store loads for a single request. TenantID limits both
// hotels and orders; CustomerID limits orders only, hotels are still needed
// to resolve menu categories. Users are loaded only when WithUsers is set.
type Scope struct {
	TenantID   string
	CustomerID string
	WithUsers  bool
}
