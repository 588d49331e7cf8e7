package analytics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chrisdamba/foodinsights/internal/models"
)

var (
	ErrUnknownRole     = errors.New("unknown caller role")
	ErrMissingTenant   = errors.New("owner caller requires a tenant id")
	ErrMissingCustomer = errors.New("customer caller requires a customer id")
	ErrHotelNotFound   = errors.New("hotel not found")
)

type Role string

const (
	RoleOwner      Role = models.RoleOwner
	RoleAdmin      Role = models.RoleAdmin
	RoleSalesAgent Role = models.RoleSalesAgent
	RoleCustomer   Role = models.RoleCustomer
)

// Caller identifies who is asking for analytics. The set of implementations
// is closed: Owner, Admin, SalesAgent and Customer.
type Caller interface {
	Role() Role
	caller()
}

type Owner struct {
	TenantID string
}

type Admin struct{}

type SalesAgent struct{}

type Customer struct {
	CustomerID string
}

func (Owner) Role() Role      { return RoleOwner }
func (Admin) Role() Role      { return RoleAdmin }
func (SalesAgent) Role() Role { return RoleSalesAgent }
func (Customer) Role() Role   { return RoleCustomer }

func (Owner) caller()      {}
func (Admin) caller()      {}
func (SalesAgent) caller() {}
func (Customer) caller()   {}

// ParseCaller turns the role string carried by a token or a CLI flag into a
// Caller. Anything outside the four known roles is rejected.
func ParseCaller(role, tenantID, customerID string) (Caller, error) {
	switch {
	case strings.EqualFold(role, string(RoleOwner)):
		if tenantID == "" {
			return nil, ErrMissingTenant
		}
		return Owner{TenantID: tenantID}, nil
	case strings.EqualFold(role, string(RoleAdmin)):
		return Admin{}, nil
	case strings.EqualFold(role, string(RoleSalesAgent)):
		return SalesAgent{}, nil
	case strings.EqualFold(role, string(RoleCustomer)):
		if customerID == "" {
			return nil, ErrMissingCustomer
		}
		return Customer{CustomerID: customerID}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
}

// ScopeFor tells a store how much of the platform a caller needs.
func ScopeFor(c Caller) models.Scope {
	switch c := c.(type) {
	case Owner:
		return models.Scope{TenantID: c.TenantID}
	case Customer:
		return models.Scope{CustomerID: c.CustomerID}
	case Admin:
		return models.Scope{WithUsers: true}
	default:
		return models.Scope{}
	}
}
