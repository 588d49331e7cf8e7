package factories

import (
	"strings"
	"time"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/lucsky/cuid"
)

type UserFactory struct{}

func (uf *UserFactory) CreateUser(role, tenantID string, createdAt time.Time) *models.User {
	name := fake.Person().Name()
	return &models.User{
		ID:        cuid.New(),
		Name:      name,
		Email:     uf.email(name),
		Role:      role,
		TenantID:  tenantID,
		CreatedAt: createdAt,
	}
}

func (uf *UserFactory) email(name string) string {
	local := strings.ToLower(strings.Join(strings.Fields(name), "."))
	local = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, local)
	return local + "@" + fake.Internet().FreeEmailDomain()
}
