package postgres

import (
	"context"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) BulkCreate(ctx context.Context, users []*models.User) error {
	_, err := r.db.CopyFrom(
		ctx,
		pgx.Identifier{"users"},
		[]string{"id", "name", "email", "role", "tenant_id", "created_at"},
		pgx.CopyFromSlice(len(users), func(i int) ([]interface{}, error) {
			return []interface{}{
				users[i].ID,
				users[i].Name,
				users[i].Email,
				users[i].Role,
				users[i].TenantID,
				users[i].CreatedAt,
			}, nil
		}),
	)
	return err
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
        INSERT INTO users (id, name, email, role, tenant_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Role,
		user.TenantID,
		user.CreatedAt,
	)
	return err
}

func (r *UserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, email, role, tenant_id, created_at FROM users`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.Role,
			&user.TenantID,
			&user.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

func (r *UserRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, "TRUNCATE TABLE users CASCADE")
	return err
}
