package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-storefront/internal/domain/entity"
	"github.com/oksasatya/go-storefront/internal/domain/repository"
)

type RoleRepository struct {
	pool *pgxpool.Pool
}

func NewRoleRepository(pool *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{pool: pool}
}

func (r *RoleRepository) FindOrCreate(ctx context.Context, name, description string) (*entity.Role, error) {
	role := &entity.Role{}
	// DO UPDATE keeps RETURNING populated when the row already exists.
	err := r.pool.QueryRow(ctx, `
		INSERT INTO roles (name, description)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, description
	`, name, description).Scan(&role.ID, &role.Name, &role.Description)
	if err != nil {
		return nil, mapErr(err)
	}
	return role, nil
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	role := &entity.Role{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, description FROM roles WHERE name = $1
	`, name).Scan(&role.ID, &role.Name, &role.Description)
	if err != nil {
		return nil, mapErr(err)
	}
	return role, nil
}

var _ repository.RoleRepository = (*RoleRepository)(nil)
