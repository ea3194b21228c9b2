package repository

import (
	"context"

	"github.com/oksasatya/go-storefront/internal/domain/entity"
)

type RoleRepository interface {
	// FindOrCreate returns the role with the given name, creating it when missing.
	FindOrCreate(ctx context.Context, name, description string) (*entity.Role, error)
	GetByName(ctx context.Context, name string) (*entity.Role, error)
}
