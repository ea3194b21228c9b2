package repository

import (
	"context"

	"github.com/oksasatya/go-storefront/internal/domain/entity"
)

type ItemRepository interface {
	// List returns all items ordered by id.
	List(ctx context.Context) ([]entity.Item, error)
	GetByID(ctx context.Context, id int64) (*entity.Item, error)
	Create(ctx context.Context, it *entity.Item) error
	Update(ctx context.Context, it *entity.Item) error
	Delete(ctx context.Context, id int64) error
}
