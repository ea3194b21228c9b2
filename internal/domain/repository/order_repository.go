package repository

import (
	"context"

	"github.com/oksasatya/go-storefront/internal/domain/entity"
)

type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	// ListByUser returns the user's orders ordered by id.
	ListByUser(ctx context.Context, userID int64) ([]entity.Order, error)
}
