package repository

import (
	"context"

	"github.com/oksasatya/go-storefront/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Returned users always carry their roles.
type UserRepository interface {
	// Create inserts u and links it to the named roles in one transaction.
	Create(ctx context.Context, u *entity.User, roles ...string) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	// Delete removes the user, its role links, and clears ownership of its orders.
	Delete(ctx context.Context, id int64) error
	// AddRole links the user to the named role; linking twice is a no-op.
	AddRole(ctx context.Context, userID int64, role string) error
}
