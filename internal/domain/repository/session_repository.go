package repository

import (
	"context"
	"time"

	"github.com/oksasatya/go-storefront/internal/domain/entity"
)

// SessionRepository stores at most one live session per user.
type SessionRepository interface {
	Save(ctx context.Context, s entity.Session, ttl time.Duration) error
	Get(ctx context.Context, userID int64) (*entity.Session, error)
	Delete(ctx context.Context, userID int64) error
}
