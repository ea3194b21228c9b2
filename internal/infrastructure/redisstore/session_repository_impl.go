package redisstore

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-storefront/internal/domain/entity"
	"github.com/oksasatya/go-storefront/internal/domain/repository"
)

// SessionRepository keeps sessions as Redis hashes under user:session:<id>.
type SessionRepository struct {
	rdb *redis.Client
}

func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	return &SessionRepository{rdb: rdb}
}

func sessionKey(userID int64) string {
	return "user:session:" + strconv.FormatInt(userID, 10)
}

func (r *SessionRepository) Save(ctx context.Context, s entity.Session, ttl time.Duration) error {
	key := sessionKey(s.UserID)
	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, map[string]any{
		"user_id":    s.UserID,
		"email":      s.Email,
		"sid":        s.SID,
		"created_at": s.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	pipe.Expire(ctx, key, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *SessionRepository) Get(ctx context.Context, userID int64) (*entity.Session, error) {
	data, err := r.rdb.HGetAll(ctx, sessionKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || data["sid"] == "" {
		return nil, repository.ErrNotFound
	}
	s := &entity.Session{UserID: userID, Email: data["email"], SID: data["sid"]}
	if t, err := time.Parse(time.RFC3339Nano, data["created_at"]); err == nil {
		s.CreatedAt = t
	}
	return s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, userID int64) error {
	return r.rdb.Del(ctx, sessionKey(userID)).Err()
}

var _ repository.SessionRepository = (*SessionRepository)(nil)
