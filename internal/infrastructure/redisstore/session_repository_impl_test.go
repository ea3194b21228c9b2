package redisstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-storefront/internal/domain/entity"
	"github.com/oksasatya/go-storefront/internal/domain/repository"
	"github.com/oksasatya/go-storefront/pkg/helpers"
)

// Runs against a real Redis when TEST_REDIS_ADDR is set.
func newRepo(t *testing.T) *SessionRepository {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	rdb, err := helpers.ConnectRedis(context.Background(), addr, os.Getenv("TEST_REDIS_PASSWORD"), 15)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return NewSessionRepository(rdb)
}

func TestSessionRepository_SaveReplacesPrevious(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	const uid = int64(987654321)
	t.Cleanup(func() { _ = repo.Delete(ctx, uid) })

	require.NoError(t, repo.Save(ctx, entity.Session{UserID: uid, Email: "a@b.co", SID: "one", CreatedAt: time.Now()}, time.Minute))
	require.NoError(t, repo.Save(ctx, entity.Session{UserID: uid, Email: "a@b.co", SID: "two", CreatedAt: time.Now()}, time.Minute))

	got, err := repo.Get(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "two", got.SID)
	assert.Equal(t, "a@b.co", got.Email)

	require.NoError(t, repo.Delete(ctx, uid))
	_, err = repo.Get(ctx, uid)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
