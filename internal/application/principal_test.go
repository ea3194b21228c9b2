package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-storefront/internal/application"
	"github.com/oksasatya/go-storefront/internal/domain/entity"
)

func TestAuthorize_NoPrincipal(t *testing.T) {
	_, err := application.Authorize(context.Background(), application.Authenticated())
	assert.ErrorIs(t, err, application.ErrAuth)
}

func TestAuthorize_Policies(t *testing.T) {
	endUser := &application.Principal{UserID: 1, Roles: []string{entity.RoleEndUser}}
	admin := &application.Principal{UserID: 2, Roles: []string{entity.RoleEndUser, entity.RoleAdmin}}
	adminOnly := application.All(application.Authenticated(), application.RequireRole(entity.RoleAdmin))

	ctx := application.WithPrincipal(context.Background(), endUser)
	p, err := application.Authorize(ctx, application.Authenticated())
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.UserID)

	_, err = application.Authorize(ctx, adminOnly)
	assert.ErrorIs(t, err, application.ErrForbidden)
	assert.NotErrorIs(t, err, application.ErrAuth)

	ctx = application.WithPrincipal(context.Background(), admin)
	_, err = application.Authorize(ctx, adminOnly)
	assert.NoError(t, err)
}

func TestPrincipalFrom_Nil(t *testing.T) {
	ctx := application.WithPrincipal(context.Background(), nil)
	_, ok := application.PrincipalFrom(ctx)
	assert.False(t, ok)
}
