package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-storefront/internal/application"
	"github.com/oksasatya/go-storefront/internal/domain/entity"
	"github.com/oksasatya/go-storefront/internal/domain/repository"
)

func TestDeleteSelf_OtherAccountDenied(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u1 := f.user(t, "one@example.com", entity.RoleEndUser)
	u2 := f.user(t, "two@example.com", entity.RoleEndUser)

	err := f.accounts.DeleteSelf(ctx, u1.ID, u2.ID)
	assert.ErrorIs(t, err, application.ErrNotOwnAccount)
	assert.ErrorIs(t, err, application.ErrAuth)

	for _, id := range []int64{u1.ID, u2.ID} {
		_, err := f.store.Users().GetByID(ctx, id)
		assert.NoError(t, err)
	}
}

func TestDeleteSelf_RemovesLinksAndDetachesOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "one@example.com", entity.RoleEndUser)
	uid := u.ID
	require.NoError(t, f.store.Orders().Create(ctx, &entity.Order{Name: "Widget", Intro: "d", Price: 10, Active: true, UserID: &uid}))
	require.Equal(t, 1, f.store.RoleLinks(u.ID))

	require.NoError(t, f.accounts.DeleteSelf(ctx, u.ID, u.ID))

	_, err := f.store.Users().GetByEmail(ctx, "one@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Zero(t, f.store.RoleLinks(u.ID))

	orders := f.store.AllOrders()
	require.Len(t, orders, 1)
	assert.Nil(t, orders[0].UserID)
}

func TestEditProfileFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "one@example.com", entity.RoleEndUser)

	got, err := f.accounts.EditName(ctx, u.ID, "Boris")
	require.NoError(t, err)
	assert.Equal(t, "Boris", got.FirstName)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, u.PhoneNumber, got.PhoneNumber)

	got, err = f.accounts.EditPhone(ctx, u.ID, "+7999000112")
	require.NoError(t, err)
	assert.Equal(t, "+7999000112", got.PhoneNumber)
	assert.Equal(t, "Boris", got.FirstName)

	got, err = f.accounts.EditEmail(ctx, u.ID, "moved@example.com")
	require.NoError(t, err)
	assert.Equal(t, "moved@example.com", got.Email)

	stored, err := f.accounts.ViewProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "moved@example.com", stored.Email)
	assert.Equal(t, "Boris", stored.FirstName)
	assert.Equal(t, "+7999000112", stored.PhoneNumber)
	assert.Equal(t, []string{entity.RoleEndUser}, stored.RoleNames())
}

func TestEditProfileFields_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "one@example.com", entity.RoleEndUser)
	f.user(t, "two@example.com", entity.RoleEndUser)

	_, err := f.accounts.EditEmail(ctx, u.ID, "two@example.com")
	assert.ErrorIs(t, err, application.ErrValidation)
	_, err = f.accounts.EditEmail(ctx, u.ID, " Two@Example.COM ")
	assert.ErrorIs(t, err, application.ErrValidation)
	_, err = f.accounts.EditEmail(ctx, u.ID, "nope")
	assert.ErrorIs(t, err, application.ErrValidation)
	_, err = f.accounts.EditName(ctx, u.ID, "  ")
	assert.ErrorIs(t, err, application.ErrValidation)
	_, err = f.accounts.EditPhone(ctx, u.ID, "123")
	assert.ErrorIs(t, err, application.ErrValidation)

	// re-saving the current email is fine, in any case
	got, err := f.accounts.EditEmail(ctx, u.ID, "ONE@example.com")
	require.NoError(t, err)
	assert.Equal(t, "one@example.com", got.Email)

	stored, err := f.accounts.ViewProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "one@example.com", stored.Email)
	assert.Equal(t, "Ann", stored.FirstName)
	assert.Equal(t, "5550001111", stored.PhoneNumber)
}

func TestViewProfile_Missing(t *testing.T) {
	f := newFixture(t)
	_, err := f.accounts.ViewProfile(context.Background(), 404)
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestAdminOperations_DeniedForEndUser(t *testing.T) {
	f := newFixture(t)
	endUser := f.user(t, "one@example.com", entity.RoleEndUser)
	victim := f.user(t, "two@example.com", entity.RoleEndUser)
	it := &entity.Item{Name: "Widget", Intro: "desc", Price: 10}
	require.NoError(t, f.store.Items().Create(context.Background(), it))

	ops := map[string]func(ctx context.Context) error{
		"list users": func(ctx context.Context) error {
			_, err := f.accounts.ListUsers(ctx)
			return err
		},
		"delete user": func(ctx context.Context) error {
			return f.accounts.DeleteUser(ctx, victim.ID)
		},
		"add item": func(ctx context.Context) error {
			_, err := f.catalog.AddItem(ctx, application.ItemInput{Name: "X", Price: 1, Intro: "x"})
			return err
		},
		"edit item": func(ctx context.Context) error {
			_, err := f.catalog.EditItem(ctx, it.ID, application.ItemInput{Name: "X", Price: 1, Intro: "x"})
			return err
		},
		"delete item": func(ctx context.Context) error {
			return f.catalog.DeleteItem(ctx, it.ID)
		},
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, op(as(endUser)), application.ErrForbidden)
			assert.ErrorIs(t, op(context.Background()), application.ErrAuth)
		})
	}

	_, err := f.store.Users().GetByID(context.Background(), victim.ID)
	assert.NoError(t, err)
	items, err := f.catalog.ListItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entity.Item{*it}, items)
}

func TestAdminUserManagement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.user(t, "admin@example.com", entity.RoleAdmin)
	victim := f.user(t, "two@example.com", entity.RoleEndUser)

	users, err := f.accounts.ListUsers(as(admin))
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, admin.ID, users[0].ID)
	assert.Equal(t, []string{entity.RoleEndUser}, users[1].RoleNames())

	require.NoError(t, f.accounts.DeleteUser(as(admin), victim.ID))
	_, err = f.store.Users().GetByEmail(ctx, "two@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Zero(t, f.store.RoleLinks(victim.ID))

	err = f.accounts.DeleteUser(as(admin), victim.ID)
	assert.ErrorIs(t, err, application.ErrNotFound)
}
