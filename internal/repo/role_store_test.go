package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crewhub/internal/errs"
)

func TestRoleStoreGetByName(t *testing.T) {
	t.Parallel()
	d := newTestDB(t)
	store := NewRoleStore(d)
	ctx := context.Background()

	seedRole(t, d, "DEV", 5)

	r, err := store.GetByName(ctx, "DEV")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, 5, r.MaxUsers)

	// Отсутствие роли — не ошибка, а nil: так проверяется занятость имени.
	r, err = store.GetByName(ctx, "NOBODY")
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestRoleDeleteClearsAssignments(t *testing.T) {
	t.Parallel()
	d := newTestDB(t)
	roleStore := NewRoleStore(d)
	userStore := NewUserStore(d)
	ctx := context.Background()

	role := seedRole(t, d, "DEV", 5)
	u := seedUser(t, d, "alice@crewhub.local")
	require.NoError(t, userStore.AssignRole(ctx, u.ID, role.ID))

	require.NoError(t, roleStore.Delete(ctx, role.ID))

	got, err := userStore.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, got.RoleID, "ссылка на удалённую роль не должна повиснуть")

	assert.ErrorIs(t, roleStore.Delete(ctx, role.ID), errs.ErrNotFound)
}
