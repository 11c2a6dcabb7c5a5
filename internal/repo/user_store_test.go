package repo

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crewhub/internal/errs"
)

func TestUserStoreGetByEmail(t *testing.T) {
	t.Parallel()
	d := newTestDB(t)
	store := NewUserStore(d)
	ctx := context.Background()

	seedUser(t, d, "alice@crewhub.local")

	u, err := store.GetByEmail(ctx, "alice@crewhub.local")
	require.NoError(t, err)
	assert.Equal(t, "alice@crewhub.local", u.Email)

	_, err = store.GetByEmail(ctx, "nobody@crewhub.local")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestAssignRoleRespectsCapacity(t *testing.T) {
	t.Parallel()
	d := newTestDB(t)
	store := NewUserStore(d)
	ctx := context.Background()

	role := seedRole(t, d, "DEV", 1)
	u1 := seedUser(t, d, "one@crewhub.local")
	u2 := seedUser(t, d, "two@crewhub.local")

	require.NoError(t, store.AssignRole(ctx, u1.ID, role.ID))

	err := store.AssignRole(ctx, u2.ID, role.ID)
	assert.ErrorIs(t, err, errs.ErrRoleLimit)
	assert.Contains(t, err.Error(), "DEV")

	// Повторное назначение той же роли тому же участнику слот не ест.
	require.NoError(t, store.AssignRole(ctx, u1.ID, role.ID))
}

func TestAssignRoleMissingTargets(t *testing.T) {
	t.Parallel()
	d := newTestDB(t)
	store := NewUserStore(d)
	ctx := context.Background()

	role := seedRole(t, d, "DEV", 3)
	u := seedUser(t, d, "one@crewhub.local")

	assert.ErrorIs(t, store.AssignRole(ctx, u.ID, role.ID+100), errs.ErrNotFound)
	assert.ErrorIs(t, store.AssignRole(ctx, u.ID+100, role.ID), errs.ErrNotFound)
}

func TestAssignRoleLastSlotUnderContention(t *testing.T) {
	t.Parallel()
	d := newTestDB(t)
	store := NewUserStore(d)
	ctx := context.Background()

	role := seedRole(t, d, "LEAD", 1)
	const n = 8
	ids := make([]uint, n)
	for i := range ids {
		ids[i] = seedUser(t, d, string(rune('a'+i))+"@crewhub.local").ID
	}

	var wg sync.WaitGroup
	errsCh := make(chan error, n)
	for _, id := range ids {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			errsCh <- store.AssignRole(ctx, userID, role.ID)
		}(id)
	}
	wg.Wait()
	close(errsCh)

	var okCount, limitCount int
	for err := range errsCh {
		switch {
		case err == nil:
			okCount++
		default:
			assert.ErrorIs(t, err, errs.ErrRoleLimit)
			limitCount++
		}
	}
	assert.Equal(t, 1, okCount, "ровно один должен занять последний слот")
	assert.Equal(t, n-1, limitCount)

	members, err := store.ListByRole(ctx, role.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestSetLockedAndPassword(t *testing.T) {
	t.Parallel()
	d := newTestDB(t)
	store := NewUserStore(d)
	ctx := context.Background()

	u := seedUser(t, d, "alice@crewhub.local")

	require.NoError(t, store.SetLocked(ctx, u.ID, true))
	got, err := store.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.Locked)

	require.NoError(t, store.SetPassword(ctx, u.ID, []byte("new-hash")))
	got, err = store.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("new-hash"), got.PasswordHash)

	assert.ErrorIs(t, store.SetLocked(ctx, u.ID+100, true), errs.ErrNotFound)
	assert.ErrorIs(t, store.SetPassword(ctx, u.ID+100, []byte("x")), errs.ErrNotFound)
}
