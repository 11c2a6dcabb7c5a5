package roles

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"crewhub/internal/errs"
	"crewhub/internal/models"
	"crewhub/internal/perms"
	"crewhub/internal/repo"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	d, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := d.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, d.AutoMigrate(&models.User{}, &models.Role{}))
	return NewService(repo.NewRoleStore(d))
}

func TestCreateValidatesPermissions(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{
		Name: "DEV", MaxUsers: 5, Permissions: []string{"READ_SELF", "BOGUS"},
	})
	assert.ErrorIs(t, err, errs.ErrValidation)

	role, err := svc.Create(ctx, CreateRequest{
		Name: "DEV", MaxUsers: 5, Salary: 1000,
		Permissions: []string{string(perms.ReadSelf), string(perms.UpdateSelf)},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"READ_SELF", "UPDATE_SELF"}, role.PermissionList())
}

func TestCreateRejectsTakenName(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Name: "DEV", MaxUsers: 5})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateRequest{Name: "DEV", MaxUsers: 3})
	assert.ErrorIs(t, err, errs.ErrNameTaken)
	assert.Contains(t, err.Error(), "DEV")
}

func TestCreateRejectsBadShape(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{MaxUsers: 5})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.Create(ctx, CreateRequest{Name: "DEV", MaxUsers: 0})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestUpdateLimitAndSalary(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	role, err := svc.Create(ctx, CreateRequest{Name: "DEV", MaxUsers: 5, Salary: 1000})
	require.NoError(t, err)

	max := 7
	salary := 1500.0
	got, err := svc.Update(ctx, role.ID, UpdateRequest{MaxUsers: &max, Salary: &salary})
	require.NoError(t, err)
	assert.Equal(t, 7, got.MaxUsers)
	assert.Equal(t, 1500.0, got.Salary)

	bad := 0
	_, err = svc.Update(ctx, role.ID, UpdateRequest{MaxUsers: &bad})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.Update(ctx, role.ID+100, UpdateRequest{MaxUsers: &max})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
