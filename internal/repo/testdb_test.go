package repo

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"crewhub/internal/models"
)

// newTestDB — свежая in-memory БД на тест. Один коннект в пуле, иначе
// каждый коннект sqlite увидит собственную пустую ":memory:".
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	d, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := d.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, d.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.EmailCode{},
		&models.Payment{},
		&models.SickNote{},
		&models.UserInfo{},
	))
	return d
}

func seedUser(t *testing.T, d *gorm.DB, email string) *models.User {
	t.Helper()
	u := &models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: []byte("$2a$10$hash"),
	}
	require.NoError(t, d.Create(u).Error)
	return u
}

func seedRole(t *testing.T, d *gorm.DB, name string, maxUsers int) *models.Role {
	t.Helper()
	r := &models.Role{Name: name, MaxUsers: maxUsers}
	r.SetPermissionList([]string{"READ_SELF"})
	require.NoError(t, d.Create(r).Error)
	return r
}
