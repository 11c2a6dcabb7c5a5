package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"crewhub/internal/errs"
	"crewhub/internal/models"
)

type RoleStore struct{ db *gorm.DB }

func NewRoleStore(db *gorm.DB) *RoleStore { return &RoleStore{db: db} }

func (s *RoleStore) Create(ctx context.Context, r *models.Role) error {
	return s.db.WithContext(ctx).Create(r).Error
}

func (s *RoleStore) GetByID(ctx context.Context, id uint) (*models.Role, error) {
	var r models.Role
	err := s.db.WithContext(ctx).First(&r, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: role %d", errs.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetByName — nil, nil если роли нет (проверка занятости имени).
func (s *RoleStore) GetByName(ctx context.Context, name string) (*models.Role, error) {
	var r models.Role
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *RoleStore) List(ctx context.Context) ([]models.Role, error) {
	var out []models.Role
	err := s.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (s *RoleStore) Save(ctx context.Context, r *models.Role) error {
	return s.db.WithContext(ctx).Save(r).Error
}

// Delete убирает роль, предварительно сняв её со всех участников
// (ссылки не должны повиснуть) — всё в одной транзакции.
func (s *RoleStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r models.Role
		if err := tx.First(&r, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: role %d", errs.ErrNotFound, id)
			}
			return err
		}
		if err := tx.Model(&models.User{}).
			Where("role_id = ?", id).Update("role_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Role{}, id).Error
	})
}
