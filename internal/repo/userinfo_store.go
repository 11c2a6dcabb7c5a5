package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"crewhub/internal/errs"
	"crewhub/internal/models"
)

type UserInfoStore struct{ db *gorm.DB }

func NewUserInfoStore(db *gorm.DB) *UserInfoStore { return &UserInfoStore{db: db} }

func (s *UserInfoStore) Create(ctx context.Context, info *models.UserInfo) error {
	return s.db.WithContext(ctx).Create(info).Error
}

// GetForUser — nil, nil если профиль ещё не заведён.
func (s *UserInfoStore) GetForUser(ctx context.Context, userID uint) (*models.UserInfo, error) {
	var info models.UserInfo
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&info).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (s *UserInfoStore) Save(ctx context.Context, info *models.UserInfo) error {
	return s.db.WithContext(ctx).Save(info).Error
}

func (s *UserInfoStore) DeleteForUser(ctx context.Context, userID uint) error {
	res := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.UserInfo{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: user info for %d", errs.ErrNotFound, userID)
	}
	return nil
}
