package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"crewhub/internal/errs"
	"crewhub/internal/models"
)

type CodeStore struct{ db *gorm.DB }

func NewCodeStore(db *gorm.DB) *CodeStore { return &CodeStore{db: db} }

func (s *CodeStore) Create(ctx context.Context, c *models.EmailCode) error {
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *CodeStore) GetByCode(ctx context.Context, code string) (*models.EmailCode, error) {
	var c models.EmailCode
	err := s.db.WithContext(ctx).Where("code = ?", code).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrCodeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Consume гасит код и применяет эффект его назначения одной транзакцией.
// Гашение — test-and-set по флагу active: повторное употребление того же
// кода отсекается числом затронутых строк, а не вторым чтением.
// Возвращает погашенный код (назначение + владелец) для вызывающего.
func (s *CodeStore) Consume(ctx context.Context, code string) (*models.EmailCode, error) {
	var out models.EmailCode
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.EmailCode
		if err := tx.Where("code = ?", code).First(&c).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrCodeNotFound
			}
			return err
		}

		res := tx.Model(&models.EmailCode{}).
			Where("id = ? AND active = ?", c.ID, true).
			Update("active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.ErrCodeConsumed
		}

		// Эффект назначения коммитится вместе с гашением: упавший между
		// ними процесс не должен оставить код пригодным к повтору.
		if c.Purpose == models.PurposeActivate {
			if err := tx.Model(&models.User{}).
				Where("id = ?", c.UserID).Update("enabled", true).Error; err != nil {
				return err
			}
		}

		c.Active = false
		out = c
		return nil
	}, serializableOpts(s.db)...)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CodeStore) DeleteForUser(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.EmailCode{}).Error
}
