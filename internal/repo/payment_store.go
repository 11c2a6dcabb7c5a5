package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"crewhub/internal/errs"
	"crewhub/internal/models"
)

type PaymentStore struct{ db *gorm.DB }

func NewPaymentStore(db *gorm.DB) *PaymentStore { return &PaymentStore{db: db} }

func (s *PaymentStore) Create(ctx context.Context, p *models.Payment) error {
	return s.db.WithContext(ctx).Create(p).Error
}

// CreateBatch — авто-выплата по роли: по одной записи на участника,
// одной транзакцией.
func (s *PaymentStore) CreateBatch(ctx context.Context, batch []models.Payment) error {
	if len(batch) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&batch).Error
}

func (s *PaymentStore) List(ctx context.Context) ([]models.Payment, error) {
	var out []models.Payment
	err := s.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (s *PaymentStore) ListForUser(ctx context.Context, userID uint) ([]models.Payment, error) {
	var out []models.Payment
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&out).Error
	return out, err
}

func (s *PaymentStore) DeleteForUser(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Payment{}).Error
}

func (s *PaymentStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Payment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: payment %d", errs.ErrNotFound, id)
	}
	return nil
}
