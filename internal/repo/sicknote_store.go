package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"crewhub/internal/errs"
	"crewhub/internal/models"
)

type SickNoteStore struct{ db *gorm.DB }

func NewSickNoteStore(db *gorm.DB) *SickNoteStore { return &SickNoteStore{db: db} }

func (s *SickNoteStore) Create(ctx context.Context, n *models.SickNote) error {
	return s.db.WithContext(ctx).Create(n).Error
}

func (s *SickNoteStore) GetByID(ctx context.Context, id uint) (*models.SickNote, error) {
	var n models.SickNote
	err := s.db.WithContext(ctx).First(&n, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: sick note %d", errs.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *SickNoteStore) List(ctx context.Context) ([]models.SickNote, error) {
	var out []models.SickNote
	err := s.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (s *SickNoteStore) ListForUser(ctx context.Context, userID uint) ([]models.SickNote, error) {
	var out []models.SickNote
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&out).Error
	return out, err
}

func (s *SickNoteStore) DeleteForUser(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.SickNote{}).Error
}

func (s *SickNoteStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.SickNote{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: sick note %d", errs.ErrNotFound, id)
	}
	return nil
}
