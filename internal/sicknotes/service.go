package sicknotes

import (
	"context"
	"fmt"
	"time"

	"crewhub/internal/errs"
	"crewhub/internal/models"
	"crewhub/internal/repo"
)

type Service struct {
	notes *repo.SickNoteStore
	users *repo.UserStore
}

func NewService(notes *repo.SickNoteStore, users *repo.UserStore) *Service {
	return &Service{notes: notes, users: users}
}

func (s *Service) List(ctx context.Context) ([]models.SickNote, error) {
	return s.notes.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uint) (*models.SickNote, error) {
	return s.notes.GetByID(ctx, id)
}

func (s *Service) ListForUser(ctx context.Context, userID uint) ([]models.SickNote, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.notes.ListForUser(ctx, userID)
}

type CreateRequest struct {
	Note     string     `json:"note"`
	NoteDate *time.Time `json:"note_date,omitempty"`
}

func (s *Service) Create(ctx context.Context, userID uint, req CreateRequest) (*models.SickNote, error) {
	if req.Note == "" {
		return nil, fmt.Errorf("%w: note must not be empty", errs.ErrValidation)
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	when := time.Now()
	if req.NoteDate != nil {
		when = *req.NoteDate
	}
	n := &models.SickNote{Note: req.Note, NoteDate: when, UserID: userID}
	if err := s.notes.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.notes.Delete(ctx, id)
}
