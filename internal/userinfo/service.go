package userinfo

import (
	"context"
	"fmt"

	"crewhub/internal/errs"
	"crewhub/internal/models"
	"crewhub/internal/repo"
)

type Service struct {
	info  *repo.UserInfoStore
	users *repo.UserStore
}

func NewService(info *repo.UserInfoStore, users *repo.UserStore) *Service {
	return &Service{info: info, users: users}
}

func (s *Service) Get(ctx context.Context, userID uint) (*models.UserInfo, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	info, err := s.info.GetForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, fmt.Errorf("%w: user info for %d", errs.ErrNotFound, userID)
	}
	return info, nil
}

type Request struct {
	Pfp         string `json:"pfp"`
	Pronouns    string `json:"pronouns"`
	Bio         string `json:"bio"`
	Nationality string `json:"nationality"`
}

// Create заводит профиль. Повторная инициализация — ошибка валидации,
// для правок есть Update.
func (s *Service) Create(ctx context.Context, userID uint, req Request) (*models.UserInfo, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	existing, err := s.info.GetForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: user info already initialized", errs.ErrValidation)
	}
	info := &models.UserInfo{
		UserID:      userID,
		Pfp:         req.Pfp,
		Pronouns:    req.Pronouns,
		Bio:         req.Bio,
		Nationality: req.Nationality,
	}
	if err := s.info.Create(ctx, info); err != nil {
		return nil, err
	}
	return info, nil
}

// Update правит уже заведённый профиль целиком.
func (s *Service) Update(ctx context.Context, userID uint, req Request) (*models.UserInfo, error) {
	info, err := s.info.GetForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, fmt.Errorf("%w: user info is not initialized", errs.ErrValidation)
	}
	info.Pfp = req.Pfp
	info.Pronouns = req.Pronouns
	info.Bio = req.Bio
	info.Nationality = req.Nationality
	if err := s.info.Save(ctx, info); err != nil {
		return nil, err
	}
	return info, nil
}
