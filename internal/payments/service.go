package payments

import (
	"context"
	"fmt"
	"time"

	"crewhub/internal/errs"
	"crewhub/internal/models"
	"crewhub/internal/repo"
)

type Service struct {
	payments *repo.PaymentStore
	users    *repo.UserStore
	roles    *repo.RoleStore
}

func NewService(payments *repo.PaymentStore, users *repo.UserStore, roles *repo.RoleStore) *Service {
	return &Service{payments: payments, users: users, roles: roles}
}

func (s *Service) List(ctx context.Context) ([]models.Payment, error) {
	return s.payments.List(ctx)
}

func (s *Service) ListForUser(ctx context.Context, userID uint) ([]models.Payment, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.payments.ListForUser(ctx, userID)
}

type CreateRequest struct {
	Amount      float64    `json:"amount"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`
}

func (s *Service) Create(ctx context.Context, userID uint, req CreateRequest) (*models.Payment, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", errs.ErrValidation)
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	when := time.Now()
	if req.PaymentDate != nil {
		when = *req.PaymentDate
	}
	p := &models.Payment{Amount: req.Amount, PaymentDate: when, UserID: userID}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// AutoPayForRole — по одной выплате оклада роли каждому участнику,
// одной пачкой. Роль без участников — не ошибка, просто ноль записей.
func (s *Service) AutoPayForRole(ctx context.Context, roleID uint) ([]models.Payment, error) {
	role, err := s.roles.GetByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if role.Salary <= 0 {
		return nil, fmt.Errorf("%w: role %s has no salary configured", errs.ErrValidation, role.Name)
	}
	members, err := s.users.ListByRole(ctx, roleID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	batch := make([]models.Payment, 0, len(members))
	for _, m := range members {
		batch = append(batch, models.Payment{Amount: role.Salary, PaymentDate: now, UserID: m.ID})
	}
	if err := s.payments.CreateBatch(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.payments.Delete(ctx, id)
}
