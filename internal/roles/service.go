package roles

import (
	"context"
	"fmt"

	"crewhub/internal/errs"
	"crewhub/internal/models"
	"crewhub/internal/perms"
	"crewhub/internal/repo"
)

type Service struct {
	roles *repo.RoleStore
}

func NewService(roles *repo.RoleStore) *Service { return &Service{roles: roles} }

func (s *Service) List(ctx context.Context) ([]models.Role, error) {
	return s.roles.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Role, error) {
	return s.roles.GetByID(ctx, id)
}

type CreateRequest struct {
	Name        string   `json:"role_name"`
	MaxUsers    int      `json:"max_users"`
	Salary      float64  `json:"salary"`
	Permissions []string `json:"permissions"`
}

// Create заводит роль. Неизвестные токены прав отсекаются здесь, на
// конструировании, а не при использовании; имя обязано быть свободно.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Role, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: role name is required", errs.ErrValidation)
	}
	if req.MaxUsers <= 0 {
		return nil, fmt.Errorf("%w: max_users must be positive", errs.ErrValidation)
	}
	if err := perms.ValidateAll(req.Permissions); err != nil {
		return nil, err
	}
	existing, err := s.roles.GetByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: role %s", errs.ErrNameTaken, req.Name)
	}

	role := &models.Role{Name: req.Name, MaxUsers: req.MaxUsers, Salary: req.Salary}
	role.SetPermissionList(req.Permissions)
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

type UpdateRequest struct {
	MaxUsers *int     `json:"max_users,omitempty"`
	Salary   *float64 `json:"salary,omitempty"`
}

// Update меняет лимит и оклад. Понижение лимита ниже текущего числа
// участников никого не выгоняет: лимит проверяется при назначении.
func (s *Service) Update(ctx context.Context, id uint, req UpdateRequest) (*models.Role, error) {
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.MaxUsers != nil {
		if *req.MaxUsers <= 0 {
			return nil, fmt.Errorf("%w: max_users must be positive", errs.ErrValidation)
		}
		role.MaxUsers = *req.MaxUsers
	}
	if req.Salary != nil {
		role.Salary = *req.Salary
	}
	if err := s.roles.Save(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.roles.Delete(ctx, id)
}
