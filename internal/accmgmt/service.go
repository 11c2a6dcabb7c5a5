package accmgmt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"crewhub/internal/authz"
	"crewhub/internal/errs"
	"crewhub/internal/mailer"
	"crewhub/internal/models"
	"crewhub/internal/perms"
	"crewhub/internal/repo"
	"crewhub/internal/token"
)

// Service — вход в учётку, одноразовые коды, бутстрап суперпользователя.
type Service struct {
	users  *repo.UserStore
	roles  *repo.RoleStore
	codes  *repo.CodeStore
	tokens *token.Service
	mail   *mailer.Dispatcher
}

func NewService(users *repo.UserStore, roles *repo.RoleStore, codes *repo.CodeStore,
	tokens *token.Service, mail *mailer.Dispatcher) *Service {
	return &Service{users: users, roles: roles, codes: codes, tokens: tokens, mail: mail}
}

// Authenticate сверяет пару email/пароль и выдаёт подписанный токен.
// Блокировка объявляется раньше и независимо от пароля. Отсутствие
// учётки и неверный пароль снаружи неразличимы.
func (s *Service) Authenticate(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return "", errs.ErrAuthFailed
		}
		return "", err
	}
	if u.Locked {
		return "", errs.ErrAccountLocked
	}
	if !u.Enabled {
		return "", fmt.Errorf("%w: account is not enabled", errs.ErrAuthFailed)
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return "", errs.ErrAuthFailed
	}
	return s.tokens.Issue(u.Email, u.ID, nil)
}

// IssueCode выпускает свежий одноразовый код для учётки. Сам код —
// uuid: непредсказуем и уникален без обращения к хранилищу.
func (s *Service) IssueCode(ctx context.Context, userID uint, purpose string) (*models.EmailCode, error) {
	c := &models.EmailCode{
		Code:    uuid.NewString(),
		Purpose: purpose,
		Active:  true,
		UserID:  userID,
	}
	if err := s.codes.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// consumePurpose гасит код, предварительно убедившись в его назначении:
// код активации не годится для сброса пароля и наоборот. Проверка идёт
// до гашения, чтобы чужой по назначению код не сгорел впустую.
func (s *Service) consumePurpose(ctx context.Context, code, purpose string) (*models.EmailCode, error) {
	c, err := s.codes.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if c.Purpose != purpose {
		return nil, fmt.Errorf("%w: code purpose mismatch", errs.ErrValidation)
	}
	return s.codes.Consume(ctx, code)
}

// EnableAccount гасит код активации; включение учётки происходит в той
// же транзакции, что и гашение.
func (s *Service) EnableAccount(ctx context.Context, code string) error {
	_, err := s.consumePurpose(ctx, code, models.PurposeActivate)
	return err
}

// RequestRecovery выпускает код восстановления и ставит письмо в
// очередь. Для несуществующей почты — явная ошибка: инструмент
// внутренний, перечислением адресов тут никого не удивить.
func (s *Service) RequestRecovery(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return fmt.Errorf("%w: %s", errs.ErrAccountMissing, email)
		}
		return err
	}
	c, err := s.IssueCode(ctx, u.ID, models.PurposeRecover)
	if err != nil {
		return err
	}
	s.mail.Enqueue(mailer.Notification{To: u.Email, Template: models.PurposeRecover, Code: c.Code})
	return nil
}

// ResetPassword гасит код восстановления и ставит новый пароль.
// Несовпадение пароля с подтверждением отсекается до гашения.
func (s *Service) ResetPassword(ctx context.Context, code, password, confirm string) error {
	if password == "" {
		return fmt.Errorf("%w: password must not be empty", errs.ErrValidation)
	}
	if password != confirm {
		return fmt.Errorf("%w: passwords do not match", errs.ErrValidation)
	}
	c, err := s.consumePurpose(ctx, code, models.PurposeRecover)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.SetPassword(ctx, c.UserID, hash)
}

// SuperUserRequest — анкета одноразового бутстрапа.
type SuperUserRequest struct {
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	BirthDate time.Time `json:"birth_date"`
}

// CreateSuperUser — одноразовый бутстрап: роль ADMIN со всеми правами
// и лимитом в одного участника плюс первая (уже включённая) учётка.
// Повторный вызов отбивается существованием роли; гонка двух вызовов
// упирается в уникальный индекс по имени роли.
func (s *Service) CreateSuperUser(ctx context.Context, req SuperUserRequest) (*models.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", errs.ErrValidation)
	}
	existing, err := s.roles.GetByName(ctx, authz.AdminRoleName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: super user already exists", errs.ErrValidation)
	}

	role := &models.Role{Name: authz.AdminRoleName, MaxUsers: 1}
	role.SetPermissionList(perms.All())
	if err := s.roles.Create(ctx, role); err != nil {
		// Проигравший гонку двух бутстрапов упирается в уникальный
		// индекс по имени роли; снаружи это тот же повторный вызов.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: super user already exists", errs.ErrValidation)
		}
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		BirthDate:    req.BirthDate,
		RegisterDate: time.Now(),
		Enabled:      true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	if err := s.users.AssignRole(ctx, u.ID, role.ID); err != nil {
		return nil, err
	}
	u.RoleID = &role.ID
	return u, nil
}

// Unlock снимает блокировку с учётки.
func (s *Service) Unlock(ctx context.Context, userID uint) error {
	return s.users.SetLocked(ctx, userID, false)
}
