package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"crewhub/internal/errs"
	"crewhub/internal/mailer"
	"crewhub/internal/models"
	"crewhub/internal/repo"
)

// CodeIssuer выпускает одноразовый код для учётки.
type CodeIssuer interface {
	IssueCode(ctx context.Context, userID uint, purpose string) (*models.EmailCode, error)
}

type Service struct {
	users     *repo.UserStore
	roles     *repo.RoleStore
	codes     *repo.CodeStore
	payments  *repo.PaymentStore
	sickNotes *repo.SickNoteStore
	info      *repo.UserInfoStore
	issuer    CodeIssuer
	mail      *mailer.Dispatcher
}

func NewService(users *repo.UserStore, roles *repo.RoleStore, codes *repo.CodeStore,
	payments *repo.PaymentStore, sickNotes *repo.SickNoteStore, info *repo.UserInfoStore,
	issuer CodeIssuer, mail *mailer.Dispatcher) *Service {
	return &Service{
		users: users, roles: roles, codes: codes,
		payments: payments, sickNotes: sickNotes, info: info,
		issuer: issuer, mail: mail,
	}
}

func (s *Service) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// CreateRequest — анкета новой учётки.
type CreateRequest struct {
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	BirthDate time.Time `json:"birth_date"`
	RoleName  string    `json:"role_name,omitempty"`
}

// Create заводит выключенную учётку, выпускает код активации и ставит
// письмо в очередь. Запрос не ждёт доставку.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", errs.ErrValidation)
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
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email %s", errs.ErrNameTaken, req.Email)
		}
		return nil, err
	}
	if req.RoleName != "" {
		if err := s.assignByName(ctx, u, req.RoleName); err != nil {
			return nil, err
		}
	}

	c, err := s.issuer.IssueCode(ctx, u.ID, models.PurposeActivate)
	if err != nil {
		return nil, err
	}
	s.mail.Enqueue(mailer.Notification{To: u.Email, Template: models.PurposeActivate, Code: c.Code})
	return u, nil
}

// UpdateRequest — частичное обновление: трогаем только присланные поля.
type UpdateRequest struct {
	FirstName   *string    `json:"first_name,omitempty"`
	LastName    *string    `json:"last_name,omitempty"`
	Email       *string    `json:"email,omitempty"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	RoleName    *string    `json:"role_name,omitempty"`
	Enabled     *bool      `json:"enabled,omitempty"`
	Locked      *bool      `json:"locked,omitempty"`
	Password    *string    `json:"password,omitempty"`
	OldPassword string     `json:"old_password,omitempty"`
}

func (r UpdateRequest) privileged() bool {
	return r.RoleName != nil || r.Enabled != nil || r.Locked != nil
}

// Update применяет частичное обновление. Роль, enabled и locked может
// менять только носитель общего права (general=true от вызывающего
// хендлера); смена пароля требует старый пароль.
func (s *Service) Update(ctx context.Context, id uint, req UpdateRequest, general bool) (*models.User, error) {
	if req.privileged() && !general {
		return nil, fmt.Errorf("%w: role, enabled and locked require general update permission", errs.ErrValidation)
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Email != nil {
		if *req.Email == "" {
			return nil, fmt.Errorf("%w: email must not be empty", errs.ErrValidation)
		}
		u.Email = *req.Email
	}
	if req.BirthDate != nil {
		u.BirthDate = *req.BirthDate
	}
	if req.Enabled != nil {
		u.Enabled = *req.Enabled
	}
	if req.Locked != nil {
		u.Locked = *req.Locked
	}
	if req.Password != nil {
		if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(req.OldPassword)) != nil {
			return nil, fmt.Errorf("%w: old password does not match", errs.ErrValidation)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	if err := s.users.Save(ctx, u); err != nil {
		// Почта занята другой учёткой.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email %s", errs.ErrNameTaken, u.Email)
		}
		return nil, err
	}

	// Назначение роли идёт после Save отдельной serializable-транзакцией:
	// лимит роли проверяется и занимается атомарно.
	if req.RoleName != nil {
		if *req.RoleName == "" {
			u.RoleID = nil
			if err := s.users.Save(ctx, u); err != nil {
				return nil, err
			}
		} else if err := s.assignByName(ctx, u, *req.RoleName); err != nil {
			return nil, err
		}
	}
	return u, nil
}

func (s *Service) assignByName(ctx context.Context, u *models.User, name string) error {
	role, err := s.roles.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if role == nil {
		return fmt.Errorf("%w: role %s", errs.ErrNotFound, name)
	}
	if err := s.users.AssignRole(ctx, u.ID, role.ID); err != nil {
		return err
	}
	u.RoleID = &role.ID
	return nil
}

// Delete убирает учётку вместе с её кодами, профилем, выплатами и
// больничными. Без FK в схеме подчистка лежит на сервисе.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.codes.DeleteForUser(ctx, id); err != nil {
		return err
	}
	if err := s.payments.DeleteForUser(ctx, id); err != nil {
		return err
	}
	if err := s.sickNotes.DeleteForUser(ctx, id); err != nil {
		return err
	}
	// Профиля может и не быть.
	if err := s.info.DeleteForUser(ctx, id); err != nil && !errors.Is(err, errs.ErrNotFound) {
		return err
	}
	return s.users.Delete(ctx, id)
}
