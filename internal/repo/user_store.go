package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"crewhub/internal/errs"
	"crewhub/internal/models"
)

type UserStore struct{ db *gorm.DB }

func NewUserStore(db *gorm.DB) *UserStore { return &UserStore{db: db} }

// serializableOpts — для check-then-act операций. У sqlite транзакции
// и так serializable, а уровень изоляции он задать не даёт.
func serializableOpts(db *gorm.DB) []*sql.TxOptions {
	if db.Dialector.Name() == "sqlite" {
		return nil
	}
	return []*sql.TxOptions{{Isolation: sql.LevelSerializable}}
}

func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Create(u).Error
}

func (s *UserStore) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %d", errs.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %s", errs.ErrNotFound, email)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := s.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (s *UserStore) ListByRole(ctx context.Context, roleID uint) ([]models.User, error) {
	var out []models.User
	err := s.db.WithContext(ctx).Where("role_id = ?", roleID).Find(&out).Error
	return out, err
}

func (s *UserStore) Save(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Save(u).Error
}

func (s *UserStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: user %d", errs.ErrNotFound, id)
	}
	return nil
}

// AssignRole сажает учётку в роль, не превышая её лимит. Подсчёт и запись
// идут одной serializable-транзакцией: две конкурентные попытки занять
// последний слот не должны пройти обе.
func (s *UserStore) AssignRole(ctx context.Context, userID, roleID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.First(&role, roleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: role %d", errs.ErrNotFound, roleID)
			}
			return err
		}

		var members int64
		if err := tx.Model(&models.User{}).
			Where("role_id = ? AND id <> ?", roleID, userID).
			Count(&members).Error; err != nil {
			return err
		}
		if members >= int64(role.MaxUsers) {
			return fmt.Errorf("%w: role %q is full (%d/%d)",
				errs.ErrRoleLimit, role.Name, members, role.MaxUsers)
		}

		res := tx.Model(&models.User{}).Where("id = ?", userID).Update("role_id", roleID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: user %d", errs.ErrNotFound, userID)
		}
		return nil
	}, serializableOpts(s.db)...)
}

// ClearRole снимает роль со всех её участников (перед удалением роли).
func (s *UserStore) ClearRole(ctx context.Context, roleID uint) error {
	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("role_id = ?", roleID).Update("role_id", nil).Error
}

func (s *UserStore) SetLocked(ctx context.Context, id uint, locked bool) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("locked", locked)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: user %d", errs.ErrNotFound, id)
	}
	return nil
}

func (s *UserStore) SetPassword(ctx context.Context, id uint, hash []byte) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: user %d", errs.ErrNotFound, id)
	}
	return nil
}
