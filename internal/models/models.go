package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// User — учётная запись сотрудника. Роль храним по id, а не живым
// объектом: взаимных ссылок в памяти не держим.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	FirstName    string    `gorm:"size:50;not null" json:"first_name"`
	LastName     string    `gorm:"size:50;not null" json:"last_name"`
	Email        string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PasswordHash []byte    `gorm:"not null" json:"-"`
	BirthDate    time.Time `json:"birth_date"`
	RegisterDate time.Time `json:"register_date"`
	RoleID       *uint     `gorm:"index" json:"role_id,omitempty"`
	Enabled      bool      `gorm:"not null;default:false" json:"enabled"`
	Locked       bool      `gorm:"not null;default:false" json:"locked"`
}

// Role — именованный набор прав с лимитом участников.
type Role struct {
	ID        uint      `gorm:"primaryKey" json:"role_id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Name        string         `gorm:"uniqueIndex;size:64;not null" json:"role_name"`
	MaxUsers    int            `gorm:"not null" json:"max_users"`
	Salary      float64        `json:"salary"`
	Permissions datatypes.JSON `gorm:"not null" json:"permissions"` // JSON-массив строк из закрытого перечисления
}

// PermissionList разворачивает JSON-колонку в срез строк.
func (r *Role) PermissionList() []string {
	var out []string
	if len(r.Permissions) == 0 {
		return out
	}
	_ = json.Unmarshal(r.Permissions, &out)
	return out
}

func (r *Role) SetPermissionList(list []string) {
	raw, _ := json.Marshal(list)
	r.Permissions = raw
}

// Назначения кода подтверждения.
const (
	PurposeActivate = "ACTIVATE"
	PurposeRecover  = "RECOVER"
)

// EmailCode — одноразовый код, привязанный к учётке и назначению.
// Active гаснет ровно один раз, в одной транзакции с эффектом.
type EmailCode struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CreatedAt time.Time `json:"-"`

	Code    string `gorm:"uniqueIndex;size:64;not null" json:"-"`
	Purpose string `gorm:"size:16;not null" json:"purpose"`
	Active  bool   `gorm:"not null;default:true" json:"active"`
	UserID  uint   `gorm:"index;not null" json:"user_id"`
}

type Payment struct {
	ID        uint      `gorm:"primaryKey" json:"payment_id"`
	CreatedAt time.Time `json:"-"`

	Amount      float64   `gorm:"not null" json:"amount"`
	PaymentDate time.Time `json:"payment_date"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
}

type SickNote struct {
	ID        uint      `gorm:"primaryKey" json:"sick_note_id"`
	CreatedAt time.Time `json:"-"`

	Note     string    `gorm:"not null" json:"note"`
	NoteDate time.Time `json:"note_date"`
	UserID   uint      `gorm:"index;not null" json:"user_id"`
}

// UserInfo — необязательный профиль, один на учётку.
type UserInfo struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UpdatedAt time.Time `json:"-"`

	UserID      uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	Pfp         string `gorm:"size:255" json:"pfp"`
	Pronouns    string `gorm:"size:32" json:"pronouns"`
	Bio         string `gorm:"size:280" json:"bio"`
	Nationality string `gorm:"size:64" json:"nationality"`
}
