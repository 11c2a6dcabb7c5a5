package perms

import (
	"fmt"

	"crewhub/internal/errs"
)

// Permission — элемент закрытого перечисления прав.
// Суффикс _SELF действует только на собственные ресурсы,
// _GENERAL (и READ_GENERAL и т.п.) — на любые.
type Permission string

const (
	ReadSelf   Permission = "READ_SELF"
	UpdateSelf Permission = "UPDATE_SELF"

	CreateUserGeneral Permission = "CREATE_USER_GENERAL"
	CreateRoleGeneral Permission = "CREATE_ROLE_GENERAL"

	CreateInfoSelf Permission = "CREATE_INFO_SELF"
	UpdateInfoSelf Permission = "UPDATE_INFO_SELF"

	CreateSickNoteSelf    Permission = "CREATE_SICK_NOTE_SELF"
	CreateSickNoteGeneral Permission = "CREATE_SICK_NOTE_GENERAL"
	DeleteSickNoteSelf    Permission = "DELETE_SICK_NOTE_SELF"

	CreatePaymentGeneral Permission = "CREATE_PAYMENT_GENERAL"
	CreatePaymentForRole Permission = "CREATE_PAYMENT_FOR_ROLE"

	ReadGeneral   Permission = "READ_GENERAL"
	UpdateGeneral Permission = "UPDATE_GENERAL"
	DeleteGeneral Permission = "DELETE_GENERAL"
)

var all = []Permission{
	ReadSelf, UpdateSelf,
	CreateUserGeneral, CreateRoleGeneral,
	CreateInfoSelf, UpdateInfoSelf,
	CreateSickNoteSelf, CreateSickNoteGeneral, DeleteSickNoteSelf,
	CreatePaymentGeneral, CreatePaymentForRole,
	ReadGeneral, UpdateGeneral, DeleteGeneral,
}

var index = func() map[Permission]struct{} {
	m := make(map[Permission]struct{}, len(all))
	for _, p := range all {
		m[p] = struct{}{}
	}
	return m
}()

// All возвращает копию полного набора (для бутстрапа ADMIN-роли).
func All() []string {
	out := make([]string, len(all))
	for i, p := range all {
		out[i] = string(p)
	}
	return out
}

func Valid(p string) bool {
	_, ok := index[Permission(p)]
	return ok
}

// ValidateAll отвергает неизвестные токены на границе — при создании роли,
// а не при использовании.
func ValidateAll(list []string) error {
	for _, p := range list {
		if !Valid(p) {
			return fmt.Errorf("%w: invalid permission: %s", errs.ErrValidation, p)
		}
	}
	return nil
}

// Set — множество прав роли. Порядок не важен.
type Set map[Permission]struct{}

func NewSet(list []string) Set {
	s := make(Set, len(list))
	for _, p := range list {
		s[Permission(p)] = struct{}{}
	}
	return s
}

func (s Set) Has(p Permission) bool {
	if p == "" {
		return false
	}
	_, ok := s[p]
	return ok
}
