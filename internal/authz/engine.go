package authz

import (
	"context"

	"crewhub/internal/models"
	"crewhub/internal/perms"
	"crewhub/internal/repo"
)

// AdminRoleName — имя роли, создаваемой одноразовым бутстрапом.
const AdminRoleName = "ADMIN"

// Engine отвечает на один вопрос: хватает ли прав роли вызывающего
// на запрошенную операцию. Состояния не держит.
type Engine struct {
	users *repo.UserStore
	roles *repo.RoleStore
}

func NewEngine(users *repo.UserStore, roles *repo.RoleStore) *Engine {
	return &Engine{users: users, roles: roles}
}

// CapabilitiesOf — набор прав назначенной роли. Без роли — пустой набор:
// неназначенная учётка не имеет доступа ни к чему (fail-closed).
func (e *Engine) CapabilitiesOf(ctx context.Context, u *models.User) (perms.Set, error) {
	if u == nil || u.RoleID == nil {
		return perms.Set{}, nil
	}
	role, err := e.roles.GetByID(ctx, *u.RoleID)
	if err != nil {
		return nil, err
	}
	return perms.NewSet(role.PermissionList()), nil
}

// IsAuthorized — вся алгебра доступа: общий токен, либо self-токен при
// совпадении вызывающего с владельцем ресурса. Пустой токен в любой из
// позиций означает "эта ветка недостижима".
func (e *Engine) IsAuthorized(ctx context.Context, callerID, ownerID uint, general, self perms.Permission) (bool, error) {
	caller, err := e.users.GetByID(ctx, callerID)
	if err != nil {
		return false, err
	}
	caps, err := e.CapabilitiesOf(ctx, caller)
	if err != nil {
		return false, err
	}
	return Decide(caps, callerID, ownerID, general, self), nil
}

// Decide — чистая проверка по уже загруженному набору прав.
func Decide(caps perms.Set, callerID, ownerID uint, general, self perms.Permission) bool {
	if caps.Has(general) {
		return true
	}
	return caps.Has(self) && callerID == ownerID
}

// HasRoleNamed — true, если вызывающему назначена роль с данным именем
// (используется эндпоинтом разблокировки, доступным только ADMIN).
func (e *Engine) HasRoleNamed(ctx context.Context, callerID uint, name string) (bool, error) {
	caller, err := e.users.GetByID(ctx, callerID)
	if err != nil {
		return false, err
	}
	if caller.RoleID == nil {
		return false, nil
	}
	role, err := e.roles.GetByID(ctx, *caller.RoleID)
	if err != nil {
		return false, err
	}
	return role.Name == name, nil
}
