// Package policy — таблица доступа для всех маршрутов записей.
//
// Для каждой операции заданы допустимые роли и, если операция
// ограничена компанией, колонка с id компании. admin и csirt видят
// всё, company видит и пишет только строки своей компании.
package policy

import (
	"errors"
	"fmt"

	"csirt-registry/internal/models"
)

type Operation string

const (
	OpListCompanies       Operation = "companies.list"
	OpUpsertDesignation   Operation = "designations.upsert"
	OpUpsertConfiguration Operation = "configurations.upsert"
	OpCreateIncident      Operation = "incidents.create"
	OpListIncidents       Operation = "incidents.list"
	OpCreateNotification  Operation = "notifications.create"
	OpListNotifications   Operation = "notifications.list"
	OpListUsers           Operation = "users.list"
	OpCreateUser          Operation = "users.create"
)

var (
	ErrForbidden        = errors.New("insufficient permissions")
	ErrNoTenant         = errors.New("profile is not linked to a company")
	ErrUnknownOperation = errors.New("unknown operation")
)

// Rule описывает одну операцию. Пустой Roles — любой аутентифицированный.
// TenantColumn — колонка фильтра для company; "" — без фильтра.
type Rule struct {
	Roles        []models.UserRole
	TenantColumn string
}

var Rules = map[Operation]Rule{
	OpListCompanies:       {TenantColumn: "id"},
	OpUpsertDesignation:   {Roles: []models.UserRole{models.RoleAdmin, models.RoleCSIRT}},
	OpUpsertConfiguration: {TenantColumn: "company_id"},
	OpCreateIncident:      {TenantColumn: "company_id"},
	OpListIncidents:       {TenantColumn: "company_id"},
	OpCreateNotification:  {TenantColumn: "company_id"},
	OpListNotifications:   {TenantColumn: "company_id"},
	OpListUsers:           {Roles: []models.UserRole{models.RoleAdmin}},
	OpCreateUser:          {Roles: []models.UserRole{models.RoleAdmin}},
}

// роли, которые видят все компании
var unscopedRoles = map[models.UserRole]bool{
	models.RoleAdmin: true,
	models.RoleCSIRT: true,
}

// Scope — фильтр чтения по компании. Нулевой Scope ничего не фильтрует.
type Scope struct {
	Column   string
	TenantID string
}

func (s Scope) IsZero() bool { return s.Column == "" }

type Decision struct {
	Operation Operation
	scope     Scope
}

// Scope — фильтр для чтения.
func (d Decision) Scope() Scope { return d.scope }

// Permits сообщает, разрешена ли запись в компанию tenantID.
func (d Decision) Permits(tenantID string) bool {
	if d.scope.IsZero() {
		return true
	}
	return tenantID != "" && tenantID == d.scope.TenantID
}

// Evaluate применяет таблицу к профилю вызывающего.
func Evaluate(op Operation, profile *models.Profile) (Decision, error) {
	rule, ok := Rules[op]
	if !ok {
		return Decision{}, fmt.Errorf("%w: %s", ErrUnknownOperation, op)
	}
	if profile == nil {
		return Decision{}, ErrForbidden
	}

	if len(rule.Roles) > 0 && !hasRole(rule.Roles, profile.Role) {
		return Decision{}, ErrForbidden
	}

	d := Decision{Operation: op}
	if rule.TenantColumn == "" || unscopedRoles[profile.Role] {
		return d, nil
	}

	if profile.Role != models.RoleCompany {
		return Decision{}, ErrForbidden
	}
	tenant := profile.TenantID()
	if tenant == "" {
		return Decision{}, ErrNoTenant
	}
	d.scope = Scope{Column: rule.TenantColumn, TenantID: tenant}
	return d, nil
}

func hasRole(roles []models.UserRole, role models.UserRole) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
