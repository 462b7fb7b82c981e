package models

import "time"

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleCSIRT   UserRole = "csirt"
	RoleCompany UserRole = "company"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleCSIRT, RoleCompany:
		return true
	}
	return false
}

// Profile — строка profiles, id совпадает с id пользователя у провайдера.
type Profile struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:255" json:"name"`
	Role      UserRole  `gorm:"type:varchar(20);not null" json:"role"`
	CompanyID *string   `gorm:"type:uuid" json:"company_id"`
	CreatedAt time.Time `json:"created_at"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"csirtcompanies,omitempty"`

	// заполняется после загрузки, в таблице не хранится
	CompanyName *string `gorm:"-" json:"company_name"`
}

func (Profile) TableName() string { return "profiles" }

// TenantID возвращает привязку к компании или "" если её нет.
func (p *Profile) TenantID() string {
	if p == nil || p.CompanyID == nil {
		return ""
	}
	return *p.CompanyID
}

func (p *Profile) FillCompanyName() {
	if p.Company != nil {
		name := p.Company.Name
		p.CompanyName = &name
	}
}

// AuthUser — идентичность, подтверждённая провайдером.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
