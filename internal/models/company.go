package models

// Company — организация-арендатор, уникальна по vat_number (партита IVA).
type Company struct {
	ID         string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name       string `gorm:"size:255;not null" json:"name"`
	VATNumber  string `gorm:"column:vat_number;size:32;uniqueIndex;not null" json:"vat_number"`
	FiscalCode string `gorm:"size:32" json:"fiscal_code"`
	Sector     string `gorm:"size:128" json:"sector"`
	Address    string `gorm:"type:text" json:"address"`
}

func (Company) TableName() string { return "csirtcompanies" }

// Designation — назначение референта CSIRT, одна на компанию.
type Designation struct {
	ID        string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CompanyID string `gorm:"type:uuid;uniqueIndex;not null" json:"company_id"`

	DataNomina     *Timestamp `gorm:"column:data_nomina" json:"data_nomina"`
	MainRole       string     `gorm:"size:255" json:"main_role"`
	MainName       string     `gorm:"size:255" json:"main_name"`
	MainSurname    string     `gorm:"size:255" json:"main_surname"`
	MainFiscalCode string     `gorm:"size:32" json:"main_fiscal_code"`
	MainEmail      string     `gorm:"size:255" json:"main_email"`
	MainPhone      string     `gorm:"size:50" json:"main_phone"`

	ACNContactName    string `gorm:"column:acn_contact_name;size:255" json:"acn_contact_name"`
	ACNContactSurname string `gorm:"column:acn_contact_surname;size:255" json:"acn_contact_surname"`
	ACNContactEmail   string `gorm:"column:acn_contact_email;size:255" json:"acn_contact_email"`

	// заместители необязательны
	Sub1Name    *string `gorm:"column:sub_1_name;size:255" json:"sub_1_name"`
	Sub1Surname *string `gorm:"column:sub_1_surname;size:255" json:"sub_1_surname"`
	Sub1Email   *string `gorm:"column:sub_1_email;size:255" json:"sub_1_email"`
	Sub2Name    *string `gorm:"column:sub_2_name;size:255" json:"sub_2_name"`
	Sub2Surname *string `gorm:"column:sub_2_surname;size:255" json:"sub_2_surname"`
	Sub2Email   *string `gorm:"column:sub_2_email;size:255" json:"sub_2_email"`

	MotivationNotes *string `gorm:"type:text" json:"motivation_notes"`
}

func (Designation) TableName() string { return "csirtdesignations" }

// NetworkConfiguration — описание сети компании, одна на компанию.
type NetworkConfiguration struct {
	ID        string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CompanyID string `gorm:"type:uuid;uniqueIndex;not null" json:"company_id"`

	TopologyType  string `gorm:"size:100" json:"topology_type"`
	SitesCount    *int   `json:"sites_count"`
	UsersCount    *int   `json:"users_count"`
	FirewallType  string `gorm:"size:100" json:"firewall_type"`
	FirewallModel string `gorm:"size:255" json:"firewall_model"`
}

func (NetworkConfiguration) TableName() string { return "csirtnetwork_configuration" }
