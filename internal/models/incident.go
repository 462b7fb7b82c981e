package models

import "time"

type Incident struct {
	ID        string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CompanyID string `gorm:"type:uuid;index;not null" json:"company_id"`

	Title            string     `gorm:"size:255;not null" json:"title"`
	IncidentDatetime *Timestamp `gorm:"column:incident_datetime" json:"incident_datetime"`
	Severity         string     `gorm:"size:32" json:"severity"`
	Status           string     `gorm:"size:32" json:"status"`
	IncidentType     string     `gorm:"size:64" json:"incident_type"`
	Description      string     `gorm:"type:text" json:"description"`

	CreatedBy string    `gorm:"type:uuid" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"csirtcompanies,omitempty"`
}

func (Incident) TableName() string { return "csirtincidents" }

type Notification struct {
	ID         string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	IncidentID string `gorm:"type:uuid;index;not null" json:"incident_id"`
	CompanyID  string `gorm:"type:uuid;index" json:"company_id"`

	NotificationTitle      string     `gorm:"size:255" json:"notification_title"`
	NotificationDatetime   *Timestamp `gorm:"column:notification_datetime" json:"notification_datetime"`
	ImpactNotes            string     `gorm:"type:text" json:"impact_notes"`
	Status                 string     `gorm:"size:32" json:"status"`
	RiskDamageNotes        string     `gorm:"type:text" json:"risk_damage_notes"`
	CorrectiveActionsNotes string     `gorm:"type:text" json:"corrective_actions_notes"`

	CreatedAt time.Time `json:"created_at"`

	Incident *Incident `gorm:"foreignKey:IncidentID" json:"csirtincidents,omitempty"`
}

func (Notification) TableName() string { return "csirtnotifications" }
