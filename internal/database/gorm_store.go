package database

import (
	"context"
	"errors"

	"csirt-registry/internal/models"
	"csirt-registry/internal/policy"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore — Store поверх Postgres. Уникальность и конфликты
// целиком на стороне базы (ON CONFLICT ... DO UPDATE).
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func scoped(q *gorm.DB, scope policy.Scope) *gorm.DB {
	if scope.IsZero() {
		return q
	}
	return q.Where(clause.Eq{Column: clause.Column{Name: scope.Column}, Value: scope.TenantID})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GormStore) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.WithContext(ctx).
		Preload("Company").
		Where("id = ?", id).
		First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	p.FillCompanyName()
	return &p, nil
}

func (s *GormStore) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	profiles := []models.Profile{}
	if err := s.db.WithContext(ctx).
		Preload("Company").
		Order("created_at desc").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	for i := range profiles {
		profiles[i].FillCompanyName()
	}
	return profiles, nil
}

func (s *GormStore) CreateProfile(ctx context.Context, p *models.Profile) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (s *GormStore) ListCompanies(ctx context.Context, scope policy.Scope) ([]models.Company, error) {
	companies := []models.Company{}
	if err := scoped(s.db.WithContext(ctx), scope).
		Order("name asc").
		Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (s *GormStore) UpsertCompany(ctx context.Context, c *models.Company) (*models.Company, error) {
	db := s.db.WithContext(ctx)

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "vat_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "fiscal_code", "sector", "address"}),
	}).Create(c).Error
	if err != nil {
		return nil, err
	}

	// перечитываем, чтобы вернуть id существующей строки при конфликте
	var saved models.Company
	if err := db.Where("vat_number = ?", c.VATNumber).First(&saved).Error; err != nil {
		return nil, notFound(err)
	}
	return &saved, nil
}

func (s *GormStore) UpsertDesignation(ctx context.Context, d *models.Designation) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "company_id"}},
		UpdateAll: true,
	}).Create(d).Error
}

func (s *GormStore) UpsertConfiguration(ctx context.Context, cfg *models.NetworkConfiguration) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "company_id"}},
		UpdateAll: true,
	}).Create(cfg).Error
}

func (s *GormStore) CreateIncident(ctx context.Context, inc *models.Incident) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(inc).Error
}

func (s *GormStore) GetIncident(ctx context.Context, id string) (*models.Incident, error) {
	var inc models.Incident
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&inc).Error; err != nil {
		return nil, notFound(err)
	}
	return &inc, nil
}

func (s *GormStore) ListIncidents(ctx context.Context, scope policy.Scope) ([]models.Incident, error) {
	incidents := []models.Incident{}
	if err := scoped(s.db.WithContext(ctx), scope).
		Preload("Company").
		Order("incident_datetime desc").
		Find(&incidents).Error; err != nil {
		return nil, err
	}
	return incidents, nil
}

func (s *GormStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(n).Error
}

func (s *GormStore) ListNotifications(ctx context.Context, scope policy.Scope) ([]models.Notification, error) {
	notifications := []models.Notification{}
	if err := scoped(s.db.WithContext(ctx), scope).
		Preload("Incident").
		Order("created_at desc").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}
