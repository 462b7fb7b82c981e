package database

import (
	"context"
	"errors"

	"csirt-registry/internal/models"
	"csirt-registry/internal/policy"
)

var ErrNotFound = errors.New("record not found")

// Store — всё, что роутеру нужно от хранилища.
// Чтения принимают policy.Scope; нулевой Scope ничего не фильтрует.
type Store interface {
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	CreateProfile(ctx context.Context, p *models.Profile) error

	ListCompanies(ctx context.Context, scope policy.Scope) ([]models.Company, error)
	// UpsertCompany пишет компанию по vat_number и возвращает сохранённую строку.
	UpsertCompany(ctx context.Context, c *models.Company) (*models.Company, error)
	UpsertDesignation(ctx context.Context, d *models.Designation) error
	UpsertConfiguration(ctx context.Context, cfg *models.NetworkConfiguration) error

	CreateIncident(ctx context.Context, inc *models.Incident) error
	GetIncident(ctx context.Context, id string) (*models.Incident, error)
	ListIncidents(ctx context.Context, scope policy.Scope) ([]models.Incident, error)

	CreateNotification(ctx context.Context, n *models.Notification) error
	ListNotifications(ctx context.Context, scope policy.Scope) ([]models.Notification, error)
}
