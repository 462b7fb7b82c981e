// Package databasetest provides an in-memory database.Store for tests.
package databasetest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"csirt-registry/internal/database"
	"csirt-registry/internal/models"
	"csirt-registry/internal/policy"
)

var _ database.Store = (*Store)(nil)

// Store keeps rows in maps and mimics the upsert-on-conflict behaviour
// of the Postgres store. Errors can be injected per method name.
type Store struct {
	mu sync.Mutex

	Profiles       map[string]models.Profile
	Companies      map[string]models.Company
	// designations and configurations are keyed by company id
	Designations   map[string]models.Designation
	Configurations map[string]models.NetworkConfiguration
	Incidents      map[string]models.Incident
	Notifications  map[string]models.Notification

	// Fail maps a method name ("UpsertDesignation", ...) to the error it returns.
	Fail map[string]error

	seq   int
	clock time.Time
}

func New() *Store {
	return &Store{
		Profiles:       map[string]models.Profile{},
		Companies:      map[string]models.Company{},
		Designations:   map[string]models.Designation{},
		Configurations: map[string]models.NetworkConfiguration{},
		Incidents:      map[string]models.Incident{},
		Notifications:  map[string]models.Notification{},
		Fail:           map[string]error{},
		clock:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *Store) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

// now advances a fake clock so created_at ordering is deterministic.
func (s *Store) now() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *Store) fail(method string) error {
	return s.Fail[method]
}

func matches(scope policy.Scope, values map[string]string) bool {
	if scope.IsZero() {
		return true
	}
	return values[scope.Column] == scope.TenantID
}

// AddCompany inserts a company directly and returns it.
func (s *Store) AddCompany(id, name, vat string) models.Company {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := models.Company{ID: id, Name: name, VATNumber: vat}
	s.Companies[id] = c
	return c
}

// AddProfile inserts a profile directly.
func (s *Store) AddProfile(p models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	s.Profiles[p.ID] = p
}

// AddIncident inserts an incident directly.
func (s *Store) AddIncident(inc models.Incident) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if inc.CreatedAt.IsZero() {
		inc.CreatedAt = s.now()
	}
	s.Incidents[inc.ID] = inc
}

func (s *Store) companyRef(id *string) *models.Company {
	if id == nil {
		return nil
	}
	c, ok := s.Companies[*id]
	if !ok {
		return nil
	}
	return &c
}

func (s *Store) GetProfile(_ context.Context, id string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetProfile"); err != nil {
		return nil, err
	}
	p, ok := s.Profiles[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	p.Company = s.companyRef(p.CompanyID)
	p.FillCompanyName()
	return &p, nil
}

func (s *Store) ListProfiles(_ context.Context) ([]models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListProfiles"); err != nil {
		return nil, err
	}
	out := []models.Profile{}
	for _, p := range s.Profiles {
		p.Company = s.companyRef(p.CompanyID)
		p.FillCompanyName()
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) CreateProfile(_ context.Context, p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateProfile"); err != nil {
		return err
	}
	if _, exists := s.Profiles[p.ID]; exists {
		return fmt.Errorf("duplicate key value violates unique constraint \"profiles_pkey\"")
	}
	p.CreatedAt = s.now()
	s.Profiles[p.ID] = *p
	return nil
}

func (s *Store) ListCompanies(_ context.Context, scope policy.Scope) ([]models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListCompanies"); err != nil {
		return nil, err
	}
	out := []models.Company{}
	for _, c := range s.Companies {
		if matches(scope, map[string]string{"id": c.ID}) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) UpsertCompany(_ context.Context, c *models.Company) (*models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpsertCompany"); err != nil {
		return nil, err
	}
	saved := *c
	saved.ID = ""
	for id, existing := range s.Companies {
		if existing.VATNumber == c.VATNumber {
			saved.ID = id
		}
	}
	if saved.ID == "" {
		saved.ID = s.nextID("company")
	}
	s.Companies[saved.ID] = saved
	return &saved, nil
}

func (s *Store) UpsertDesignation(_ context.Context, d *models.Designation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpsertDesignation"); err != nil {
		return err
	}
	saved := *d
	if existing, ok := s.Designations[d.CompanyID]; ok {
		saved.ID = existing.ID
	} else {
		saved.ID = s.nextID("designation")
	}
	s.Designations[d.CompanyID] = saved
	return nil
}

func (s *Store) UpsertConfiguration(_ context.Context, cfg *models.NetworkConfiguration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpsertConfiguration"); err != nil {
		return err
	}
	saved := *cfg
	if existing, ok := s.Configurations[cfg.CompanyID]; ok {
		saved.ID = existing.ID
	} else {
		saved.ID = s.nextID("configuration")
	}
	s.Configurations[cfg.CompanyID] = saved
	return nil
}

func (s *Store) CreateIncident(_ context.Context, inc *models.Incident) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateIncident"); err != nil {
		return err
	}
	inc.ID = s.nextID("incident")
	inc.CreatedAt = s.now()
	s.Incidents[inc.ID] = *inc
	return nil
}

func (s *Store) GetIncident(_ context.Context, id string) (*models.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetIncident"); err != nil {
		return nil, err
	}
	inc, ok := s.Incidents[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &inc, nil
}

func (s *Store) ListIncidents(_ context.Context, scope policy.Scope) ([]models.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListIncidents"); err != nil {
		return nil, err
	}
	out := []models.Incident{}
	for _, inc := range s.Incidents {
		if matches(scope, map[string]string{"company_id": inc.CompanyID}) {
			id := inc.CompanyID
			inc.Company = s.companyRef(&id)
			out = append(out, inc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return incidentTime(out[i]).After(incidentTime(out[j])) })
	return out, nil
}

func incidentTime(inc models.Incident) time.Time {
	if inc.IncidentDatetime == nil {
		return time.Time{}
	}
	return inc.IncidentDatetime.Time
}

func (s *Store) CreateNotification(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateNotification"); err != nil {
		return err
	}
	n.ID = s.nextID("notification")
	n.CreatedAt = s.now()
	s.Notifications[n.ID] = *n
	return nil
}

func (s *Store) ListNotifications(_ context.Context, scope policy.Scope) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListNotifications"); err != nil {
		return nil, err
	}
	out := []models.Notification{}
	for _, n := range s.Notifications {
		if matches(scope, map[string]string{"company_id": n.CompanyID}) {
			if inc, ok := s.Incidents[n.IncidentID]; ok {
				n.Incident = &inc
			}
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
