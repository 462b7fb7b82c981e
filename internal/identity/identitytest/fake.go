// Package identitytest provides an in-memory identity.Provider for tests.
package identitytest

import (
	"context"
	"fmt"
	"sync"

	"csirt-registry/internal/identity"
	"csirt-registry/internal/models"
)

var _ identity.Provider = (*Provider)(nil)

type account struct {
	password string
	user     models.AuthUser
}

type Provider struct {
	mu sync.Mutex

	tokens   map[string]models.AuthUser
	accounts map[string]account
	refresh  map[string]string

	// CreateErr, when set, is returned by CreateUser.
	CreateErr error
	// SignedOut records refresh tokens passed to SignOut.
	SignedOut []string

	seq int
}

func New() *Provider {
	return &Provider{
		tokens:   map[string]models.AuthUser{},
		accounts: map[string]account{},
		refresh:  map[string]string{},
	}
}

// AddToken makes token valid for user.
func (p *Provider) AddToken(token string, user models.AuthUser) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tokens[token] = user
}

// AddAccount registers an email/password pair.
func (p *Provider) AddAccount(email, password string, user models.AuthUser) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.accounts[email] = account{password: password, user: user}
}

func (p *Provider) SignIn(_ context.Context, email, password string) (*identity.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	acc, ok := p.accounts[email]
	if !ok || acc.password != password {
		return nil, identity.ErrInvalidCredentials
	}
	p.seq++
	access := fmt.Sprintf("access-%d", p.seq)
	refresh := fmt.Sprintf("refresh-%d", p.seq)
	p.tokens[access] = acc.user
	p.refresh[refresh] = access
	return &identity.Session{AccessToken: access, RefreshToken: refresh, User: acc.user}, nil
}

func (p *Provider) GetUser(_ context.Context, token string) (*models.AuthUser, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	u, ok := p.tokens[token]
	if !ok {
		return nil, identity.ErrInvalidToken
	}
	return &u, nil
}

func (p *Provider) SignOut(_ context.Context, refreshToken string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.SignedOut = append(p.SignedOut, refreshToken)
	// как и настоящие провайдеры, отзывается только refresh token;
	// access token живёт до истечения срока
	if _, ok := p.refresh[refreshToken]; !ok {
		return identity.ErrInvalidToken
	}
	delete(p.refresh, refreshToken)
	return nil
}

func (p *Provider) CreateUser(_ context.Context, u identity.NewUser) (*models.AuthUser, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.CreateErr != nil {
		return nil, p.CreateErr
	}
	if _, exists := p.accounts[u.Email]; exists {
		return nil, fmt.Errorf("a user with this email address has already been registered")
	}
	p.seq++
	user := models.AuthUser{ID: fmt.Sprintf("user-%d", p.seq), Email: u.Email}
	p.accounts[u.Email] = account{password: u.Password, user: user}
	return &user, nil
}
