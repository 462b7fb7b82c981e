// Package identity — работа с провайдером идентичности: вход по паролю,
// проверка bearer токена, выход и создание пользователей админом.
package identity

import (
	"context"
	"errors"

	"csirt-registry/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type Session struct {
	AccessToken  string
	RefreshToken string
	User         models.AuthUser
}

type NewUser struct {
	Email    string
	Password string
	Name     string
}

// Provider проверяет токены на каждом запросе, результат не кэшируется.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	GetUser(ctx context.Context, accessToken string) (*models.AuthUser, error)
	// SignOut отзывает сессию по refresh token.
	SignOut(ctx context.Context, refreshToken string) error
	// CreateUser создаёт пользователя с уже подтверждённым email.
	CreateUser(ctx context.Context, u NewUser) (*models.AuthUser, error)
}
