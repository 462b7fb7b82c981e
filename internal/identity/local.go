package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"csirt-registry/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// tokenSigner выпускает и проверяет HS256 access token.
type tokenSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func (s tokenSigner) issue(user models.AuthUser) (string, error) {
	now := s.now()
	claims := accessClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s tokenSigner) parse(raw string) (*models.AuthUser, error) {
	var claims accessClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &models.AuthUser{ID: claims.Subject, Email: claims.Email}, nil
}

// Local — провайдер идентичности в той же базе (таблицы auth_users и
// auth_refresh_tokens). Пароли хранятся как bcrypt хэши.
type Local struct {
	db     *gorm.DB
	tokens tokenSigner
}

func NewLocal(db *gorm.DB, jwtSecret string) *Local {
	return &Local{
		db:     db,
		tokens: tokenSigner{secret: []byte(jwtSecret), ttl: accessTokenTTL, now: time.Now},
	}
}

func (l *Local) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var account models.AuthAccount
	err := l.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user := models.AuthUser{ID: account.ID, Email: account.Email}
	access, err := l.tokens.issue(user)
	if err != nil {
		return nil, err
	}

	refresh := models.RefreshToken{
		Token:     uuid.NewString(),
		UserID:    account.ID,
		ExpiresAt: l.tokens.now().Add(refreshTokenTTL),
	}
	if err := l.db.WithContext(ctx).Create(&refresh).Error; err != nil {
		return nil, err
	}

	return &Session{AccessToken: access, RefreshToken: refresh.Token, User: user}, nil
}

func (l *Local) GetUser(_ context.Context, accessToken string) (*models.AuthUser, error) {
	return l.tokens.parse(accessToken)
}

func (l *Local) SignOut(ctx context.Context, refreshToken string) error {
	res := l.db.WithContext(ctx).
		Where("token = ?", refreshToken).
		Delete(&models.RefreshToken{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidToken
	}
	return nil
}

func (l *Local) CreateUser(ctx context.Context, u NewUser) (*models.AuthUser, error) {
	email := normalizeEmail(u.Email)
	if email == "" || u.Password == "" {
		return nil, errors.New("email and password are required")
	}

	var count int64
	if err := l.db.WithContext(ctx).Model(&models.AuthAccount{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("a user with this email address has already been registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := models.AuthAccount{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     u.Name,
	}
	if err := l.db.WithContext(ctx).Create(&account).Error; err != nil {
		return nil, err
	}
	return &models.AuthUser{ID: account.ID, Email: account.Email}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
