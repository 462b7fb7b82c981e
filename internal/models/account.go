package models

import "time"

// AuthAccount — учётная запись локального провайдера идентичности
// (AUTH_PROVIDER=local). С Supabase эта таблица не используется.
type AuthAccount struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `gorm:"not null"`
	FullName     string `gorm:"size:255"`
	CreatedAt    time.Time
}

func (AuthAccount) TableName() string { return "auth_users" }

// RefreshToken — выданный локальным провайдером refresh token.
type RefreshToken struct {
	Token     string `gorm:"primaryKey;size:64"`
	UserID    string `gorm:"type:uuid;index;not null"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (RefreshToken) TableName() string { return "auth_refresh_tokens" }
