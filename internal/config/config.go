package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
)

const (
	ProviderSupabase = "supabase"
	ProviderLocal    = "local"
)

type Config struct {
	AuthProvider   string
	SupabaseURL    string
	ServiceRoleKey string

	DBDSN       string
	AutoMigrate bool

	ServerPort    string
	SessionSecret string
	JWTSecret     string

	AdminEmail    string
	AdminPassword string

	StaticDirs  []string
	CORSOrigins []string
	LogLevel    string
}

// Load читает .env (если есть) и переменные окружения.
// Все отсутствующие обязательные значения возвращаются одной ошибкой.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AuthProvider:   strings.ToLower(strings.TrimSpace(os.Getenv("AUTH_PROVIDER"))),
		SupabaseURL:    strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
		ServiceRoleKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		DBDSN:          os.Getenv("DB_DSN"),
		ServerPort:     os.Getenv("PORT"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		StaticDirs:     splitList(os.Getenv("STATIC_DIRS")),
		CORSOrigins:    splitList(os.Getenv("CORS_ORIGINS")),
		LogLevel:       os.Getenv("LOG_LEVEL"),
	}

	if cfg.AuthProvider == "" {
		cfg.AuthProvider = ProviderSupabase
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "3000"
	}
	if len(cfg.StaticDirs) == 0 {
		cfg.StaticDirs = []string{"dist", "public"}
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = "admin@csirt.local"
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "Admin123!"
	}

	var result *multierror.Error

	if cfg.DBDSN == "" {
		result = multierror.Append(result, errors.New("DB_DSN is not set"))
	}

	switch cfg.AuthProvider {
	case ProviderSupabase:
		if cfg.SupabaseURL == "" {
			result = multierror.Append(result, errors.New("SUPABASE_URL is not set"))
		}
		if cfg.ServiceRoleKey == "" {
			result = multierror.Append(result, errors.New("SUPABASE_SERVICE_ROLE_KEY is not set"))
		}
	case ProviderLocal:
		if cfg.JWTSecret == "" {
			result = multierror.Append(result, errors.New("JWT_SECRET is not set"))
		}
	default:
		result = multierror.Append(result, fmt.Errorf("unknown AUTH_PROVIDER %q", cfg.AuthProvider))
	}

	migrate, err := parseBool(os.Getenv("DB_AUTO_MIGRATE"), cfg.AuthProvider == ProviderLocal)
	if err != nil {
		result = multierror.Append(result, fmt.Errorf("DB_AUTO_MIGRATE: %w", err))
	}
	cfg.AutoMigrate = migrate

	// сессионный ключ необязателен: берём сервисный ключ или JWT секрет
	if cfg.SessionSecret == "" {
		if cfg.ServiceRoleKey != "" {
			cfg.SessionSecret = cfg.ServiceRoleKey
		} else {
			cfg.SessionSecret = cfg.JWTSecret
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBool(raw string, def bool) (bool, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.ParseBool(raw)
}
