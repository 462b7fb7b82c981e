package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"csirt-registry/internal/models"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/tidwall/gjson"
)

const maxResponseBytes = 1 << 20

// APIError — ответ GoTrue с не-2xx статусом.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("identity provider: %s (status %d)", e.Message, e.StatusCode)
}

// Supabase — клиент GoTrue (/auth/v1) управляемого бэкенда.
// Все запросы идут с сервисным ключом в заголовке apikey.
type Supabase struct {
	authURL    string
	serviceKey string
	client     *http.Client
}

// NewSupabase создаёт клиент; client == nil означает cleanhttp pooled client.
func NewSupabase(projectURL, serviceKey string, client *http.Client) *Supabase {
	if client == nil {
		client = cleanhttp.DefaultPooledClient()
	}
	return &Supabase{
		authURL:    projectURL + "/auth/v1",
		serviceKey: serviceKey,
		client:     client,
	}
}

func (s *Supabase) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body, err := s.do(ctx, http.MethodPost, "/token?grant_type=password", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		if isClientError(err) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
		}
		return nil, err
	}
	return parseSession(body)
}

func (s *Supabase) GetUser(ctx context.Context, accessToken string) (*models.AuthUser, error) {
	body, err := s.do(ctx, http.MethodGet, "/user", accessToken, nil)
	if err != nil {
		if isClientError(err) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		return nil, err
	}
	user := parseUser(gjson.ParseBytes(body))
	if user.ID == "" {
		return nil, ErrInvalidToken
	}
	return &user, nil
}

// SignOut обменивает refresh token на сессию и завершает её глобально.
func (s *Supabase) SignOut(ctx context.Context, refreshToken string) error {
	body, err := s.do(ctx, http.MethodPost, "/token?grant_type=refresh_token", "", map[string]string{
		"refresh_token": refreshToken,
	})
	if err != nil {
		if isClientError(err) {
			return fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		return err
	}
	access := gjson.GetBytes(body, "access_token").String()
	if access == "" {
		return ErrInvalidToken
	}
	_, err = s.do(ctx, http.MethodPost, "/logout?scope=global", access, nil)
	return err
}

func (s *Supabase) CreateUser(ctx context.Context, u NewUser) (*models.AuthUser, error) {
	body, err := s.do(ctx, http.MethodPost, "/admin/users", s.serviceKey, map[string]interface{}{
		"email":         u.Email,
		"password":      u.Password,
		"email_confirm": true,
		"user_metadata": map[string]string{"full_name": u.Name},
	})
	if err != nil {
		return nil, err
	}
	// admin API отдаёт пользователя либо в корне, либо в поле user
	res := gjson.ParseBytes(body)
	if res.Get("user").Exists() {
		res = res.Get("user")
	}
	user := parseUser(res)
	if user.ID == "" {
		return nil, fmt.Errorf("identity provider: user id missing in response")
	}
	return &user, nil
}

func (s *Supabase) do(ctx context.Context, method, path, bearer string, payload interface{}) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.authURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", s.serviceKey)
	req.Header.Set("Content-Type", "application/json")
	if bearer == "" {
		bearer = s.serviceKey
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider %s %s: %w", method, redact(path), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: ErrorMessage(body, resp.Status)}
	}
	return body, nil
}

// ErrorMessage достаёт текст ошибки из тела ответа GoTrue,
// формат которого отличается между версиями.
func ErrorMessage(body []byte, fallback string) string {
	if gjson.ValidBytes(body) {
		res := gjson.ParseBytes(body)
		for _, key := range []string{"msg", "message", "error_description", "error"} {
			if v := res.Get(key); v.Type == gjson.String && v.String() != "" {
				return v.String()
			}
		}
	}
	return fallback
}

func isClientError(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500
}

func parseSession(body []byte) (*Session, error) {
	res := gjson.ParseBytes(body)
	sess := &Session{
		AccessToken:  res.Get("access_token").String(),
		RefreshToken: res.Get("refresh_token").String(),
		User:         parseUser(res.Get("user")),
	}
	if sess.AccessToken == "" || sess.User.ID == "" {
		return nil, fmt.Errorf("identity provider: incomplete session in response")
	}
	return sess, nil
}

func parseUser(res gjson.Result) models.AuthUser {
	return models.AuthUser{
		ID:    res.Get("id").String(),
		Email: res.Get("email").String(),
	}
}

func redact(path string) string {
	u, err := url.Parse(path)
	if err != nil {
		return path
	}
	return u.Path
}
