package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"csirt-registry/internal/database/databasetest"
	"csirt-registry/internal/identity/identitytest"
	"csirt-registry/internal/models"
	"csirt-registry/internal/policy"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setup(t *testing.T) (*gin.Engine, *databasetest.Store) {
	t.Helper()

	store := databasetest.New()
	provider := identitytest.New()

	tenant := "T1"
	store.AddCompany("T1", "Acme", "IT001")
	store.AddProfile(models.Profile{ID: "u-company", Name: "Carla", Role: models.RoleCompany, CompanyID: &tenant})
	store.AddProfile(models.Profile{ID: "u-admin", Name: "Ada", Role: models.RoleAdmin})
	provider.AddToken("company-token", models.AuthUser{ID: "u-company", Email: "c@x.com"})
	provider.AddToken("admin-token", models.AuthUser{ID: "u-admin", Email: "a@x.com"})
	provider.AddToken("orphan-token", models.AuthUser{ID: "u-orphan"})

	r := gin.New()
	r.GET("/me", RequireAuth(provider, store), func(c *gin.Context) {
		user, _ := CurrentUser(c)
		profile, _ := CurrentProfile(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID, "role": profile.Role, "company_name": profile.CompanyName})
	})
	r.GET("/users", RequireAuth(provider, store), Authorize(policy.OpListUsers), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/incidents", RequireAuth(provider, store), Authorize(policy.OpListIncidents), func(c *gin.Context) {
		d, ok := CurrentDecision(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"tenant": d.Scope().TenantID})
	})
	return r, store
}

func get(r http.Handler, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthMissingOrMalformed(t *testing.T) {
	r, _ := setup(t)

	for _, header := range []string{"", "company-token", "Basic Zm9vOmJhcg==", "Bearer ", "bearer company-token"} {
		w := get(r, "/me", header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	r, _ := setup(t)

	w := get(r, "/me", "Bearer expired")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid token"}`, w.Body.String())
}

func TestRequireAuthProfileMissing(t *testing.T) {
	r, _ := setup(t)

	w := get(r, "/me", "Bearer orphan-token")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAuthProfileLookupError(t *testing.T) {
	r, store := setup(t)
	store.Fail["GetProfile"] = errors.New("connection refused")

	w := get(r, "/me", "Bearer admin-token")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAuthAttachesProfile(t *testing.T) {
	r, _ := setup(t)

	w := get(r, "/me", "Bearer company-token")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"u-company","role":"company","company_name":"Acme"}`, w.Body.String())
}

func TestAuthorizeRole(t *testing.T) {
	r, _ := setup(t)

	assert.Equal(t, http.StatusForbidden, get(r, "/users", "Bearer company-token").Code)
	assert.Equal(t, http.StatusOK, get(r, "/users", "Bearer admin-token").Code)
}

func TestAuthorizeStoresDecision(t *testing.T) {
	r, _ := setup(t)

	w := get(r, "/incidents", "Bearer company-token")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tenant":"T1"}`, w.Body.String())

	w = get(r, "/incidents", "Bearer admin-token")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tenant":""}`, w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://app.example"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://app.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := get(r, "/ping", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))
}
