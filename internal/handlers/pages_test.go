package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestFrontendSearchesDirsInOrder(t *testing.T) {
	dist, public := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(public, "index.html"), []byte("public index"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(public, "logo.svg"), []byte("<svg/>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dist, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dist, "assets", "main.js"), []byte("main"), 0o644))

	r := gin.New()
	r.NoRoute(Frontend([]string{dist, public}))

	cases := []struct {
		method, path string
		status       int
		body         string
	}{
		{http.MethodGet, "/assets/main.js", http.StatusOK, "main"},
		{http.MethodGet, "/logo.svg", http.StatusOK, "<svg/>"},
		{http.MethodGet, "/dashboard", http.StatusOK, "public index"},
		{http.MethodGet, "/assets/../../etc/passwd", http.StatusOK, "public index"},
		{http.MethodGet, "/.git/config", http.StatusOK, "public index"},
		{http.MethodPost, "/dashboard", http.StatusNotFound, ""},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, tc.status, w.Code, "%s %s", tc.method, tc.path)
		if tc.body != "" {
			assert.Equal(t, tc.body, w.Body.String(), tc.path)
		}
	}
}

func TestFrontendWithoutBundle(t *testing.T) {
	r := gin.New()
	r.NoRoute(Frontend([]string{t.TempDir()}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/unknown", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"API route not found"}`, w.Body.String())
}

func TestHasHiddenSegment(t *testing.T) {
	assert.True(t, hasHiddenSegment("/.env"))
	assert.True(t, hasHiddenSegment("/static/.secret/x"))
	assert.False(t, hasHiddenSegment("/static/app.js"))
}
