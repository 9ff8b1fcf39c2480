package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpevim-backend/internal/config"
	"gpevim-backend/pkg/container"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	static := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(static, "index.html"), []byte("<h1>home</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(static, "about.html"), []byte("<h1>about</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(static, "style.css"), []byte("body{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(static, ".env"), []byte("DATABASE_URL=postgres://secret"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(static, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(static, ".git", "config"), []byte("[remote] url=secret"), 0o644))

	return &config.Config{
		Port:            "0",
		StoreDriver:     config.StoreDriverMemory,
		StorageDriver:   config.StorageDriverLocal,
		FallbackEnabled: true,
		StaticDir:       static,
		App:             config.AppConfig{Name: "test", Env: "test", Version: "test"},
		JWT:             config.JWTConfig{Secret: "test-secret", Expiry: time.Hour},
		Admin:           config.AdminConfig{BypassUsername: "ADM", BypassPassword: "fisica"},
		Image:           config.ImageConfig{MaxDimension: 800, Quality: 80},
		Upload:          config.UploadConfig{Dir: t.TempDir(), MaxBytes: 1 << 20},
	}
}

func setupTestRouter(t *testing.T, mutate func(*config.Config)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig(t)
	if mutate != nil {
		mutate(cfg)
	}

	c, err := container.NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(c.Cleanup)

	return SetupRouter(c)
}

func request(r *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStaticPages(t *testing.T) {
	r := setupTestRouter(t, nil)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"root", "/", http.StatusOK, "home"},
		{"allowed page", "/about", http.StatusOK, "about"},
		{"asset", "/style.css", http.StatusOK, "body{}"},
		{"unknown page", "/secret", http.StatusNotFound, "home"},
		{"traversal", "/../../etc/passwd", http.StatusNotFound, "home"},
		{"allowed page without file", "/news", http.StatusNotFound, "home"},
		{"dotfile", "/.env", http.StatusNotFound, "home"},
		{"dot directory", "/.git/config", http.StatusNotFound, "home"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := request(r, http.MethodGet, tt.path, "", nil)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			assert.NotContains(t, w.Body.String(), "postgres://")
		})
	}
}

func TestUnknownAPIRoute(t *testing.T) {
	r := setupTestRouter(t, nil)

	w := request(r, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Route not found","code":"NOT_FOUND"}`, w.Body.String())
}

func TestHealth_MemoryOnly(t *testing.T) {
	r := setupTestRouter(t, nil)

	w := request(r, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "not_configured", body["services"].(map[string]interface{})["durable"])
}

func TestMetricsEndpoint(t *testing.T) {
	r := setupTestRouter(t, nil)

	w := request(r, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cms_durable_backend_up")
}

func TestPublicationRoundTrip(t *testing.T) {
	r := setupTestRouter(t, nil)

	w := request(r, http.MethodPost, "/api/publications",
		`{"title":"Ensino de Física","author":"Silva","imageUrl":"/uploads/a.jpg","publicationUrl":"https://doi.org/10.1/x"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := int64(created["id"].(float64))

	w = request(r, http.MethodGet, "/api/publications/"+jsonNumber(id), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ensino de Física")

	w = request(r, http.MethodDelete, "/api/publications/"+jsonNumber(id), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(r, http.MethodDelete, "/api/publications/"+jsonNumber(id), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginAndProtectedWrites(t *testing.T) {
	r := setupTestRouter(t, func(cfg *config.Config) {
		cfg.Admin.AuthRequired = true
	})

	body := `{"name":"Ana","role":"Pesquisadora","imageUrl":"/uploads/ana.jpg","category":"coordenadores"}`

	w := request(r, http.MethodPost, "/api/members", body, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = request(r, http.MethodPost, "/api/login", `{"username":"ADM","password":"fisica"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.True(t, login.Success)

	w = request(r, http.MethodPost, "/api/members", body, map[string]string{"Authorization": "Bearer " + login.Token})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = request(r, http.MethodGet, "/api/members", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ana")
}

func jsonNumber(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
