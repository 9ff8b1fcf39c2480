package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpevim-backend/internal/domains/auth/model"
	"gpevim-backend/internal/domains/auth/service"
	"gpevim-backend/internal/shared/store"
	"gpevim-backend/pkg/jwt"
)

type downRepo struct{}

func (downRepo) GetByUsername(context.Context, string) (*model.AdminUser, error) {
	return nil, store.Unavailable("get admin", errors.New("dial tcp: connection refused"))
}

func (downRepo) EnsureAdmin(context.Context, string, string) (bool, error) {
	return false, store.Unavailable("seed admin", errors.New("dial tcp: connection refused"))
}

func (downRepo) UpdatePasswordHash(context.Context, int64, string) error { return nil }

func setupRouter(svc service.ServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewAuthHandler(svc).RegisterRoutes(r.Group("/api"))
	return r
}

func postLogin(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin(t *testing.T) {
	tokens := jwt.NewManager("test-secret", time.Hour, "gpevim")
	bypass := service.Credentials{Username: "ADM", Password: "fisica"}

	tests := []struct {
		name       string
		svc        service.ServiceInterface
		body       string
		wantStatus int
	}{
		{"bypass with durable down", service.NewAuthService(downRepo{}, tokens, bypass), `{"username":"ADM","password":"fisica"}`, http.StatusOK},
		{"bypass in memory mode", service.NewAuthService(nil, tokens, bypass), `{"username":"ADM","password":"fisica"}`, http.StatusOK},
		{"wrong password in memory mode", service.NewAuthService(nil, tokens, bypass), `{"username":"ADM","password":"nope"}`, http.StatusUnauthorized},
		{"backend unavailable", service.NewAuthService(downRepo{}, tokens, bypass), `{"username":"admin","password":"x"}`, http.StatusInternalServerError},
		{"missing password", service.NewAuthService(nil, tokens, bypass), `{"username":"admin"}`, http.StatusBadRequest},
		{"malformed json", service.NewAuthService(nil, tokens, bypass), `{"username":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postLogin(setupRouter(tt.svc), tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)

			switch tt.wantStatus {
			case http.StatusOK:
				var resp model.LoginResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.True(t, resp.Success)
				_, err := tokens.ValidateAdminToken(resp.Token)
				assert.NoError(t, err)
			case http.StatusUnauthorized:
				var resp model.LoginResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.False(t, resp.Success)
				assert.Empty(t, resp.Token)
			case http.StatusInternalServerError:
				assert.NotContains(t, w.Body.String(), "connection refused")
			}
		})
	}
}
