package admin

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ashu2380/mykart-sub001/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func adminLoginRequest(t *testing.T, cfg *config.Config, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/api/admin/login", Login(cfg))

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminLogin(t *testing.T) {
	cfg := &config.Config{
		AdminEmail:    "admin@mykart.in",
		AdminPassword: "hunter2-mais-long",
		JWTSecret:     "test-secret",
	}

	w := adminLoginRequest(t, cfg, `{"email": "admin@mykart.in", "password": "hunter2-mais-long"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == "token" && c.Value != "" {
			found = true
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, found, "cookie de session attendu")
}

func TestAdminLoginWrongPassword(t *testing.T) {
	cfg := &config.Config{
		AdminEmail:    "admin@mykart.in",
		AdminPassword: "hunter2-mais-long",
		JWTSecret:     "test-secret",
	}

	w := adminLoginRequest(t, cfg, `{"email": "admin@mykart.in", "password": "nope"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminLoginDisabled(t *testing.T) {
	// Credentials non configurés : aucune combinaison ne doit passer
	cfg := &config.Config{JWTSecret: "test-secret"}

	w := adminLoginRequest(t, cfg, `{"email": "admin@mykart.in", "password": "anything"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminLoginMissingFields(t *testing.T) {
	cfg := &config.Config{AdminEmail: "a@b.in", AdminPassword: "x", JWTSecret: "s"}

	w := adminLoginRequest(t, cfg, `{"email": "admin@mykart.in"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
