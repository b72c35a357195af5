package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/devdash/devdash/internal/common/logger"
	"github.com/devdash/devdash/internal/user/models"
	"github.com/devdash/devdash/internal/user/store"
)

func setupRouter(t *testing.T) (*gin.Engine, *models.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := store.NewMemoryStore()
	user := &models.User{
		Email:    "dev@devdash.local",
		Username: "dev",
		APIToken: "secret-token",
		IsActive: true,
	}
	if err := users.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	router := gin.New()
	router.Use(Middleware(NewTokenVerifier(users), logger.Default()))
	router.GET("/whoami", func(c *gin.Context) {
		u := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": u.ID})
	})
	return router, user
}

func TestMiddlewareValidToken(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestMiddlewareQueryToken(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami?token=secret-token", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestMiddlewareMissingToken(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestMiddlewareInvalidToken(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer wrong-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestMiddlewareInactiveUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	users := store.NewMemoryStore()
	if err := users.CreateUser(context.Background(), &models.User{
		Email:    "gone@devdash.local",
		Username: "gone",
		APIToken: "stale-token",
		IsActive: false,
	}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	router := gin.New()
	router.Use(Middleware(NewTokenVerifier(users), logger.Default()))
	router.GET("/whoami", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for inactive user, got %d", w.Code)
	}
}
