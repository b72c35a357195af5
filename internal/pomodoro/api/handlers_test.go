package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devdash/devdash/internal/auth"
	"github.com/devdash/devdash/internal/common/logger"
	"github.com/devdash/devdash/internal/events/bus"
	"github.com/devdash/devdash/internal/pomodoro/models"
	"github.com/devdash/devdash/internal/pomodoro/service"
	"github.com/devdash/devdash/internal/pomodoro/store"
	usermodels "github.com/devdash/devdash/internal/user/models"
	userstore "github.com/devdash/devdash/internal/user/store"
)

type testEnv struct {
	router   *gin.Engine
	sessions *store.MemoryStore
	user     *usermodels.User
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.Default()

	users := userstore.NewMemoryStore()
	user := &usermodels.User{Email: "dev@devdash.local", Username: "dev", APIToken: "token", IsActive: true}
	if err := users.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	sessions := store.NewMemoryStore()
	svc := service.NewService(sessions, bus.NewMemoryEventBus(log), log)

	router := gin.New()
	group := router.Group("/api")
	group.Use(auth.Middleware(auth.NewTokenVerifier(users), log))
	RegisterRoutes(group, NewHandler(svc, log))

	return &testEnv{router: router, sessions: sessions, user: user}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestCreateSessionDefaults(t *testing.T) {
	env := setupEnv(t)

	w := env.do(t, http.MethodPost, "/api/pomodoro/sessions", map[string]interface{}{
		"duration": 25,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var session models.Session
	if err := json.Unmarshal(w.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if session.SessionType != models.SessionTypeWork {
		t.Errorf("expected default session type work, got %q", session.SessionType)
	}
	if session.StartedAt.IsZero() {
		t.Error("expected started_at to default to now")
	}
	if session.Completed {
		t.Error("expected new session to be incomplete")
	}
}

func TestCreateSessionRejectsMissingDuration(t *testing.T) {
	env := setupEnv(t)

	w := env.do(t, http.MethodPost, "/api/pomodoro/sessions", map[string]interface{}{
		"session_type": "work",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestListSessionsLimit(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		if err := env.sessions.CreateSession(ctx, &models.Session{
			UserID:    env.user.ID,
			Duration:  25,
			StartedAt: base.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("seed session %d: %v", i, err)
		}
	}

	w := env.do(t, http.MethodGet, "/api/pomodoro/sessions?limit=3", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var sessions []*models.Session
	if err := json.Unmarshal(w.Body.Bytes(), &sessions); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	// Most recently started first.
	if !sessions[0].StartedAt.After(sessions[1].StartedAt) {
		t.Error("expected sessions in descending start order")
	}
}

func TestUpdateSessionCompletion(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	session := &models.Session{UserID: env.user.ID, Duration: 25}
	if err := env.sessions.CreateSession(ctx, session); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	w := env.do(t, http.MethodPut, "/api/pomodoro/sessions/"+session.ID, map[string]interface{}{
		"completed": true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.Session
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !updated.Completed {
		t.Error("expected session to be completed")
	}
	if updated.CompletedAt == nil {
		t.Error("expected completed_at to default to now on completion")
	}
}

func TestUpdateUnknownSessionNotFound(t *testing.T) {
	env := setupEnv(t)

	w := env.do(t, http.MethodPut, "/api/pomodoro/sessions/no-such-id", map[string]interface{}{
		"completed": true,
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}
