package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foodhub/internal/config"
	"foodhub/internal/entity/db"
	"foodhub/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// stubRepo 只实现中间件用到的方法，其余继承空接口。
type stubRepo struct {
	model.Repository
	usersByEmail map[string]*db.User
	usersByID    map[uint]*db.User
	sessions     map[string]*db.Session
}

func newStubRepo(users ...*db.User) *stubRepo {
	repo := &stubRepo{
		usersByEmail: make(map[string]*db.User),
		usersByID:    make(map[uint]*db.User),
		sessions:     make(map[string]*db.Session),
	}
	for _, u := range users {
		repo.usersByEmail[u.Email] = u
		repo.usersByID[u.ID] = u
	}
	return repo
}

func (s *stubRepo) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	user, ok := s.usersByEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubRepo) GetUserByID(_ context.Context, id uint) (*db.User, error) {
	user, ok := s.usersByID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubRepo) CreateSession(_ context.Context, session *db.Session) error {
	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

func (s *stubRepo) GetSession(_ context.Context, id string) (*db.Session, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *stubRepo) TouchSession(_ context.Context, id string, expiresAt, refreshedAt time.Time) error {
	session, ok := s.sessions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	session.ExpiresAt = expiresAt
	session.RefreshedAt = refreshedAt
	return nil
}

func (s *stubRepo) DeleteSession(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func testConfig() config.Config {
	return config.Config{
		JWTSecret:            "test-secret",
		JWTIssuer:            "test",
		JWTExpirationMinutes: 60,
		SessionSecret:        "test-session-secret",
	}
}

func newTestHandler(t *testing.T, repo model.Repository) *HTTPHandler {
	t.Helper()
	handler, err := NewHTTPHandler(testConfig(), repo, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error creating handler: %v", err)
	}
	return handler
}

func guardedRouter(h *HTTPHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", h.Authenticator(), func(c *gin.Context) {
		user := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID, "role": user.Role})
	})
	r.GET("/admin-only", h.Authenticator(), h.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/sellers", h.Authenticator(), h.RequireRole(db.UserRoleManufacturer, db.UserRoleBrand), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func activeUser(id uint, email, role string) *db.User {
	return &db.User{ID: id, Email: email, Role: role, Status: db.UserStatusActive}
}

func TestAuthenticatorRejectsMissingCredentials(t *testing.T) {
	h := newTestHandler(t, newStubRepo())
	r := guardedRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthenticatorBearerToken(t *testing.T) {
	user := activeUser(1, "maker@example.com", db.UserRoleManufacturer)
	repo := newStubRepo(user)
	h := newTestHandler(t, repo)
	r := guardedRouter(h)

	token, _, err := h.authManager.GenerateToken(user)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthenticatorBearerDoesNotFallThrough(t *testing.T) {
	user := activeUser(1, "admin@example.com", db.UserRoleAdmin)
	repo := newStubRepo(user)
	h := newTestHandler(t, repo)
	r := guardedRouter(h)

	// Bearer 无效时即使带了合法的管理员头也必须拒绝
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	req.Header.Set(adminAuthHeader, "gateway-token")
	req.Header.Set(adminRoleHeader, "admin")
	req.Header.Set(adminEmailHeader, "admin@example.com")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthenticatorAdminHeaders(t *testing.T) {
	admin := activeUser(2, "admin@example.com", db.UserRoleAdmin)
	retailer := activeUser(3, "shop@example.com", db.UserRoleRetailer)
	repo := newStubRepo(admin, retailer)
	h := newTestHandler(t, repo)
	r := guardedRouter(h)

	send := func(token, role, email string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if token != "" {
			req.Header.Set(adminAuthHeader, token)
		}
		if role != "" {
			req.Header.Set(adminRoleHeader, role)
		}
		if email != "" {
			req.Header.Set(adminEmailHeader, email)
		}
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("complete bundle passes", func(t *testing.T) {
		if w := send("gateway-token", "admin", "admin@example.com"); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("role header is case-insensitive", func(t *testing.T) {
		if w := send("gateway-token", "Admin", "admin@example.com"); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("missing role header rejected", func(t *testing.T) {
		if w := send("gateway-token", "", "admin@example.com"); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("missing email header rejected", func(t *testing.T) {
		if w := send("gateway-token", "admin", ""); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("non-admin role claim rejected", func(t *testing.T) {
		if w := send("gateway-token", "retailer", "admin@example.com"); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("email mapping to non-admin rejected", func(t *testing.T) {
		if w := send("gateway-token", "admin", "shop@example.com"); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("unknown email rejected", func(t *testing.T) {
		if w := send("gateway-token", "admin", "ghost@example.com"); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

func TestAuthenticatorSessionCookie(t *testing.T) {
	user := activeUser(4, "brand@example.com", db.UserRoleBrand)
	repo := newStubRepo(user)
	h := newTestHandler(t, repo)
	r := guardedRouter(h)

	cookieValue, _, err := h.sessionManager.Create(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error creating session: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: h.sessionCookieName(), Value: cookieValue})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// 篡改过的 Cookie 被拒绝
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: h.sessionCookieName(), Value: cookieValue + "x"})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for tampered cookie, got %d", w.Code)
	}
}

func TestAuthenticatorRejectsDisabledUser(t *testing.T) {
	user := &db.User{ID: 5, Email: "off@example.com", Role: db.UserRoleRetailer, Status: db.UserStatusSuspended}
	repo := newStubRepo(user)
	h := newTestHandler(t, repo)
	r := guardedRouter(h)

	token, _, err := h.authManager.GenerateToken(user)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for suspended account, got %d", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	retailer := activeUser(6, "shop@example.com", db.UserRoleRetailer)
	maker := activeUser(7, "maker@example.com", db.UserRoleManufacturer)
	admin := activeUser(8, "admin@example.com", db.UserRoleAdmin)
	repo := newStubRepo(retailer, maker, admin)
	h := newTestHandler(t, repo)
	r := guardedRouter(h)

	send := func(user *db.User, path string) *httptest.ResponseRecorder {
		token, _, err := h.authManager.GenerateToken(user)
		if err != nil {
			t.Fatalf("unexpected error generating token: %v", err)
		}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		return w
	}

	if w := send(maker, "/sellers"); w.Code != http.StatusOK {
		t.Fatalf("expected manufacturer to pass role gate, got %d", w.Code)
	}
	if w := send(retailer, "/sellers"); w.Code != http.StatusForbidden {
		t.Fatalf("expected retailer to be rejected, got %d", w.Code)
	}
	// 管理员穿透所有角色限制
	if w := send(admin, "/sellers"); w.Code != http.StatusOK {
		t.Fatalf("expected admin to bypass role gate, got %d", w.Code)
	}
	if w := send(retailer, "/admin-only"); w.Code != http.StatusForbidden {
		t.Fatalf("expected retailer to be rejected from admin route, got %d", w.Code)
	}
	if w := send(admin, "/admin-only"); w.Code != http.StatusOK {
		t.Fatalf("expected admin to pass admin route, got %d", w.Code)
	}
}
