package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodhub/internal/auth"
	"foodhub/internal/entity/db"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// userStubRepo 在用户桩之上记录写入的更新字段。
type userStubRepo struct {
	*stubRepo
	userUpdates map[uint]map[string]interface{}
}

func newUserStubRepo(users ...*db.User) *userStubRepo {
	return &userStubRepo{
		stubRepo:    newStubRepo(users...),
		userUpdates: make(map[uint]map[string]interface{}),
	}
}

func (s *userStubRepo) UpdateUser(_ context.Context, id uint, updates map[string]interface{}) error {
	user, ok := s.usersByID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.userUpdates[id] = updates
	if hash, ok := updates["password_hash"].(string); ok {
		user.PasswordHash = hash
	}
	return nil
}

func profileRouter(h *HTTPHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/profile", h.Authenticator(), h.UpdateProfile)
	return r
}

func TestUpdateProfilePasswordHashing(t *testing.T) {
	user := activeUser(1, "maker@example.com", db.UserRoleManufacturer)
	repo := newUserStubRepo(user)
	h := newTestHandler(t, repo)
	r := profileRouter(h)

	send := func(body string) *httptest.ResponseRecorder {
		token, _, err := h.authManager.GenerateToken(user)
		if err != nil {
			t.Fatalf("unexpected error generating token: %v", err)
		}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/profile", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		return w
	}

	if w := send(`{"password":"fresh-secret-1"}`); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	stored, ok := repo.userUpdates[user.ID]["password_hash"].(string)
	if !ok {
		t.Fatal("expected password_hash update")
	}
	if !auth.IsHashed(stored) {
		t.Fatalf("expected stored value to be a bcrypt hash, got %q", stored)
	}
	if err := auth.VerifyPassword(stored, "fresh-secret-1"); err != nil {
		t.Fatalf("expected stored hash to verify the plaintext: %v", err)
	}

	// 已经是 bcrypt 哈希的值原样写入，不做二次哈希
	if w := send(`{"password":"` + stored + `"}`); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	again, _ := repo.userUpdates[user.ID]["password_hash"].(string)
	if again != stored {
		t.Fatalf("expected hash to pass through unchanged, got %q", again)
	}
}
