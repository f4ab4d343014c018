package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"foodhub/internal/entity/db"

	"github.com/google/uuid"
)

const (
	// SessionTTL 是会话的滑动有效期。
	SessionTTL = 7 * 24 * time.Hour
	// SessionTouchInterval 限制持久化刷新频率：24 小时内最多落库一次。
	SessionTouchInterval = 24 * time.Hour

	// SessionCookieName 是承载签名会话 ID 的 Cookie 名。
	SessionCookieName = "foodhub_session"
)

// ErrSessionInvalid 在 Cookie 无法解析、签名不符或会话过期时返回。
var ErrSessionInvalid = errors.New("session invalid or expired")

// SessionStore 是会话持久化的窄接口，由仓库实现。
type SessionStore interface {
	CreateSession(ctx context.Context, session *db.Session) error
	GetSession(ctx context.Context, id string) (*db.Session, error)
	TouchSession(ctx context.Context, id string, expiresAt, refreshedAt time.Time) error
	DeleteSession(ctx context.Context, id string) error
}

// SessionManager 负责签发和解析服务端会话。
type SessionManager struct {
	secret []byte
	store  SessionStore
}

// NewSessionManager creates a session manager over the given store.
func NewSessionManager(secret string, store SessionStore) (*SessionManager, error) {
	trimmed := strings.TrimSpace(secret)
	if trimmed == "" {
		return nil, errors.New("session secret must not be empty")
	}
	return &SessionManager{secret: []byte(trimmed), store: store}, nil
}

// Create persists a new session for the user and returns the signed cookie value.
func (m *SessionManager) Create(ctx context.Context, userID uint) (string, *db.Session, error) {
	now := time.Now().UTC()
	session := &db.Session{
		ID:          uuid.NewString(),
		UserID:      userID,
		ExpiresAt:   now.Add(SessionTTL),
		RefreshedAt: now,
	}
	if err := m.store.CreateSession(ctx, session); err != nil {
		return "", nil, err
	}
	return m.sign(session.ID), session, nil
}

// Resolve validates the cookie value and loads the session. Expiry is checked
// lazily at read time; a valid read extends the window, but the store write is
// skipped when the last refresh is under SessionTouchInterval old.
func (m *SessionManager) Resolve(ctx context.Context, cookieValue string) (*db.Session, error) {
	id, ok := m.verify(cookieValue)
	if !ok {
		return nil, ErrSessionInvalid
	}
	session, err := m.store.GetSession(ctx, id)
	if err != nil {
		return nil, ErrSessionInvalid
	}
	now := time.Now().UTC()
	if session.Expired(now) {
		_ = m.store.DeleteSession(ctx, id)
		return nil, ErrSessionInvalid
	}
	if now.Sub(session.RefreshedAt) >= SessionTouchInterval {
		session.ExpiresAt = now.Add(SessionTTL)
		session.RefreshedAt = now
		if err := m.store.TouchSession(ctx, id, session.ExpiresAt, session.RefreshedAt); err != nil {
			return nil, err
		}
	}
	return session, nil
}

// Destroy removes the session referenced by the cookie value.
func (m *SessionManager) Destroy(ctx context.Context, cookieValue string) error {
	id, ok := m.verify(cookieValue)
	if !ok {
		return ErrSessionInvalid
	}
	return m.store.DeleteSession(ctx, id)
}

// sign 生成 "id.signature" 形式的 Cookie 值。
func (m *SessionManager) sign(id string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(id))
	return id + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// verify 校验签名并取出会话 ID。
func (m *SessionManager) verify(cookieValue string) (string, bool) {
	parts := strings.SplitN(cookieValue, ".", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", false
	}
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(parts[0]))
	expected := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(parts[1])) {
		return "", false
	}
	return parts[0], true
}
