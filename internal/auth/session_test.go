package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"foodhub/internal/entity/db"
)

type memorySessionStore struct {
	sessions map[string]*db.Session
	touches  int
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string]*db.Session)}
}

func (s *memorySessionStore) CreateSession(_ context.Context, session *db.Session) error {
	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

func (s *memorySessionStore) GetSession(_ context.Context, id string) (*db.Session, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, errors.New("not found")
	}
	copied := *session
	return &copied, nil
}

func (s *memorySessionStore) TouchSession(_ context.Context, id string, expiresAt, refreshedAt time.Time) error {
	session, ok := s.sessions[id]
	if !ok {
		return errors.New("not found")
	}
	session.ExpiresAt = expiresAt
	session.RefreshedAt = refreshedAt
	s.touches++
	return nil
}

func (s *memorySessionStore) DeleteSession(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func TestSessionLifecycle(t *testing.T) {
	store := newMemorySessionStore()
	mgr, err := NewSessionManager("session-secret", store)
	if err != nil {
		t.Fatalf("unexpected error creating session manager: %v", err)
	}

	ctx := context.Background()
	cookieValue, session, err := mgr.Create(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected error creating session: %v", err)
	}
	if session.UserID != 7 {
		t.Fatalf("expected user id 7, got %d", session.UserID)
	}

	resolved, err := mgr.Resolve(ctx, cookieValue)
	if err != nil {
		t.Fatalf("unexpected error resolving session: %v", err)
	}
	if resolved.ID != session.ID {
		t.Fatalf("expected session %s, got %s", session.ID, resolved.ID)
	}

	if err := mgr.Destroy(ctx, cookieValue); err != nil {
		t.Fatalf("unexpected error destroying session: %v", err)
	}
	if _, err := mgr.Resolve(ctx, cookieValue); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid after destroy, got %v", err)
	}
}

func TestSessionRejectsTamperedCookie(t *testing.T) {
	store := newMemorySessionStore()
	mgr, err := NewSessionManager("session-secret", store)
	if err != nil {
		t.Fatalf("unexpected error creating session manager: %v", err)
	}

	ctx := context.Background()
	cookieValue, _, err := mgr.Create(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error creating session: %v", err)
	}

	tampered := cookieValue[:len(cookieValue)-1] + "x"
	if _, err := mgr.Resolve(ctx, tampered); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid for tampered cookie, got %v", err)
	}

	if _, err := mgr.Resolve(ctx, "no-signature"); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid for malformed cookie, got %v", err)
	}
}

func TestSessionExpiryIsLazy(t *testing.T) {
	store := newMemorySessionStore()
	mgr, err := NewSessionManager("session-secret", store)
	if err != nil {
		t.Fatalf("unexpected error creating session manager: %v", err)
	}

	ctx := context.Background()
	cookieValue, session, err := mgr.Create(ctx, 3)
	if err != nil {
		t.Fatalf("unexpected error creating session: %v", err)
	}

	// 把存储里的记录改成已过期
	stored := store.sessions[session.ID]
	stored.ExpiresAt = time.Now().UTC().Add(-time.Minute)

	if _, err := mgr.Resolve(ctx, cookieValue); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid for expired session, got %v", err)
	}
	if _, ok := store.sessions[session.ID]; ok {
		t.Fatal("expected expired session to be deleted on read")
	}
}

func TestSessionTouchIsThrottled(t *testing.T) {
	store := newMemorySessionStore()
	mgr, err := NewSessionManager("session-secret", store)
	if err != nil {
		t.Fatalf("unexpected error creating session manager: %v", err)
	}

	ctx := context.Background()
	cookieValue, session, err := mgr.Create(ctx, 9)
	if err != nil {
		t.Fatalf("unexpected error creating session: %v", err)
	}

	// 刚刷新过：解析不应触发落库
	if _, err := mgr.Resolve(ctx, cookieValue); err != nil {
		t.Fatalf("unexpected error resolving session: %v", err)
	}
	if store.touches != 0 {
		t.Fatalf("expected no touch within the refresh interval, got %d", store.touches)
	}

	// 上次刷新已超过间隔：解析应滑动过期时间
	stored := store.sessions[session.ID]
	stored.RefreshedAt = time.Now().UTC().Add(-SessionTouchInterval - time.Minute)
	oldExpiry := stored.ExpiresAt

	resolved, err := mgr.Resolve(ctx, cookieValue)
	if err != nil {
		t.Fatalf("unexpected error resolving session: %v", err)
	}
	if store.touches != 1 {
		t.Fatalf("expected exactly one touch, got %d", store.touches)
	}
	if !resolved.ExpiresAt.After(oldExpiry) {
		t.Fatal("expected expiry to slide forward after touch")
	}
}
