package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/emstack/ems-console/pkg/constants"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Session holds the values issued by the remote API at login. The three slots
// are always written together and cleared together.
type Session struct {
	Token     string
	UserID    string
	Role      Role
	ExpiresAt time.Time
}

func (s Session) IsZero() bool {
	return s.Token == "" && s.UserID == "" && s.Role == ""
}

type Store interface {
	Set(sid string, s Session)
	Get(sid string) (Session, bool)
	Delete(sid string)
}

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ttl      time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		ttl:      ttl,
	}
}

func (m *MemoryStore) Set(sid string, s Session) {
	s.ExpiresAt = time.Now().Add(m.ttl)
	m.mu.Lock()
	m.sessions[sid] = s
	m.mu.Unlock()
}

func (m *MemoryStore) Get(sid string) (Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[sid]
	m.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	if time.Now().After(s.ExpiresAt) {
		m.Delete(sid)
		return Session{}, false
	}
	return s, true
}

func (m *MemoryStore) Delete(sid string) {
	m.mu.Lock()
	delete(m.sessions, sid)
	m.mu.Unlock()
}

// With returns a new context carrying the session.
func With(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, constants.SessionKey, s)
}

// Use returns the session from the context.
// If no session is present, the second return value is false.
func Use(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(constants.SessionKey).(Session)
	if !ok || s.IsZero() {
		return Session{}, false
	}
	return s, true
}

// UseToken returns the current bearer token, or "" when unauthenticated.
// Callers must read it at request-construction time and never memoize it.
func UseToken(ctx context.Context) string {
	s, _ := Use(ctx)
	return s.Token
}

// UseRole returns the current role.
// If no session is present, the second return value is false.
func UseRole(ctx context.Context) (Role, bool) {
	s, ok := Use(ctx)
	if !ok {
		return "", false
	}
	return s.Role, true
}

// Issue stores a fresh session and sets the sid cookie on the response.
func Issue(w http.ResponseWriter, store Store, cookieKey string, s Session, ttl time.Duration) string {
	sid := uuid.NewString()
	store.Set(sid, s)
	http.SetCookie(w, &http.Cookie{
		Name:     cookieKey,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sid
}

// Clear removes the session referenced by the request's sid cookie and
// expires the cookie. The next gated navigation redirects to the login page.
func Clear(w http.ResponseWriter, r *http.Request, store Store, cookieKey string) {
	if c, err := r.Cookie(cookieKey); err == nil && c.Value != "" {
		store.Delete(c.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieKey,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
