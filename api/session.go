package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// sessionCookie is the name of the auth cookie.
const sessionCookie = "phonegen_session"

// Sessions issues and validates login tokens. Tokens live in a TTL cache so
// idle sessions expire without a background reaper.
type Sessions struct {
	store *gocache.Cache
	ttl   time.Duration
}

// NewSessions creates a session store with the given idle TTL.
func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		store: gocache.New(ttl, 10*time.Minute),
		ttl:   ttl,
	}
}

// Issue creates a session for username and returns its token.
func (s *Sessions) Issue(username string) string {
	token := uuid.NewString()
	s.store.Set(token, username, s.ttl)
	return token
}

// Username returns the logged-in user for a token, refreshing its TTL.
func (s *Sessions) Username(token string) (string, bool) {
	v, ok := s.store.Get(token)
	if !ok {
		return "", false
	}
	s.store.Set(token, v, s.ttl)
	return v.(string), true
}

// Revoke drops a token.
func (s *Sessions) Revoke(token string) {
	s.store.Delete(token)
}

// setSessionCookie attaches the auth cookie to a response.
func setSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the auth cookie.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// loginLimiter rate limits login attempts per remote address.
type loginLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func newLoginLimiter(perSecond float64, burst int) *loginLimiter {
	return &loginLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(perSecond),
		burst:    burst,
	}
}

// Allow reports whether another attempt from addr may proceed now.
func (l *loginLimiter) Allow(addr string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[addr]
	if !ok {
		limiter = rate.NewLimiter(l.rate, l.burst)
		l.limiters[addr] = limiter
	}
	l.mu.Unlock()
	return limiter.Allow()
}
