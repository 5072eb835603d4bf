// Package auth manages the signed session cookie that authenticates API
// callers, and the middleware that gates protected routes.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/moviehub/internal/app/system/httpjson"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	userIDKey   = "user_id"
	userNameKey = "user_name"
	usernameKey = "username"
)

// Messages written by RequireSignedIn.
const (
	MsgNoToken      = "Unauthorized - No Token Provided"
	MsgInvalidToken = "Unauthorized - Invalid Token"
)

// SessionUser is the signed-in operator carried in the request context.
type SessionUser struct {
	ID       string `json:"_id"`
	Name     string `json:"fullName"`
	Username string `json:"username"`
}

// UserFetcher loads a fresh copy of the user on every request so that
// deleted accounts lose access immediately. FetchUser returns nil when the
// user no longer exists or cannot be loaded.
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) *SessionUser
}

// SessionManager owns the cookie store and the user fetcher.
type SessionManager struct {
	store   *sessions.CookieStore
	name    string
	fetcher UserFetcher
	logger  *zap.Logger
}

// NewSessionManager builds the cookie store. The key signs the cookie and
// must be at least 32 bytes. maxAge is the cookie lifetime. secure marks the
// cookie Secure with SameSite=None (cross-site HTTPS); otherwise SameSite=Lax
// for local development over http.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, errors.New("session key is empty; provide 32+ random chars")
	}
	if len(sessionKey) < 32 {
		return nil, fmt.Errorf("session key too short: %d chars, need at least 32", len(sessionKey))
	}
	if name == "" {
		return nil, errors.New("session name is empty")
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	}
	store.Options = opts
	store.MaxAge(opts.MaxAge)

	logger.Info("session store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain),
		zap.Duration("max_age", maxAge))

	return &SessionManager{store: store, name: name, logger: logger}, nil
}

// SetUserFetcher installs the per-request user loader.
func (sm *SessionManager) SetUserFetcher(f UserFetcher) { sm.fetcher = f }

// Store exposes the underlying cookie store.
func (sm *SessionManager) Store() *sessions.CookieStore { return sm.store }

// Name is the cookie name.
func (sm *SessionManager) Name() string { return sm.name }

// GetSession returns the request's session. A cookie that fails to decode
// (rotated key, tampering) yields a fresh session together with the error.
func (sm *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		var scErr securecookie.Error
		if errors.As(err, &scErr) && scErr.IsDecode() {
			sm.logger.Debug("discarding undecodable session cookie", zap.Error(err))
		}
	}
	return sess, err
}

// SignIn records u in the session and writes the cookie.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, u *SessionUser) error {
	sess, _ := sm.GetSession(r)
	sess.Values[userIDKey] = u.ID
	sess.Values[userNameKey] = u.Name
	sess.Values[usernameKey] = u.Username
	sess.Options.MaxAge = sm.store.Options.MaxAge
	return sess.Save(r, w)
}

// SignOut expires the cookie.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := sm.GetSession(r)
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Middleware                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey string

const (
	currentUserKey ctxKey = "currentUser"
	authFailKey    ctxKey = "authFailure"
)

// CurrentUser returns the signed-in user, if any.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok && u != nil
}

// WithTestUser injects u into the request context, bypassing the cookie.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// LoadSessionUser resolves the session cookie into a SessionUser. It never
// rejects a request; RequireSignedIn does that.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.GetSession(r)
		if err != nil {
			next.ServeHTTP(w, withFailure(r, MsgInvalidToken))
			return
		}

		id, _ := sess.Values[userIDKey].(string)
		if id == "" {
			next.ServeHTTP(w, r)
			return
		}

		u := &SessionUser{
			ID:       id,
			Name:     getString(sess, userNameKey),
			Username: getString(sess, usernameKey),
		}
		if sm.fetcher != nil {
			u = sm.fetcher.FetchUser(r.Context(), id)
			if u == nil {
				next.ServeHTTP(w, withFailure(r, MsgInvalidToken))
				return
			}
		}
		next.ServeHTTP(w, withUser(r, u))
	})
}

// RequireSignedIn rejects requests without a user in context with a JSON 401.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		msg := MsgNoToken
		if reason, ok := r.Context().Value(authFailKey).(string); ok {
			msg = reason
		}
		httpjson.Fail(w, http.StatusUnauthorized, msg)
	})
}

// helpers

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func withFailure(r *http.Request, reason string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), authFailKey, reason))
}

func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}
