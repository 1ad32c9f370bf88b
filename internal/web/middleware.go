package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mitwpu/finditnow/internal/auth"
	"github.com/mitwpu/finditnow/internal/backend"
	"github.com/mitwpu/finditnow/internal/model"
	"github.com/mitwpu/finditnow/internal/store"
)

type webContextKey string

const (
	userKey  webContextKey = "user"
	tokenKey webContextKey = "token"
)

const sessionCookie = "session"

// WithSession resolves the session cookie if one is present and adds the
// user and bearer token to the request context. Requests without a valid
// session proceed anonymously.
func (s *Server) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, token, ok := s.resolveSession(w, r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), user, token)))
	})
}

// RequireSession is WithSession for pages that need a signed-in user;
// anonymous requests are redirected to the login page.
func (s *Server) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, token, ok := s.resolveSession(w, r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), user, token)))
	})
}

// RequireAdmin additionally checks the admin predicate computed at login.
func (s *Server) RequireAdmin(next http.Handler) http.Handler {
	return s.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := SessionUser(r.Context()); user == nil || !user.IsAdmin {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// resolveSession validates the session cookie and loads the bearer token
// from the local store. An unusable cookie is cleared along the way.
func (s *Server) resolveSession(w http.ResponseWriter, r *http.Request) (*model.User, string, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return nil, "", false
	}

	claims, err := auth.ValidateToken(s.JWTSecret, cookie.Value)
	if err != nil {
		clearSessionCookie(w)
		return nil, "", false
	}

	token, err := store.SessionToken(r.Context(), s.DB, s.SealKey, claims.ID)
	if err != nil {
		slog.Error("failed to load session token", "error", err)
		clearSessionCookie(w)
		return nil, "", false
	}
	if token == "" {
		// Session row gone (logout elsewhere or expiry).
		clearSessionCookie(w)
		return nil, "", false
	}

	return claims.User(), token, true
}

// endSession clears all local session state for the request's user.
func (s *Server) endSession(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		if claims, err := auth.ValidateToken(s.JWTSecret, cookie.Value); err == nil {
			if err := store.DeleteSession(r.Context(), s.DB, claims.ID); err != nil {
				slog.Error("failed to delete session", "error", err)
			}
		}
	}
	clearSessionCookie(w)
	s.Cache.Invalidate()
}

// backendFailed reports a failed backend call to the user. A 401 means the
// stored token is no longer accepted: the session is cleared and the user
// is sent back to the login page. Everything else becomes a flash message
// on the fallback page.
func (s *Server) backendFailed(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if s.sessionRejected(w, r, err) {
		return
	}
	slog.Error("backend request failed", "error", err, "path", r.URL.Path)
	setFlashError(w, err.Error())
	http.Redirect(w, r, fallback, http.StatusSeeOther)
}

// sessionRejected checks whether a backend error means the stored bearer
// token is no longer accepted. If so the session is cleared and the user is
// redirected to the login page; read-only pages use this directly so their
// failed fetches cannot degrade to an empty state while signed in with a
// dead token.
func (s *Server) sessionRejected(w http.ResponseWriter, r *http.Request, err error) bool {
	if !backend.IsUnauthorized(err) {
		return false
	}
	slog.Info("backend rejected session token, forcing logout")
	s.endSession(w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	return true
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func withSession(ctx context.Context, user *model.User, token string) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, tokenKey, token)
}

// SessionUser retrieves the signed-in user from the request context, or nil.
func SessionUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userKey).(*model.User)
	return user
}

// SessionToken retrieves the backend bearer token from the request context.
func SessionToken(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}
