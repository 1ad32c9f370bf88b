package web

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mitwpu/finditnow/internal/auth"
	"github.com/mitwpu/finditnow/internal/backend"
	"github.com/mitwpu/finditnow/internal/model"
	"github.com/mitwpu/finditnow/internal/store"
)

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	success, errMsg := popFlash(w, r)
	s.Templates.Render(w, "login.html", &PageData{Title: "Sign in", Success: success, Error: errMsg})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if email == "" || password == "" {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Sign in",
			Error: "Enter your email and password.",
		})
		return
	}

	user, token, err := s.Backend.Login(r.Context(), backend.LoginCredentials{
		Email:    email,
		Password: password,
	})
	if err != nil {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Sign in",
			Error: loginError(err),
		})
		return
	}

	if err := s.startSession(w, r, user, token); err != nil {
		slog.Error("failed to start session", "error", err)
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Sign in",
			Error: "Could not sign you in, please try again.",
		})
		return
	}

	slog.Info("user signed in", "user", user.Email)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RegisterPage handles GET /register.
func (s *Server) RegisterPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "register.html", &registerData{
		PageData: PageData{Title: "Create account"},
		Domain:   s.EmailDomain,
	})
}

type registerData struct {
	PageData
	Domain     string
	Name       string
	Email      string
	Department string
}

// RegisterSubmit handles POST /register.
func (s *Server) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	department := strings.TrimSpace(r.FormValue("department"))
	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")

	data := &registerData{
		PageData:   PageData{Title: "Create account"},
		Domain:     s.EmailDomain,
		Name:       name,
		Email:      email,
		Department: department,
	}

	// Validate before any network call so field errors come back instantly.
	switch {
	case name == "":
		data.Error = "Name is required."
	case model.ValidateEmail(email, s.EmailDomain) != nil:
		data.Error = "Use your " + s.EmailDomain + " email address."
	case model.ValidatePassword(password) != nil:
		data.Error = "Password must be at least 8 characters."
	case password != confirm:
		data.Error = "Passwords do not match."
	}
	if data.Error != "" {
		s.Templates.Render(w, "register.html", data)
		return
	}

	user, token, err := s.Backend.Register(r.Context(), backend.RegisterCredentials{
		Name:       name,
		Email:      email,
		Department: department,
		Password:   password,
	})
	if err != nil {
		data.Error = err.Error()
		s.Templates.Render(w, "register.html", data)
		return
	}

	if err := s.startSession(w, r, user, token); err != nil {
		slog.Error("failed to start session", "error", err)
		setFlash(w, "Account created, please sign in.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	slog.Info("user registered", "user", user.Email)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles POST /logout. The backend call is best-effort: the local
// session is cleared no matter what.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	user, token, ok := s.resolveSession(w, r)
	if ok {
		if err := s.Backend.Logout(r.Context(), token); err != nil {
			slog.Warn("backend logout failed, clearing local session anyway", "error", err)
		}
		slog.Info("user signed out", "user", user.Email)
	}
	s.endSession(w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// startSession persists the bearer token locally and sets the session
// cookie.
func (s *Server) startSession(w http.ResponseWriter, r *http.Request, user model.User, token string) error {
	expiresAt := time.Now().Add(auth.SessionExpiry)
	sid, err := store.CreateSession(r.Context(), s.DB, s.SealKey, user.ID, token, expiresAt)
	if err != nil {
		return err
	}

	signed, err := auth.GenerateToken(s.JWTSecret, sid, user)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(auth.SessionExpiry.Seconds()),
	})
	return nil
}

func loginError(err error) string {
	if apiErr, ok := err.(*backend.APIError); ok && apiErr.Status == http.StatusUnauthorized {
		return "Incorrect email or password."
	}
	return "Sign-in failed: " + err.Error()
}
