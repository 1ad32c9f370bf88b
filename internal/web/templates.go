package web

import (
	"database/sql"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/mitwpu/finditnow/internal/backend"
	"github.com/mitwpu/finditnow/internal/cache"
	"github.com/mitwpu/finditnow/internal/model"
	webembed "github.com/mitwpu/finditnow/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"statusName": func(status string) string {
			switch status {
			case model.ItemStatusLost:
				return "Lost"
			case model.ItemStatusFound:
				return "Found"
			case model.ItemStatusRecovered:
				return "Recovered"
			default:
				return status
			}
		},
		"claimStatusName": func(status string) string {
			switch status {
			case model.ClaimStatusPending:
				return "Pending"
			case model.ClaimStatusApproved:
				return "Approved"
			case model.ClaimStatusRejected:
				return "Rejected"
			default:
				return status
			}
		},
		"reportStatusName": func(status string) string {
			switch status {
			case model.ReportStatusPending:
				return "Pending"
			case model.ReportStatusResolved:
				return "Resolved"
			case model.ReportStatusRejected:
				return "Rejected"
			default:
				return status
			}
		},
		"roleName": func(role string) string {
			if role == model.RoleAdmin {
				return "Administrator"
			}
			return "Student"
		},
		"formatTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2, 2006 15:04")
		},
		"formatDate": func(date string) string {
			if parsed, err := time.Parse("2006-01-02", date); err == nil {
				return parsed.Format("January 2, 2006")
			}
			return date
		},
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	// Read layout.
	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"login.html",
		"register.html",
		"items.html",
		"item_detail.html",
		"item_new.html",
		"item_edit.html",
		"dashboard.html",
		"preferences.html",
		"admin.html",
		"admin_items.html",
		"admin_claims.html",
		"admin_users.html",
		"admin_reports.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title   string
	User    *model.User
	Error   string
	Success string
}

// Server holds all dependencies for page handlers.
type Server struct {
	DB             *sql.DB
	Backend        *backend.Client
	Cache          *cache.Store
	Templates      *Templates
	JWTSecret      string
	SealKey        *[32]byte
	EmailDomain    string
	MaxUploadBytes int64
}
