package web

import (
	"database/sql"
	"net/http"

	"github.com/ulule/limiter/v3"
	mhttp "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/mitwpu/finditnow/internal/backend"
	"github.com/mitwpu/finditnow/internal/cache"
	webembed "github.com/mitwpu/finditnow/web"
)

// RouterConfig carries the dependencies for the page router.
type RouterConfig struct {
	DB             *sql.DB
	Backend        *backend.Client
	JWTSecret      string
	SealKey        *[32]byte
	EmailDomain    string
	MaxUploadBytes int64
}

// NewRouter creates the web page router with all page routes registered.
func NewRouter(cfg RouterConfig) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:             cfg.DB,
		Backend:        cfg.Backend,
		Cache:          cache.NewStore(cfg.Backend),
		Templates:      templates,
		JWTSecret:      cfg.JWTSecret,
		SealKey:        cfg.SealKey,
		EmailDomain:    cfg.EmailDomain,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}

	// Credential endpoints get a rate limit so a stolen student list can't
	// be sprayed through the login form.
	rate, err := limiter.NewRateFromFormatted("10-M")
	if err != nil {
		return nil, err
	}
	authLimit := mhttp.NewMiddleware(limiter.New(memory.NewStore(), rate))

	mux := http.NewServeMux()
	session := s.WithSession
	authed := s.RequireSession
	admin := s.RequireAdmin

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.Handle("POST /login", authLimit.Handler(http.HandlerFunc(s.LoginSubmit)))
	mux.HandleFunc("GET /register", s.RegisterPage)
	mux.Handle("POST /register", authLimit.Handler(http.HandlerFunc(s.RegisterSubmit)))
	mux.HandleFunc("POST /logout", s.Logout)

	// Browsing is public; actions depend on the session.
	mux.Handle("GET /{$}", session(http.HandlerFunc(s.ItemsPage)))
	mux.Handle("GET /items", session(http.HandlerFunc(s.ItemsPage)))
	mux.Handle("GET /items/{id}", session(http.HandlerFunc(s.ItemDetailPage)))

	// Authenticated routes.
	mux.Handle("GET /items/new", authed(http.HandlerFunc(s.ItemNewPage)))
	mux.Handle("POST /items", authed(http.HandlerFunc(s.ItemCreateSubmit)))
	mux.Handle("GET /items/{id}/edit", authed(http.HandlerFunc(s.ItemEditPage)))
	mux.Handle("POST /items/{id}", authed(http.HandlerFunc(s.ItemUpdateSubmit)))
	mux.Handle("POST /items/{id}/delete", authed(http.HandlerFunc(s.ItemDeleteSubmit)))
	mux.Handle("POST /items/{id}/recover", authed(http.HandlerFunc(s.ItemRecoverSubmit)))

	mux.Handle("POST /items/{id}/claims", authed(http.HandlerFunc(s.ClaimCreateSubmit)))
	mux.Handle("POST /claims/{id}/approve", authed(http.HandlerFunc(s.ClaimApproveSubmit)))
	mux.Handle("POST /claims/{id}/reject", authed(http.HandlerFunc(s.ClaimRejectSubmit)))
	mux.Handle("POST /claims/{id}/withdraw", authed(http.HandlerFunc(s.ClaimWithdrawSubmit)))

	mux.Handle("POST /items/{id}/comments", authed(http.HandlerFunc(s.CommentCreateSubmit)))
	mux.Handle("POST /comments/{id}/delete", authed(http.HandlerFunc(s.CommentDeleteSubmit)))

	mux.Handle("POST /items/{id}/reports", authed(http.HandlerFunc(s.ReportCreateSubmit)))

	mux.Handle("GET /dashboard", authed(http.HandlerFunc(s.DashboardPage)))
	mux.Handle("GET /preferences", authed(http.HandlerFunc(s.PreferencesPage)))
	mux.Handle("POST /preferences", authed(http.HandlerFunc(s.PreferencesSubmit)))

	// Admin routes.
	mux.Handle("GET /admin", admin(http.HandlerFunc(s.AdminPage)))
	mux.Handle("GET /admin/items", admin(http.HandlerFunc(s.AdminItemsPage)))
	mux.Handle("POST /admin/items/{id}/status", admin(http.HandlerFunc(s.AdminItemStatusSubmit)))
	mux.Handle("POST /admin/items/{id}/delete", admin(http.HandlerFunc(s.AdminItemDeleteSubmit)))
	mux.Handle("GET /admin/claims", admin(http.HandlerFunc(s.AdminClaimsPage)))
	mux.Handle("POST /admin/claims/{id}", admin(http.HandlerFunc(s.AdminClaimUpdateSubmit)))
	mux.Handle("GET /admin/users", admin(http.HandlerFunc(s.AdminUsersPage)))
	mux.Handle("GET /admin/reports", admin(http.HandlerFunc(s.AdminReportsPage)))
	mux.Handle("POST /admin/reports/{id}", admin(http.HandlerFunc(s.AdminReportUpdateSubmit)))

	return mux, nil
}
