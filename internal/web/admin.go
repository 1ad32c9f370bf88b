package web

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/mitwpu/finditnow/internal/model"
)

// AdminPage handles GET /admin: the analytics overview.
func (s *Server) AdminPage(w http.ResponseWriter, r *http.Request) {
	viewer := SessionUser(r.Context())
	token := SessionToken(r.Context())

	analytics, err := s.Backend.Analytics(r.Context(), token)
	loaded := err == nil
	if err != nil {
		if s.sessionRejected(w, r, err) {
			return
		}
		slog.Error("failed to load analytics", "error", err)
	}

	success, errMsg := popFlash(w, r)
	if !loaded && errMsg == "" {
		errMsg = "Analytics are unavailable right now. Reload to try again."
	}
	s.Templates.Render(w, "admin.html", &struct {
		PageData
		Analytics model.Analytics
		Loaded    bool
	}{
		PageData:  PageData{Title: "Admin", User: viewer, Success: success, Error: errMsg},
		Analytics: analytics,
		Loaded:    loaded,
	})
}

// AdminItemsPage handles GET /admin/items.
func (s *Server) AdminItemsPage(w http.ResponseWriter, r *http.Request) {
	viewer := SessionUser(r.Context())
	token := SessionToken(r.Context())

	items, err := s.Backend.AdminItems(r.Context(), token)
	if err != nil {
		s.backendFailed(w, r, err, "/admin")
		return
	}

	success, errMsg := popFlash(w, r)
	s.Templates.Render(w, "admin_items.html", &struct {
		PageData
		Items []model.Item
	}{
		PageData: PageData{Title: "Manage items", User: viewer, Success: success, Error: errMsg},
		Items:    items,
	})
}

// AdminItemStatusSubmit handles POST /admin/items/{id}/status.
func (s *Server) AdminItemStatusSubmit(w http.ResponseWriter, r *http.Request) {
	viewer := SessionUser(r.Context())
	token := SessionToken(r.Context())
	id := r.PathValue("id")

	status := r.FormValue("status")
	valid := []string{model.ItemStatusLost, model.ItemStatusFound, model.ItemStatusRecovered}
	if !slices.Contains(valid, status) {
		setFlashError(w, "Unknown item status.")
		http.Redirect(w, r, "/admin/items", http.StatusSeeOther)
		return
	}

	item, err := s.Backend.AdminUpdateItemStatus(r.Context(), token, id, status)
	if err != nil {
		s.backendFailed(w, r, err, "/admin/items")
		return
	}
	s.Cache.Invalidate()

	slog.Info("admin changed item status", "admin", viewer.Email, "item", item.Title, "status", status)
	setFlash(w, "Item status updated.")
	http.Redirect(w, r, "/admin/items", http.StatusSeeOther)
}

// AdminItemDeleteSubmit handles POST /admin/items/{id}/delete.
func (s *Server) AdminItemDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	viewer := SessionUser(r.Context())
	token := SessionToken(r.Context())
	id := r.PathValue("id")

	if err := s.Backend.AdminDeleteItem(r.Context(), token, id); err != nil {
		s.backendFailed(w, r, err, "/admin/items")
		return
	}
	s.Cache.Invalidate()

	slog.Info("admin deleted item", "admin", viewer.Email, "item", id)
	setFlash(w, "Item deleted.")
	http.Redirect(w, r, "/admin/items", http.StatusSeeOther)
}

// AdminClaimsPage handles GET /admin/claims.
func (s *Server) AdminClaimsPage(w http.ResponseWriter, r *http.Request) {
	viewer := SessionUser(r.Context())
	token := SessionToken(r.Context())

	claims, err := s.Backend.AdminClaims(r.Context(), token)
	if err != nil {
		s.backendFailed(w, r, err, "/admin")
		return
	}

	success, errMsg := popFlash(w, r)
	s.Templates.Render(w, "admin_claims.html", &struct {
		PageData
		Claims []model.Claim
	}{
		PageData: PageData{Title: "Manage claims", User: viewer, Success: success, Error: errMsg},
		Claims:   claims,
	})
}

// AdminClaimUpdateSubmit handles POST /admin/claims/{id}.
func (s *Server) AdminClaimUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	viewer := SessionUser(r.Context())
	token := SessionToken(r.Context())
	id := r.PathValue("id")

	status := r.FormValue("status")
	notes := strings.TrimSpace(r.FormValue("notes"))
	valid := []string{model.ClaimStatusPending, model.ClaimStatusApproved, model.ClaimStatusRejected}
	if !slices.Contains(valid, status) {
		setFlashError(w, "Unknown claim status.")
		http.Redirect(w, r, "/admin/claims", http.StatusSeeOther)
		return
	}

	if _, err := s.Backend.AdminUpdateClaim(r.Context(), token, id, status, notes); err != nil {
		s.backendFailed(w, r, err, "/admin/claims")
		return
	}
	s.Cache.Invalidate()

	slog.Info("admin updated claim", "admin", viewer.Email, "claim", id, "status", status)
	setFlash(w, "Claim updated.")
	http.Redirect(w, r, "/admin/claims", http.StatusSeeOther)
}

// AdminUsersPage handles GET /admin/users.
func (s *Server) AdminUsersPage(w http.ResponseWriter, r *http.Request) {
	viewer := SessionUser(r.Context())
	token := SessionToken(r.Context())

	users, err := s.Backend.AdminUsers(r.Context(), token)
	if err != nil {
		s.backendFailed(w, r, err, "/admin")
		return
	}

	s.Templates.Render(w, "admin_users.html", &struct {
		PageData
		Users []model.User
	}{
		PageData: PageData{Title: "Registered users", User: viewer},
		Users:    users,
	})
}

// AdminReportsPage handles GET /admin/reports. ?pending=1 narrows the
// listing to reports still awaiting review.
func (s *Server) AdminReportsPage(w http.ResponseWriter, r *http.Request) {
	viewer := SessionUser(r.Context())
	token := SessionToken(r.Context())

	pendingOnly := r.URL.Query().Get("pending") != ""
	var (
		reports []model.Report
		err     error
	)
	if pendingOnly {
		reports, err = s.Backend.AdminPendingReports(r.Context(), token)
	} else {
		reports, err = s.Backend.AdminReports(r.Context(), token)
	}
	if err != nil {
		s.backendFailed(w, r, err, "/admin")
		return
	}

	success, errMsg := popFlash(w, r)
	s.Templates.Render(w, "admin_reports.html", &struct {
		PageData
		Reports     []model.Report
		PendingOnly bool
	}{
		PageData:    PageData{Title: "Manage reports", User: viewer, Success: success, Error: errMsg},
		Reports:     reports,
		PendingOnly: pendingOnly,
	})
}

// AdminReportUpdateSubmit handles POST /admin/reports/{id}.
func (s *Server) AdminReportUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	viewer := SessionUser(r.Context())
	token := SessionToken(r.Context())
	id := r.PathValue("id")

	status := r.FormValue("status")
	notes := strings.TrimSpace(r.FormValue("admin_notes"))
	valid := []string{model.ReportStatusPending, model.ReportStatusResolved, model.ReportStatusRejected}
	if !slices.Contains(valid, status) {
		setFlashError(w, "Unknown report status.")
		http.Redirect(w, r, "/admin/reports", http.StatusSeeOther)
		return
	}

	if _, err := s.Backend.AdminUpdateReport(r.Context(), token, id, status, notes); err != nil {
		s.backendFailed(w, r, err, "/admin/reports")
		return
	}

	slog.Info("admin updated report", "admin", viewer.Email, "report", id, "status", status)
	setFlash(w, "Report updated.")
	http.Redirect(w, r, "/admin/reports", http.StatusSeeOther)
}
