package web

import (
	"log/slog"
	"net/http"

	"github.com/mitwpu/finditnow/internal/model"
)

// DashboardPage handles GET /dashboard: the signed-in user's items, the
// claims they have filed, the claims waiting on their items, and the
// reports they have raised.
func (s *Server) DashboardPage(w http.ResponseWriter, r *http.Request) {
	viewer := SessionUser(r.Context())
	token := SessionToken(r.Context())

	myItems, err := s.Backend.UserItems(r.Context(), token)
	if err != nil {
		s.backendFailed(w, r, err, "/items")
		return
	}

	if err := s.Cache.RefreshUserClaims(r.Context(), token, viewer.ID); err != nil {
		if s.sessionRejected(w, r, err) {
			return
		}
		slog.Error("failed to refresh user claims", "error", err)
	}
	myClaims := s.Cache.UserClaims(viewer.ID)

	// Claims other people filed against this user's items.
	var received []model.Claim
	if len(myItems) > 0 {
		mine := make(map[string]bool, len(myItems))
		for _, item := range myItems {
			mine[item.ID] = true
		}
		all, err := s.Backend.ListClaims(r.Context(), token)
		if err != nil {
			if s.sessionRejected(w, r, err) {
				return
			}
			slog.Error("failed to list claims", "error", err)
		}
		for _, claim := range all {
			if mine[claim.ItemID] && claim.ClaimantID != viewer.ID {
				received = append(received, claim)
			}
		}
	}

	myReports, err := s.Backend.UserReports(r.Context(), token)
	if err != nil {
		if s.sessionRejected(w, r, err) {
			return
		}
		slog.Error("failed to list user reports", "error", err)
	}

	// Titles for claim rows that reference someone else's item.
	titles := make(map[string]string)
	for _, item := range s.Cache.Items() {
		titles[item.ID] = item.Title
	}
	for _, item := range myItems {
		titles[item.ID] = item.Title
	}

	success, errMsg := popFlash(w, r)
	s.Templates.Render(w, "dashboard.html", &struct {
		PageData
		Items          []model.Item
		Claims         []model.Claim
		ReceivedClaims []model.Claim
		Reports        []model.Report
		ItemTitles     map[string]string
	}{
		PageData:       PageData{Title: "My dashboard", User: viewer, Success: success, Error: errMsg},
		Items:          myItems,
		Claims:         myClaims,
		ReceivedClaims: received,
		Reports:        myReports,
		ItemTitles:     titles,
	})
}
