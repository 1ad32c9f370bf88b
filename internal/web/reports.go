package web

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/mitwpu/finditnow/internal/model"
)

// ReportCreateSubmit handles POST /items/{id}/reports.
func (s *Server) ReportCreateSubmit(w http.ResponseWriter, r *http.Request) {
	viewer := SessionUser(r.Context())
	token := SessionToken(r.Context())
	itemID := r.PathValue("id")

	if _, ok := s.fetchItem(w, r, itemID, "/items"); !ok {
		return
	}

	draft := model.ReportDraft{
		ItemID:      itemID,
		Reason:      r.FormValue("reason"),
		Description: strings.TrimSpace(r.FormValue("description")),
	}
	if !slices.Contains(model.ReportReasons, draft.Reason) {
		setFlashError(w, "Please choose a reason for the report.")
		http.Redirect(w, r, "/items/"+itemID, http.StatusSeeOther)
		return
	}

	if _, err := s.Backend.CreateReport(r.Context(), token, draft); err != nil {
		s.backendFailed(w, r, err, "/items/"+itemID)
		return
	}

	slog.Info("report filed", "user", viewer.Email, "item", itemID, "reason", draft.Reason)
	setFlash(w, "Thanks, the listing has been reported for review.")
	http.Redirect(w, r, "/items/"+itemID, http.StatusSeeOther)
}
