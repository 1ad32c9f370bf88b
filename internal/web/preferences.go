package web

import (
	"log/slog"
	"net/http"

	"github.com/mitwpu/finditnow/internal/model"
)

// PreferencesPage handles GET /preferences: the email notification toggles.
func (s *Server) PreferencesPage(w http.ResponseWriter, r *http.Request) {
	viewer := SessionUser(r.Context())
	token := SessionToken(r.Context())

	prefs, err := s.Backend.NotificationPreferences(r.Context(), token)
	if err != nil {
		if s.sessionRejected(w, r, err) {
			return
		}
		slog.Error("failed to load notification preferences", "error", err)
		prefs = model.DefaultNotificationPreferences()
	}

	success, errMsg := popFlash(w, r)
	if err != nil && errMsg == "" {
		errMsg = "Could not load your saved preferences, showing defaults."
	}
	s.Templates.Render(w, "preferences.html", &struct {
		PageData
		Prefs model.NotificationPreferences
	}{
		PageData: PageData{Title: "Notification settings", User: viewer, Success: success, Error: errMsg},
		Prefs:    prefs,
	})
}

// PreferencesSubmit handles POST /preferences. Unchecked boxes are simply
// absent from the form, so every toggle is derived from presence.
func (s *Server) PreferencesSubmit(w http.ResponseWriter, r *http.Request) {
	viewer := SessionUser(r.Context())
	token := SessionToken(r.Context())

	prefs := model.NotificationPreferences{
		ClaimReceived: r.FormValue("claim_received") != "",
		ClaimUpdated:  r.FormValue("claim_updated") != "",
		MatchFound:    r.FormValue("match_found") != "",
		ItemRecovered: r.FormValue("item_recovered") != "",
	}

	if _, err := s.Backend.UpdateNotificationPreferences(r.Context(), token, prefs); err != nil {
		s.backendFailed(w, r, err, "/preferences")
		return
	}

	slog.Info("notification preferences updated", "user", viewer.Email)
	setFlash(w, "Notification preferences saved.")
	http.Redirect(w, r, "/preferences", http.StatusSeeOther)
}
