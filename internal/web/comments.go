package web

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/mitwpu/finditnow/internal/model"
)

// CommentCreateSubmit handles POST /items/{id}/comments. The discussion
// thread is private between the item owner and the approved claimant.
func (s *Server) CommentCreateSubmit(w http.ResponseWriter, r *http.Request) {
	viewer := SessionUser(r.Context())
	token := SessionToken(r.Context())
	itemID := r.PathValue("id")

	item, ok := s.fetchItem(w, r, itemID, "/items")
	if !ok {
		return
	}

	claims, err := s.itemClaims(r, &item, viewer)
	if err != nil {
		s.backendFailed(w, r, err, "/items/"+itemID)
		return
	}
	if !model.CanDiscuss(&item, claims, viewer) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.MaxUploadBytes); err != nil {
		setFlashError(w, "Form too large.")
		http.Redirect(w, r, "/items/"+itemID, http.StatusSeeOther)
		return
	}

	text := strings.TrimSpace(r.FormValue("text"))
	imageURL, err := s.uploadFormImage(r)
	if err != nil {
		setFlashError(w, err.Error())
		http.Redirect(w, r, "/items/"+itemID, http.StatusSeeOther)
		return
	}
	if text == "" && imageURL == "" {
		setFlashError(w, "A message or a photo is required.")
		http.Redirect(w, r, "/items/"+itemID, http.StatusSeeOther)
		return
	}

	if _, err := s.Backend.CreateComment(r.Context(), token, itemID, text, imageURL); err != nil {
		s.backendFailed(w, r, err, "/items/"+itemID)
		return
	}

	slog.Info("comment posted", "user", viewer.Email, "item", item.Title)
	http.Redirect(w, r, "/items/"+itemID, http.StatusSeeOther)
}

// CommentDeleteSubmit handles POST /comments/{id}/delete. The backend
// enforces that only the author may delete a comment; the item id comes
// along in the form so we know where to land afterwards.
func (s *Server) CommentDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	viewer := SessionUser(r.Context())
	token := SessionToken(r.Context())
	id := r.PathValue("id")
	itemID := r.FormValue("item_id")

	fallback := "/items"
	if itemID != "" {
		fallback = "/items/" + itemID
	}

	if err := s.Backend.DeleteComment(r.Context(), token, id); err != nil {
		s.backendFailed(w, r, err, fallback)
		return
	}

	slog.Info("comment deleted", "user", viewer.Email, "comment", id)
	http.Redirect(w, r, fallback, http.StatusSeeOther)
}
