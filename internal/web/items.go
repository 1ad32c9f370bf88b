package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mitwpu/finditnow/internal/backend"
	"github.com/mitwpu/finditnow/internal/imaging"
	"github.com/mitwpu/finditnow/internal/model"
)

// ItemsPage handles GET / and GET /items.
func (s *Server) ItemsPage(w http.ResponseWriter, r *http.Request) {
	viewer := SessionUser(r.Context())
	token := SessionToken(r.Context())

	// A failed refresh degrades to whatever is cached (possibly nothing)
	// rather than an error page, except when the backend rejects the
	// session token: that forces a logout.
	if err := s.Cache.RefreshItems(r.Context(), token); err != nil {
		if token != "" && s.sessionRejected(w, r, err) {
			return
		}
		slog.Error("failed to refresh items", "error", err)
	}

	status := r.URL.Query().Get("status")
	category := r.URL.Query().Get("category")
	query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))

	var items []model.Item
	for _, item := range s.Cache.Items() {
		if status != "" && item.Status != status {
			continue
		}
		if category != "" && item.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(item.Title), query) &&
			!strings.Contains(strings.ToLower(item.Description), query) {
			continue
		}
		items = append(items, item)
	}

	success, errMsg := popFlash(w, r)
	s.Templates.Render(w, "items.html", &struct {
		PageData
		Items      []model.Item
		Categories []string
		Status     string
		Category   string
		Query      string
	}{
		PageData:   PageData{Title: "Lost & Found", User: viewer, Success: success, Error: errMsg},
		Items:      items,
		Categories: model.Categories,
		Status:     status,
		Category:   category,
		Query:      query,
	})
}

// itemDetailData is everything the detail template needs. The action flags
// are derived fresh on every request from the item, its claims and the
// viewer.
type itemDetailData struct {
	PageData
	Item             model.Item
	Claims           []model.Claim
	PendingClaims    []model.Claim
	ResolvedClaims   []model.Claim
	MyClaim          *model.Claim
	Comments         []model.Comment
	Matches          []model.Item
	IsOwner          bool
	CanClaim         bool
	AlreadyClaimed   bool
	ApprovedForMe    bool
	Locked           bool
	Recovered        bool
	CanRecover       bool
	CanDiscuss       bool
	HasApprovedClaim bool
}

// ItemDetailPage handles GET /items/{id}.
func (s *Server) ItemDetailPage(w http.ResponseWriter, r *http.Request) {
	viewer := SessionUser(r.Context())
	token := SessionToken(r.Context())
	id := r.PathValue("id")

	item, ok := s.Cache.Item(id)
	if !ok {
		item, ok = s.fetchItem(w, r, id, "/items")
		if !ok {
			return
		}
	}

	claims, err := s.itemClaims(r, &item, viewer)
	if err != nil {
		if s.sessionRejected(w, r, err) {
			return
		}
		slog.Error("failed to list item claims", "error", err)
	}
	eligibility := model.EligibilityFor(&item, claims, viewer)

	data := &itemDetailData{
		Item:             item,
		Claims:           claims,
		MyClaim:          nil,
		IsOwner:          eligibility == model.EligibilityOwner,
		CanClaim:         eligibility == model.EligibilityClaimable,
		AlreadyClaimed:   eligibility == model.EligibilityAlreadyClaimed,
		ApprovedForMe:    eligibility == model.EligibilityApprovedClaimant,
		Locked:           eligibility == model.EligibilityLocked,
		Recovered:        eligibility == model.EligibilityRecovered,
		CanRecover:       model.CanMarkRecovered(&item, claims, viewer),
		CanDiscuss:       model.CanDiscuss(&item, claims, viewer),
		HasApprovedClaim: model.ApprovedClaim(claims) != nil,
	}

	if viewer != nil {
		data.MyClaim = model.ClaimByUser(claims, viewer.ID)
	}
	for _, claim := range claims {
		if claim.Status == model.ClaimStatusPending {
			data.PendingClaims = append(data.PendingClaims, claim)
		} else {
			data.ResolvedClaims = append(data.ResolvedClaims, claim)
		}
	}

	if data.CanDiscuss {
		comments, err := s.Backend.ItemComments(r.Context(), token, item.ID)
		if err != nil {
			if s.sessionRejected(w, r, err) {
				return
			}
			slog.Error("failed to list comments", "error", err)
		}
		data.Comments = comments
	}

	if data.IsOwner && item.Status != model.ItemStatusRecovered {
		matches, err := s.Backend.MatchingItems(r.Context(), token, item.ID)
		if err != nil {
			if s.sessionRejected(w, r, err) {
				return
			}
			slog.Error("failed to list matching items", "error", err)
		}
		data.Matches = matches
	}

	success, errMsg := popFlash(w, r)
	data.PageData = PageData{Title: item.Title, User: viewer, Success: success, Error: errMsg}
	s.Templates.Render(w, "item_detail.html", data)
}

// fetchItem loads an item for a handler, translating the failure modes: a
// rejected token forces a logout, a missing item is a 404, anything else
// becomes a flash on the fallback page. The bool reports whether the item
// was loaded; on false the response has already been written.
func (s *Server) fetchItem(w http.ResponseWriter, r *http.Request, id, fallback string) (model.Item, bool) {
	item, err := s.Backend.GetItem(r.Context(), SessionToken(r.Context()), id)
	if err != nil {
		if s.sessionRejected(w, r, err) {
			return model.Item{}, false
		}
		if backend.IsNotFound(err) {
			http.Error(w, "item not found", http.StatusNotFound)
			return model.Item{}, false
		}
		s.backendFailed(w, r, err, fallback)
		return model.Item{}, false
	}
	return item, true
}

// itemClaims fetches the claims relevant to an item for the current viewer.
// The owner gets the authoritative per-item listing; everyone else sees the
// global claim list filtered down, which is enough to derive eligibility.
func (s *Server) itemClaims(r *http.Request, item *model.Item, viewer *model.User) ([]model.Claim, error) {
	if viewer == nil {
		return nil, nil
	}
	token := SessionToken(r.Context())

	if viewer.ID == item.UserID || viewer.IsAdmin {
		return s.Backend.ItemClaims(r.Context(), token, item.ID)
	}

	all, err := s.Backend.ListClaims(r.Context(), token)
	if err != nil {
		return nil, err
	}
	var claims []model.Claim
	for _, claim := range all {
		if claim.ItemID == item.ID {
			claims = append(claims, claim)
		}
	}
	return claims, nil
}

// ItemNewPage handles GET /items/new.
func (s *Server) ItemNewPage(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != model.ItemStatusLost && status != model.ItemStatusFound {
		status = model.ItemStatusLost
	}

	s.Templates.Render(w, "item_new.html", &struct {
		PageData
		Status     string
		Categories []string
	}{
		PageData:   PageData{Title: "Report an item", User: SessionUser(r.Context())},
		Status:     status,
		Categories: model.Categories,
	})
}

// ItemCreateSubmit handles POST /items.
func (s *Server) ItemCreateSubmit(w http.ResponseWriter, r *http.Request) {
	viewer := SessionUser(r.Context())
	token := SessionToken(r.Context())

	draft, err := s.itemDraftFromForm(w, r)
	if err != nil {
		setFlashError(w, err.Error())
		http.Redirect(w, r, "/items/new", http.StatusSeeOther)
		return
	}

	item, err := s.Cache.CreateItem(r.Context(), token, *draft)
	if err != nil {
		s.backendFailed(w, r, err, "/items/new")
		return
	}

	slog.Info("item reported", "user", viewer.Email, "item", item.Title, "status", item.Status)
	setFlash(w, "Your "+item.Status+" item has been reported.")
	http.Redirect(w, r, "/items/"+item.ID, http.StatusSeeOther)
}

// ItemEditPage handles GET /items/{id}/edit.
func (s *Server) ItemEditPage(w http.ResponseWriter, r *http.Request) {
	viewer := SessionUser(r.Context())
	id := r.PathValue("id")

	item, ok := s.fetchItem(w, r, id, "/items")
	if !ok {
		return
	}
	if item.UserID != viewer.ID && !viewer.IsAdmin {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	s.Templates.Render(w, "item_edit.html", &struct {
		PageData
		Item       model.Item
		Categories []string
	}{
		PageData:   PageData{Title: "Edit " + item.Title, User: viewer},
		Item:       item,
		Categories: model.Categories,
	})
}

// ItemUpdateSubmit handles POST /items/{id}.
func (s *Server) ItemUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	viewer := SessionUser(r.Context())
	token := SessionToken(r.Context())
	id := r.PathValue("id")

	current, ok := s.fetchItem(w, r, id, "/items")
	if !ok {
		return
	}
	if current.UserID != viewer.ID && !viewer.IsAdmin {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	draft, err := s.itemDraftFromForm(w, r)
	if err != nil {
		setFlashError(w, err.Error())
		http.Redirect(w, r, "/items/"+id+"/edit", http.StatusSeeOther)
		return
	}
	if draft.ImageURL == "" {
		draft.ImageURL = current.ImageURL
	}
	// Status transitions do not go through the edit form.
	draft.Status = current.Status

	item, err := s.Cache.UpdateItem(r.Context(), token, id, *draft)
	if err != nil {
		s.backendFailed(w, r, err, "/items/"+id+"/edit")
		return
	}

	slog.Info("item updated", "user", viewer.Email, "item", item.Title)
	setFlash(w, "Item updated.")
	http.Redirect(w, r, "/items/"+id, http.StatusSeeOther)
}

// ItemDeleteSubmit handles POST /items/{id}/delete.
func (s *Server) ItemDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	viewer := SessionUser(r.Context())
	token := SessionToken(r.Context())
	id := r.PathValue("id")

	item, ok := s.fetchItem(w, r, id, "/items")
	if !ok {
		return
	}
	if item.UserID != viewer.ID && !viewer.IsAdmin {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	if err := s.Cache.DeleteItem(r.Context(), token, id); err != nil {
		s.backendFailed(w, r, err, "/items/"+id)
		return
	}

	slog.Info("item deleted", "user", viewer.Email, "item", item.Title)
	setFlash(w, "Item deleted.")
	http.Redirect(w, r, "/items", http.StatusSeeOther)
}

// ItemRecoverSubmit handles POST /items/{id}/recover. Only the owner may
// mark an item recovered, and only once a claim has been approved.
func (s *Server) ItemRecoverSubmit(w http.ResponseWriter, r *http.Request) {
	viewer := SessionUser(r.Context())
	token := SessionToken(r.Context())
	id := r.PathValue("id")

	item, ok := s.fetchItem(w, r, id, "/items")
	if !ok {
		return
	}

	claims, err := s.Backend.ItemClaims(r.Context(), token, id)
	if err != nil {
		s.backendFailed(w, r, err, "/items/"+id)
		return
	}
	if !model.CanMarkRecovered(&item, claims, viewer) {
		setFlashError(w, "This item cannot be marked as recovered yet.")
		http.Redirect(w, r, "/items/"+id, http.StatusSeeOther)
		return
	}

	draft := model.ItemDraft{
		Title:          item.Title,
		Description:    item.Description,
		Category:       item.Category,
		Status:         model.ItemStatusRecovered,
		Location:       item.Location,
		Date:           item.Date,
		ImageURL:       item.ImageURL,
		SecretQuestion: item.SecretQuestion,
		SecretAnswer:   item.SecretAnswer,
	}
	if _, err := s.Cache.UpdateItem(r.Context(), token, id, draft); err != nil {
		s.backendFailed(w, r, err, "/items/"+id)
		return
	}

	slog.Info("item recovered", "user", viewer.Email, "item", item.Title)
	setFlash(w, "Item marked as recovered. Glad it found its way home!")
	http.Redirect(w, r, "/items/"+id, http.StatusSeeOther)
}

// itemDraftFromForm parses and validates the shared item form, uploading
// the attached photo if one was provided.
func (s *Server) itemDraftFromForm(w http.ResponseWriter, r *http.Request) (*model.ItemDraft, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.MaxUploadBytes); err != nil {
		return nil, fmt.Errorf("form too large")
	}

	draft := &model.ItemDraft{
		Title:          strings.TrimSpace(r.FormValue("title")),
		Description:    strings.TrimSpace(r.FormValue("description")),
		Category:       r.FormValue("category"),
		Status:         r.FormValue("status"),
		Location:       strings.TrimSpace(r.FormValue("location")),
		Date:           r.FormValue("date"),
		SecretQuestion: strings.TrimSpace(r.FormValue("secret_question")),
		SecretAnswer:   strings.TrimSpace(r.FormValue("secret_answer")),
	}

	if draft.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if draft.Category == "" {
		return nil, fmt.Errorf("category is required")
	}
	if draft.Date == "" {
		return nil, fmt.Errorf("date is required")
	}
	if draft.Status != model.ItemStatusLost && draft.Status != model.ItemStatusFound {
		return nil, fmt.Errorf("status must be lost or found")
	}

	url, err := s.uploadFormImage(r)
	if err != nil {
		return nil, err
	}
	draft.ImageURL = url

	return draft, nil
}

// uploadFormImage processes the optional "image" form file and uploads it
// to the backend, returning the stored URL or "" if no file was attached.
func (s *Server) uploadFormImage(r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}
	defer file.Close()

	// Downscale and re-encode before shipping to the backend.
	result, err := imaging.Process(file)
	if err != nil {
		return "", err
	}

	url, err := s.Backend.UploadImage(r.Context(), SessionToken(r.Context()), header.Filename, result.Data)
	if err != nil {
		return "", fmt.Errorf("uploading image: %w", err)
	}
	return url, nil
}
