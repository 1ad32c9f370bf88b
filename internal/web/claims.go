package web

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/mitwpu/finditnow/internal/backend"
	"github.com/mitwpu/finditnow/internal/model"
)

// ClaimCreateSubmit handles POST /items/{id}/claims.
func (s *Server) ClaimCreateSubmit(w http.ResponseWriter, r *http.Request) {
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
	if model.EligibilityFor(&item, claims, viewer) != model.EligibilityClaimable {
		setFlashError(w, "This item can no longer be claimed.")
		http.Redirect(w, r, "/items/"+itemID, http.StatusSeeOther)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.MaxUploadBytes); err != nil {
		setFlashError(w, "Form too large.")
		http.Redirect(w, r, "/items/"+itemID, http.StatusSeeOther)
		return
	}

	draft := model.ClaimDraft{
		ItemID:        itemID,
		Justification: strings.TrimSpace(r.FormValue("justification")),
		Answer:        strings.TrimSpace(r.FormValue("answer")),
	}
	if draft.Justification == "" {
		setFlashError(w, "Please explain why this item is yours.")
		http.Redirect(w, r, "/items/"+itemID, http.StatusSeeOther)
		return
	}
	if item.SecretQuestion != "" && draft.Answer == "" {
		setFlashError(w, "Please answer the verification question.")
		http.Redirect(w, r, "/items/"+itemID, http.StatusSeeOther)
		return
	}

	proofURL, err := s.uploadFormImage(r)
	if err != nil {
		setFlashError(w, err.Error())
		http.Redirect(w, r, "/items/"+itemID, http.StatusSeeOther)
		return
	}
	draft.ProofImageURL = proofURL

	claim, err := s.Cache.CreateClaim(r.Context(), token, viewer.ID, draft)
	if err != nil {
		s.backendFailed(w, r, err, "/items/"+itemID)
		return
	}

	slog.Info("claim filed", "user", viewer.Email, "item", item.Title, "claim", claim.ID)
	setFlash(w, "Your claim has been submitted and is awaiting review.")
	http.Redirect(w, r, "/items/"+itemID, http.StatusSeeOther)
}

// fetchClaim loads a claim for a handler, with the same failure handling as
// fetchItem.
func (s *Server) fetchClaim(w http.ResponseWriter, r *http.Request, id string) (model.Claim, bool) {
	claim, err := s.Backend.GetClaim(r.Context(), SessionToken(r.Context()), id)
	if err != nil {
		if s.sessionRejected(w, r, err) {
			return model.Claim{}, false
		}
		if backend.IsNotFound(err) {
			http.Error(w, "claim not found", http.StatusNotFound)
			return model.Claim{}, false
		}
		s.backendFailed(w, r, err, "/items")
		return model.Claim{}, false
	}
	return claim, true
}

// ClaimApproveSubmit handles POST /claims/{id}/approve.
func (s *Server) ClaimApproveSubmit(w http.ResponseWriter, r *http.Request) {
	s.adjudicateClaim(w, r, model.ClaimStatusApproved)
}

// ClaimRejectSubmit handles POST /claims/{id}/reject.
func (s *Server) ClaimRejectSubmit(w http.ResponseWriter, r *http.Request) {
	s.adjudicateClaim(w, r, model.ClaimStatusRejected)
}

// adjudicateClaim moves a pending claim to approved or rejected on behalf
// of the item owner. Approving is refused while another claim on the same
// item already holds approval.
func (s *Server) adjudicateClaim(w http.ResponseWriter, r *http.Request, status string) {
	viewer := SessionUser(r.Context())
	token := SessionToken(r.Context())
	id := r.PathValue("id")

	claim, ok := s.fetchClaim(w, r, id)
	if !ok {
		return
	}

	item, ok := s.fetchItem(w, r, claim.ItemID, "/items")
	if !ok {
		return
	}
	if item.UserID != viewer.ID && !viewer.IsAdmin {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	if status == model.ClaimStatusApproved {
		siblings, err := s.Backend.ItemClaims(r.Context(), token, item.ID)
		if err != nil {
			s.backendFailed(w, r, err, "/items/"+item.ID)
			return
		}
		if !model.CanApproveClaim(&claim, siblings) {
			setFlashError(w, "Another claim on this item has already been approved.")
			http.Redirect(w, r, "/items/"+item.ID, http.StatusSeeOther)
			return
		}
	}

	if _, err := s.Cache.UpdateClaimStatus(r.Context(), token, id, status); err != nil {
		s.backendFailed(w, r, err, "/items/"+item.ID)
		return
	}

	slog.Info("claim adjudicated", "user", viewer.Email, "claim", id, "status", status)
	if status == model.ClaimStatusApproved {
		setFlash(w, "Claim approved. You can mark the item as recovered once it is handed over.")
	} else {
		setFlash(w, "Claim rejected.")
	}
	http.Redirect(w, r, "/items/"+item.ID, http.StatusSeeOther)
}

// ClaimWithdrawSubmit handles POST /claims/{id}/withdraw. Claimants may
// withdraw their own pending claims.
func (s *Server) ClaimWithdrawSubmit(w http.ResponseWriter, r *http.Request) {
	viewer := SessionUser(r.Context())
	token := SessionToken(r.Context())
	id := r.PathValue("id")

	claim, ok := s.fetchClaim(w, r, id)
	if !ok {
		return
	}
	if claim.ClaimantID != viewer.ID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	if claim.Status != model.ClaimStatusPending {
		setFlashError(w, "Only pending claims can be withdrawn.")
		http.Redirect(w, r, "/items/"+claim.ItemID, http.StatusSeeOther)
		return
	}

	if err := s.Cache.DeleteClaim(r.Context(), token, viewer.ID, id); err != nil {
		s.backendFailed(w, r, err, "/items/"+claim.ItemID)
		return
	}

	slog.Info("claim withdrawn", "user", viewer.Email, "claim", id)
	setFlash(w, "Your claim has been withdrawn.")
	http.Redirect(w, r, "/items/"+claim.ItemID, http.StatusSeeOther)
}
