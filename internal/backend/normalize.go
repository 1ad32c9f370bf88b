package backend

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/mitwpu/finditnow/internal/model"
)

// The backend carries two overlapping field names for several concepts
// (justification/description on claims, proofImageUrl/proofUrl, text/content
// on comments, role string vs isAdmin flag). The wire types below accept
// both spellings and normalize here, once, so the rest of the program only
// ever sees the canonical model shapes.

// wireTime parses the timestamp formats the backend emits: RFC 3339 and
// zoneless LocalDateTime strings.
type wireTime struct {
	time.Time
}

func (t *wireTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	// Unparseable timestamps degrade to zero rather than failing the
	// whole response.
	t.Time = time.Time{}
	return nil
}

type wireUser struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Role       string `json:"role"`
	IsAdmin    bool   `json:"isAdmin"`
	Token      string `json:"token"`
}

func (w wireUser) user() model.User {
	role := model.NormalizeRole(w.Role)
	if w.IsAdmin {
		role = model.RoleAdmin
	}
	return model.User{
		ID:         w.ID,
		Name:       w.Name,
		Email:      w.Email,
		Department: w.Department,
		Role:       role,
		IsAdmin:    role == model.RoleAdmin,
	}
}

type wireItem struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	Status         string   `json:"status"`
	Location       string   `json:"location"`
	Date           string   `json:"date"`
	ImageURL       string   `json:"imageUrl"`
	SecretQuestion string   `json:"secretQuestion"`
	SecretAnswer   string   `json:"secretAnswer"`
	UserID         string   `json:"userId"`
	CreatedAt      wireTime `json:"createdAt"`
	UpdatedAt      wireTime `json:"updatedAt"`
}

func (w wireItem) item() model.Item {
	return model.Item{
		ID:             w.ID,
		Title:          w.Title,
		Description:    w.Description,
		Category:       w.Category,
		Status:         strings.ToLower(w.Status),
		Location:       w.Location,
		Date:           w.Date,
		ImageURL:       w.ImageURL,
		SecretQuestion: w.SecretQuestion,
		SecretAnswer:   w.SecretAnswer,
		UserID:         w.UserID,
		CreatedAt:      w.CreatedAt.Time,
		UpdatedAt:      w.UpdatedAt.Time,
	}
}

type wireClaim struct {
	ID            string   `json:"id"`
	ItemID        string   `json:"itemId"`
	ClaimantID    string   `json:"claimantId"`
	Justification string   `json:"justification"`
	Description   string   `json:"description"`
	Answer        string   `json:"answer"`
	ProofImageURL string   `json:"proofImageUrl"`
	ProofURL      string   `json:"proofUrl"`
	Status        string   `json:"status"`
	Notes         string   `json:"notes"`
	AdminNotes    string   `json:"adminNotes"`
	CreatedAt     wireTime `json:"createdAt"`
	UpdatedAt     wireTime `json:"updatedAt"`
}

func (w wireClaim) claim() model.Claim {
	justification := w.Justification
	if justification == "" {
		justification = w.Description
	}
	proof := w.ProofImageURL
	if proof == "" {
		proof = w.ProofURL
	}
	notes := w.Notes
	if notes == "" {
		notes = w.AdminNotes
	}
	return model.Claim{
		ID:            w.ID,
		ItemID:        w.ItemID,
		ClaimantID:    w.ClaimantID,
		Justification: justification,
		Answer:        w.Answer,
		ProofImageURL: proof,
		Status:        strings.ToLower(w.Status),
		Notes:         notes,
		CreatedAt:     w.CreatedAt.Time,
		UpdatedAt:     w.UpdatedAt.Time,
	}
}

type wireComment struct {
	ID        string   `json:"id"`
	ItemID    string   `json:"itemId"`
	UserID    string   `json:"userId"`
	UserName  string   `json:"userName"`
	Text      string   `json:"text"`
	Content   string   `json:"content"`
	ImageURL  string   `json:"imageUrl"`
	CreatedAt wireTime `json:"createdAt"`
}

func (w wireComment) comment() model.Comment {
	text := w.Text
	if text == "" {
		text = w.Content
	}
	return model.Comment{
		ID:        w.ID,
		ItemID:    w.ItemID,
		UserID:    w.UserID,
		UserName:  w.UserName,
		Text:      text,
		ImageURL:  w.ImageURL,
		CreatedAt: w.CreatedAt.Time,
	}
}

type wireReport struct {
	ID          string   `json:"id"`
	ItemID      string   `json:"itemId"`
	ReporterID  string   `json:"reporterId"`
	Reason      string   `json:"reason"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	AdminID     string   `json:"adminId"`
	AdminNotes  string   `json:"adminNotes"`
	CreatedAt   wireTime `json:"createdAt"`
	UpdatedAt   wireTime `json:"updatedAt"`
}

func (w wireReport) report() model.Report {
	status := strings.ToLower(w.Status)
	// Older backends report resolved reports as "approved".
	if status == "approved" {
		status = model.ReportStatusResolved
	}
	return model.Report{
		ID:          w.ID,
		ItemID:      w.ItemID,
		ReporterID:  w.ReporterID,
		Reason:      w.Reason,
		Description: w.Description,
		Status:      status,
		AdminID:     w.AdminID,
		AdminNotes:  w.AdminNotes,
		CreatedAt:   w.CreatedAt.Time,
		UpdatedAt:   w.UpdatedAt.Time,
	}
}

func items(ws []wireItem) []model.Item {
	out := make([]model.Item, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.item())
	}
	return out
}

func claims(ws []wireClaim) []model.Claim {
	out := make([]model.Claim, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.claim())
	}
	return out
}

func comments(ws []wireComment) []model.Comment {
	out := make([]model.Comment, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.comment())
	}
	return out
}

func reports(ws []wireReport) []model.Report {
	out := make([]model.Report, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.report())
	}
	return out
}
