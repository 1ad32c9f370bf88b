package model

import "time"

// Claim is an assertion by a user that a found item belongs to them,
// pending adjudication by the item owner or an admin.
type Claim struct {
	ID            string    `json:"id"`
	ItemID        string    `json:"itemId"`
	ClaimantID    string    `json:"claimantId"`
	Justification string    `json:"justification"`
	Answer        string    `json:"answer,omitempty"`
	ProofImageURL string    `json:"proofImageUrl,omitempty"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Claim statuses.
const (
	ClaimStatusPending  = "pending"
	ClaimStatusApproved = "approved"
	ClaimStatusRejected = "rejected"
)

// ClaimDraft carries the user-supplied fields for filing a claim.
type ClaimDraft struct {
	ItemID        string `json:"itemId"`
	Justification string `json:"justification"`
	Answer        string `json:"answer,omitempty"`
	ProofImageURL string `json:"proofImageUrl,omitempty"`
}

// ApprovedClaim returns the approved claim among claims, or nil if none
// exists. At most one claim per item may ever be approved.
func ApprovedClaim(claims []Claim) *Claim {
	for i := range claims {
		if claims[i].Status == ClaimStatusApproved {
			return &claims[i]
		}
	}
	return nil
}

// ClaimByUser returns the claim filed by userID among claims, or nil.
func ClaimByUser(claims []Claim, userID string) *Claim {
	for i := range claims {
		if claims[i].ClaimantID == userID {
			return &claims[i]
		}
	}
	return nil
}
