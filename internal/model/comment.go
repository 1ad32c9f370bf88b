package model

import "time"

// Comment is an append-only discussion message on an item. The discussion
// opens once a claim on the item is approved and is visible only to the item
// owner and the approved claimant.
type Comment struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"itemId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	Text      string    `json:"text"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CanDiscuss reports whether viewer may read and post comments on item:
// the item owner and the approved claimant, once an approved claim exists.
func CanDiscuss(item *Item, claims []Claim, viewer *User) bool {
	if item == nil || viewer == nil {
		return false
	}
	approved := ApprovedClaim(claims)
	if approved == nil {
		return false
	}
	return viewer.ID == item.UserID || viewer.ID == approved.ClaimantID
}
