package model

// Eligibility is the claim-related state of an item as seen by one viewer.
// It is derived on every request from the item, the item's claims and the
// viewer; it is never stored.
type Eligibility int

const (
	// EligibilityAnonymous: no authenticated viewer, show a login prompt.
	EligibilityAnonymous Eligibility = iota
	// EligibilityOwner: the viewer reported this item.
	EligibilityOwner
	// EligibilityRecovered: the item has been returned, informational only.
	EligibilityRecovered
	// EligibilityApprovedClaimant: the viewer's claim was approved.
	EligibilityApprovedClaimant
	// EligibilityAlreadyClaimed: the viewer filed a claim that is still
	// pending or was rejected.
	EligibilityAlreadyClaimed
	// EligibilityLocked: another user's claim was approved, no further
	// claims are accepted.
	EligibilityLocked
	// EligibilityClaimable: the viewer may file a new claim.
	EligibilityClaimable
	// EligibilityNone: nothing the viewer can do with this item.
	EligibilityNone
)

// EligibilityFor computes the claim eligibility of item for viewer.
//
// The rules are checked in strict priority order; in particular an existing
// approved claim must lock the item before the "found" status is consulted,
// otherwise a second approval could be offered.
func EligibilityFor(item *Item, claims []Claim, viewer *User) Eligibility {
	if viewer == nil {
		return EligibilityAnonymous
	}
	if viewer.ID == item.UserID {
		return EligibilityOwner
	}
	if item.Status == ItemStatusRecovered {
		return EligibilityRecovered
	}

	approved := ApprovedClaim(claims)
	if mine := ClaimByUser(claims, viewer.ID); mine != nil {
		if mine.Status == ClaimStatusApproved {
			return EligibilityApprovedClaimant
		}
		return EligibilityAlreadyClaimed
	}
	if approved != nil {
		return EligibilityLocked
	}
	if item.Status == ItemStatusFound {
		return EligibilityClaimable
	}
	return EligibilityNone
}

// CanApproveClaim reports whether claim may transition to approved: it must
// be pending and no other claim on the item may already be approved.
func CanApproveClaim(claim *Claim, claims []Claim) bool {
	if claim == nil || claim.Status != ClaimStatusPending {
		return false
	}
	approved := ApprovedClaim(claims)
	return approved == nil || approved.ID == claim.ID
}

// CanMarkRecovered reports whether viewer may mark item as recovered:
// only the owner, and only once a claim has been approved.
func CanMarkRecovered(item *Item, claims []Claim, viewer *User) bool {
	if item == nil || viewer == nil || viewer.ID != item.UserID {
		return false
	}
	if item.Status == ItemStatusRecovered {
		return false
	}
	return ApprovedClaim(claims) != nil
}
