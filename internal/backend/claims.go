package backend

import (
	"context"
	"net/http"

	"github.com/mitwpu/finditnow/internal/model"
)

// ListClaims fetches all claims.
func (c *Client) ListClaims(ctx context.Context, token string) ([]model.Claim, error) {
	var resp []wireClaim
	if err := c.doJSON(ctx, http.MethodGet, "/claims", token, nil, &resp); err != nil {
		return nil, err
	}
	return claims(resp), nil
}

// GetClaim fetches a single claim by id.
func (c *Client) GetClaim(ctx context.Context, token, id string) (model.Claim, error) {
	var resp wireClaim
	if err := c.doJSON(ctx, http.MethodGet, "/claims/"+id, token, nil, &resp); err != nil {
		return model.Claim{}, err
	}
	return resp.claim(), nil
}

// CreateClaim files a claim against a found item. The claimant is derived
// from the token server-side.
func (c *Client) CreateClaim(ctx context.Context, token string, draft model.ClaimDraft) (model.Claim, error) {
	var resp wireClaim
	if err := c.doJSON(ctx, http.MethodPost, "/claims", token, draft, &resp); err != nil {
		return model.Claim{}, err
	}
	return resp.claim(), nil
}

// UpdateClaimStatus transitions a claim to approved or rejected. The backend
// only permits the item owner (or an admin) to do this.
func (c *Client) UpdateClaimStatus(ctx context.Context, token, id, status string) (model.Claim, error) {
	var resp wireClaim
	payload := map[string]string{"status": status}
	if err := c.doJSON(ctx, http.MethodPut, "/claims/"+id, token, payload, &resp); err != nil {
		return model.Claim{}, err
	}
	return resp.claim(), nil
}

// DeleteClaim withdraws a claim.
func (c *Client) DeleteClaim(ctx context.Context, token, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/claims/"+id, token, nil, nil)
}

// UserClaims fetches the claims filed by the token's user.
func (c *Client) UserClaims(ctx context.Context, token string) ([]model.Claim, error) {
	var resp []wireClaim
	if err := c.doJSON(ctx, http.MethodGet, "/claims/user", token, nil, &resp); err != nil {
		return nil, err
	}
	return claims(resp), nil
}

// ItemClaims fetches the claims filed against one item. The backend only
// answers this for the item's owner.
func (c *Client) ItemClaims(ctx context.Context, token, itemID string) ([]model.Claim, error) {
	var resp []wireClaim
	if err := c.doJSON(ctx, http.MethodGet, "/claims/item/"+itemID, token, nil, &resp); err != nil {
		return nil, err
	}
	return claims(resp), nil
}
