package backend

import (
	"context"
	"net/http"

	"github.com/mitwpu/finditnow/internal/model"
)

// Admin-only endpoints. The backend enforces the role; callers still gate
// these behind the admin predicate so the actions are never offered to
// regular users.

// AdminItems fetches every item, including ones hidden from listings.
func (c *Client) AdminItems(ctx context.Context, token string) ([]model.Item, error) {
	var resp []wireItem
	if err := c.doJSON(ctx, http.MethodGet, "/admin/items", token, nil, &resp); err != nil {
		return nil, err
	}
	return items(resp), nil
}

// AdminUpdateItemStatus force-sets an item's status.
func (c *Client) AdminUpdateItemStatus(ctx context.Context, token, id, status string) (model.Item, error) {
	var resp wireItem
	payload := map[string]string{"status": status}
	if err := c.doJSON(ctx, http.MethodPut, "/admin/items/"+id+"/status", token, payload, &resp); err != nil {
		return model.Item{}, err
	}
	return resp.item(), nil
}

// AdminDeleteItem removes any item regardless of ownership.
func (c *Client) AdminDeleteItem(ctx context.Context, token, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/admin/items/"+id, token, nil, nil)
}

// AdminUsers fetches all registered users.
func (c *Client) AdminUsers(ctx context.Context, token string) ([]model.User, error) {
	var resp []wireUser
	if err := c.doJSON(ctx, http.MethodGet, "/admin/users", token, nil, &resp); err != nil {
		return nil, err
	}
	out := make([]model.User, 0, len(resp))
	for _, w := range resp {
		out = append(out, w.user())
	}
	return out, nil
}

// AdminClaims fetches all claims across all items.
func (c *Client) AdminClaims(ctx context.Context, token string) ([]model.Claim, error) {
	var resp []wireClaim
	if err := c.doJSON(ctx, http.MethodGet, "/admin/claims", token, nil, &resp); err != nil {
		return nil, err
	}
	return claims(resp), nil
}

// AdminUpdateClaim transitions a claim's status and records moderator notes.
func (c *Client) AdminUpdateClaim(ctx context.Context, token, id, status, notes string) (model.Claim, error) {
	var resp wireClaim
	payload := map[string]string{"status": status, "notes": notes}
	if err := c.doJSON(ctx, http.MethodPut, "/admin/claims/"+id, token, payload, &resp); err != nil {
		return model.Claim{}, err
	}
	return resp.claim(), nil
}

// AdminReports fetches all reports.
func (c *Client) AdminReports(ctx context.Context, token string) ([]model.Report, error) {
	var resp []wireReport
	if err := c.doJSON(ctx, http.MethodGet, "/admin/reports", token, nil, &resp); err != nil {
		return nil, err
	}
	return reports(resp), nil
}

// AdminPendingReports fetches only reports awaiting review.
func (c *Client) AdminPendingReports(ctx context.Context, token string) ([]model.Report, error) {
	var resp []wireReport
	if err := c.doJSON(ctx, http.MethodGet, "/admin/reports/pending", token, nil, &resp); err != nil {
		return nil, err
	}
	return reports(resp), nil
}

// AdminGetReport fetches a single report.
func (c *Client) AdminGetReport(ctx context.Context, token, id string) (model.Report, error) {
	var resp wireReport
	if err := c.doJSON(ctx, http.MethodGet, "/admin/reports/"+id, token, nil, &resp); err != nil {
		return model.Report{}, err
	}
	return resp.report(), nil
}

// AdminUpdateReport resolves or rejects a report with moderator notes.
func (c *Client) AdminUpdateReport(ctx context.Context, token, id, status, adminNotes string) (model.Report, error) {
	var resp wireReport
	payload := map[string]string{"status": status, "adminNotes": adminNotes}
	if err := c.doJSON(ctx, http.MethodPut, "/admin/reports/"+id, token, payload, &resp); err != nil {
		return model.Report{}, err
	}
	return resp.report(), nil
}

// Analytics fetches the aggregate dashboard counters.
func (c *Client) Analytics(ctx context.Context, token string) (model.Analytics, error) {
	var resp model.Analytics
	if err := c.doJSON(ctx, http.MethodGet, "/admin/analytics", token, nil, &resp); err != nil {
		return model.Analytics{}, err
	}
	return resp, nil
}
