package backend

import (
	"context"
	"net/http"

	"github.com/mitwpu/finditnow/internal/model"
)

// CreateReport flags an item for moderator review.
func (c *Client) CreateReport(ctx context.Context, token string, draft model.ReportDraft) (model.Report, error) {
	var resp wireReport
	if err := c.doJSON(ctx, http.MethodPost, "/reports", token, draft, &resp); err != nil {
		return model.Report{}, err
	}
	return resp.report(), nil
}

// UserReports fetches the reports filed by the token's user.
func (c *Client) UserReports(ctx context.Context, token string) ([]model.Report, error) {
	var resp []wireReport
	if err := c.doJSON(ctx, http.MethodGet, "/reports/user", token, nil, &resp); err != nil {
		return nil, err
	}
	return reports(resp), nil
}
