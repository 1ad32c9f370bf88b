package backend

import (
	"context"
	"net/http"

	"github.com/mitwpu/finditnow/internal/model"
)

// ListItems fetches all items.
func (c *Client) ListItems(ctx context.Context, token string) ([]model.Item, error) {
	var resp []wireItem
	if err := c.doJSON(ctx, http.MethodGet, "/items", token, nil, &resp); err != nil {
		return nil, err
	}
	return items(resp), nil
}

// GetItem fetches a single item by id.
func (c *Client) GetItem(ctx context.Context, token, id string) (model.Item, error) {
	var resp wireItem
	if err := c.doJSON(ctx, http.MethodGet, "/items/"+id, token, nil, &resp); err != nil {
		return model.Item{}, err
	}
	return resp.item(), nil
}

// CreateItem reports a new lost or found item.
func (c *Client) CreateItem(ctx context.Context, token string, draft model.ItemDraft) (model.Item, error) {
	var resp wireItem
	if err := c.doJSON(ctx, http.MethodPost, "/items", token, draft, &resp); err != nil {
		return model.Item{}, err
	}
	return resp.item(), nil
}

// UpdateItem updates an item's user-supplied fields or status.
func (c *Client) UpdateItem(ctx context.Context, token, id string, draft model.ItemDraft) (model.Item, error) {
	var resp wireItem
	if err := c.doJSON(ctx, http.MethodPut, "/items/"+id, token, draft, &resp); err != nil {
		return model.Item{}, err
	}
	return resp.item(), nil
}

// DeleteItem removes an item. The backend enforces that only the owner or an
// admin may do this.
func (c *Client) DeleteItem(ctx context.Context, token, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/items/"+id, token, nil, nil)
}

// UserItems fetches the items reported by the token's user.
func (c *Client) UserItems(ctx context.Context, token string) ([]model.Item, error) {
	var resp []wireItem
	if err := c.doJSON(ctx, http.MethodGet, "/items/user", token, nil, &resp); err != nil {
		return nil, err
	}
	return items(resp), nil
}

// MatchingItems fetches the backend's suggested matches for an item
// (lost items resembling a found one and vice versa).
func (c *Client) MatchingItems(ctx context.Context, token, id string) ([]model.Item, error) {
	var resp []wireItem
	if err := c.doJSON(ctx, http.MethodGet, "/items/match/"+id, token, nil, &resp); err != nil {
		return nil, err
	}
	return items(resp), nil
}
