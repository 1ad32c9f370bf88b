package backend

import (
	"context"
	"net/http"

	"github.com/mitwpu/finditnow/internal/model"
)

// ItemComments fetches the discussion thread for an item.
func (c *Client) ItemComments(ctx context.Context, token, itemID string) ([]model.Comment, error) {
	var resp []wireComment
	if err := c.doJSON(ctx, http.MethodGet, "/comments/item/"+itemID, token, nil, &resp); err != nil {
		return nil, err
	}
	return comments(resp), nil
}

// CreateComment posts a message to an item's discussion thread.
func (c *Client) CreateComment(ctx context.Context, token, itemID, text, imageURL string) (model.Comment, error) {
	payload := map[string]string{
		"itemId": itemID,
		"text":   text,
	}
	if imageURL != "" {
		payload["imageUrl"] = imageURL
	}
	var resp wireComment
	if err := c.doJSON(ctx, http.MethodPost, "/comments", token, payload, &resp); err != nil {
		return model.Comment{}, err
	}
	return resp.comment(), nil
}

// DeleteComment removes a comment.
func (c *Client) DeleteComment(ctx context.Context, token, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/comments/"+id, token, nil, nil)
}
