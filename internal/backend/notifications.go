package backend

import (
	"context"
	"net/http"

	"github.com/mitwpu/finditnow/internal/model"
)

// NotificationPreferences fetches the viewer's email notification toggles.
func (c *Client) NotificationPreferences(ctx context.Context, token string) (model.NotificationPreferences, error) {
	var prefs model.NotificationPreferences
	if err := c.doJSON(ctx, http.MethodGet, "/notifications/preferences", token, nil, &prefs); err != nil {
		return model.NotificationPreferences{}, err
	}
	return prefs, nil
}

// UpdateNotificationPreferences saves the viewer's toggles and returns the
// stored state.
func (c *Client) UpdateNotificationPreferences(ctx context.Context, token string, prefs model.NotificationPreferences) (model.NotificationPreferences, error) {
	var saved model.NotificationPreferences
	if err := c.doJSON(ctx, http.MethodPut, "/notifications/preferences", token, prefs, &saved); err != nil {
		return model.NotificationPreferences{}, err
	}
	return saved, nil
}
