package model

// NotificationPreferences are the per-user email notification toggles.
type NotificationPreferences struct {
	ClaimReceived bool `json:"claimReceived"`
	ClaimUpdated  bool `json:"claimUpdated"`
	MatchFound    bool `json:"matchFound"`
	ItemRecovered bool `json:"itemRecovered"`
}

// DefaultNotificationPreferences returns the backend defaults: every
// notification enabled.
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		ClaimReceived: true,
		ClaimUpdated:  true,
		MatchFound:    true,
		ItemRecovered: true,
	}
}
