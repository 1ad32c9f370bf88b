package model

import "time"

// Item represents a reported lost or found belonging.
type Item struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	Status         string    `json:"status"`
	Location       string    `json:"location,omitempty"`
	Date           string    `json:"date"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	SecretQuestion string    `json:"secretQuestion,omitempty"`
	SecretAnswer   string    `json:"secretAnswer,omitempty"`
	UserID         string    `json:"userId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Item statuses.
const (
	ItemStatusLost      = "lost"
	ItemStatusFound     = "found"
	ItemStatusRecovered = "recovered"
)

// Categories offered in the item forms. Free-text values from the backend
// are displayed as-is.
var Categories = []string{
	"electronics",
	"wallet",
	"keys",
	"id-card",
	"books",
	"clothing",
	"accessories",
	"other",
}

// ItemDraft carries the user-supplied fields for creating or updating an
// item. Server-assigned fields (id, userId, timestamps) are never sent.
type ItemDraft struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	Status         string `json:"status"`
	Location       string `json:"location,omitempty"`
	Date           string `json:"date"`
	ImageURL       string `json:"imageUrl,omitempty"`
	SecretQuestion string `json:"secretQuestion,omitempty"`
	SecretAnswer   string `json:"secretAnswer,omitempty"`
}
