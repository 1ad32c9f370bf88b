package model

import "time"

// Report is a flag raised against an item listing for moderator review.
type Report struct {
	ID          string    `json:"id"`
	ItemID      string    `json:"itemId"`
	ReporterID  string    `json:"reporterId"`
	Reason      string    `json:"reason"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	AdminID     string    `json:"adminId,omitempty"`
	AdminNotes  string    `json:"adminNotes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Report statuses.
const (
	ReportStatusPending  = "pending"
	ReportStatusResolved = "resolved"
	ReportStatusRejected = "rejected"
)

// Report reasons offered in the report form.
var ReportReasons = []string{
	"inappropriate",
	"spam",
	"fraudulent",
	"duplicate",
	"other",
}

// ReportDraft carries the user-supplied fields for filing a report.
type ReportDraft struct {
	ItemID      string `json:"itemId"`
	Reason      string `json:"reason"`
	Description string `json:"description"`
}
