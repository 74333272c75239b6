package engagement

import (
	"encoding/json"
	"time"

	"github.com/engagehq/engage-api/internal/types"
)

// Engagement represents a public consultation campaign.
type Engagement struct {
	// ID is the unique identifier for the engagement
	ID int64 `db:"id" json:"id"`

	// Name is the public title of the engagement
	Name string `db:"name" json:"name"`

	// Description is the plain-text summary shown in listings
	Description string `db:"description" json:"description"`

	// RichDescription is the structured editor document for the summary
	RichDescription json.RawMessage `db:"rich_description" json:"rich_description"`

	// Content is the plain-text body of the engagement page
	Content string `db:"content" json:"content"`

	// RichContent is the structured editor document for the body
	RichContent json.RawMessage `db:"rich_content" json:"rich_content"`

	// StartDate is when the engagement opens for participation
	StartDate time.Time `db:"start_date" json:"start_date"`

	// EndDate is when the engagement stops accepting submissions
	EndDate time.Time `db:"end_date" json:"end_date"`

	// StatusID is the stored lifecycle status
	StatusID types.EngagementStatus `db:"status_id" json:"status_id"`

	// PublishedDate is stamped when the engagement transitions to Published
	PublishedDate *time.Time `db:"published_date" json:"published_date"`

	// ScheduledDate is when a Scheduled engagement is due to be published
	ScheduledDate *time.Time `db:"scheduled_date" json:"scheduled_date"`

	// BannerFilename references the uploaded banner image
	BannerFilename string `db:"banner_filename" json:"banner_filename"`

	// TenantID is nullable; legacy single-tenant rows have none
	TenantID *int64 `db:"tenant_id" json:"tenant_id"`

	types.BaseModel
}

// DisplayStatus derives the UI-facing status from the stored status and the
// engagement's start date relative to now.
func (e *Engagement) DisplayStatus(now time.Time) types.EngagementDisplayStatus {
	switch e.StatusID {
	case types.EngagementStatusPublished:
		if e.StartDate.After(now) {
			return types.DisplayStatusUpcoming
		}
		return types.DisplayStatusOpen
	case types.EngagementStatusUnpublished:
		// The stored code for Unpublished collides with the synthetic
		// Upcoming code, so it cannot be passed through numerically.
		return types.DisplayStatusUnpublished
	}
	return types.EngagementDisplayStatus(e.StatusID)
}
