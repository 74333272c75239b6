package types

// EngagementStatus is the stored lifecycle state of an engagement. The codes
// match the engagement_status reference rows seeded by migrations.
type EngagementStatus int

const (
	EngagementStatusDraft       EngagementStatus = 1
	EngagementStatusPublished   EngagementStatus = 2
	EngagementStatusClosed      EngagementStatus = 3
	EngagementStatusScheduled   EngagementStatus = 4
	EngagementStatusUnpublished EngagementStatus = 5
)

func (s EngagementStatus) String() string {
	switch s {
	case EngagementStatusDraft:
		return "Draft"
	case EngagementStatusPublished:
		return "Published"
	case EngagementStatusClosed:
		return "Closed"
	case EngagementStatusScheduled:
		return "Scheduled"
	case EngagementStatusUnpublished:
		return "Unpublished"
	default:
		return "Unknown"
	}
}

func (s EngagementStatus) Valid() bool {
	switch s {
	case EngagementStatusDraft, EngagementStatusPublished, EngagementStatusClosed,
		EngagementStatusScheduled, EngagementStatusUnpublished:
		return true
	}
	return false
}

// EngagementDisplayStatus is the UI-facing status derived from the stored
// status plus start_date versus the current time. The first codes mirror the
// stored statuses; Upcoming and Open are synthetic and only exist in filters.
type EngagementDisplayStatus int

const (
	DisplayStatusDraft       EngagementDisplayStatus = 1
	DisplayStatusPublished   EngagementDisplayStatus = 2
	DisplayStatusClosed      EngagementDisplayStatus = 3
	DisplayStatusScheduled   EngagementDisplayStatus = 4
	DisplayStatusUpcoming    EngagementDisplayStatus = 5
	DisplayStatusOpen        EngagementDisplayStatus = 6
	DisplayStatusUnpublished EngagementDisplayStatus = 7
)

// CommentStatus tracks the review state of submissions and their comments.
type CommentStatus int

const (
	CommentStatusPending  CommentStatus = 1
	CommentStatusApproved CommentStatus = 2
	CommentStatusRejected CommentStatus = 3
)

func (s CommentStatus) Valid() bool {
	switch s {
	case CommentStatusPending, CommentStatusApproved, CommentStatusRejected:
		return true
	}
	return false
}
