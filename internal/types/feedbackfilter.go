package types

import (
	ierr "github.com/engagehq/engage-api/internal/errors"
)

// FeedbackFilter narrows the feedback listing.
type FeedbackFilter struct {
	Pagination *PaginationOptions

	// SearchText is matched case-insensitively against the comment body.
	SearchText string `json:"search_text,omitempty" form:"search_text"`

	// Status restricts to one review state; nil means all.
	Status *FeedbackStatus `json:"status,omitempty" form:"status"`
}

func NewDefaultFeedbackFilter() *FeedbackFilter {
	return &FeedbackFilter{Pagination: NewDefaultPaginationOptions()}
}

func (f *FeedbackFilter) Validate() error {
	if f.Status != nil && !f.Status.Valid() {
		return ierr.NewError("invalid feedback status").
			WithHint("The requested feedback status is not known").
			WithReportableDetails(map[string]any{"status": int(*f.Status)}).
			Mark(ierr.ErrValidation)
	}
	if f.Pagination == nil {
		return nil
	}
	return f.Pagination.ValidateSortKey(FeedbackSortableColumns...)
}
