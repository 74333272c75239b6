package types

import (
	"time"

	ierr "github.com/engagehq/engage-api/internal/errors"
)

// EngagementSortableColumns is the allow-list of columns the engagement
// listing may be sorted on.
var EngagementSortableColumns = []string{
	"id", "name", "created_date", "updated_date",
	"start_date", "end_date", "published_date", "status_id",
}

// EngagementSearchOptions holds the optional search criteria recognized by
// the paginated engagement listing. Every present field narrows the result
// set; absent fields are ignored.
type EngagementSearchOptions struct {
	// SearchText is matched case-insensitively as a substring of the
	// engagement name.
	SearchText string `json:"search_text,omitempty" form:"search_text"`

	// Inclusive bounds on created_date.
	CreatedFromDate *time.Time `json:"created_from_date,omitempty" form:"created_from_date"`
	CreatedToDate   *time.Time `json:"created_to_date,omitempty" form:"created_to_date"`

	// Inclusive bounds on published_date.
	PublishedFromDate *time.Time `json:"published_from_date,omitempty" form:"published_from_date"`
	PublishedToDate   *time.Time `json:"published_to_date,omitempty" form:"published_to_date"`

	// EngagementStatus mixes stored status codes with the synthetic display
	// codes Upcoming and Open; the resulting conditions are ORed together.
	EngagementStatus []int `json:"engagement_status,omitempty" form:"engagement_status"`

	// Project metadata lookups, each ANDed when present.
	ProjectType       string `json:"project_type,omitempty" form:"project_type"`
	ProjectName       string `json:"project_name,omitempty" form:"project_name"`
	ProjectID         string `json:"project_id,omitempty" form:"project_id"`
	ApplicationNumber string `json:"application_number,omitempty" form:"application_number"`
	ClientName        string `json:"client_name,omitempty" form:"client_name"`
}

// IsEmpty reports whether no search criterion is set.
func (o *EngagementSearchOptions) IsEmpty() bool {
	if o == nil {
		return true
	}
	return o.SearchText == "" &&
		o.CreatedFromDate == nil && o.CreatedToDate == nil &&
		o.PublishedFromDate == nil && o.PublishedToDate == nil &&
		len(o.EngagementStatus) == 0 &&
		o.ProjectType == "" && o.ProjectName == "" && o.ProjectID == "" &&
		o.ApplicationNumber == "" && o.ClientName == ""
}

// HasMetadataFilter reports whether any of the project metadata criteria is
// present, which forces the metadata join.
func (o *EngagementSearchOptions) HasMetadataFilter() bool {
	if o == nil {
		return false
	}
	return o.ProjectType != "" || o.ProjectName != "" || o.ProjectID != "" ||
		o.ApplicationNumber != "" || o.ClientName != ""
}

// EngagementFilter is the full input to the paginated engagement listing.
type EngagementFilter struct {
	Pagination    *PaginationOptions
	SearchOptions *EngagementSearchOptions

	// Statuses restricts the listing to the given stored status codes.
	Statuses []EngagementStatus

	// AssignedEngagements lists the engagement ids the caller may see in
	// Draft state. nil means no restriction at all; an empty non-nil slice
	// hides every draft.
	AssignedEngagements []int64
}

func NewDefaultEngagementFilter() *EngagementFilter {
	return &EngagementFilter{
		Pagination: NewDefaultPaginationOptions(),
	}
}

func (f *EngagementFilter) Validate() error {
	if f.Pagination == nil {
		return nil
	}
	if err := f.Pagination.ValidateSortKey(EngagementSortableColumns...); err != nil {
		return err
	}
	for _, s := range f.Statuses {
		if !s.Valid() {
			return ierr.NewError("invalid engagement status code").
				WithHint("One of the requested status codes is not a known engagement status").
				WithReportableDetails(map[string]any{"status": int(s)}).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}
