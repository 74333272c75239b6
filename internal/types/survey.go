package types

// SurveySortableColumns is the allow-list of columns the survey listing may
// be sorted on.
var SurveySortableColumns = []string{"id", "name", "created_date", "updated_date"}

// SurveyFilter narrows the survey listing.
type SurveyFilter struct {
	Pagination *PaginationOptions

	// SearchText is matched case-insensitively against the survey name.
	SearchText string `json:"search_text,omitempty" form:"search_text"`

	// UnlinkedOnly restricts to surveys not attached to any engagement.
	UnlinkedOnly bool `json:"unlinked_only,omitempty" form:"unlinked_only"`

	// ExcludeHidden drops hidden surveys from the listing.
	ExcludeHidden bool `json:"exclude_hidden,omitempty" form:"exclude_hidden"`

	// ExcludeTemplate drops template surveys from the listing.
	ExcludeTemplate bool `json:"exclude_template,omitempty" form:"exclude_template"`
}

func NewDefaultSurveyFilter() *SurveyFilter {
	return &SurveyFilter{Pagination: NewDefaultPaginationOptions()}
}

func (f *SurveyFilter) Validate() error {
	if f.Pagination == nil {
		return nil
	}
	return f.Pagination.ValidateSortKey(SurveySortableColumns...)
}
