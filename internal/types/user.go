package types

// UserSortableColumns is the allow-list of columns the staff user listing
// may be sorted on.
var UserSortableColumns = []string{"id", "first_name", "last_name", "email", "created_date"}

// UserFilter narrows the staff user listing.
type UserFilter struct {
	Pagination *PaginationOptions

	// SearchText is matched case-insensitively against first and last name.
	SearchText string `json:"search_text,omitempty" form:"search_text"`

	// IncludeInactive keeps deactivated accounts in the listing.
	IncludeInactive bool `json:"include_inactive,omitempty" form:"include_inactive"`
}

func NewDefaultUserFilter() *UserFilter {
	return &UserFilter{Pagination: NewDefaultPaginationOptions()}
}

func (f *UserFilter) Validate() error {
	if f.Pagination == nil {
		return nil
	}
	return f.Pagination.ValidateSortKey(UserSortableColumns...)
}
