package survey

import (
	"encoding/json"

	"github.com/engagehq/engage-api/internal/types"
)

// Survey is a form definition that can be linked to at most one engagement.
type Survey struct {
	ID int64 `db:"id" json:"id"`

	Name string `db:"name" json:"name"`

	// FormJSON is the form.io style form definition rendered by the client
	FormJSON json.RawMessage `db:"form_json" json:"form_json"`

	// EngagementID is nil while the survey is unlinked
	EngagementID *int64 `db:"engagement_id" json:"engagement_id"`

	// IsHidden removes the survey from the public listing
	IsHidden bool `db:"is_hidden" json:"is_hidden"`

	// IsTemplate marks the survey as a cloneable starting point
	IsTemplate bool `db:"is_template" json:"is_template"`

	TenantID int64 `db:"tenant_id" json:"tenant_id"`

	types.BaseModel
}
