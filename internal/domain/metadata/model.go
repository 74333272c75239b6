package metadata

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/engagehq/engage-api/internal/types"
)

// ProjectMetadata is the JSON document holding legacy project attributes on
// an engagement metadata row.
type ProjectMetadata struct {
	Type              string `json:"type,omitempty"`
	ProjectName       string `json:"project_name,omitempty"`
	ClientName        string `json:"client_name,omitempty"`
	ApplicationNumber string `json:"application_number,omitempty"`
}

func (m ProjectMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *ProjectMetadata) Scan(src interface{}) error {
	if src == nil {
		*m = ProjectMetadata{}
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unsupported type %T for project metadata", src)
	}
	return json.Unmarshal(b, m)
}

// EngagementMetadata records a tenant-defined attribute value on an
// engagement, keyed by a taxon.
type EngagementMetadata struct {
	ID           int64  `db:"id" json:"id"`
	EngagementID int64  `db:"engagement_id" json:"engagement_id"`
	TaxonID      int64  `db:"taxon_id" json:"taxon_id"`
	Value        string `db:"value" json:"value"`

	// Legacy project fields kept for the environment-assessment listings
	ProjectID       string          `db:"project_id" json:"project_id"`
	ProjectMetadata ProjectMetadata `db:"project_metadata" json:"project_metadata"`

	types.BaseModel
}

// Taxon defines a tenant-scoped metadata attribute: its name, data type and
// cardinality rules.
type Taxon struct {
	ID               int64  `db:"id" json:"id"`
	TenantID         int64  `db:"tenant_id" json:"tenant_id"`
	Name             string `db:"name" json:"name"`
	Description      string `db:"description" json:"description"`
	DataType         string `db:"data_type" json:"data_type"`
	Freeform         bool   `db:"freeform" json:"freeform"`
	OnePerEngagement bool   `db:"one_per_engagement" json:"one_per_engagement"`
	Position         int    `db:"position" json:"position"`

	types.BaseModel
}
