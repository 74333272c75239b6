package metadata

import "context"

// Repository provides access to engagement metadata rows.
type Repository interface {
	Create(ctx context.Context, m *EngagementMetadata) error
	Get(ctx context.Context, id int64) (*EngagementMetadata, error)
	ListByEngagement(ctx context.Context, engagementID int64) ([]*EngagementMetadata, error)
	Update(ctx context.Context, m *EngagementMetadata) error
	Delete(ctx context.Context, id int64) error
}

// TaxonRepository provides access to tenant-scoped metadata taxa, ordered by
// position within a tenant.
type TaxonRepository interface {
	Create(ctx context.Context, t *Taxon) error
	Get(ctx context.Context, id int64) (*Taxon, error)
	ListByTenant(ctx context.Context, tenantID int64) ([]*Taxon, error)
	Update(ctx context.Context, t *Taxon) error
	Delete(ctx context.Context, id int64) error
}
