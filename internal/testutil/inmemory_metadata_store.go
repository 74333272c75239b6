package testutil

import (
	"context"
	"fmt"

	"github.com/engagehq/engage-api/internal/domain/metadata"
	ierr "github.com/engagehq/engage-api/internal/errors"
)

type InMemoryMetadataStore struct {
	*InMemoryStore[*metadata.EngagementMetadata]
}

func NewInMemoryMetadataStore() *InMemoryMetadataStore {
	return &InMemoryMetadataStore{
		InMemoryStore: NewInMemoryStore[*metadata.EngagementMetadata](),
	}
}

func (s *InMemoryMetadataStore) Create(ctx context.Context, m *metadata.EngagementMetadata) error {
	if m.ID == 0 {
		m.ID = s.NextID()
	}
	return s.InMemoryStore.Create(ctx, m.ID, m)
}

func (s *InMemoryMetadataStore) Get(ctx context.Context, id int64) (*metadata.EngagementMetadata, error) {
	m, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError(fmt.Sprintf("engagement metadata %d not found", id)).
			WithHint("The metadata entry does not exist").
			Mark(ierr.ErrNotFound)
	}
	return m, nil
}

func (s *InMemoryMetadataStore) ListByEngagement(ctx context.Context, engagementID int64) ([]*metadata.EngagementMetadata, error) {
	return s.InMemoryStore.List(ctx, nil,
		func(ctx context.Context, m *metadata.EngagementMetadata, _ interface{}) bool {
			return m.EngagementID == engagementID
		},
		func(a, b *metadata.EngagementMetadata) bool { return a.TaxonID < b.TaxonID },
		nil,
	)
}

func (s *InMemoryMetadataStore) Update(ctx context.Context, m *metadata.EngagementMetadata) error {
	if err := s.InMemoryStore.Update(ctx, m.ID, m); err != nil {
		return ierr.NewError(fmt.Sprintf("engagement metadata %d not found", m.ID)).
			WithHint("The metadata entry does not exist").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryMetadataStore) Delete(ctx context.Context, id int64) error {
	if err := s.InMemoryStore.Delete(ctx, id); err != nil {
		return ierr.NewError(fmt.Sprintf("engagement metadata %d not found", id)).
			WithHint("The metadata entry does not exist").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

type InMemoryTaxonStore struct {
	*InMemoryStore[*metadata.Taxon]
}

func NewInMemoryTaxonStore() *InMemoryTaxonStore {
	return &InMemoryTaxonStore{
		InMemoryStore: NewInMemoryStore[*metadata.Taxon](),
	}
}

func (s *InMemoryTaxonStore) Create(ctx context.Context, t *metadata.Taxon) error {
	if t.ID == 0 {
		t.ID = s.NextID()
	}
	return s.InMemoryStore.Create(ctx, t.ID, t)
}

func (s *InMemoryTaxonStore) Get(ctx context.Context, id int64) (*metadata.Taxon, error) {
	t, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError(fmt.Sprintf("metadata taxon %d not found", id)).
			WithHint("The taxon does not exist").
			Mark(ierr.ErrNotFound)
	}
	return t, nil
}

func (s *InMemoryTaxonStore) ListByTenant(ctx context.Context, tenantID int64) ([]*metadata.Taxon, error) {
	return s.InMemoryStore.List(ctx, nil,
		func(ctx context.Context, t *metadata.Taxon, _ interface{}) bool {
			return t.TenantID == tenantID
		},
		func(a, b *metadata.Taxon) bool { return a.Position < b.Position },
		nil,
	)
}

func (s *InMemoryTaxonStore) Update(ctx context.Context, t *metadata.Taxon) error {
	if err := s.InMemoryStore.Update(ctx, t.ID, t); err != nil {
		return ierr.NewError(fmt.Sprintf("metadata taxon %d not found", t.ID)).
			WithHint("The taxon does not exist").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryTaxonStore) Delete(ctx context.Context, id int64) error {
	if err := s.InMemoryStore.Delete(ctx, id); err != nil {
		return ierr.NewError(fmt.Sprintf("metadata taxon %d not found", id)).
			WithHint("The taxon does not exist").
			Mark(ierr.ErrNotFound)
	}
	return nil
}
