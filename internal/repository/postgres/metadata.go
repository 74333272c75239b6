package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/engagehq/engage-api/internal/cache"
	"github.com/engagehq/engage-api/internal/domain/metadata"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/logger"
	"github.com/engagehq/engage-api/internal/postgres"
)

type metadataRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewMetadataRepository(db *postgres.DB, logger *logger.Logger) metadata.Repository {
	return &metadataRepository{db: db, logger: logger}
}

func (r *metadataRepository) Create(ctx context.Context, m *metadata.EngagementMetadata) error {
	query := `
		INSERT INTO engagement_metadata (
			engagement_id, taxon_id, value, project_id, project_metadata,
			created_date, updated_date, created_by, updated_by
		) VALUES (
			:engagement_id, :taxon_id, :value, :project_id, :project_metadata,
			:created_date, :updated_date, :created_by, :updated_by
		) RETURNING id`

	rows, err := r.db.NamedQueryContext(ctx, query, m)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create engagement metadata").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&m.ID); err != nil {
			return ierr.WithError(err).Mark(ierr.ErrDatabase)
		}
	}
	return nil
}

func (r *metadataRepository) Get(ctx context.Context, id int64) (*metadata.EngagementMetadata, error) {
	var m metadata.EngagementMetadata
	q := r.db.GetQuerier(ctx)
	err := q.GetContext(ctx, &m, `SELECT * FROM engagement_metadata WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError(fmt.Sprintf("engagement metadata %d not found", id)).
				WithHint("The metadata entry does not exist").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return &m, nil
}

func (r *metadataRepository) ListByEngagement(ctx context.Context, engagementID int64) ([]*metadata.EngagementMetadata, error) {
	q := r.db.GetQuerier(ctx)
	var items []*metadata.EngagementMetadata
	err := q.SelectContext(ctx, &items,
		`SELECT * FROM engagement_metadata WHERE engagement_id = $1 ORDER BY taxon_id ASC`, engagementID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list engagement metadata").
			Mark(ierr.ErrDatabase)
	}
	return items, nil
}

func (r *metadataRepository) Update(ctx context.Context, m *metadata.EngagementMetadata) error {
	query := `
		UPDATE engagement_metadata SET
			value = :value,
			project_id = :project_id,
			project_metadata = :project_metadata,
			updated_date = :updated_date,
			updated_by = :updated_by
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, m)
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ierr.NewError(fmt.Sprintf("engagement metadata %d not found", m.ID)).
			WithHint("The metadata entry does not exist").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *metadataRepository) Delete(ctx context.Context, id int64) error {
	q := r.db.GetQuerier(ctx)
	result, err := q.ExecContext(ctx, `DELETE FROM engagement_metadata WHERE id = $1`, id)
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ierr.NewError(fmt.Sprintf("engagement metadata %d not found", id)).
			WithHint("The metadata entry does not exist").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

type taxonRepository struct {
	db     *postgres.DB
	logger *logger.Logger
	cache  cache.Cache
}

func NewTaxonRepository(db *postgres.DB, logger *logger.Logger, c cache.Cache) metadata.TaxonRepository {
	return &taxonRepository{db: db, logger: logger, cache: c}
}

func (r *taxonRepository) Create(ctx context.Context, t *metadata.Taxon) error {
	query := `
		INSERT INTO engagement_metadata_taxa (
			tenant_id, name, description, data_type, freeform, one_per_engagement,
			position, created_date, updated_date, created_by, updated_by
		) VALUES (
			:tenant_id, :name, :description, :data_type, :freeform, :one_per_engagement,
			:position, :created_date, :updated_date, :created_by, :updated_by
		) RETURNING id`

	rows, err := r.db.NamedQueryContext(ctx, query, t)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create metadata taxon").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&t.ID); err != nil {
			return ierr.WithError(err).Mark(ierr.ErrDatabase)
		}
	}

	r.cache.DeleteByPrefix(ctx, cache.PrefixTaxon)
	return nil
}

func (r *taxonRepository) Get(ctx context.Context, id int64) (*metadata.Taxon, error) {
	key := cache.GenerateKey(cache.PrefixTaxon, id)
	if cached, found := r.cache.Get(ctx, key); found {
		if t, ok := cached.(*metadata.Taxon); ok {
			return t, nil
		}
	}

	var t metadata.Taxon
	q := r.db.GetQuerier(ctx)
	err := q.GetContext(ctx, &t, `SELECT * FROM engagement_metadata_taxa WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError(fmt.Sprintf("metadata taxon %d not found", id)).
				WithHint("The taxon does not exist").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}

	r.cache.Set(ctx, key, &t, cache.DefaultExpiration)
	return &t, nil
}

func (r *taxonRepository) ListByTenant(ctx context.Context, tenantID int64) ([]*metadata.Taxon, error) {
	key := cache.GenerateKey(cache.PrefixTaxon, "tenant", tenantID)
	if cached, found := r.cache.Get(ctx, key); found {
		if items, ok := cached.([]*metadata.Taxon); ok {
			return items, nil
		}
	}

	q := r.db.GetQuerier(ctx)
	var items []*metadata.Taxon
	err := q.SelectContext(ctx, &items,
		`SELECT * FROM engagement_metadata_taxa WHERE tenant_id = $1 ORDER BY position ASC`, tenantID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list metadata taxa").
			Mark(ierr.ErrDatabase)
	}

	r.cache.Set(ctx, key, items, cache.DefaultExpiration)
	return items, nil
}

func (r *taxonRepository) Update(ctx context.Context, t *metadata.Taxon) error {
	query := `
		UPDATE engagement_metadata_taxa SET
			name = :name,
			description = :description,
			data_type = :data_type,
			freeform = :freeform,
			one_per_engagement = :one_per_engagement,
			position = :position,
			updated_date = :updated_date,
			updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id`

	result, err := r.db.NamedExecContext(ctx, query, t)
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ierr.NewError(fmt.Sprintf("metadata taxon %d not found", t.ID)).
			WithHint("The taxon does not exist").
			Mark(ierr.ErrNotFound)
	}

	r.cache.DeleteByPrefix(ctx, cache.PrefixTaxon)
	return nil
}

func (r *taxonRepository) Delete(ctx context.Context, id int64) error {
	q := r.db.GetQuerier(ctx)
	result, err := q.ExecContext(ctx, `DELETE FROM engagement_metadata_taxa WHERE id = $1`, id)
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ierr.NewError(fmt.Sprintf("metadata taxon %d not found", id)).
			WithHint("The taxon does not exist").
			Mark(ierr.ErrNotFound)
	}

	r.cache.DeleteByPrefix(ctx, cache.PrefixTaxon)
	return nil
}
