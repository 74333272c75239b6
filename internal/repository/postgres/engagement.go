package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/engagehq/engage-api/internal/domain/engagement"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/logger"
	"github.com/engagehq/engage-api/internal/postgres"
	"github.com/engagehq/engage-api/internal/types"
	"github.com/jmoiron/sqlx"
)

type engagementRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewEngagementRepository(db *postgres.DB, logger *logger.Logger) engagement.Repository {
	return &engagementRepository{db: db, logger: logger}
}

func (r *engagementRepository) Create(ctx context.Context, e *engagement.Engagement) error {
	query := `
		INSERT INTO engagement (
			name, description, rich_description, content, rich_content,
			start_date, end_date, status_id, published_date, scheduled_date,
			banner_filename, tenant_id, created_date, updated_date, created_by, updated_by
		) VALUES (
			:name, :description, :rich_description, :content, :rich_content,
			:start_date, :end_date, :status_id, :published_date, :scheduled_date,
			:banner_filename, :tenant_id, :created_date, :updated_date, :created_by, :updated_by
		) RETURNING id`

	r.logger.Debugw("creating engagement", "name", e.Name, "status_id", e.StatusID)

	rows, err := r.db.NamedQueryContext(ctx, query, e)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create engagement").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&e.ID); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to read engagement id").
				Mark(ierr.ErrDatabase)
		}
	}
	return nil
}

func (r *engagementRepository) Get(ctx context.Context, id int64) (*engagement.Engagement, error) {
	var e engagement.Engagement
	q := r.db.GetQuerier(ctx)
	err := q.GetContext(ctx, &e, `SELECT * FROM engagement WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError(fmt.Sprintf("engagement %d not found", id)).
				WithHint("The engagement does not exist").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get engagement").
			Mark(ierr.ErrDatabase)
	}
	return &e, nil
}

// buildListQuery composes the filter conditions shared between List and
// Count. The base set inner-joins engagement_status so rows with a dangling
// status are excluded; metadata criteria add a left outer join.
func buildListQuery(filter *types.EngagementFilter, now time.Time) (string, string, []interface{}, error) {
	var b strings.Builder
	var args []interface{}

	from := ` FROM engagement e JOIN engagement_status es ON es.id = e.status_id`
	if filter.SearchOptions.HasMetadataFilter() {
		from += ` LEFT JOIN engagement_metadata em ON em.engagement_id = e.id`
	}
	b.WriteString(from)
	b.WriteString(` WHERE 1=1`)

	if len(filter.Statuses) > 0 {
		in, inArgs, err := sqlx.In(` AND e.status_id IN (?)`, filter.Statuses)
		if err != nil {
			return "", "", nil, err
		}
		b.WriteString(in)
		args = append(args, inArgs...)
	}

	if opts := filter.SearchOptions; opts != nil {
		if opts.SearchText != "" {
			b.WriteString(` AND e.name ILIKE ?`)
			args = append(args, "%"+opts.SearchText+"%")
		}
		if opts.CreatedFromDate != nil {
			b.WriteString(` AND e.created_date >= ?`)
			args = append(args, *opts.CreatedFromDate)
		}
		if opts.CreatedToDate != nil {
			b.WriteString(` AND e.created_date <= ?`)
			args = append(args, *opts.CreatedToDate)
		}
		if opts.PublishedFromDate != nil {
			b.WriteString(` AND e.published_date >= ?`)
			args = append(args, *opts.PublishedFromDate)
		}
		if opts.PublishedToDate != nil {
			b.WriteString(` AND e.published_date <= ?`)
			args = append(args, *opts.PublishedToDate)
		}

		if len(opts.EngagementStatus) > 0 {
			// The status list mixes stored codes with the synthetic
			// display codes Upcoming and Open; all conditions are ORed.
			conds := []string{`e.status_id IN (?)`}
			condArgs := []interface{}{opts.EngagementStatus}
			for _, s := range opts.EngagementStatus {
				switch types.EngagementDisplayStatus(s) {
				case types.DisplayStatusUpcoming:
					conds = append(conds, `(e.status_id = ? AND e.start_date > ?)`)
					condArgs = append(condArgs, int(types.EngagementStatusPublished), now)
				case types.DisplayStatusOpen:
					conds = append(conds, `(e.status_id = ? AND e.start_date <= ?)`)
					condArgs = append(condArgs, int(types.EngagementStatusPublished), now)
				}
			}
			clause := ` AND (` + strings.Join(conds, ` OR `) + `)`
			in, inArgs, err := sqlx.In(clause, condArgs...)
			if err != nil {
				return "", "", nil, err
			}
			b.WriteString(in)
			args = append(args, inArgs...)
		}

		if opts.ProjectType != "" {
			b.WriteString(` AND em.project_metadata->>'type' = ?`)
			args = append(args, opts.ProjectType)
		}
		if opts.ProjectName != "" {
			b.WriteString(` AND em.project_metadata->>'project_name' = ?`)
			args = append(args, opts.ProjectName)
		}
		if opts.ProjectID != "" {
			b.WriteString(` AND em.project_id = ?`)
			args = append(args, opts.ProjectID)
		}
		if opts.ApplicationNumber != "" {
			b.WriteString(` AND em.project_metadata->>'application_number' = ?`)
			args = append(args, opts.ApplicationNumber)
		}
		if opts.ClientName != "" {
			b.WriteString(` AND em.project_metadata->>'client_name' = ?`)
			args = append(args, opts.ClientName)
		}
	}

	if filter.AssignedEngagements != nil {
		// Non-draft engagements are visible to everyone; drafts only when
		// whitelisted for the caller.
		if len(filter.AssignedEngagements) == 0 {
			b.WriteString(` AND e.status_id <> ?`)
			args = append(args, int(types.EngagementStatusDraft))
		} else {
			in, inArgs, err := sqlx.In(` AND (e.status_id <> ? OR e.id IN (?))`,
				int(types.EngagementStatusDraft), filter.AssignedEngagements)
			if err != nil {
				return "", "", nil, err
			}
			b.WriteString(in)
			args = append(args, inArgs...)
		}
	}

	selectQuery := `SELECT e.*` + b.String()
	countQuery := `SELECT COUNT(*)` + b.String()
	return selectQuery, countQuery, args, nil
}

func (r *engagementRepository) List(ctx context.Context, filter *types.EngagementFilter) ([]*engagement.Engagement, error) {
	selectQuery, _, args, err := buildListQuery(filter, time.Now().UTC())
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to build engagement query").
			Mark(ierr.ErrSystem)
	}

	// Sort keys are allow-listed in the filter before reaching this layer.
	p := filter.Pagination
	order := ` ORDER BY e.` + p.GetSortKey()
	if p.GetSortOrder() == types.OrderDesc {
		order += ` DESC`
	} else {
		order += ` ASC`
	}
	selectQuery += order

	if !p.IsUnpaginated() {
		selectQuery += ` LIMIT ? OFFSET ?`
		args = append(args, p.GetSize(), p.GetOffset())
	}

	q := r.db.GetQuerier(ctx)
	var items []*engagement.Engagement
	if err := q.SelectContext(ctx, &items, q.Rebind(selectQuery), args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list engagements").
			Mark(ierr.ErrDatabase)
	}
	return items, nil
}

func (r *engagementRepository) Count(ctx context.Context, filter *types.EngagementFilter) (int, error) {
	_, countQuery, args, err := buildListQuery(filter, time.Now().UTC())
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to build engagement query").
			Mark(ierr.ErrSystem)
	}

	q := r.db.GetQuerier(ctx)
	var count int
	if err := q.GetContext(ctx, &count, q.Rebind(countQuery), args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count engagements").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *engagementRepository) ListByStatus(ctx context.Context, statusIDs []types.EngagementStatus) ([]*engagement.Engagement, error) {
	query, args, err := sqlx.In(`
		SELECT e.* FROM engagement e
		JOIN engagement_status es ON es.id = e.status_id
		WHERE e.status_id IN (?)
		ORDER BY e.id ASC`, statusIDs)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to build engagement query").
			Mark(ierr.ErrSystem)
	}

	q := r.db.GetQuerier(ctx)
	var items []*engagement.Engagement
	if err := q.SelectContext(ctx, &items, q.Rebind(query), args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list engagements by status").
			Mark(ierr.ErrDatabase)
	}
	return items, nil
}

func (r *engagementRepository) Update(ctx context.Context, e *engagement.Engagement) error {
	query := `
		UPDATE engagement SET
			name = :name,
			description = :description,
			rich_description = :rich_description,
			content = :content,
			rich_content = :rich_content,
			start_date = :start_date,
			end_date = :end_date,
			status_id = :status_id,
			published_date = :published_date,
			scheduled_date = :scheduled_date,
			banner_filename = :banner_filename,
			updated_date = :updated_date,
			updated_by = :updated_by
		WHERE id = :id`

	r.logger.Debugw("updating engagement", "engagement_id", e.ID)

	result, err := r.db.NamedExecContext(ctx, query, e)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update engagement").
			Mark(ierr.ErrDatabase)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	if affected == 0 {
		return ierr.NewError(fmt.Sprintf("engagement %d not found", e.ID)).
			WithHint("The engagement does not exist").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

// CloseDue runs a single conditional update so two concurrent scheduler
// invocations cannot both claim the same rows: the second one matches
// nothing.
func (r *engagementRepository) CloseDue(ctx context.Context, dateDue time.Time) ([]*engagement.Engagement, error) {
	query := `
		UPDATE engagement SET
			status_id = $1,
			updated_date = $2,
			updated_by = $3
		WHERE status_id = $4 AND end_date < $5
		RETURNING *`

	q := r.db.GetQuerier(ctx)
	var items []*engagement.Engagement
	err := q.SelectContext(ctx, &items, query,
		int(types.EngagementStatusClosed),
		time.Now().UTC(),
		types.SystemUser,
		int(types.EngagementStatusPublished),
		dateDue,
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to close due engagements").
			Mark(ierr.ErrDatabase)
	}
	return items, nil
}

func (r *engagementRepository) PublishScheduledDue(ctx context.Context, now time.Time) ([]*engagement.Engagement, error) {
	query := `
		UPDATE engagement SET
			status_id = $1,
			published_date = $2,
			updated_date = $2,
			updated_by = $3
		WHERE status_id = $4 AND scheduled_date <= $5
		RETURNING *`

	q := r.db.GetQuerier(ctx)
	var items []*engagement.Engagement
	err := q.SelectContext(ctx, &items, query,
		int(types.EngagementStatusPublished),
		now.UTC(),
		types.SystemUser,
		int(types.EngagementStatusScheduled),
		now,
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to publish scheduled engagements").
			Mark(ierr.ErrDatabase)
	}
	return items, nil
}
