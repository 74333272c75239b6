package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/engagehq/engage-api/internal/domain/membership"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/logger"
	"github.com/engagehq/engage-api/internal/postgres"
	"github.com/engagehq/engage-api/internal/types"
)

type membershipRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewMembershipRepository(db *postgres.DB, logger *logger.Logger) membership.Repository {
	return &membershipRepository{db: db, logger: logger}
}

func (r *membershipRepository) Create(ctx context.Context, m *membership.Membership) error {
	query := `
		INSERT INTO membership (
			engagement_id, user_id, type, status, is_latest, version,
			created_date, updated_date, created_by, updated_by
		) VALUES (
			:engagement_id, :user_id, :type, :status, :is_latest, :version,
			:created_date, :updated_date, :created_by, :updated_by
		) RETURNING id`

	rows, err := r.db.NamedQueryContext(ctx, query, m)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create membership").
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

func (r *membershipRepository) Get(ctx context.Context, id int64) (*membership.Membership, error) {
	var m membership.Membership
	q := r.db.GetQuerier(ctx)
	err := q.GetContext(ctx, &m, `SELECT * FROM membership WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError(fmt.Sprintf("membership %d not found", id)).
				WithHint("The membership does not exist").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return &m, nil
}

func (r *membershipRepository) ListByEngagement(ctx context.Context, engagementID int64) ([]*membership.Membership, error) {
	q := r.db.GetQuerier(ctx)
	var items []*membership.Membership
	err := q.SelectContext(ctx, &items,
		`SELECT * FROM membership WHERE engagement_id = $1 AND is_latest = TRUE ORDER BY id ASC`,
		engagementID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list memberships").
			Mark(ierr.ErrDatabase)
	}
	return items, nil
}

func (r *membershipRepository) GetLatest(ctx context.Context, engagementID, userID int64) (*membership.Membership, error) {
	var m membership.Membership
	q := r.db.GetQuerier(ctx)
	err := q.GetContext(ctx, &m,
		`SELECT * FROM membership WHERE engagement_id = $1 AND user_id = $2 AND is_latest = TRUE`,
		engagementID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError(fmt.Sprintf("no membership for user %d on engagement %d", userID, engagementID)).
				WithHint("The user is not a member of the engagement").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return &m, nil
}

func (r *membershipRepository) ListAssignedEngagementIDs(ctx context.Context, userID int64) ([]int64, error) {
	q := r.db.GetQuerier(ctx)
	var ids []int64
	err := q.SelectContext(ctx, &ids,
		`SELECT engagement_id FROM membership
		 WHERE user_id = $1 AND is_latest = TRUE AND status = $2
		 ORDER BY engagement_id ASC`,
		userID, int(types.MembershipStatusActive))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list assigned engagements").
			Mark(ierr.ErrDatabase)
	}
	return ids, nil
}

func (r *membershipRepository) Update(ctx context.Context, m *membership.Membership) error {
	query := `
		UPDATE membership SET
			type = :type,
			status = :status,
			is_latest = :is_latest,
			version = :version,
			updated_date = :updated_date,
			updated_by = :updated_by
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, m)
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ierr.NewError(fmt.Sprintf("membership %d not found", m.ID)).
			WithHint("The membership does not exist").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

// WithTx runs fn inside a database transaction so versioned membership
// writes stay consistent.
func (r *membershipRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.WithTx(ctx, fn)
}
