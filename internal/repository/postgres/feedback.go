package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/engagehq/engage-api/internal/domain/feedback"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/logger"
	"github.com/engagehq/engage-api/internal/postgres"
	"github.com/engagehq/engage-api/internal/types"
)

type feedbackRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewFeedbackRepository(db *postgres.DB, logger *logger.Logger) feedback.Repository {
	return &feedbackRepository{db: db, logger: logger}
}

func (r *feedbackRepository) Create(ctx context.Context, f *feedback.Feedback) error {
	query := `
		INSERT INTO feedback (
			rating, comment_type, comment, source, status, submission_path, tenant_id,
			created_date, updated_date, created_by, updated_by
		) VALUES (
			:rating, :comment_type, :comment, :source, :status, :submission_path, :tenant_id,
			:created_date, :updated_date, :created_by, :updated_by
		) RETURNING id`

	rows, err := r.db.NamedQueryContext(ctx, query, f)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create feedback").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&f.ID); err != nil {
			return ierr.WithError(err).Mark(ierr.ErrDatabase)
		}
	}
	return nil
}

func (r *feedbackRepository) Get(ctx context.Context, id int64) (*feedback.Feedback, error) {
	var f feedback.Feedback
	q := r.db.GetQuerier(ctx)
	err := q.GetContext(ctx, &f, `SELECT * FROM feedback WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError(fmt.Sprintf("feedback %d not found", id)).
				WithHint("The feedback does not exist").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return &f, nil
}

func buildFeedbackQuery(tenantID int64, filter *types.FeedbackFilter) (string, []interface{}) {
	var b strings.Builder
	var args []interface{}

	b.WriteString(` FROM feedback f WHERE f.tenant_id = ?`)
	args = append(args, tenantID)

	if filter.Status != nil {
		b.WriteString(` AND f.status = ?`)
		args = append(args, int(*filter.Status))
	}
	if filter.SearchText != "" {
		b.WriteString(` AND f.comment ILIKE ?`)
		args = append(args, "%"+filter.SearchText+"%")
	}

	return b.String(), args
}

func (r *feedbackRepository) List(ctx context.Context, filter *types.FeedbackFilter) ([]*feedback.Feedback, error) {
	where, args := buildFeedbackQuery(types.GetTenantID(ctx), filter)

	p := filter.Pagination
	query := `SELECT f.*` + where + ` ORDER BY f.` + p.GetSortKey()
	if p.GetSortOrder() == types.OrderDesc {
		query += ` DESC`
	} else {
		query += ` ASC`
	}
	if !p.IsUnpaginated() {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, p.GetSize(), p.GetOffset())
	}

	q := r.db.GetQuerier(ctx)
	var items []*feedback.Feedback
	if err := q.SelectContext(ctx, &items, q.Rebind(query), args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list feedback").
			Mark(ierr.ErrDatabase)
	}
	return items, nil
}

func (r *feedbackRepository) Count(ctx context.Context, filter *types.FeedbackFilter) (int, error) {
	where, args := buildFeedbackQuery(types.GetTenantID(ctx), filter)

	q := r.db.GetQuerier(ctx)
	var count int
	if err := q.GetContext(ctx, &count, q.Rebind(`SELECT COUNT(*)`+where), args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count feedback").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *feedbackRepository) Update(ctx context.Context, f *feedback.Feedback) error {
	query := `
		UPDATE feedback SET
			rating = :rating,
			comment = :comment,
			status = :status,
			updated_date = :updated_date,
			updated_by = :updated_by
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, f)
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ierr.NewError(fmt.Sprintf("feedback %d not found", f.ID)).
			WithHint("The feedback does not exist").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *feedbackRepository) Delete(ctx context.Context, id int64) error {
	q := r.db.GetQuerier(ctx)
	result, err := q.ExecContext(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ierr.NewError(fmt.Sprintf("feedback %d not found", id)).
			WithHint("The feedback does not exist").
			Mark(ierr.ErrNotFound)
	}
	return nil
}
