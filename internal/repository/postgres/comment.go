package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/engagehq/engage-api/internal/domain/comment"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/logger"
	"github.com/engagehq/engage-api/internal/postgres"
	"github.com/engagehq/engage-api/internal/types"
)

type commentRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewCommentRepository(db *postgres.DB, logger *logger.Logger) comment.Repository {
	return &commentRepository{db: db, logger: logger}
}

func (r *commentRepository) Create(ctx context.Context, c *comment.Comment) error {
	query := `
		INSERT INTO comment (
			survey_id, submission_id, participant_id, text, submission_date,
			created_date, updated_date, created_by, updated_by
		) VALUES (
			:survey_id, :submission_id, :participant_id, :text, :submission_date,
			:created_date, :updated_date, :created_by, :updated_by
		) RETURNING id`

	rows, err := r.db.NamedQueryContext(ctx, query, c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create comment").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&c.ID); err != nil {
			return ierr.WithError(err).Mark(ierr.ErrDatabase)
		}
	}
	return nil
}

func (r *commentRepository) Get(ctx context.Context, id int64) (*comment.Comment, error) {
	var c comment.Comment
	q := r.db.GetQuerier(ctx)
	err := q.GetContext(ctx, &c, `SELECT * FROM comment WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError(fmt.Sprintf("comment %d not found", id)).
				WithHint("The comment does not exist").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *commentRepository) ListBySurvey(ctx context.Context, surveyID int64, p *types.PaginationOptions) ([]*comment.Comment, error) {
	query := `SELECT * FROM comment WHERE survey_id = ? ORDER BY ` + p.GetSortKey()
	if p.GetSortOrder() == types.OrderDesc {
		query += ` DESC`
	} else {
		query += ` ASC`
	}
	args := []interface{}{surveyID}
	if !p.IsUnpaginated() {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, p.GetSize(), p.GetOffset())
	}

	q := r.db.GetQuerier(ctx)
	var items []*comment.Comment
	if err := q.SelectContext(ctx, &items, q.Rebind(query), args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list comments").
			Mark(ierr.ErrDatabase)
	}
	return items, nil
}

func (r *commentRepository) CountBySurvey(ctx context.Context, surveyID int64) (int, error) {
	q := r.db.GetQuerier(ctx)
	var count int
	if err := q.GetContext(ctx, &count, `SELECT COUNT(*) FROM comment WHERE survey_id = $1`, surveyID); err != nil {
		return 0, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *commentRepository) ListBySubmission(ctx context.Context, submissionID int64) ([]*comment.Comment, error) {
	q := r.db.GetQuerier(ctx)
	var items []*comment.Comment
	err := q.SelectContext(ctx, &items,
		`SELECT * FROM comment WHERE submission_id = $1 ORDER BY id ASC`, submissionID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list submission comments").
			Mark(ierr.ErrDatabase)
	}
	return items, nil
}
