package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/engagehq/engage-api/internal/domain/submission"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/logger"
	"github.com/engagehq/engage-api/internal/postgres"
	"github.com/engagehq/engage-api/internal/types"
)

type submissionRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewSubmissionRepository(db *postgres.DB, logger *logger.Logger) submission.Repository {
	return &submissionRepository{db: db, logger: logger}
}

func (r *submissionRepository) Create(ctx context.Context, s *submission.Submission) error {
	query := `
		INSERT INTO submission (
			survey_id, engagement_id, participant_id, submission_json,
			comment_status_id, reviewed_by, review_date,
			created_date, updated_date, created_by, updated_by
		) VALUES (
			:survey_id, :engagement_id, :participant_id, :submission_json,
			:comment_status_id, :reviewed_by, :review_date,
			:created_date, :updated_date, :created_by, :updated_by
		) RETURNING id`

	rows, err := r.db.NamedQueryContext(ctx, query, s)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create submission").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&s.ID); err != nil {
			return ierr.WithError(err).Mark(ierr.ErrDatabase)
		}
	}
	return nil
}

func (r *submissionRepository) Get(ctx context.Context, id int64) (*submission.Submission, error) {
	var s submission.Submission
	q := r.db.GetQuerier(ctx)
	err := q.GetContext(ctx, &s, `SELECT * FROM submission WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError(fmt.Sprintf("submission %d not found", id)).
				WithHint("The submission does not exist").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return &s, nil
}

func (r *submissionRepository) ListBySurvey(ctx context.Context, surveyID int64, p *types.PaginationOptions) ([]*submission.Submission, error) {
	query := `SELECT * FROM submission WHERE survey_id = ? ORDER BY ` + p.GetSortKey()
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
	var items []*submission.Submission
	if err := q.SelectContext(ctx, &items, q.Rebind(query), args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list submissions").
			Mark(ierr.ErrDatabase)
	}
	return items, nil
}

func (r *submissionRepository) CountBySurvey(ctx context.Context, surveyID int64) (int, error) {
	q := r.db.GetQuerier(ctx)
	var count int
	if err := q.GetContext(ctx, &count, `SELECT COUNT(*) FROM submission WHERE survey_id = $1`, surveyID); err != nil {
		return 0, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *submissionRepository) Update(ctx context.Context, s *submission.Submission) error {
	query := `
		UPDATE submission SET
			submission_json = :submission_json,
			comment_status_id = :comment_status_id,
			reviewed_by = :reviewed_by,
			review_date = :review_date,
			updated_date = :updated_date,
			updated_by = :updated_by
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, s)
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ierr.NewError(fmt.Sprintf("submission %d not found", s.ID)).
			WithHint("The submission does not exist").
			Mark(ierr.ErrNotFound)
	}
	return nil
}
