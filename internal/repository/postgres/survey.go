package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/engagehq/engage-api/internal/domain/survey"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/logger"
	"github.com/engagehq/engage-api/internal/postgres"
	"github.com/engagehq/engage-api/internal/types"
)

type surveyRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewSurveyRepository(db *postgres.DB, logger *logger.Logger) survey.Repository {
	return &surveyRepository{db: db, logger: logger}
}

func (r *surveyRepository) Create(ctx context.Context, s *survey.Survey) error {
	query := `
		INSERT INTO survey (
			name, form_json, engagement_id, is_hidden, is_template, tenant_id,
			created_date, updated_date, created_by, updated_by
		) VALUES (
			:name, :form_json, :engagement_id, :is_hidden, :is_template, :tenant_id,
			:created_date, :updated_date, :created_by, :updated_by
		) RETURNING id`

	rows, err := r.db.NamedQueryContext(ctx, query, s)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create survey").
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

func (r *surveyRepository) Get(ctx context.Context, id int64) (*survey.Survey, error) {
	var s survey.Survey
	q := r.db.GetQuerier(ctx)
	err := q.GetContext(ctx, &s, `SELECT * FROM survey WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError(fmt.Sprintf("survey %d not found", id)).
				WithHint("The survey does not exist").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return &s, nil
}

func buildSurveyQuery(tenantID int64, filter *types.SurveyFilter) (string, []interface{}) {
	var b strings.Builder
	var args []interface{}

	b.WriteString(` FROM survey s WHERE s.tenant_id = ?`)
	args = append(args, tenantID)

	if filter.SearchText != "" {
		b.WriteString(` AND s.name ILIKE ?`)
		args = append(args, "%"+filter.SearchText+"%")
	}
	if filter.UnlinkedOnly {
		b.WriteString(` AND s.engagement_id IS NULL`)
	}
	if filter.ExcludeHidden {
		b.WriteString(` AND s.is_hidden = FALSE`)
	}
	if filter.ExcludeTemplate {
		b.WriteString(` AND s.is_template = FALSE`)
	}

	return b.String(), args
}

func (r *surveyRepository) List(ctx context.Context, filter *types.SurveyFilter) ([]*survey.Survey, error) {
	where, args := buildSurveyQuery(types.GetTenantID(ctx), filter)

	p := filter.Pagination
	query := `SELECT s.*` + where + ` ORDER BY s.` + p.GetSortKey()
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
	var items []*survey.Survey
	if err := q.SelectContext(ctx, &items, q.Rebind(query), args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list surveys").
			Mark(ierr.ErrDatabase)
	}
	return items, nil
}

func (r *surveyRepository) Count(ctx context.Context, filter *types.SurveyFilter) (int, error) {
	where, args := buildSurveyQuery(types.GetTenantID(ctx), filter)

	q := r.db.GetQuerier(ctx)
	var count int
	if err := q.GetContext(ctx, &count, q.Rebind(`SELECT COUNT(*)`+where), args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count surveys").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *surveyRepository) ListByEngagement(ctx context.Context, engagementID int64) ([]*survey.Survey, error) {
	q := r.db.GetQuerier(ctx)
	var items []*survey.Survey
	err := q.SelectContext(ctx, &items,
		`SELECT * FROM survey WHERE engagement_id = $1 ORDER BY id ASC`, engagementID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list surveys for engagement").
			Mark(ierr.ErrDatabase)
	}
	return items, nil
}

func (r *surveyRepository) Update(ctx context.Context, s *survey.Survey) error {
	query := `
		UPDATE survey SET
			name = :name,
			form_json = :form_json,
			engagement_id = :engagement_id,
			is_hidden = :is_hidden,
			is_template = :is_template,
			updated_date = :updated_date,
			updated_by = :updated_by
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, s)
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ierr.NewError(fmt.Sprintf("survey %d not found", s.ID)).
			WithHint("The survey does not exist").
			Mark(ierr.ErrNotFound)
	}
	return nil
}
