package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/engagehq/engage-api/internal/domain/widget"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/logger"
	"github.com/engagehq/engage-api/internal/postgres"
	"github.com/engagehq/engage-api/internal/types"
)

type widgetRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewWidgetRepository(db *postgres.DB, logger *logger.Logger) widget.Repository {
	return &widgetRepository{db: db, logger: logger}
}

func (r *widgetRepository) Create(ctx context.Context, w *widget.Widget) error {
	query := `
		INSERT INTO widget (
			engagement_id, widget_type_id, title, sort_index,
			created_date, updated_date, created_by, updated_by
		) VALUES (
			:engagement_id, :widget_type_id, :title, :sort_index,
			:created_date, :updated_date, :created_by, :updated_by
		) RETURNING id`

	rows, err := r.db.NamedQueryContext(ctx, query, w)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create widget").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&w.ID); err != nil {
			return ierr.WithError(err).Mark(ierr.ErrDatabase)
		}
	}
	return nil
}

func (r *widgetRepository) Get(ctx context.Context, id int64) (*widget.Widget, error) {
	var w widget.Widget
	q := r.db.GetQuerier(ctx)
	err := q.GetContext(ctx, &w, `SELECT * FROM widget WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError(fmt.Sprintf("widget %d not found", id)).
				WithHint("The widget does not exist").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return &w, nil
}

func (r *widgetRepository) ListByEngagement(ctx context.Context, engagementID int64) ([]*widget.Widget, error) {
	q := r.db.GetQuerier(ctx)
	var items []*widget.Widget
	err := q.SelectContext(ctx, &items,
		`SELECT * FROM widget WHERE engagement_id = $1 ORDER BY sort_index ASC`, engagementID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list widgets").
			Mark(ierr.ErrDatabase)
	}
	return items, nil
}

func (r *widgetRepository) Update(ctx context.Context, w *widget.Widget) error {
	query := `
		UPDATE widget SET
			title = :title,
			sort_index = :sort_index,
			updated_date = :updated_date,
			updated_by = :updated_by
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, w)
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ierr.NewError(fmt.Sprintf("widget %d not found", w.ID)).
			WithHint("The widget does not exist").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *widgetRepository) Delete(ctx context.Context, id int64) error {
	q := r.db.GetQuerier(ctx)
	result, err := q.ExecContext(ctx, `DELETE FROM widget WHERE id = $1`, id)
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ierr.NewError(fmt.Sprintf("widget %d not found", id)).
			WithHint("The widget does not exist").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *widgetRepository) UpdateSortIndexes(ctx context.Context, engagementID int64, order []int64) error {
	return r.db.WithTx(ctx, func(ctx context.Context) error {
		q := r.db.GetQuerier(ctx)
		now := time.Now().UTC()
		for i, id := range order {
			result, err := q.ExecContext(ctx,
				`UPDATE widget SET sort_index = $1, updated_date = $2, updated_by = $3
				 WHERE id = $4 AND engagement_id = $5`,
				i, now, types.GetUserID(ctx), id, engagementID)
			if err != nil {
				return ierr.WithError(err).
					WithHint("Failed to reorder widgets").
					Mark(ierr.ErrDatabase)
			}
			if affected, _ := result.RowsAffected(); affected == 0 {
				return ierr.NewError(fmt.Sprintf("widget %d not found on engagement %d", id, engagementID)).
					WithHint("One of the widgets in the new order does not exist").
					Mark(ierr.ErrNotFound)
			}
		}
		return nil
	})
}
