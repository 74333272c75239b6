package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/engagehq/engage-api/internal/domain/user"
	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/engagehq/engage-api/internal/logger"
	"github.com/engagehq/engage-api/internal/postgres"
	"github.com/engagehq/engage-api/internal/types"
)

type userRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return &userRepository{db: db, logger: logger}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO staff_user (
			external_id, first_name, last_name, email, status, tenant_id,
			created_date, updated_date, created_by, updated_by
		) VALUES (
			:external_id, :first_name, :last_name, :email, :status, :tenant_id,
			:created_date, :updated_date, :created_by, :updated_by
		) RETURNING id`

	rows, err := r.db.NamedQueryContext(ctx, query, u)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create user").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&u.ID); err != nil {
			return ierr.WithError(err).Mark(ierr.ErrDatabase)
		}
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*user.User, error) {
	var u user.User
	q := r.db.GetQuerier(ctx)
	err := q.GetContext(ctx, &u, `SELECT * FROM staff_user WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError(fmt.Sprintf("user %d not found", id)).
				WithHint("The user does not exist").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return &u, nil
}

func (r *userRepository) GetByExternalID(ctx context.Context, externalID string) (*user.User, error) {
	var u user.User
	q := r.db.GetQuerier(ctx)
	err := q.GetContext(ctx, &u, `SELECT * FROM staff_user WHERE external_id = $1`, externalID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError(fmt.Sprintf("user %s not found", externalID)).
				WithHint("The user does not exist").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return &u, nil
}

func buildUserQuery(tenantID int64, filter *types.UserFilter) (string, []interface{}) {
	var b strings.Builder
	var args []interface{}

	b.WriteString(` FROM staff_user u WHERE u.tenant_id = ?`)
	args = append(args, tenantID)

	if !filter.IncludeInactive {
		b.WriteString(` AND u.status = ?`)
		args = append(args, int(user.UserStatusActive))
	}
	if filter.SearchText != "" {
		b.WriteString(` AND (u.first_name ILIKE ? OR u.last_name ILIKE ?)`)
		pattern := "%" + filter.SearchText + "%"
		args = append(args, pattern, pattern)
	}

	return b.String(), args
}

func (r *userRepository) List(ctx context.Context, filter *types.UserFilter) ([]*user.User, error) {
	where, args := buildUserQuery(types.GetTenantID(ctx), filter)

	p := filter.Pagination
	query := `SELECT u.*` + where + ` ORDER BY u.` + p.GetSortKey()
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
	var items []*user.User
	if err := q.SelectContext(ctx, &items, q.Rebind(query), args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list users").
			Mark(ierr.ErrDatabase)
	}
	return items, nil
}

func (r *userRepository) Count(ctx context.Context, filter *types.UserFilter) (int, error) {
	where, args := buildUserQuery(types.GetTenantID(ctx), filter)

	q := r.db.GetQuerier(ctx)
	var count int
	if err := q.GetContext(ctx, &count, q.Rebind(`SELECT COUNT(*)`+where), args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count users").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	query := `
		UPDATE staff_user SET
			first_name = :first_name,
			last_name = :last_name,
			email = :email,
			status = :status,
			updated_date = :updated_date,
			updated_by = :updated_by
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, u)
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ierr.NewError(fmt.Sprintf("user %d not found", u.ID)).
			WithHint("The user does not exist").
			Mark(ierr.ErrNotFound)
	}
	return nil
}
