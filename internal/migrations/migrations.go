package migrations

import (
	"context"
	"embed"
	"sort"

	"github.com/engagehq/engage-api/internal/logger"
	"github.com/engagehq/engage-api/internal/postgres"
)

//go:embed sql/*.sql
var files embed.FS

// Run applies every embedded migration that has not been applied yet, in
// lexical filename order. Each migration runs in its own transaction
// together with the bookkeeping insert.
func Run(ctx context.Context, db *postgres.DB, log *logger.Logger) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename     TEXT PRIMARY KEY,
			applied_date TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		return err
	}

	entries, err := files.ReadDir("sql")
	if err != nil {
		return err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		var applied bool
		err := db.GetContext(ctx, &applied,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE filename = $1)`, name)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		script, err := files.ReadFile("sql/" + name)
		if err != nil {
			return err
		}

		log.Infow("applying migration", "filename", name)
		err = db.WithTx(ctx, func(txCtx context.Context) error {
			q := db.GetQuerier(txCtx)
			if _, err := q.ExecContext(txCtx, string(script)); err != nil {
				return err
			}
			_, err := q.ExecContext(txCtx,
				`INSERT INTO schema_migrations (filename) VALUES ($1)`, name)
			return err
		})
		if err != nil {
			return err
		}
	}

	return nil
}
