package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*/*.sql
var migrationFS embed.FS

const migrationTable = "schema_migrations"

// Migrate applies every embedded migration for the connection's dialect
// that has not been recorded in schema_migrations yet.
func (db *DB) Migrate(ctx context.Context) error {
	dir := path.Join("migrations", db.DriverName())
	files, err := fs.Glob(migrationFS, dir+"/*.sql")
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no migrations for driver %q", db.DriverName())
	}
	sort.Strings(files)

	if _, err := db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			name TEXT PRIMARY KEY,
			applied_at BIGINT NOT NULL
		)
	`, migrationTable)); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, file := range files {
		name := path.Base(file)

		var applied int
		if err := db.GetContext(ctx, &applied, db.Rebind(
			fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE name = ?`, migrationTable),
		), name); err != nil {
			return fmt.Errorf("check migration %s: %w", name, err)
		}
		if applied > 0 {
			continue
		}

		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if strings.TrimSpace(string(content)) == "" {
			continue
		}

		err = db.WithTx(ctx, func(tx *sqlx.Tx) error {
			if _, err := tx.ExecContext(ctx, string(content)); err != nil {
				return fmt.Errorf("exec migration %s: %w", name, err)
			}
			_, err := tx.ExecContext(ctx, tx.Rebind(
				fmt.Sprintf(`INSERT INTO %s (name, applied_at) VALUES (?, ?)`, migrationTable),
			), name, time.Now().UTC().UnixMilli())
			if err != nil {
				return fmt.Errorf("record migration %s: %w", name, err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		log.Info().Str("migration", name).Str("driver", db.DriverName()).Msg("migration applied")
	}

	return nil
}
