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

	"github.com/jackc/pgx/v5"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

const migrationTable = "schema_migrations"

// migrationFiles returns the .sql files under dir sorted by name.
func migrationFiles(dir string) ([]string, error) {
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}

// MigratePostgreSQL applies embedded migrations not yet recorded in
// schema_migrations, each one in its own transaction.
func MigratePostgreSQL(ctx context.Context, db *DB) error {
	_, err := db.Exec(ctx, "CREATE TABLE IF NOT EXISTS "+migrationTable+" (version TEXT PRIMARY KEY, applied_at TIMESTAMPTZ NOT NULL DEFAULT now())")
	if err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	files, err := migrationFiles("migrations/postgres")
	if err != nil {
		return err
	}

	for _, file := range files {
		version := strings.TrimSuffix(file, ".sql")

		var count int
		if err := db.QueryRow(ctx, "SELECT COUNT(1) FROM "+migrationTable+" WHERE version = $1", version).Scan(&count); err != nil {
			return fmt.Errorf("check migration %s: %w", version, err)
		}
		if count > 0 {
			continue
		}

		content, err := migrationsFS.ReadFile(path.Join("migrations/postgres", file))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", version, err)
		}

		tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", version, err)
		}

		if _, err := tx.Exec(ctx, string(content)); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("migration %s failed: %w", version, err)
		}

		if _, err := tx.Exec(ctx, "INSERT INTO "+migrationTable+" (version) VALUES ($1)", version); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("record migration %s: %w", version, err)
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit migration %s: %w", version, err)
		}
	}

	return nil
}

// migrateSQLite mirrors MigratePostgreSQL for the embedded store.
func migrateSQLite(ctx context.Context, db *SQLiteDB) error {
	_, err := db.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS "+migrationTable+" (version TEXT PRIMARY KEY, applied_at INTEGER NOT NULL)")
	if err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	files, err := migrationFiles("migrations/sqlite")
	if err != nil {
		return err
	}

	for _, file := range files {
		version := strings.TrimSuffix(file, ".sql")

		var count int
		if err := db.QueryRowContext(ctx, "SELECT COUNT(1) FROM "+migrationTable+" WHERE version = ?", version).Scan(&count); err != nil {
			return fmt.Errorf("check migration %s: %w", version, err)
		}
		if count > 0 {
			continue
		}

		content, err := migrationsFS.ReadFile(path.Join("migrations/sqlite", file))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", version, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", version, err)
		}

		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %s failed: %w", version, err)
		}

		if _, err := tx.ExecContext(ctx, "INSERT INTO "+migrationTable+" (version, applied_at) VALUES (?, ?)", version, time.Now().UTC().UnixMilli()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", version, err)
		}
	}

	return nil
}
