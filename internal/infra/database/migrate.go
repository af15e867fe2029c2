package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"birthday_notification_bot/internal/infra/database/migrations"
)

const migrationTable = "schema_migrations"

// migrate applies each embedded migration for the driver at most once.
func (db *DB) migrate(ctx context.Context) error {
	entries, err := fs.ReadDir(migrations.FS, db.driver)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	createSQL := `CREATE TABLE IF NOT EXISTS ` + migrationTable + ` (
    name       TEXT PRIMARY KEY,
    applied_at BIGINT NOT NULL
)`
	if _, err := db.conn.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, file := range files {
		applied, err := db.isApplied(ctx, file)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", file, err)
		}
		if applied {
			continue
		}

		content, err := fs.ReadFile(migrations.FS, path.Join(db.driver, file))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}

		err = db.withTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, string(content)); err != nil {
				return fmt.Errorf("exec migration %s: %w", file, err)
			}
			_, err := tx.ExecContext(ctx,
				db.rebind(`INSERT INTO `+migrationTable+` (name, applied_at) VALUES (?, ?)`),
				file, time.Now().UTC().UnixMilli(),
			)
			if err != nil {
				return fmt.Errorf("record migration %s: %w", file, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) isApplied(ctx context.Context, name string) (bool, error) {
	var found int
	err := db.conn.QueryRowContext(ctx,
		db.rebind(`SELECT 1 FROM `+migrationTable+` WHERE name = ?`), name,
	).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
