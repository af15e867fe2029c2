package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"birthday_notification_bot/internal/domain"
	"birthday_notification_bot/internal/domain/birthday"
	"birthday_notification_bot/internal/infra/clock"
)

const registrationColumns = `id, user_id, community_id, year, month, day, last_notified_year, created_at`

type SQLBirthdayRepository struct {
	db    *DB
	clock clock.Clock
}

func NewSQLBirthdayRepository(db *DB, clk clock.Clock) *SQLBirthdayRepository {
	return &SQLBirthdayRepository{db: db, clock: clk}
}

// Register checks the chat binding and inserts the registration in one transaction.
func (r *SQLBirthdayRepository) Register(ctx context.Context, reg *birthday.Registration) error {
	now := r.clock.Now()
	lastNotifiedYear := now.Year() - 1
	createdAt := now.UTC()

	var id int64
	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		var bound int
		err := tx.QueryRowContext(ctx,
			r.db.rebind(`SELECT 1 FROM community_bindings WHERE community_id = ?`), reg.CommunityID,
		).Scan(&bound)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrUnknownCommunity
			}
			return storageError("error checking community binding", err)
		}

		query := `INSERT INTO birthdays (user_id, community_id, year, month, day, last_notified_year, created_at)
                   VALUES (?, ?, ?, ?, ?, ?, ?)
                   RETURNING id`
		err = tx.QueryRowContext(ctx, r.db.rebind(query),
			reg.UserID, reg.CommunityID, reg.Year, int(reg.Month), reg.Day, lastNotifiedYear, toMillis(createdAt),
		).Scan(&id)
		if err != nil {
			switch {
			case isUniqueViolation(err):
				return domain.ErrAlreadyRegistered
			case isForeignKeyViolation(err):
				return domain.ErrUnknownCommunity
			}
			return storageError("error creating birthday", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	reg.ID = id
	reg.LastNotifiedYear = lastNotifiedYear
	reg.CreatedAt = createdAt
	return nil
}

func (r *SQLBirthdayRepository) GetByUserID(ctx context.Context, userID int64) (*birthday.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM birthdays WHERE user_id = ?`
	reg, err := scanRegistration(r.db.conn.QueryRowContext(ctx, r.db.rebind(query), userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storageError("error getting birthday by user ID", err)
	}
	return reg, nil
}

func (r *SQLBirthdayRepository) FindDueCandidates(ctx context.Context, beforeYear int) ([]*birthday.Registration, error) {
	query := `SELECT ` + registrationColumns + `
               FROM birthdays
               WHERE last_notified_year < ?
               ORDER BY id`
	rows, err := r.db.conn.QueryContext(ctx, r.db.rebind(query), beforeYear)
	if err != nil {
		return nil, storageError("error querying due candidates", err)
	}
	defer rows.Close()
	return scanRegistrations(rows)
}

// MarkNotified only ever moves the watermark forward, so overlapping ticks
// cannot record the same year twice or move it back.
func (r *SQLBirthdayRepository) MarkNotified(ctx context.Context, userID int64, year int) error {
	return r.db.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			r.db.rebind(`UPDATE birthdays SET last_notified_year = ? WHERE user_id = ? AND last_notified_year < ?`),
			year, userID, year,
		)
		if err != nil {
			return storageError("error updating last notified year", err)
		}
		updated, err := res.RowsAffected()
		if err != nil {
			return storageError("error reading affected rows", err)
		}
		if updated > 0 {
			return nil
		}

		// Nothing updated: either the watermark is already at year or the user is unknown.
		var found int
		err = tx.QueryRowContext(ctx, r.db.rebind(`SELECT 1 FROM birthdays WHERE user_id = ?`), userID).Scan(&found)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		if err != nil {
			return storageError("error checking birthday existence", err)
		}
		return nil
	})
}

func (r *SQLBirthdayRepository) ListByCommunity(ctx context.Context, communityID int64) ([]*birthday.Registration, error) {
	query := `SELECT ` + registrationColumns + `
               FROM birthdays
               WHERE community_id = ?
               ORDER BY id`
	rows, err := r.db.conn.QueryContext(ctx, r.db.rebind(query), communityID)
	if err != nil {
		return nil, storageError("error listing birthdays by community", err)
	}
	defer rows.Close()
	return scanRegistrations(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegistration(row rowScanner) (*birthday.Registration, error) {
	reg := &birthday.Registration{}
	var month int
	var createdAt int64
	if err := row.Scan(
		&reg.ID, &reg.UserID, &reg.CommunityID, &reg.Year, &month, &reg.Day,
		&reg.LastNotifiedYear, &createdAt,
	); err != nil {
		return nil, err
	}
	reg.Month = time.Month(month)
	reg.CreatedAt = fromMillis(createdAt)
	return reg, nil
}

// Helper to scan multiple rows
func scanRegistrations(rows *sql.Rows) ([]*birthday.Registration, error) {
	regs := make([]*birthday.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, storageError("error scanning birthday row", err)
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("error iterating birthday rows", err)
	}
	return regs, nil
}

var _ birthday.Repository = (*SQLBirthdayRepository)(nil)
