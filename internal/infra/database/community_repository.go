package database

import (
	"context"
	"database/sql"
	"errors"

	"birthday_notification_bot/internal/domain"
	"birthday_notification_bot/internal/domain/community"
	"birthday_notification_bot/internal/infra/clock"
)

type SQLCommunityRepository struct {
	db    *DB
	clock clock.Clock
}

func NewSQLCommunityRepository(db *DB, clk clock.Clock) *SQLCommunityRepository {
	return &SQLCommunityRepository{db: db, clock: clk}
}

func (r *SQLCommunityRepository) Create(ctx context.Context, b *community.Binding) error {
	query := `INSERT INTO community_bindings (community_id, destination_id, created_at)
               VALUES (?, ?, ?)`

	if b.CreatedAt.IsZero() {
		b.CreatedAt = r.clock.Now().UTC()
	}

	_, err := r.db.conn.ExecContext(ctx, r.db.rebind(query), b.CommunityID, b.DestinationID, toMillis(b.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRegistered
		}
		return storageError("error creating community binding", err)
	}
	return nil
}

func (r *SQLCommunityRepository) GetByCommunityID(ctx context.Context, communityID int64) (*community.Binding, error) {
	query := `SELECT community_id, destination_id, created_at
               FROM community_bindings WHERE community_id = ?`
	b := &community.Binding{}
	var createdAt int64
	err := r.db.conn.QueryRowContext(ctx, r.db.rebind(query), communityID).Scan(&b.CommunityID, &b.DestinationID, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUnknownCommunity
		}
		return nil, storageError("error getting community binding", err)
	}
	b.CreatedAt = fromMillis(createdAt)
	return b, nil
}

var _ community.Repository = (*SQLCommunityRepository)(nil)
