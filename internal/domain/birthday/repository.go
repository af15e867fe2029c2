package birthday

import "context"

// Repository defines the operations for persisting and retrieving birthday registrations.
type Repository interface {
	// Register inserts r with LastNotifiedYear set to the current year minus one.
	// It fails with domain.ErrUnknownCommunity when the chat is not bound and with
	// domain.ErrAlreadyRegistered when the user already has a registration.
	Register(ctx context.Context, r *Registration) error
	GetByUserID(ctx context.Context, userID int64) (*Registration, error)
	// FindDueCandidates lists registrations whose watermark is below beforeYear.
	// Exact day matching is left to the caller.
	FindDueCandidates(ctx context.Context, beforeYear int) ([]*Registration, error)
	// MarkNotified advances the watermark to year when it is lower, and is a no-op otherwise.
	// Returns domain.ErrNotFound for an unknown user.
	MarkNotified(ctx context.Context, userID int64, year int) error
	// ListByCommunity returns a chat's registrations in registration order.
	ListByCommunity(ctx context.Context, communityID int64) ([]*Registration, error)
}
