package community

import "context"

// Repository defines the operations for persisting and retrieving chat bindings.
type Repository interface {
	// Create inserts a binding. Returns domain.ErrAlreadyRegistered if the chat is already bound.
	Create(ctx context.Context, binding *Binding) error
	// GetByCommunityID returns domain.ErrUnknownCommunity when the chat has no binding.
	GetByCommunityID(ctx context.Context, communityID int64) (*Binding, error)
}
