package notification

import "context"

// Sink delivers a birthday notification for userID to the destination chat.
// Any returned error is treated as transient: the birthday stays a candidate
// and delivery is retried on the next tick.
type Sink interface {
	Send(ctx context.Context, destinationID int64, userID int64) error
}
