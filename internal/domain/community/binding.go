package community

import "time"

// Binding ties a chat to the single chat that receives its birthday notifications.
// Corresponds to the 'community_bindings' table.
type Binding struct {
	CommunityID   int64 // Telegram chat ID of the group
	DestinationID int64 // Telegram chat ID notifications are posted to
	CreatedAt     time.Time
}
