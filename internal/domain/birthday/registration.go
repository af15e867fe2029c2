package birthday

import (
	"database/sql"
	"time"

	"birthday_notification_bot/internal/domain/calendar"
)

// Registration is one user's birthday within a chat.
// Corresponds to the 'birthdays' table.
type Registration struct {
	ID               int64 // insertion order
	UserID           int64 // Telegram user ID, unique across all chats
	CommunityID      int64 // Foreign Key to community_bindings.community_id
	Year             sql.NullInt32
	Month            time.Month
	Day              int
	LastNotifiedYear int // watermark: last calendar year a notification went out
	CreatedAt        time.Time
}

// Date returns the recurring month/day of the birthday.
func (r *Registration) Date() calendar.AnnualDate {
	return calendar.AnnualDate{Month: r.Month, Day: r.Day}
}

// NotifiedIn reports whether the notification for year has already been recorded.
func (r *Registration) NotifiedIn(year int) bool {
	return r.LastNotifiedYear >= year
}
