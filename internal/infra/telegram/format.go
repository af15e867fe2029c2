package telegram

import (
	"fmt"
	"html"
	"strings"
	"time"

	"birthday_notification_bot/internal/app"
	"birthday_notification_bot/internal/domain/birthday"
)

const listHeader = "USER - YYYY/MM/DD"

// Mention renders an HTML link to the user that Telegram turns into a mention.
func Mention(userID int64, name string) string {
	if name == "" {
		name = fmt.Sprintf("user %d", userID)
	}
	return fmt.Sprintf(`<a href="tg://user?id=%d">%s</a>`, userID, html.EscapeString(name))
}

func FormatNotification(mention string) string {
	return fmt.Sprintf("<b>It's someone's lucky day!</b>\nHappy birthday, %s!", mention)
}

// FormatBirthdayLine renders one listing row. An unknown year is shown as ????.
func FormatBirthdayLine(mention string, r *birthday.Registration) string {
	year := "????"
	if r.Year.Valid {
		year = fmt.Sprintf("%04d", r.Year.Int32)
	}
	return fmt.Sprintf("%s - %s/%02d/%02d", mention, year, int(r.Month), r.Day)
}

// FormatPage renders a listing page. mention resolves each user to its rendered mention.
func FormatPage(page *app.Page, mention func(userID int64) string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>Birthday list</b> (page %d of %d, %d total)\n\n", page.Number, page.TotalPages, page.Total)
	b.WriteString(listHeader)
	b.WriteString("\n\n")
	for i, r := range page.Items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatBirthdayLine(mention(r.UserID), r))
	}
	return b.String()
}

// FormatElapsed renders d in milliseconds with two decimals.
func FormatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.2f", float64(d.Microseconds())/1000)
}
