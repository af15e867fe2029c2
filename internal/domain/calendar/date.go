// Package calendar contains the pure date logic used by the scheduler and the listing query.
package calendar

import (
	"fmt"
	"time"
)

const (
	MinDay = 1
	MaxDay = 31

	MinYear = 1
	MaxYear = 9999
)

// ValidYear reports whether year is within MinYear and MaxYear.
func ValidYear(year int) bool {
	return year >= MinYear && year <= MaxYear
}

// AnnualDate is a month/day pair that recurs every year.
type AnnualDate struct {
	Month time.Month
	Day   int
}

// Valid reports whether the month is 1-12 and the day is 1-31.
// The day is not checked against the length of the month.
func (d AnnualDate) Valid() bool {
	return d.Month >= time.January && d.Month <= time.December &&
		d.Day >= MinDay && d.Day <= MaxDay
}

// IsDueOn reports whether the date falls on today's month and day.
// February 29 only matches in leap years.
func (d AnnualDate) IsDueOn(today time.Time) bool {
	return d.Month == today.Month() && d.Day == today.Day()
}

func (d AnnualDate) String() string {
	return fmt.Sprintf("%02d/%02d", int(d.Month), d.Day)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
