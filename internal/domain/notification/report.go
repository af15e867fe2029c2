package notification

import (
	"fmt"
	"time"
)

// TickReport summarizes one reconciliation run.
type TickReport struct {
	Date       time.Time // day the tick ran for, truncated to midnight
	Candidates int       // registrations not yet notified this year
	Due        int       // candidates whose month/day matched Date
	Sent       int       // notifications delivered and recorded
	Skipped    int       // due birthdays whose chat has no binding
	Failed     int       // delivery or bookkeeping failures, retried next tick
}

func (r TickReport) String() string {
	return fmt.Sprintf("date=%s candidates=%d due=%d sent=%d skipped=%d failed=%d",
		r.Date.Format("2006-01-02"), r.Candidates, r.Due, r.Sent, r.Skipped, r.Failed)
}
