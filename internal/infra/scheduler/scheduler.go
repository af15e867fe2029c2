package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"birthday_notification_bot/internal/app" // For NotificationService interface
	"birthday_notification_bot/internal/infra/logger"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// BirthdayScheduler runs the birthday reconciliation once at start and then on a fixed interval.
// Runs never overlap: a run that is due while the previous one is still going is skipped.
type BirthdayScheduler struct {
	cronEngine   *cron.Cron
	notifService app.NotificationService // Using the interface
	logger       *logrus.Entry
	interval     time.Duration
	job          cron.Job
	startup      sync.WaitGroup
}

func NewBirthdayScheduler(notifService app.NotificationService, log *logrus.Entry, interval time.Duration) *BirthdayScheduler {
	cronLog := logger.CronLogger(log)
	s := &BirthdayScheduler{
		cronEngine:   cron.New(cron.WithLocation(time.Local), cron.WithLogger(cronLog)), // Use server's local time for cron
		notifService: notifService,
		logger:       log,
		interval:     interval,
	}
	s.job = cron.NewChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)).Then(cron.FuncJob(s.reconcile))
	return s
}

func (s *BirthdayScheduler) Start() error {
	if s.interval <= 0 {
		return fmt.Errorf("scheduler interval must be positive, got %s", s.interval)
	}
	s.logger.WithField("interval", s.interval.String()).Info("Starting birthday scheduler...")

	if _, err := s.cronEngine.AddJob(fmt.Sprintf("@every %s", s.interval), s.job); err != nil {
		return fmt.Errorf("could not add birthday reconciliation job: %w", err)
	}

	// The first run happens right away through the same chain, so it also blocks overlapping interval runs.
	s.startup.Add(1)
	go func() {
		defer s.startup.Done()
		s.job.Run()
	}()

	s.cronEngine.Start()
	s.logger.Info("Birthday scheduler started.")
	return nil
}

// reconcile runs one tick. It is detached from any caller context so a started run always completes.
func (s *BirthdayScheduler) reconcile() {
	report, err := s.notifService.ReconcileBirthdays(context.Background())
	if err != nil {
		s.logger.WithError(err).Error("Birthday reconciliation failed")
		return
	}
	s.logger.WithFields(logrus.Fields{
		"candidates": report.Candidates,
		"due":        report.Due,
		"sent":       report.Sent,
		"skipped":    report.Skipped,
		"failed":     report.Failed,
	}).Debug("Birthday reconciliation run complete")
}

// Stop prevents further runs and waits for the one in progress, if any.
func (s *BirthdayScheduler) Stop() {
	s.logger.Info("Stopping birthday scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	s.startup.Wait()
	s.logger.Info("Birthday scheduler gracefully stopped.")
}
