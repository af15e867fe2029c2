// internal/app/notification_service.go
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"birthday_notification_bot/internal/domain"
	"birthday_notification_bot/internal/domain/birthday"
	"birthday_notification_bot/internal/domain/calendar"
	"birthday_notification_bot/internal/domain/community"
	"birthday_notification_bot/internal/domain/notification"
	"birthday_notification_bot/internal/infra/clock"
	"birthday_notification_bot/internal/infra/metrics"

	"github.com/sirupsen/logrus"
)

// NotificationService defines the birthday reconciliation run by the scheduler.
type NotificationService interface {
	// ReconcileBirthdays notifies every birthday due today that has not been notified this year.
	// Per-birthday failures are counted in the report and retried on the next run;
	// only a failure to load candidates is returned as an error.
	ReconcileBirthdays(ctx context.Context) (notification.TickReport, error)
}

// NotificationServiceImpl implements the NotificationService interface.
type NotificationServiceImpl struct {
	birthdayRepo  birthday.Repository
	communityRepo community.Repository
	sink          notification.Sink
	clock         clock.Clock
	logger        *logrus.Entry
}

func NewNotificationServiceImpl(
	br birthday.Repository,
	cr community.Repository,
	sink notification.Sink,
	clk clock.Clock,
	logger *logrus.Entry,
) *NotificationServiceImpl {
	return &NotificationServiceImpl{
		birthdayRepo:  br,
		communityRepo: cr,
		sink:          sink,
		clock:         clk,
		logger:        logger,
	}
}

func (s *NotificationServiceImpl) ReconcileBirthdays(ctx context.Context) (notification.TickReport, error) {
	started := time.Now()
	today := calendar.StartOfDay(s.clock.Now())
	year := today.Year()
	report := notification.TickReport{Date: today}

	candidates, err := s.birthdayRepo.FindDueCandidates(ctx, year)
	if err != nil {
		metrics.TicksTotal.WithLabelValues("error").Inc()
		s.logger.WithError(err).Error("Failed to load birthday candidates")
		return report, fmt.Errorf("find candidates for %d: %w", year, err)
	}
	report.Candidates = len(candidates)

	for _, reg := range candidates {
		if !reg.Date().IsDueOn(today) {
			continue
		}
		report.Due++

		switch err := s.notify(ctx, reg, year); {
		case err == nil:
			report.Sent++
		case errors.Is(err, domain.ErrUnknownCommunity):
			report.Skipped++
		default:
			report.Failed++
		}
	}

	metrics.TicksTotal.WithLabelValues("ok").Inc()
	metrics.TickDuration.Observe(time.Since(started).Seconds())
	s.logger.WithField("report", report.String()).Info("Birthday reconciliation finished")
	return report, nil
}

// notify delivers one due birthday and records it. The watermark only moves after a successful send.
func (s *NotificationServiceImpl) notify(ctx context.Context, reg *birthday.Registration, year int) error {
	log := s.logger.WithFields(logrus.Fields{"user_id": reg.UserID, "chat_id": reg.CommunityID})

	binding, err := s.communityRepo.GetByCommunityID(ctx, reg.CommunityID)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownCommunity) {
			metrics.MissingBindings.Inc()
			log.Warn("Due birthday belongs to a chat without a binding, skipping")
			return err
		}
		metrics.NotificationFailures.WithLabelValues("binding").Inc()
		log.WithError(err).Error("Failed to resolve chat binding")
		return err
	}

	if err := s.sink.Send(ctx, binding.DestinationID, reg.UserID); err != nil {
		metrics.NotificationFailures.WithLabelValues("send").Inc()
		log.WithError(err).WithField("destination_id", binding.DestinationID).
			Warn("Failed to deliver birthday notification, will retry next run")
		return err
	}

	if err := s.birthdayRepo.MarkNotified(ctx, reg.UserID, year); err != nil {
		metrics.NotificationFailures.WithLabelValues("mark").Inc()
		log.WithError(err).Error("Birthday notification sent but not recorded")
		return err
	}

	metrics.NotificationsSent.Inc()
	log.WithField("destination_id", binding.DestinationID).Info("Birthday notification sent")
	return nil
}
