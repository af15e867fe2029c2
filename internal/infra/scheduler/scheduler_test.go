package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"birthday_notification_bot/internal/domain/notification"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

// blockingService counts runs and holds each one until release is closed.
type blockingService struct {
	runs    atomic.Int32
	started chan struct{}
	release chan struct{}
}

func newBlockingService() *blockingService {
	return &blockingService{started: make(chan struct{}, 16), release: make(chan struct{})}
}

func (s *blockingService) ReconcileBirthdays(context.Context) (notification.TickReport, error) {
	s.runs.Add(1)
	s.started <- struct{}{}
	<-s.release
	return notification.TickReport{}, nil
}

func nullEntry() *logrus.Entry {
	l, _ := test.NewNullLogger()
	return logrus.NewEntry(l)
}

func TestStartRejectsNonPositiveInterval(t *testing.T) {
	s := NewBirthdayScheduler(newBlockingService(), nullEntry(), 0)
	require.Error(t, s.Start())
}

func TestStartRunsImmediately(t *testing.T) {
	svc := newBlockingService()
	s := NewBirthdayScheduler(svc, nullEntry(), time.Hour)
	require.NoError(t, s.Start())

	select {
	case <-svc.started:
	case <-time.After(5 * time.Second):
		t.Fatal("no reconciliation run at start")
	}
	close(svc.release)
	s.Stop()
	require.Equal(t, int32(1), svc.runs.Load())
}

func TestRunsNeverOverlap(t *testing.T) {
	svc := newBlockingService()
	s := NewBirthdayScheduler(svc, nullEntry(), time.Hour)
	require.NoError(t, s.Start())
	<-svc.started

	// An interval run fired while the startup run is still blocked is skipped.
	done := make(chan struct{})
	go func() {
		s.job.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("overlapping run was not skipped")
	}
	require.Equal(t, int32(1), svc.runs.Load())

	close(svc.release)
	s.Stop()
}

func TestStopWaitsForRunningTick(t *testing.T) {
	svc := newBlockingService()
	s := NewBirthdayScheduler(svc, nullEntry(), time.Hour)
	require.NoError(t, s.Start())
	<-svc.started

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a run was in progress")
	case <-time.After(100 * time.Millisecond):
	}

	close(svc.release)
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return after the run finished")
	}
}
