package app

import (
	"context"

	"birthday_notification_bot/internal/domain/birthday"
	"birthday_notification_bot/internal/domain/community"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
)

type mockCommunityRepo struct {
	mock.Mock
}

func (m *mockCommunityRepo) Create(ctx context.Context, b *community.Binding) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockCommunityRepo) GetByCommunityID(ctx context.Context, communityID int64) (*community.Binding, error) {
	args := m.Called(ctx, communityID)
	if b, ok := args.Get(0).(*community.Binding); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockBirthdayRepo struct {
	mock.Mock
}

func (m *mockBirthdayRepo) Register(ctx context.Context, r *birthday.Registration) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockBirthdayRepo) GetByUserID(ctx context.Context, userID int64) (*birthday.Registration, error) {
	args := m.Called(ctx, userID)
	if r, ok := args.Get(0).(*birthday.Registration); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBirthdayRepo) FindDueCandidates(ctx context.Context, beforeYear int) ([]*birthday.Registration, error) {
	args := m.Called(ctx, beforeYear)
	if r, ok := args.Get(0).([]*birthday.Registration); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBirthdayRepo) MarkNotified(ctx context.Context, userID int64, year int) error {
	args := m.Called(ctx, userID, year)
	return args.Error(0)
}

func (m *mockBirthdayRepo) ListByCommunity(ctx context.Context, communityID int64) ([]*birthday.Registration, error) {
	args := m.Called(ctx, communityID)
	if r, ok := args.Get(0).([]*birthday.Registration); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSink struct {
	mock.Mock
}

func (m *mockSink) Send(ctx context.Context, destinationID, userID int64) error {
	args := m.Called(ctx, destinationID, userID)
	return args.Error(0)
}

func testLogger() *logrus.Entry {
	l, _ := test.NewNullLogger()
	return logrus.NewEntry(l)
}
