package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"birthday_notification_bot/internal/domain"
	"birthday_notification_bot/internal/domain/birthday"
	"birthday_notification_bot/internal/domain/calendar"
	"birthday_notification_bot/internal/domain/community"
	"birthday_notification_bot/internal/infra/metrics"

	"github.com/sirupsen/logrus"
)

// Page is one page of a chat's birthday listing.
type Page struct {
	Number     int
	TotalPages int
	Total      int
	Items      []*birthday.Registration
}

type RegistrationService struct {
	communityRepo community.Repository
	birthdayRepo  birthday.Repository
	pageSize      int
	logger        *logrus.Entry
}

func NewRegistrationService(cr community.Repository, br birthday.Repository, pageSize int, logger *logrus.Entry) *RegistrationService {
	if pageSize <= 0 {
		pageSize = calendar.DefaultPageSize
	}
	return &RegistrationService{
		communityRepo: cr,
		birthdayRepo:  br,
		pageSize:      pageSize,
		logger:        logger,
	}
}

// BindCommunity routes the chat's birthday notifications to destinationID.
// A chat can be bound only once; a second attempt returns domain.ErrAlreadyRegistered.
func (s *RegistrationService) BindCommunity(ctx context.Context, communityID, destinationID int64) (*community.Binding, error) {
	if communityID == 0 || destinationID == 0 {
		observe("bind", domain.ErrInvalidArgument)
		return nil, fmt.Errorf("bind chat %d to %d: %w", communityID, destinationID, domain.ErrInvalidArgument)
	}

	b := &community.Binding{CommunityID: communityID, DestinationID: destinationID}
	if err := s.communityRepo.Create(ctx, b); err != nil {
		observe("bind", err)
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			s.logger.WithField("chat_id", communityID).Info("Chat is already bound")
			return nil, err
		}
		s.logger.WithError(err).WithField("chat_id", communityID).Error("Failed to bind chat")
		return nil, fmt.Errorf("bind chat %d: %w", communityID, err)
	}

	observe("bind", nil)
	s.logger.WithFields(logrus.Fields{"chat_id": communityID, "destination_id": destinationID}).Info("Chat bound")
	return b, nil
}

// SignupUser registers the user's birthday in the chat.
// The date is checked before anything reaches the store.
func (s *RegistrationService) SignupUser(ctx context.Context, userID, communityID int64, day, month int, year *int) (*birthday.Registration, error) {
	date := calendar.AnnualDate{Month: time.Month(month), Day: day}
	if !date.Valid() {
		observe("signup", domain.ErrInvalidDate)
		return nil, fmt.Errorf("day %d month %d: %w", day, month, domain.ErrInvalidDate)
	}
	if year != nil && !calendar.ValidYear(*year) {
		observe("signup", domain.ErrInvalidDate)
		return nil, fmt.Errorf("year %d: %w", *year, domain.ErrInvalidDate)
	}
	if userID == 0 || communityID == 0 {
		observe("signup", domain.ErrInvalidArgument)
		return nil, fmt.Errorf("signup user %d in chat %d: %w", userID, communityID, domain.ErrInvalidArgument)
	}

	reg := &birthday.Registration{
		UserID:      userID,
		CommunityID: communityID,
		Month:       date.Month,
		Day:         date.Day,
	}
	if year != nil {
		reg.Year = sql.NullInt32{Int32: int32(*year), Valid: true}
	}

	if err := s.birthdayRepo.Register(ctx, reg); err != nil {
		observe("signup", err)
		if errors.Is(err, domain.ErrUnknownCommunity) || errors.Is(err, domain.ErrAlreadyRegistered) {
			return nil, err
		}
		s.logger.WithError(err).WithField("user_id", userID).Error("Failed to register birthday")
		return nil, fmt.Errorf("signup user %d: %w", userID, err)
	}

	observe("signup", nil)
	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"chat_id": communityID,
		"date":    date.String(),
	}).Info("Birthday registered")
	return reg, nil
}

// ListPage returns the requested 1-indexed page of the chat's registrations.
// An empty chat yields domain.ErrEmptyResult, a page past the end domain.ErrPageOutOfRange.
func (s *RegistrationService) ListPage(ctx context.Context, communityID int64, pageNumber int) (*Page, error) {
	if _, err := s.communityRepo.GetByCommunityID(ctx, communityID); err != nil {
		observe("list", err)
		return nil, err
	}

	all, err := s.birthdayRepo.ListByCommunity(ctx, communityID)
	if err != nil {
		observe("list", err)
		s.logger.WithError(err).WithField("chat_id", communityID).Error("Failed to list birthdays")
		return nil, fmt.Errorf("list chat %d: %w", communityID, err)
	}
	if len(all) == 0 {
		observe("list", domain.ErrEmptyResult)
		return nil, domain.ErrEmptyResult
	}

	items, err := calendar.Paginate(all, pageNumber, s.pageSize)
	if err != nil {
		observe("list", err)
		return nil, err
	}

	observe("list", nil)
	return &Page{
		Number:     pageNumber,
		TotalPages: calendar.PageCount(len(all), s.pageSize),
		Total:      len(all),
		Items:      items,
	}, nil
}

// Lookup returns the user's own registration or domain.ErrNotFound.
func (s *RegistrationService) Lookup(ctx context.Context, userID int64) (*birthday.Registration, error) {
	reg, err := s.birthdayRepo.GetByUserID(ctx, userID)
	observe("lookup", err)
	return reg, err
}

func observe(operation string, err error) {
	metrics.RegistrationRequests.WithLabelValues(operation, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return "already_registered"
	case errors.Is(err, domain.ErrUnknownCommunity):
		return "unknown_chat"
	case errors.Is(err, domain.ErrInvalidDate), errors.Is(err, domain.ErrInvalidArgument):
		return "invalid"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrEmptyResult):
		return "empty"
	case errors.Is(err, domain.ErrPageOutOfRange):
		return "out_of_range"
	default:
		return "error"
	}
}
