package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"
)

type BookingService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
		now:      time.Now,
	}
}

// SetClock replaces the time source. Used by tests.
func (s *BookingService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *BookingService) CreateBooking(ctx context.Context, userID, itemID int64, start, end time.Time) (*models.Booking, error) {
	now := s.now()

	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		Start:    start,
		End:      end,
		ItemID:   item.ID,
		BookerID: userID,
		Status:   models.StatusWaiting,
		ItemName: item.Name,
		OwnerID:  item.OwnerID,
	}

	if relationTo(userID, booking) == relationOwner {
		return nil, fmt.Errorf("%w: owner cannot book own item %d", domain.ErrForbidden, itemID)
	}
	if !item.Available {
		return nil, fmt.Errorf("%w: item %d is not available", domain.ErrInvalidState, itemID)
	}
	if err := validateInterval(start, end, now); err != nil {
		return nil, err
	}

	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	created, err := s.repo.GetBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("booking_id", created.ID).
		Int64("item_id", created.ItemID).
		Int64("booker_id", userID).
		Msg("Booking created")
	s.publishEvent(events.EventBookingCreated, created, userID)

	return created, nil
}

func (s *BookingService) DecideBooking(ctx context.Context, userID, bookingID int64, approve bool) (*models.Booking, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if relationTo(userID, booking) != relationOwner {
		return nil, fmt.Errorf("%w: user %d does not own the item of booking %d", domain.ErrForbidden, userID, bookingID)
	}

	next, err := decide(booking.Status, approve)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateBookingStatus(ctx, bookingID, booking.Status, next); err != nil {
		return nil, err
	}
	booking.Status = next

	s.logger.Info().
		Int64("booking_id", bookingID).
		Int64("owner_id", userID).
		Str("status", string(next)).
		Msg("Booking decided")

	eventType := events.EventBookingRejected
	if next == models.StatusApproved {
		eventType = events.EventBookingApproved
	}
	s.publishEvent(eventType, booking, userID)

	return booking, nil
}

// GetBooking returns the booking to its booker or the item's owner; anyone else gets ErrNotFound.
func (s *BookingService) GetBooking(ctx context.Context, userID, bookingID int64) (*models.Booking, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if relationTo(userID, booking) == relationNone {
		return nil, fmt.Errorf("%w: booking %d", domain.ErrNotFound, bookingID)
	}
	return booking, nil
}

func (s *BookingService) ListBookings(ctx context.Context, userID int64, role models.BookingRole, state string, from, size *int) ([]*models.Booking, error) {
	now := s.now()

	parsed, ok := models.ParseBookingState(state)
	if !ok {
		return nil, fmt.Errorf("%w: unknown state: %s", domain.ErrInvalidArgument, state)
	}
	page, err := pageOf(from, size)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	return s.repo.ListBookings(ctx, models.BookingQuery{
		UserID: userID,
		Role:   role,
		State:  parsed,
		Now:    now,
		Page:   page,
	})
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking, changedByID int64) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID:   booking.ID,
		ItemID:      booking.ItemID,
		ItemName:    booking.ItemName,
		OwnerID:     booking.OwnerID,
		BookerID:    booking.BookerID,
		Status:      string(booking.Status),
		Start:       booking.Start,
		End:         booking.End,
		ChangedByID: changedByID,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
