package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"
)

type RequestService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewRequestService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *RequestService {
	return &RequestService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
		now:      time.Now,
	}
}

// SetClock replaces the time source. Used by tests.
func (s *RequestService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *RequestService) CreateRequest(ctx context.Context, userID int64, description string) (*models.ItemRequest, error) {
	now := s.now()

	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("%w: request description is blank", domain.ErrInvalidArgument)
	}

	request := &models.ItemRequest{
		Description: description,
		RequesterID: userID,
		Created:     now,
	}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("request_id", request.ID).Int64("requester_id", userID).Msg("Item request created")

	if s.eventBus != nil {
		payload := events.RequestEventPayload{RequestID: request.ID, RequesterID: userID, Created: now}
		if err := s.eventBus.PublishJSON(events.EventRequestCreated, payload); err != nil {
			s.logger.Error().Err(err).Int64("request_id", request.ID).Msg("publish event error")
		}
	}

	return request, nil
}

func (s *RequestService) ListOwnRequests(ctx context.Context, userID int64) ([]*models.RequestView, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	requests, err := s.repo.GetRequestsByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, requests)
}

// ListOtherRequests pages through other users' requests. Both from and size are
// required; when either is missing the result is empty.
func (s *RequestService) ListOtherRequests(ctx context.Context, userID int64, from, size *int) ([]*models.RequestView, error) {
	page, err := pageOf(from, size)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return []*models.RequestView{}, nil
	}
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	requests, err := s.repo.GetRequestsExcept(ctx, userID, *page)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, requests)
}

func (s *RequestService) GetRequestByID(ctx context.Context, userID, requestID int64) (*models.RequestView, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	request, err := s.repo.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.GetItemsByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return attachItems([]*models.ItemRequest{request}, groupItemsByRequest(items))[0], nil
}

// withItems annotates requests using one scan of all request-linked items.
func (s *RequestService) withItems(ctx context.Context, requests []*models.ItemRequest) ([]*models.RequestView, error) {
	if len(requests) == 0 {
		return []*models.RequestView{}, nil
	}

	linked, err := s.repo.GetRequestLinkedItems(ctx)
	if err != nil {
		return nil, err
	}
	return attachItems(requests, groupItemsByRequest(linked)), nil
}
