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

type ItemService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewItemService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *ItemService {
	return &ItemService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
		now:      time.Now,
	}
}

// SetClock replaces the time source. Used by tests.
func (s *ItemService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *ItemService) CreateItem(ctx context.Context, ownerID int64, item *models.Item) (*models.Item, error) {
	if _, err := s.repo.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(item.Name) == "" {
		return nil, fmt.Errorf("%w: item name is blank", domain.ErrInvalidArgument)
	}
	if item.RequestID != nil {
		if _, err := s.repo.GetRequestByID(ctx, *item.RequestID); err != nil {
			return nil, err
		}
	}

	created := *item
	created.OwnerID = ownerID
	if err := s.repo.CreateItem(ctx, &created); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("item_id", created.ID).Int64("owner_id", ownerID).Msg("Item created")
	return &created, nil
}

// UpdateItem applies a partial change. Items of other owners are reported as not found.
func (s *ItemService) UpdateItem(ctx context.Context, userID, itemID int64, update models.ItemUpdate) (*models.Item, error) {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		if strings.TrimSpace(*update.Name) == "" {
			return nil, fmt.Errorf("%w: item name is blank", domain.ErrInvalidArgument)
		}
		item.Name = *update.Name
	}
	if update.Description != nil {
		item.Description = *update.Description
	}
	if update.Available != nil {
		item.Available = *update.Available
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) DeleteItem(ctx context.Context, userID, itemID int64) error {
	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return err
	}
	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return err
	}

	s.logger.Info().Int64("item_id", itemID).Int64("owner_id", userID).Msg("Item deleted")
	return nil
}

func (s *ItemService) ownedItem(ctx context.Context, userID, itemID int64) (*models.Item, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != userID {
		return nil, fmt.Errorf("%w: item %d has a different owner", domain.ErrNotFound, itemID)
	}
	return item, nil
}

func (s *ItemService) GetItemView(ctx context.Context, userID, itemID int64) (*models.ItemView, error) {
	now := s.now()

	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	return s.buildView(ctx, item, item.OwnerID == userID, now)
}

// ListOwnerItemViews returns the owner's inventory in id order, each with bookings and comments.
func (s *ItemService) ListOwnerItemViews(ctx context.Context, userID int64, from, size *int) ([]*models.ItemView, error) {
	now := s.now()

	page, err := pageOf(from, size)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	items, err := s.repo.GetItemsByOwner(ctx, userID, page)
	if err != nil {
		return nil, err
	}

	views := make([]*models.ItemView, 0, len(items))
	for _, item := range items {
		view, err := s.buildView(ctx, item, true, now)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *ItemService) buildView(ctx context.Context, item *models.Item, owner bool, now time.Time) (*models.ItemView, error) {
	view := &models.ItemView{Item: *item, Comments: []models.Comment{}}

	if owner {
		bookings, err := s.repo.GetItemBookings(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		last, next := LastAndNext(bookings, now)
		view.LastBooking = last.Short()
		view.NextBooking = next.Short()
	}

	comments, err := s.repo.GetItemComments(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		view.Comments = append(view.Comments, *c)
	}
	return view, nil
}

// SearchItems finds available items by text. Blank text matches nothing.
func (s *ItemService) SearchItems(ctx context.Context, userID int64, text string, from, size *int) ([]*models.Item, error) {
	page, err := pageOf(from, size)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return []*models.Item{}, nil
	}
	return s.repo.SearchAvailableItems(ctx, strings.TrimSpace(text), page)
}

// WriteComment requires the author to have a booking on the item that ended before now.
func (s *ItemService) WriteComment(ctx context.Context, userID, itemID int64, text string) (*models.Comment, error) {
	now := s.now()

	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: comment text is blank", domain.ErrInvalidArgument)
	}

	completed, err := s.repo.HasCompletedBooking(ctx, item.ID, userID, now)
	if err != nil {
		return nil, err
	}
	if !completed {
		return nil, fmt.Errorf("%w: user %d did not book item %d", domain.ErrInvalidArgument, userID, itemID)
	}

	comment := &models.Comment{
		Text:     text,
		ItemID:   item.ID,
		AuthorID: userID,
		Created:  now,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("comment_id", comment.ID).Int64("item_id", item.ID).Int64("author_id", userID).Msg("Comment written")

	if s.eventBus != nil {
		payload := events.CommentEventPayload{CommentID: comment.ID, ItemID: item.ID, AuthorID: userID, Created: now}
		if err := s.eventBus.PublishJSON(events.EventCommentCreated, payload); err != nil {
			s.logger.Error().Err(err).Int64("comment_id", comment.ID).Msg("publish event error")
		}
	}

	return comment, nil
}
