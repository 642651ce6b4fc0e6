package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"
)

func newItemService(repo *mockRepo, pub *mockPublisher) *ItemService {
	logger := zerolog.New(io.Discard)
	var publisher domain.EventPublisher
	if pub != nil {
		publisher = pub
	}
	s := NewItemService(repo, publisher, &logger)
	s.SetClock(func() time.Time { return testNow })
	return s
}

func TestGetItemView(t *testing.T) {
	ctx := context.Background()
	h := time.Hour
	item := &models.Item{ID: 10, Name: "Tent", OwnerID: 1, Available: true}
	past := &models.Booking{ID: 1, BookerID: 2, Start: testNow.Add(-3 * h), End: testNow.Add(-h)}
	future := &models.Booking{ID: 2, BookerID: 2, Start: testNow.Add(h), End: testNow.Add(2 * h)}
	comments := []*models.Comment{{ID: 7, Text: "nice", AuthorName: "bob"}}

	t.Run("Owner", func(t *testing.T) {
		repo := new(mockRepo)
		s := newItemService(repo, nil)
		repo.On("GetUserByID", ctx, int64(1)).Return(&models.User{ID: 1}, nil)
		repo.On("GetItemByID", ctx, item.ID).Return(item, nil)
		repo.On("GetItemBookings", ctx, item.ID).Return([]*models.Booking{past, future}, nil)
		repo.On("GetItemComments", ctx, item.ID).Return(comments, nil)

		view, err := s.GetItemView(ctx, 1, item.ID)
		require.NoError(t, err)
		assert.Equal(t, past.Short(), view.LastBooking)
		assert.Equal(t, future.Short(), view.NextBooking)
		require.Len(t, view.Comments, 1)
		assert.Equal(t, "bob", view.Comments[0].AuthorName)
	})

	t.Run("NonOwnerSeesNoBookings", func(t *testing.T) {
		repo := new(mockRepo)
		s := newItemService(repo, nil)
		repo.On("GetUserByID", ctx, int64(2)).Return(&models.User{ID: 2}, nil)
		repo.On("GetItemByID", ctx, item.ID).Return(item, nil)
		repo.On("GetItemComments", ctx, item.ID).Return(comments, nil)

		view, err := s.GetItemView(ctx, 2, item.ID)
		require.NoError(t, err)
		assert.Nil(t, view.LastBooking)
		assert.Nil(t, view.NextBooking)
		assert.Len(t, view.Comments, 1)
		repo.AssertNotCalled(t, "GetItemBookings", mock.Anything, mock.Anything)
	})

	t.Run("NoComments", func(t *testing.T) {
		repo := new(mockRepo)
		s := newItemService(repo, nil)
		repo.On("GetUserByID", ctx, int64(2)).Return(&models.User{ID: 2}, nil)
		repo.On("GetItemByID", ctx, item.ID).Return(item, nil)
		repo.On("GetItemComments", ctx, item.ID).Return([]*models.Comment{}, nil)

		view, err := s.GetItemView(ctx, 2, item.ID)
		require.NoError(t, err)
		assert.NotNil(t, view.Comments)
		assert.Empty(t, view.Comments)
	})

	t.Run("UnknownItem", func(t *testing.T) {
		repo := new(mockRepo)
		s := newItemService(repo, nil)
		repo.On("GetUserByID", ctx, int64(2)).Return(&models.User{ID: 2}, nil)
		repo.On("GetItemByID", ctx, int64(99)).Return(nil, domain.ErrNotFound)

		_, err := s.GetItemView(ctx, 2, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestListOwnerItemViews(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	s := newItemService(repo, nil)

	items := []*models.Item{{ID: 3, OwnerID: 1}, {ID: 4, OwnerID: 1}}
	page := &models.Page{Offset: 0, Limit: 2}
	repo.On("GetUserByID", ctx, int64(1)).Return(&models.User{ID: 1}, nil)
	repo.On("GetItemsByOwner", ctx, int64(1), page).Return(items, nil)
	repo.On("GetItemBookings", ctx, mock.Anything).Return([]*models.Booking{}, nil)
	repo.On("GetItemComments", ctx, mock.Anything).Return([]*models.Comment{}, nil)

	views, err := s.ListOwnerItemViews(ctx, 1, intPtr(0), intPtr(2))
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, int64(3), views[0].ID)
	assert.Equal(t, int64(4), views[1].ID)

	_, err = s.ListOwnerItemViews(ctx, 1, intPtr(0), intPtr(0))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestSearchItems(t *testing.T) {
	ctx := context.Background()

	t.Run("BlankText", func(t *testing.T) {
		repo := new(mockRepo)
		s := newItemService(repo, nil)
		repo.On("GetUserByID", ctx, int64(1)).Return(&models.User{ID: 1}, nil)

		for _, text := range []string{"", "   "} {
			got, err := s.SearchItems(ctx, 1, text, nil, nil)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		}
		repo.AssertNotCalled(t, "SearchAvailableItems", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Delegates", func(t *testing.T) {
		repo := new(mockRepo)
		s := newItemService(repo, nil)
		found := []*models.Item{{ID: 1}}
		repo.On("GetUserByID", ctx, int64(1)).Return(&models.User{ID: 1}, nil)
		repo.On("SearchAvailableItems", ctx, "drill", (*models.Page)(nil)).Return(found, nil)

		got, err := s.SearchItems(ctx, 1, " drill ", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, found, got)
	})
}

func TestWriteComment(t *testing.T) {
	ctx := context.Background()
	item := &models.Item{ID: 10, OwnerID: 1}
	author := &models.User{ID: 2, Name: "bob"}

	t.Run("NoCompletedStay", func(t *testing.T) {
		repo := new(mockRepo)
		s := newItemService(repo, nil)
		repo.On("GetUserByID", ctx, author.ID).Return(author, nil)
		repo.On("GetItemByID", ctx, item.ID).Return(item, nil)
		repo.On("HasCompletedBooking", ctx, item.ID, author.ID, testNow).Return(false, nil)

		_, err := s.WriteComment(ctx, author.ID, item.ID, "great")
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		repo.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything)
	})

	t.Run("BlankText", func(t *testing.T) {
		repo := new(mockRepo)
		s := newItemService(repo, nil)
		repo.On("GetUserByID", ctx, author.ID).Return(author, nil)
		repo.On("GetItemByID", ctx, item.ID).Return(item, nil)

		_, err := s.WriteComment(ctx, author.ID, item.ID, " ")
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("Success", func(t *testing.T) {
		repo := new(mockRepo)
		pub := new(mockPublisher)
		s := newItemService(repo, pub)
		repo.On("GetUserByID", ctx, author.ID).Return(author, nil)
		repo.On("GetItemByID", ctx, item.ID).Return(item, nil)
		repo.On("HasCompletedBooking", ctx, item.ID, author.ID, testNow).Return(true, nil)
		repo.On("CreateComment", ctx, mock.MatchedBy(func(c *models.Comment) bool {
			return c.Text == "great" && c.Created.Equal(testNow) && c.AuthorID == author.ID
		})).Run(func(args mock.Arguments) {
			c := args.Get(1).(*models.Comment)
			c.ID = 3
			c.AuthorName = author.Name
		}).Return(nil)
		pub.On("PublishJSON", events.EventCommentCreated, mock.Anything).Return(nil)

		comment, err := s.WriteComment(ctx, author.ID, item.ID, "great")
		require.NoError(t, err)
		assert.Equal(t, int64(3), comment.ID)
		assert.Equal(t, "bob", comment.AuthorName)
		pub.AssertExpectations(t)
	})
}

func TestItemOwnership(t *testing.T) {
	ctx := context.Background()
	item := &models.Item{ID: 10, Name: "Tent", Description: "old", OwnerID: 1, Available: true}

	t.Run("UpdateByOwner", func(t *testing.T) {
		repo := new(mockRepo)
		s := newItemService(repo, nil)
		copyItem := *item
		repo.On("GetUserByID", ctx, int64(1)).Return(&models.User{ID: 1}, nil)
		repo.On("GetItemByID", ctx, item.ID).Return(&copyItem, nil)
		repo.On("UpdateItem", ctx, mock.Anything).Return(nil)

		available := false
		desc := "new"
		got, err := s.UpdateItem(ctx, 1, item.ID, models.ItemUpdate{Description: &desc, Available: &available})
		require.NoError(t, err)
		assert.Equal(t, "Tent", got.Name)
		assert.Equal(t, "new", got.Description)
		assert.False(t, got.Available)
	})

	t.Run("UpdateByStranger", func(t *testing.T) {
		repo := new(mockRepo)
		s := newItemService(repo, nil)
		repo.On("GetUserByID", ctx, int64(2)).Return(&models.User{ID: 2}, nil)
		repo.On("GetItemByID", ctx, item.ID).Return(item, nil)

		name := "mine"
		_, err := s.UpdateItem(ctx, 2, item.ID, models.ItemUpdate{Name: &name})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("DeleteByStranger", func(t *testing.T) {
		repo := new(mockRepo)
		s := newItemService(repo, nil)
		repo.On("GetUserByID", ctx, int64(2)).Return(&models.User{ID: 2}, nil)
		repo.On("GetItemByID", ctx, item.ID).Return(item, nil)

		assert.ErrorIs(t, s.DeleteItem(ctx, 2, item.ID), domain.ErrNotFound)
		repo.AssertNotCalled(t, "DeleteItem", mock.Anything, mock.Anything)
	})

	t.Run("CreateWithUnknownRequest", func(t *testing.T) {
		repo := new(mockRepo)
		s := newItemService(repo, nil)
		requestID := int64(5)
		repo.On("GetUserByID", ctx, int64(1)).Return(&models.User{ID: 1}, nil)
		repo.On("GetRequestByID", ctx, requestID).Return(nil, domain.ErrNotFound)

		_, err := s.CreateItem(ctx, 1, &models.Item{Name: "Ladder", RequestID: &requestID})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("CreateSetsOwner", func(t *testing.T) {
		repo := new(mockRepo)
		s := newItemService(repo, nil)
		repo.On("GetUserByID", ctx, int64(1)).Return(&models.User{ID: 1}, nil)
		repo.On("CreateItem", ctx, mock.MatchedBy(func(i *models.Item) bool { return i.OwnerID == 1 })).Return(nil)

		got, err := s.CreateItem(ctx, 1, &models.Item{Name: "Ladder", OwnerID: 42, Available: true})
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.OwnerID)
	})
}
