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
	"shareit/internal/models"
)

func newRequestService(repo *mockRepo) *RequestService {
	logger := zerolog.New(io.Discard)
	s := NewRequestService(repo, nil, &logger)
	s.SetClock(func() time.Time { return testNow })
	return s
}

func TestCreateRequest(t *testing.T) {
	ctx := context.Background()

	repo := new(mockRepo)
	s := newRequestService(repo)
	repo.On("GetUserByID", ctx, int64(1)).Return(&models.User{ID: 1}, nil)
	repo.On("CreateRequest", ctx, mock.MatchedBy(func(r *models.ItemRequest) bool {
		return r.RequesterID == 1 && r.Created.Equal(testNow)
	})).Return(nil)

	got, err := s.CreateRequest(ctx, 1, "need a ladder")
	require.NoError(t, err)
	assert.Equal(t, "need a ladder", got.Description)

	_, err = s.CreateRequest(ctx, 1, "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestListOwnRequests(t *testing.T) {
	ctx := context.Background()
	r1, r2 := int64(1), int64(2)

	repo := new(mockRepo)
	s := newRequestService(repo)
	repo.On("GetUserByID", ctx, int64(7)).Return(&models.User{ID: 7}, nil)
	repo.On("GetRequestsByRequester", ctx, int64(7)).Return([]*models.ItemRequest{{ID: r2}, {ID: r1}}, nil)
	repo.On("GetRequestLinkedItems", ctx).Return([]*models.Item{{ID: 10, RequestID: &r1}, {ID: 11, RequestID: &r1}}, nil).Once()

	views, err := s.ListOwnRequests(ctx, 7)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, r2, views[0].ID)
	assert.NotNil(t, views[0].Items)
	assert.Empty(t, views[0].Items)
	assert.Len(t, views[1].Items, 2)
	repo.AssertExpectations(t)
}

func TestListOtherRequests(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingParamsIsEmpty", func(t *testing.T) {
		repo := new(mockRepo)
		s := newRequestService(repo)

		for _, params := range [][2]*int{{nil, nil}, {intPtr(0), nil}, {nil, intPtr(10)}} {
			got, err := s.ListOtherRequests(ctx, 7, params[0], params[1])
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		}
		repo.AssertNotCalled(t, "GetRequestsExcept", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("InvalidParams", func(t *testing.T) {
		repo := new(mockRepo)
		s := newRequestService(repo)

		_, err := s.ListOtherRequests(ctx, 7, intPtr(-1), intPtr(10))
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		_, err = s.ListOtherRequests(ctx, 7, intPtr(0), intPtr(0))
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("Paged", func(t *testing.T) {
		repo := new(mockRepo)
		s := newRequestService(repo)
		repo.On("GetUserByID", ctx, int64(7)).Return(&models.User{ID: 7}, nil)
		repo.On("GetRequestsExcept", ctx, int64(7), models.Page{Offset: 10, Limit: 10}).
			Return([]*models.ItemRequest{{ID: 3}}, nil)
		repo.On("GetRequestLinkedItems", ctx).Return([]*models.Item{}, nil)

		got, err := s.ListOtherRequests(ctx, 7, intPtr(10), intPtr(10))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Empty(t, got[0].Items)
	})
}

func TestGetRequestByID(t *testing.T) {
	ctx := context.Background()
	rid := int64(4)

	repo := new(mockRepo)
	s := newRequestService(repo)
	repo.On("GetUserByID", ctx, int64(7)).Return(&models.User{ID: 7}, nil)
	repo.On("GetRequestByID", ctx, rid).Return(&models.ItemRequest{ID: rid, Description: "x"}, nil)
	repo.On("GetItemsByRequest", ctx, rid).Return([]*models.Item{{ID: 1, RequestID: &rid}}, nil)
	repo.On("GetRequestByID", ctx, int64(5)).Return(nil, domain.ErrNotFound)

	view, err := s.GetRequestByID(ctx, 7, rid)
	require.NoError(t, err)
	assert.Equal(t, "x", view.Description)
	assert.Len(t, view.Items, 1)

	_, err = s.GetRequestByID(ctx, 7, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
