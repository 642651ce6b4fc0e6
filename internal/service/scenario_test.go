package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"
)

// TestSharingScenario drives the services against a real sqlite store.
func TestSharingScenario(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.New(io.Discard)

	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	bus := events.NewEventBus()
	var published []string
	for _, typ := range []string{events.EventBookingCreated, events.EventBookingApproved, events.EventCommentCreated} {
		bus.Subscribe(typ, func(e *events.Event) error {
			published = append(published, e.Type)
			return nil
		})
	}

	clock := testNow
	now := func() time.Time { return clock }

	users := NewUserService(db, &logger)
	items := NewItemService(db, bus, &logger)
	items.SetClock(now)
	bookings := NewBookingService(db, bus, &logger)
	bookings.SetClock(now)

	owner, err := users.CreateUser(ctx, "owner", "owner@example.com")
	require.NoError(t, err)
	booker, err := users.CreateUser(ctx, "booker", "booker@example.com")
	require.NoError(t, err)

	item, err := items.CreateItem(ctx, owner.ID, &models.Item{Name: "Camping Tent", Description: "two person", Available: true})
	require.NoError(t, err)

	_, err = bookings.CreateBooking(ctx, owner.ID, item.ID, clock.Add(time.Hour), clock.Add(2*time.Hour))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	booking, err := bookings.CreateBooking(ctx, booker.ID, item.ID, clock.Add(time.Hour), clock.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaiting, booking.Status)
	assert.Equal(t, "Camping Tent", booking.ItemName)

	list, err := bookings.ListBookings(ctx, owner.ID, models.RoleOwner, "ALL", nil, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, booking.ID, list[0].ID)

	approved, err := bookings.DecideBooking(ctx, owner.ID, booking.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)

	_, err = bookings.DecideBooking(ctx, owner.ID, booking.ID, false)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	found, err := items.SearchItems(ctx, booker.ID, "", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, found)
	found, err = items.SearchItems(ctx, booker.ID, "TENT", nil, nil)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, item.ID, found[0].ID)

	_, err = items.WriteComment(ctx, booker.ID, item.ID, "too early")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	clock = clock.Add(3 * time.Hour)
	comment, err := items.WriteComment(ctx, booker.ID, item.ID, "dry and warm")
	require.NoError(t, err)
	assert.Equal(t, "booker", comment.AuthorName)

	view, err := items.GetItemView(ctx, owner.ID, item.ID)
	require.NoError(t, err)
	require.NotNil(t, view.LastBooking)
	assert.Equal(t, booking.ID, view.LastBooking.ID)
	assert.Nil(t, view.NextBooking)
	require.Len(t, view.Comments, 1)

	past, err := bookings.ListBookings(ctx, booker.ID, models.RoleBooker, "PAST", nil, nil)
	require.NoError(t, err)
	assert.Len(t, past, 1)

	assert.Equal(t, []string{events.EventBookingCreated, events.EventBookingApproved, events.EventCommentCreated}, published)
}
