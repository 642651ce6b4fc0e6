package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/domain"
	"shareit/internal/models"
)

func createRequest(t *testing.T, db *DB, requesterID int64, description string, created time.Time) *models.ItemRequest {
	t.Helper()
	r := &models.ItemRequest{Description: description, RequesterID: requesterID, Created: created}
	require.NoError(t, db.CreateRequest(context.Background(), r))
	return r
}

func TestRequests(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	r1 := createRequest(t, db, alice.ID, "need a ladder", base)
	r2 := createRequest(t, db, alice.ID, "need a drill", base.Add(time.Hour))
	r3 := createRequest(t, db, bob.ID, "need a tent", base.Add(2*time.Hour))

	got, err := db.GetRequestByID(ctx, r1.ID)
	require.NoError(t, err)
	assert.Equal(t, "need a ladder", got.Description)
	assert.Equal(t, alice.ID, got.RequesterID)
	assert.True(t, got.Created.Equal(base))

	_, err = db.GetRequestByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	own, err := db.GetRequestsByRequester(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, r2.ID, own[0].ID)
	assert.Equal(t, r1.ID, own[1].ID)

	others, err := db.GetRequestsExcept(ctx, alice.ID, models.Page{Offset: 0, Limit: 10})
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, r3.ID, others[0].ID)

	others, err = db.GetRequestsExcept(ctx, bob.ID, models.Page{Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, r1.ID, others[0].ID)
}

func TestCreateRequestUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	err := db.CreateRequest(context.Background(), &models.ItemRequest{Description: "x", RequesterID: 7, Created: time.Now()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRequestLinkedItems(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	req := createRequest(t, db, alice.ID, "need a ladder", time.Now())

	linked := &models.Item{Name: "Ladder", Description: "3m", Available: true, OwnerID: bob.ID, RequestID: &req.ID}
	require.NoError(t, db.CreateItem(ctx, linked))
	createItem(t, db, bob.ID, "Drill", "", true)

	byRequest, err := db.GetItemsByRequest(ctx, req.ID)
	require.NoError(t, err)
	require.Len(t, byRequest, 1)
	assert.Equal(t, linked.ID, byRequest[0].ID)
	require.NotNil(t, byRequest[0].RequestID)
	assert.Equal(t, req.ID, *byRequest[0].RequestID)

	all, err := db.GetRequestLinkedItems(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	bad := int64(999)
	err = db.CreateItem(ctx, &models.Item{Name: "x", Description: "y", OwnerID: bob.ID, RequestID: &bad})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
