package database

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"shareit/internal/models"
)

var requestColumns = []interface{}{"id", "description", "requester_id", "created_at"}

func (db *DB) CreateRequest(ctx context.Context, request *models.ItemRequest) error {
	result, err := db.ExecContext(ctx,
		`INSERT INTO item_requests (description, requester_id, created_at) VALUES (?, ?, ?)`,
		request.Description, request.RequesterID, request.Created.UTC(),
	)
	if err != nil {
		return translateError(err, "create request")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	request.ID = id
	return nil
}

func (db *DB) GetRequestByID(ctx context.Context, id int64) (*models.ItemRequest, error) {
	var request models.ItemRequest
	err := db.GetContext(ctx, &request,
		`SELECT id, description, requester_id, created_at FROM item_requests WHERE id = ?`, id)
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("request %d", id))
	}
	return &request, nil
}

// GetRequestsByRequester returns a user's own requests newest first.
func (db *DB) GetRequestsByRequester(ctx context.Context, userID int64) ([]*models.ItemRequest, error) {
	ds := db.dialect.From("item_requests").Select(requestColumns...).
		Where(goqu.C("requester_id").Eq(userID))
	return db.selectRequests(ctx, ds, nil, "own requests")
}

// GetRequestsExcept pages through requests made by everyone but userID, newest first.
func (db *DB) GetRequestsExcept(ctx context.Context, userID int64, page models.Page) ([]*models.ItemRequest, error) {
	ds := db.dialect.From("item_requests").Select(requestColumns...).
		Where(goqu.C("requester_id").Neq(userID))
	return db.selectRequests(ctx, ds, &page, "other requests")
}

func (db *DB) selectRequests(ctx context.Context, ds *goqu.SelectDataset, page *models.Page, what string) ([]*models.ItemRequest, error) {
	ds = paginate(ds.Order(goqu.C("created_at").Desc(), goqu.C("id").Desc()), page)

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s query: %w", what, err)
	}

	requests := []*models.ItemRequest{}
	if err := db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, translateError(err, what)
	}
	return requests, nil
}
