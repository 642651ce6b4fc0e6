package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"

	"shareit/internal/models"
)

var itemColumns = []interface{}{"id", "name", "description", "available", "owner_id", "request_id", "created_at", "updated_at"}

func (db *DB) CreateItem(ctx context.Context, item *models.Item) error {
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx,
		`INSERT INTO items (name, description, available, owner_id, request_id, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.Name, item.Description, item.Available, item.OwnerID, item.RequestID, now, now,
	)
	if err != nil {
		return translateError(err, "create item")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	item.ID = id
	item.CreatedAt = now
	item.UpdatedAt = now
	return nil
}

func (db *DB) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	var item models.Item
	query, args, err := db.dialect.From("items").Prepared(true).Select(itemColumns...).Where(goqu.C("id").Eq(id)).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build item query: %w", err)
	}
	if err := db.GetContext(ctx, &item, query, args...); err != nil {
		return nil, translateError(err, fmt.Sprintf("item %d", id))
	}
	return &item, nil
}

// UpdateItem overwrites the mutable fields; owner and origin request are fixed at creation.
func (db *DB) UpdateItem(ctx context.Context, item *models.Item) error {
	now := time.Now().UTC()
	query, args, err := db.dialect.Update("items").Prepared(true).
		Set(goqu.Record{
			"name":        item.Name,
			"description": item.Description,
			"available":   item.Available,
			"updated_at":  now,
		}).
		Where(goqu.C("id").Eq(item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build item update: %w", err)
	}

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return translateError(err, "update item")
	}
	if err := affectedOrNotFound(result, fmt.Sprintf("item %d", item.ID)); err != nil {
		return err
	}
	item.UpdatedAt = now
	return nil
}

func (db *DB) DeleteItem(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return translateError(err, "delete item")
	}
	return affectedOrNotFound(result, fmt.Sprintf("item %d", id))
}

func (db *DB) GetItemsByOwner(ctx context.Context, ownerID int64, page *models.Page) ([]*models.Item, error) {
	ds := db.dialect.From("items").Select(itemColumns...).Where(goqu.C("owner_id").Eq(ownerID))
	return db.selectItems(ctx, ds, page, "items by owner")
}

// SearchAvailableItems matches text as a case-insensitive substring of name or description.
func (db *DB) SearchAvailableItems(ctx context.Context, text string, page *models.Page) ([]*models.Item, error) {
	needle := strings.ToLower(text)
	ds := db.dialect.From("items").Select(itemColumns...).Where(
		goqu.C("available").IsTrue(),
		goqu.Or(
			goqu.L("instr(fold(name), ?) > 0", needle),
			goqu.L("instr(fold(description), ?) > 0", needle),
		),
	)
	return db.selectItems(ctx, ds, page, "search items")
}

func (db *DB) GetItemsByRequest(ctx context.Context, requestID int64) ([]*models.Item, error) {
	ds := db.dialect.From("items").Select(itemColumns...).Where(goqu.C("request_id").Eq(requestID))
	return db.selectItems(ctx, ds, nil, "items by request")
}

// GetRequestLinkedItems returns every item listed in answer to some request.
func (db *DB) GetRequestLinkedItems(ctx context.Context) ([]*models.Item, error) {
	ds := db.dialect.From("items").Select(itemColumns...).Where(goqu.C("request_id").IsNotNull())
	return db.selectItems(ctx, ds, nil, "request linked items")
}

func (db *DB) selectItems(ctx context.Context, ds *goqu.SelectDataset, page *models.Page, what string) ([]*models.Item, error) {
	ds = paginate(ds.Order(goqu.C("id").Asc()), page)

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s query: %w", what, err)
	}

	items := []*models.Item{}
	if err := db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, translateError(err, what)
	}
	return items, nil
}

// paginate applies a page window; nil means the full result set.
func paginate(ds *goqu.SelectDataset, page *models.Page) *goqu.SelectDataset {
	if page == nil {
		return ds
	}
	return ds.Limit(uint(page.Limit)).Offset(uint(page.RowOffset()))
}
