package database

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"shareit/internal/models"
)

// CreateComment stores the comment and resolves the author's name.
func (db *DB) CreateComment(ctx context.Context, comment *models.Comment) error {
	result, err := db.ExecContext(ctx,
		`INSERT INTO comments (text, item_id, author_id, created_at) VALUES (?, ?, ?, ?)`,
		comment.Text, comment.ItemID, comment.AuthorID, comment.Created.UTC(),
	)
	if err != nil {
		return translateError(err, "create comment")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	comment.ID = id

	if err := db.GetContext(ctx, &comment.AuthorName, `SELECT name FROM users WHERE id = ?`, comment.AuthorID); err != nil {
		return translateError(err, fmt.Sprintf("user %d", comment.AuthorID))
	}
	return nil
}

// GetItemComments returns the item's comments newest first.
func (db *DB) GetItemComments(ctx context.Context, itemID int64) ([]*models.Comment, error) {
	query, args, err := db.dialect.From(goqu.T("comments").As("c")).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("c.author_id")))).
		Select(
			goqu.I("c.id").As("id"),
			goqu.I("c.text").As("text"),
			goqu.I("c.item_id").As("item_id"),
			goqu.I("c.author_id").As("author_id"),
			goqu.I("u.name").As("author_name"),
			goqu.I("c.created_at").As("created_at"),
		).
		Where(goqu.I("c.item_id").Eq(itemID)).
		Order(goqu.I("c.created_at").Desc(), goqu.I("c.id").Desc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build comments query: %w", err)
	}

	comments := []*models.Comment{}
	if err := db.SelectContext(ctx, &comments, query, args...); err != nil {
		return nil, translateError(err, "item comments")
	}
	return comments, nil
}
