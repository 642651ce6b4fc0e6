package database

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"shareit/internal/models"
)

var userColumns = []interface{}{"id", "name", "email", "created_at", "updated_at"}

func (db *DB) CreateUser(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx,
		`INSERT INTO users (name, email, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		user.Name, user.Email, now, now,
	)
	if err != nil {
		return translateError(err, "create user")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (db *DB) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := db.GetContext(ctx, &user, `SELECT id, name, email, created_at, updated_at FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("user %d", id))
	}
	return &user, nil
}

func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := db.GetContext(ctx, &user, `SELECT id, name, email, created_at, updated_at FROM users WHERE email = ?`, email)
	if err != nil {
		return nil, translateError(err, "user by email")
	}
	return &user, nil
}

func (db *DB) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	query, args, err := db.dialect.From("users").Select(userColumns...).Order(goqu.C("id").Asc()).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build users query: %w", err)
	}

	users := []*models.User{}
	if err := db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, translateError(err, "list users")
	}
	return users, nil
}

// UpdateUser overwrites name and email of an existing user.
func (db *DB) UpdateUser(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	query, args, err := db.dialect.Update("users").Prepared(true).
		Set(goqu.Record{"name": user.Name, "email": user.Email, "updated_at": now}).
		Where(goqu.C("id").Eq(user.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build user update: %w", err)
	}

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return translateError(err, "update user")
	}
	if err := affectedOrNotFound(result, fmt.Sprintf("user %d", user.ID)); err != nil {
		return err
	}
	user.UpdatedAt = now
	return nil
}

func (db *DB) DeleteUser(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return translateError(err, "delete user")
	}
	return affectedOrNotFound(result, fmt.Sprintf("user %d", id))
}
