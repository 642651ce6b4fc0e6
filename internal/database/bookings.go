package database

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"shareit/internal/domain"
	"shareit/internal/models"
)

// bookingsSelect joins the item and booker so every booking row carries its projections.
func (db *DB) bookingsSelect() *goqu.SelectDataset {
	return db.dialect.From(goqu.T("bookings").As("b")).
		Join(goqu.T("items").As("i"), goqu.On(goqu.I("i.id").Eq(goqu.I("b.item_id")))).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("b.booker_id")))).
		Select(
			goqu.I("b.id").As("id"),
			goqu.I("b.start_at").As("start_at"),
			goqu.I("b.end_at").As("end_at"),
			goqu.I("b.item_id").As("item_id"),
			goqu.I("b.booker_id").As("booker_id"),
			goqu.I("b.status").As("status"),
			goqu.I("b.created_at").As("created_at"),
			goqu.I("b.updated_at").As("updated_at"),
			goqu.I("i.name").As("item_name"),
			goqu.I("i.owner_id").As("owner_id"),
			goqu.I("u.name").As("booker_name"),
		).
		Prepared(true)
}

// CreateBooking inserts the booking after re-reading the item's availability in the same transaction.
func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var available bool
	if err := tx.GetContext(ctx, &available, `SELECT available FROM items WHERE id = ?`, booking.ItemID); err != nil {
		return translateError(err, fmt.Sprintf("item %d", booking.ItemID))
	}
	if !available {
		return fmt.Errorf("%w: item %d is not available", domain.ErrInvalidState, booking.ItemID)
	}

	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (start_at, end_at, item_id, booker_id, status, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		booking.Start.UTC(), booking.End.UTC(), booking.ItemID, booking.BookerID, booking.Status, now, now,
	)
	if err != nil {
		return translateError(err, "create booking")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking: %w", err)
	}

	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query, args, err := db.bookingsSelect().Where(goqu.I("b.id").Eq(id)).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build booking query: %w", err)
	}

	var booking models.Booking
	if err := db.GetContext(ctx, &booking, query, args...); err != nil {
		return nil, translateError(err, fmt.Sprintf("booking %d", id))
	}
	return &booking, nil
}

// UpdateBookingStatus moves a booking from one status to another. It fails with
// ErrInvalidState when the stored status is no longer from.
func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, from, to models.BookingStatus) error {
	result, err := db.ExecContext(ctx,
		`UPDATE bookings SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		to, time.Now().UTC(), id, from,
	)
	if err != nil {
		return translateError(err, "update booking status")
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: booking %d is not %s", domain.ErrInvalidState, id, from)
	}
	return nil
}

// ListBookings scans bookings for a booker or an owner, filtered by state and sorted by start descending.
func (db *DB) ListBookings(ctx context.Context, q models.BookingQuery) ([]*models.Booking, error) {
	ds := db.bookingsSelect()

	if q.Role == models.RoleOwner {
		ds = ds.Where(goqu.I("i.owner_id").Eq(q.UserID))
	} else {
		ds = ds.Where(goqu.I("b.booker_id").Eq(q.UserID))
	}

	now := q.Now.UTC()
	switch q.State {
	case models.StateCurrent:
		ds = ds.Where(goqu.I("b.start_at").Lte(now), goqu.I("b.end_at").Gt(now))
	case models.StatePast:
		ds = ds.Where(goqu.I("b.end_at").Lt(now))
	case models.StateFuture:
		ds = ds.Where(goqu.I("b.start_at").Gt(now))
	case models.StateWaiting:
		ds = ds.Where(goqu.I("b.status").Eq(models.StatusWaiting))
	case models.StateRejected:
		ds = ds.Where(goqu.I("b.status").Eq(models.StatusRejected))
	}

	ds = paginate(ds.Order(goqu.I("b.start_at").Desc(), goqu.I("b.id").Desc()), q.Page)
	return db.selectBookings(ctx, ds, "list bookings")
}

// GetItemBookings returns all bookings of an item sorted by start ascending.
func (db *DB) GetItemBookings(ctx context.Context, itemID int64) ([]*models.Booking, error) {
	ds := db.bookingsSelect().
		Where(goqu.I("b.item_id").Eq(itemID)).
		Order(goqu.I("b.start_at").Asc(), goqu.I("b.id").Asc())
	return db.selectBookings(ctx, ds, "item bookings")
}

// HasCompletedBooking reports whether the booker has any booking on the item that ended before now.
func (db *DB) HasCompletedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	var exists bool
	err := db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM bookings WHERE item_id = ? AND booker_id = ? AND end_at < ?)`,
		itemID, bookerID, now.UTC(),
	)
	if err != nil {
		return false, translateError(err, "check completed booking")
	}
	return exists, nil
}

func (db *DB) selectBookings(ctx context.Context, ds *goqu.SelectDataset, what string) ([]*models.Booking, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s query: %w", what, err)
	}

	bookings := []*models.Booking{}
	if err := db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, translateError(err, what)
	}
	return bookings, nil
}
