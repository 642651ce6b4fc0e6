package models

import "time"

type Item struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Available   bool      `db:"available" json:"available"`
	OwnerID     int64     `db:"owner_id" json:"-"`
	RequestID   *int64    `db:"request_id" json:"requestId,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"-"`
	UpdatedAt   time.Time `db:"updated_at" json:"-"`
}

// ItemUpdate carries a partial change; nil fields are left untouched.
type ItemUpdate struct {
	Name        *string
	Description *string
	Available   *bool
}

// ItemView is an item enriched with booking and comment data for a given viewer.
// LastBooking and NextBooking are only filled when the viewer owns the item.
type ItemView struct {
	Item
	LastBooking *BookingShort `json:"lastBooking"`
	NextBooking *BookingShort `json:"nextBooking"`
	Comments    []Comment     `json:"comments"`
}
