package models

import "time"

type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
)

// Terminal reports whether no further transition is allowed.
func (s BookingStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type Booking struct {
	ID        int64         `db:"id" json:"id"`
	Start     time.Time     `db:"start_at" json:"start"`
	End       time.Time     `db:"end_at" json:"end"`
	ItemID    int64         `db:"item_id" json:"itemId"`
	BookerID  int64         `db:"booker_id" json:"bookerId"`
	Status    BookingStatus `db:"status" json:"status"`
	CreatedAt time.Time     `db:"created_at" json:"-"`
	UpdatedAt time.Time     `db:"updated_at" json:"-"`

	// Read-only projections joined from items and users.
	ItemName   string `db:"item_name" json:"-"`
	OwnerID    int64  `db:"owner_id" json:"-"`
	BookerName string `db:"booker_name" json:"-"`
}

// BookingShort is the booking projection attached to an ItemView.
type BookingShort struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

func (b *Booking) Short() *BookingShort {
	if b == nil {
		return nil
	}
	return &BookingShort{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    b.Start,
		End:      b.End,
	}
}
