package service

import "shareit/internal/models"

// relation is what a user is to a booking.
type relation int

const (
	relationNone relation = iota
	relationBooker
	relationOwner
)

// relationTo resolves the acting user's role on a booking through the owner of
// its item. Ownership wins when a user would be both.
func relationTo(userID int64, b *models.Booking) relation {
	switch userID {
	case b.OwnerID:
		return relationOwner
	case b.BookerID:
		return relationBooker
	default:
		return relationNone
	}
}
