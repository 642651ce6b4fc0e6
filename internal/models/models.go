package models

import (
	"strings"
	"time"
)

// BookingState is the time/status category used to filter booking lists.
type BookingState int

const (
	StateAll BookingState = iota
	StateCurrent
	StatePast
	StateFuture
	StateWaiting
	StateRejected
)

var bookingStateNames = [...]string{
	StateAll:      "ALL",
	StateCurrent:  "CURRENT",
	StatePast:     "PAST",
	StateFuture:   "FUTURE",
	StateWaiting:  "WAITING",
	StateRejected: "REJECTED",
}

func (s BookingState) String() string {
	if s < 0 || int(s) >= len(bookingStateNames) {
		return "UNKNOWN"
	}
	return bookingStateNames[s]
}

// ParseBookingState resolves a state name case-insensitively.
func ParseBookingState(name string) (BookingState, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, n := range bookingStateNames {
		if n == name {
			return BookingState(i), true
		}
	}
	return StateAll, false
}

// Matches evaluates the state predicate for b at the instant now.
//
//	CURRENT  start <= now < end
//	PAST     end < now
//	FUTURE   start > now
func (s BookingState) Matches(b *Booking, now time.Time) bool {
	switch s {
	case StateAll:
		return true
	case StateCurrent:
		return !b.Start.After(now) && b.End.After(now)
	case StatePast:
		return b.End.Before(now)
	case StateFuture:
		return b.Start.After(now)
	case StateWaiting:
		return b.Status == StatusWaiting
	case StateRejected:
		return b.Status == StatusRejected
	default:
		return false
	}
}

// BookingRole selects whose bookings a listing scans.
type BookingRole int

const (
	RoleBooker BookingRole = iota
	RoleOwner
)

func (r BookingRole) String() string {
	if r == RoleOwner {
		return "AS_OWNER"
	}
	return "AS_BOOKER"
}

// Page is an offset/limit window. Offsets are expected to be multiples of Limit:
// the window starts at page Offset/Limit.
type Page struct {
	Offset int
	Limit  int
}

func (p Page) Index() int {
	return p.Offset / p.Limit
}

// RowOffset is the first row actually returned.
func (p Page) RowOffset() int {
	return p.Index() * p.Limit
}

// BookingQuery describes a filtered booking scan. Page is nil for unpaged results.
type BookingQuery struct {
	UserID int64
	Role   BookingRole
	State  BookingState
	Now    time.Time
	Page   *Page
}
