package api

import (
	"strings"
	"time"

	"shareit/internal/models"
)

// localLayout is accepted for timestamps without a zone; such values are read as UTC.
const localLayout = "2006-01-02T15:04:05"

// timestamp accepts RFC 3339 or zone-less local date-times.
type timestamp struct {
	time.Time
}

func (t *timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)

	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		t.Time = parsed.UTC()
		return nil
	}
	parsed, err := time.ParseInLocation(localLayout, raw, time.UTC)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.UTC().Format(time.RFC3339Nano))
}

type userRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type userPatch struct {
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type itemRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId" validate:"omitempty,gt=0"`
}

type itemPatch struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type commentRequest struct {
	Text string `json:"text" validate:"required"`
}

type itemRequestCreate struct {
	Description string `json:"description" validate:"required"`
}

// CreateBookingRequest is shared by the HTTP body and the RPC message.
type CreateBookingRequest struct {
	ItemID int64      `json:"itemId" validate:"required,gt=0"`
	Start  *timestamp `json:"start" validate:"required"`
	End    *timestamp `json:"end" validate:"required"`
}

type DecideBookingRequest struct {
	BookingID int64 `json:"bookingId"`
	Approved  bool  `json:"approved"`
}

type GetBookingRequest struct {
	BookingID int64 `json:"bookingId"`
}

type ListBookingsRequest struct {
	Role  string `json:"role"`
	State string `json:"state"`
	From  *int   `json:"from,omitempty"`
	Size  *int   `json:"size,omitempty"`
}

type ItemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type UserRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookingReply is a booking with its item and booker projections.
type BookingReply struct {
	ID     int64                `json:"id"`
	Start  time.Time            `json:"start"`
	End    time.Time            `json:"end"`
	Status models.BookingStatus `json:"status"`
	Item   ItemRef              `json:"item"`
	Booker UserRef              `json:"booker"`
}

type ListBookingsReply struct {
	Bookings []BookingReply `json:"bookings"`
}

func toBookingReply(b *models.Booking) BookingReply {
	return BookingReply{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: b.Status,
		Item:   ItemRef{ID: b.ItemID, Name: b.ItemName},
		Booker: UserRef{ID: b.BookerID, Name: b.BookerName},
	}
}

func toBookingReplies(bookings []*models.Booking) []BookingReply {
	out := make([]BookingReply, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingReply(b))
	}
	return out
}

// parseRole accepts AS_BOOKER (or empty) and AS_OWNER.
func parseRole(name string) (models.BookingRole, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", models.RoleBooker.String():
		return models.RoleBooker, true
	case models.RoleOwner.String():
		return models.RoleOwner, true
	}
	return models.RoleBooker, false
}
