package api

import (
	"context"
	"strconv"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// BookingClient calls the booking RPC service on behalf of a user.
type BookingClient struct {
	conn grpc.ClientConnInterface
}

func NewBookingClient(conn grpc.ClientConnInterface) *BookingClient {
	return &BookingClient{conn: conn}
}

func (c *BookingClient) invoke(ctx context.Context, userID int64, method string, in, out any) error {
	ctx = metadata.AppendToOutgoingContext(ctx, userIDMetadataKey, strconv.FormatInt(userID, 10))
	return c.conn.Invoke(ctx, method, in, out, grpc.CallContentSubtype(codecName))
}

func (c *BookingClient) CreateBooking(ctx context.Context, userID, itemID int64, start, end time.Time) (*BookingReply, error) {
	in := &CreateBookingRequest{ItemID: itemID, Start: &timestamp{start}, End: &timestamp{end}}
	out := new(BookingReply)
	if err := c.invoke(ctx, userID, methodCreateBooking, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BookingClient) DecideBooking(ctx context.Context, userID, bookingID int64, approved bool) (*BookingReply, error) {
	out := new(BookingReply)
	if err := c.invoke(ctx, userID, methodDecideBooking, &DecideBookingRequest{BookingID: bookingID, Approved: approved}, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BookingClient) GetBooking(ctx context.Context, userID, bookingID int64) (*BookingReply, error) {
	out := new(BookingReply)
	if err := c.invoke(ctx, userID, methodGetBooking, &GetBookingRequest{BookingID: bookingID}, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BookingClient) ListBookings(ctx context.Context, userID int64, req *ListBookingsRequest) ([]BookingReply, error) {
	out := new(ListBookingsReply)
	if err := c.invoke(ctx, userID, methodListBookings, req, out); err != nil {
		return nil, err
	}
	return out.Bookings, nil
}
