package api

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"shareit/internal/domain"
	"shareit/internal/models"
)

const bookingServiceName = "shareit.booking.v1.BookingService"

const (
	methodCreateBooking = "/" + bookingServiceName + "/CreateBooking"
	methodDecideBooking = "/" + bookingServiceName + "/DecideBooking"
	methodGetBooking    = "/" + bookingServiceName + "/GetBooking"
	methodListBookings  = "/" + bookingServiceName + "/ListBookings"
)

// userIDMetadataKey carries the acting user on every booking call.
var userIDMetadataKey = strings.ToLower(models.UserIDHeader)

// BookingServiceServer is the server API of the booking RPC service.
type BookingServiceServer interface {
	CreateBooking(context.Context, *CreateBookingRequest) (*BookingReply, error)
	DecideBooking(context.Context, *DecideBookingRequest) (*BookingReply, error)
	GetBooking(context.Context, *GetBookingRequest) (*BookingReply, error)
	ListBookings(context.Context, *ListBookingsRequest) (*ListBookingsReply, error)
}

var bookingServiceDesc = grpc.ServiceDesc{
	ServiceName: bookingServiceName,
	HandlerType: (*BookingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateBooking", Handler: unaryHandler(methodCreateBooking, BookingServiceServer.CreateBooking)},
		{MethodName: "DecideBooking", Handler: unaryHandler(methodDecideBooking, BookingServiceServer.DecideBooking)},
		{MethodName: "GetBooking", Handler: unaryHandler(methodGetBooking, BookingServiceServer.GetBooking)},
		{MethodName: "ListBookings", Handler: unaryHandler(methodListBookings, BookingServiceServer.ListBookings)},
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterBookingServiceServer registers srv on s.
func RegisterBookingServiceServer(s grpc.ServiceRegistrar, srv BookingServiceServer) {
	s.RegisterService(&bookingServiceDesc, srv)
}

func unaryHandler[Req, Resp any](
	fullMethod string,
	call func(BookingServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(BookingServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(BookingServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var _ BookingServiceServer = (*BookingRPC)(nil)

// BookingRPC serves the booking lifecycle and listings over gRPC.
type BookingRPC struct {
	bookings domain.BookingService
}

func NewBookingRPC(bookings domain.BookingService) *BookingRPC {
	return &BookingRPC{bookings: bookings}
}

func (s *BookingRPC) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*BookingReply, error) {
	userID, err := userIDFromMetadata(ctx)
	if err != nil {
		return nil, err
	}
	if req.Start == nil || req.End == nil {
		return nil, status.Error(codes.InvalidArgument, "start and end are required")
	}

	booking, err := s.bookings.CreateBooking(ctx, userID, req.ItemID, req.Start.Time, req.End.Time)
	if err != nil {
		return nil, grpcError(err)
	}
	reply := toBookingReply(booking)
	return &reply, nil
}

func (s *BookingRPC) DecideBooking(ctx context.Context, req *DecideBookingRequest) (*BookingReply, error) {
	userID, err := userIDFromMetadata(ctx)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookings.DecideBooking(ctx, userID, req.BookingID, req.Approved)
	if err != nil {
		return nil, grpcError(err)
	}
	reply := toBookingReply(booking)
	return &reply, nil
}

func (s *BookingRPC) GetBooking(ctx context.Context, req *GetBookingRequest) (*BookingReply, error) {
	userID, err := userIDFromMetadata(ctx)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookings.GetBooking(ctx, userID, req.BookingID)
	if err != nil {
		return nil, grpcError(err)
	}
	reply := toBookingReply(booking)
	return &reply, nil
}

func (s *BookingRPC) ListBookings(ctx context.Context, req *ListBookingsRequest) (*ListBookingsReply, error) {
	userID, err := userIDFromMetadata(ctx)
	if err != nil {
		return nil, err
	}
	role, ok := parseRole(req.Role)
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "unknown role: %s", req.Role)
	}

	bookings, err := s.bookings.ListBookings(ctx, userID, role, req.State, req.From, req.Size)
	if err != nil {
		return nil, grpcError(err)
	}
	return &ListBookingsReply{Bookings: toBookingReplies(bookings)}, nil
}

func userIDFromMetadata(ctx context.Context) (int64, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	raw := first(md.Get(userIDMetadataKey))
	if raw == "" {
		return 0, status.Errorf(codes.InvalidArgument, "%s metadata is required", userIDMetadataKey)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid %s: %s", userIDMetadataKey, raw))
	}
	return id, nil
}
