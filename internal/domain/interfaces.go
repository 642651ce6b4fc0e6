package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
}

type ItemRepository interface {
	CreateItem(ctx context.Context, item *models.Item) error
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	DeleteItem(ctx context.Context, id int64) error
	GetItemsByOwner(ctx context.Context, ownerID int64, page *models.Page) ([]*models.Item, error)
	SearchAvailableItems(ctx context.Context, text string, page *models.Page) ([]*models.Item, error)
	GetItemsByRequest(ctx context.Context, requestID int64) ([]*models.Item, error)
	GetRequestLinkedItems(ctx context.Context) ([]*models.Item, error)
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, from, to models.BookingStatus) error
	ListBookings(ctx context.Context, query models.BookingQuery) ([]*models.Booking, error)
	GetItemBookings(ctx context.Context, itemID int64) ([]*models.Booking, error)
	HasCompletedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetItemComments(ctx context.Context, itemID int64) ([]*models.Comment, error)
}

type RequestRepository interface {
	CreateRequest(ctx context.Context, request *models.ItemRequest) error
	GetRequestByID(ctx context.Context, id int64) (*models.ItemRequest, error)
	GetRequestsByRequester(ctx context.Context, userID int64) ([]*models.ItemRequest, error)
	GetRequestsExcept(ctx context.Context, userID int64, page models.Page) ([]*models.ItemRequest, error)
}

// Repository is the full entity store.
type Repository interface {
	UserRepository
	ItemRepository
	BookingRepository
	CommentRepository
	RequestRepository
}

type RateLimiter interface {
	CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type UserService interface {
	CreateUser(ctx context.Context, name, email string) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, id int64, update models.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type ItemService interface {
	CreateItem(ctx context.Context, ownerID int64, item *models.Item) (*models.Item, error)
	UpdateItem(ctx context.Context, userID, itemID int64, update models.ItemUpdate) (*models.Item, error)
	DeleteItem(ctx context.Context, userID, itemID int64) error
	GetItemView(ctx context.Context, userID, itemID int64) (*models.ItemView, error)
	ListOwnerItemViews(ctx context.Context, userID int64, from, size *int) ([]*models.ItemView, error)
	SearchItems(ctx context.Context, userID int64, text string, from, size *int) ([]*models.Item, error)
	WriteComment(ctx context.Context, userID, itemID int64, text string) (*models.Comment, error)
}

type BookingService interface {
	CreateBooking(ctx context.Context, userID, itemID int64, start, end time.Time) (*models.Booking, error)
	DecideBooking(ctx context.Context, userID, bookingID int64, approve bool) (*models.Booking, error)
	GetBooking(ctx context.Context, userID, bookingID int64) (*models.Booking, error)
	ListBookings(ctx context.Context, userID int64, role models.BookingRole, state string, from, size *int) ([]*models.Booking, error)
}

type RequestService interface {
	CreateRequest(ctx context.Context, userID int64, description string) (*models.ItemRequest, error)
	ListOwnRequests(ctx context.Context, userID int64) ([]*models.RequestView, error)
	ListOtherRequests(ctx context.Context, userID int64, from, size *int) ([]*models.RequestView, error)
	GetRequestByID(ctx context.Context, userID, requestID int64) (*models.RequestView, error)
}
