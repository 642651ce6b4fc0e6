package api

import (
	"net/http"
	"strconv"
	"strings"

	"shareit/internal/models"
)

func (s *HTTPServer) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var body userRequest
	if err := s.decodeBody(w, r, &body); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	user, err := s.svc.Users.CreateUser(r.Context(), body.Name, body.Email)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.svc.Users.ListUsers(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *HTTPServer) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	user, err := s.svc.Users.GetUser(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	var body userPatch
	if err := s.decodeBody(w, r, &body); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	user, err := s.svc.Users.UpdateUser(r.Context(), id, models.UserUpdate{Name: body.Name, Email: body.Email})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	if err := s.svc.Users.DeleteUser(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *HTTPServer) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	var body itemRequest
	if err := s.decodeBody(w, r, &body); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	item, err := s.svc.Items.CreateItem(r.Context(), userID, &models.Item{
		Name:        body.Name,
		Description: body.Description,
		Available:   *body.Available,
		RequestID:   body.RequestID,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	itemID, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	var body itemPatch
	if err := s.decodeBody(w, r, &body); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	item, err := s.svc.Items.UpdateItem(r.Context(), userID, itemID, models.ItemUpdate{
		Name:        body.Name,
		Description: body.Description,
		Available:   body.Available,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleGetItem(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	itemID, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	view, err := s.svc.Items.GetItemView(r.Context(), userID, itemID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handleListOwnerItems(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	from, size, err := pageParams(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	views, err := s.svc.Items.ListOwnerItemViews(r.Context(), userID, from, size)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *HTTPServer) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	from, size, err := pageParams(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	items, err := s.svc.Items.SearchItems(r.Context(), userID, r.URL.Query().Get("text"), from, size)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *HTTPServer) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	itemID, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	if err := s.svc.Items.DeleteItem(r.Context(), userID, itemID); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *HTTPServer) handleWriteComment(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	itemID, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	var body commentRequest
	if err := s.decodeBody(w, r, &body); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	comment, err := s.svc.Items.WriteComment(r.Context(), userID, itemID, body.Text)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	var body CreateBookingRequest
	if err := s.decodeBody(w, r, &body); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	booking, err := s.svc.Bookings.CreateBooking(r.Context(), userID, body.ItemID, body.Start.Time, body.End.Time)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingReply(booking))
}

func (s *HTTPServer) handleDecideBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	bookingID, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	approved, err := strconv.ParseBool(strings.TrimSpace(r.URL.Query().Get("approved")))
	if err != nil {
		writeError(w, http.StatusBadRequest, "approved must be true or false")
		return
	}

	booking, err := s.svc.Bookings.DecideBooking(r.Context(), userID, bookingID, approved)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingReply(booking))
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	bookingID, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	booking, err := s.svc.Bookings.GetBooking(r.Context(), userID, bookingID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingReply(booking))
}

// handleListBookings serves both the booker and the owner listing. State defaults to ALL.
func (s *HTTPServer) handleListBookings(role models.BookingRole) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromRequest(r)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		from, size, err := pageParams(r)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		state := r.URL.Query().Get("state")
		if state == "" {
			state = models.StateAll.String()
		}

		bookings, err := s.svc.Bookings.ListBookings(r.Context(), userID, role, state, from, size)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toBookingReplies(bookings))
	}
}

func (s *HTTPServer) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	var body itemRequestCreate
	if err := s.decodeBody(w, r, &body); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	request, err := s.svc.Requests.CreateRequest(r.Context(), userID, body.Description)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.RequestView{ItemRequest: *request, Items: []models.Item{}})
}

func (s *HTTPServer) handleListOwnRequests(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	views, err := s.svc.Requests.ListOwnRequests(r.Context(), userID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *HTTPServer) handleListOtherRequests(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	from, size, err := pageParams(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	views, err := s.svc.Requests.ListOtherRequests(r.Context(), userID, from, size)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *HTTPServer) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	requestID, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	view, err := s.svc.Requests.GetRequestByID(r.Context(), userID, requestID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
