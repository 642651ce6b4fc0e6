package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"
	"shareit/internal/service"
)

// testClock is fixed so that booking windows are predictable.
var testClock = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	db       *database.DB
	services Services
	items    *service.ItemService
	bookings *service.BookingService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zerolog.New(io.Discard)
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	now := func() time.Time { return testClock }
	items := service.NewItemService(db, nil, &logger)
	items.SetClock(now)
	bookings := service.NewBookingService(db, nil, &logger)
	bookings.SetClock(now)
	requests := service.NewRequestService(db, nil, &logger)
	requests.SetClock(now)

	return &testEnv{
		db: db,
		services: Services{
			Users:    service.NewUserService(db, &logger),
			Items:    items,
			Bookings: bookings,
			Requests: requests,
		},
		items:    items,
		bookings: bookings,
	}
}

func newTestHTTPServer(t *testing.T, env *testEnv, cfg config.APIConfig, budget domain.RateLimiter) *httptest.Server {
	t.Helper()
	logger := zerolog.New(io.Discard)
	sharing := config.SharingConfig{RateLimitRequests: 3, RateLimitWindow: 60}
	srv := NewHTTPServer(&cfg, sharing, env.services, budget, &logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, userID int64, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set(models.UserIDHeader, strconv.FormatInt(userID, 10))
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}
