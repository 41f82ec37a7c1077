package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mizdooni/internal/reservations/events"
	"mizdooni/internal/reservations/repository"
	"mizdooni/internal/reservations/service"
	"mizdooni/internal/reservations/validator"
	restaurantrepo "mizdooni/internal/restaurants/repository"
	"mizdooni/pkg/config"
	apperrors "mizdooni/pkg/errors"
	httputil "mizdooni/pkg/http"
	"mizdooni/pkg/logger"
	"mizdooni/pkg/model"
	"mizdooni/pkg/sequence"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter serves one 09:00-22:00 restaurant with a 4-seat and a 6-seat table.
// The clock is frozen at 2030-05-01 08:00 UTC.
func newTestRouter(t *testing.T) *httprouter.Router {
	t.Helper()
	cfg := config.Default(logger.Discard())

	registry := restaurantrepo.NewRegistry()
	require.NoError(t, registry.Register(&model.Restaurant{
		ID:      1,
		Name:    "Shandiz",
		Opening: model.MustTimeOfDay("09:00"),
		Closing: model.MustTimeOfDay("22:00"),
		Tables:  []*model.Table{},
	}, nil))
	for _, seats := range []int{4, 6} {
		_, err := registry.AddTable(1, seats, nil)
		require.NoError(t, err)
	}

	now := time.Date(2030, time.May, 1, 8, 0, 0, 0, time.UTC)
	engine := service.NewBookingEngine(
		registry,
		repository.NewLedger(),
		repository.NewNopStore(),
		events.NewNopPublisher(),
		sequence.NewAtomic(1),
		cfg,
		service.WithClock(func() time.Time { return now }),
	)

	router := httprouter.New()
	NewReservationHandler(engine, validator.NewReservationValidator(), cfg.Location, cfg.Log).RegisterRoutes(router)
	return router
}

func do(router http.Handler, method, path, user, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set(httputil.UserIDHeader, user)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, target))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apperrors.ErrorResponse {
	t.Helper()
	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestReserveAndCancelRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	rec := do(router, http.MethodPost, "/api/v1/restaurants/1/reservations", "ali", `{"people":3,"datetime":"2030-05-01 19:00"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created model.Reservation
	decodeData(t, rec, &created)
	assert.Equal(t, int64(1), created.Number)
	assert.Equal(t, 1, created.TableNumber)
	assert.Equal(t, model.StatusConfirmed, created.Status)

	rec = do(router, http.MethodGet, "/api/v1/restaurants/1/tables/1/reservations?date=2030-05-01", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var onTable []model.Reservation
	decodeData(t, rec, &onTable)
	require.Len(t, onTable, 1)

	rec = do(router, http.MethodGet, "/api/v1/users/ali/reservations", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []model.Reservation
	decodeData(t, rec, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, created.Number, mine[0].Number)

	rec = do(router, http.MethodDelete, "/api/v1/reservations/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var cancelled model.Reservation
	decodeData(t, rec, &cancelled)
	assert.Equal(t, model.StatusCancelled, cancelled.Status)

	rec = do(router, http.MethodGet, "/api/v1/reservations/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodDelete, "/api/v1/reservations/1", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReserve_Errors(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		path       string
		user       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"missing user header", "/api/v1/restaurants/1/reservations", "", `{"people":2,"datetime":"2030-05-01 19:00"}`, http.StatusBadRequest, apperrors.CodeInvalidInput},
		{"malformed user id", "/api/v1/restaurants/1/reservations", "ali rezaei", `{"people":2,"datetime":"2030-05-01 19:00"}`, http.StatusUnprocessableEntity, apperrors.CodeValidation},
		{"bad json", "/api/v1/restaurants/1/reservations", "ali", `{"people":`, http.StatusBadRequest, apperrors.CodeInvalidInput},
		{"bad datetime", "/api/v1/restaurants/1/reservations", "ali", `{"people":2,"datetime":"tomorrow"}`, http.StatusUnprocessableEntity, apperrors.CodeValidation},
		{"zero people", "/api/v1/restaurants/1/reservations", "ali", `{"people":0,"datetime":"2030-05-01 19:00"}`, http.StatusBadRequest, apperrors.CodeInvalidInput},
		{"past datetime", "/api/v1/restaurants/1/reservations", "ali", `{"people":2,"datetime":"2030-05-01 07:00"}`, http.StatusBadRequest, apperrors.CodeInvalidInput},
		{"outside hours", "/api/v1/restaurants/1/reservations", "ali", `{"people":2,"datetime":"2030-05-01 21:00"}`, http.StatusBadRequest, apperrors.CodeInvalidInput},
		{"too many people", "/api/v1/restaurants/1/reservations", "ali", `{"people":8,"datetime":"2030-05-01 19:00"}`, http.StatusConflict, apperrors.CodeNoTableAvailable},
		{"unknown restaurant", "/api/v1/restaurants/9/reservations", "ali", `{"people":2,"datetime":"2030-05-01 19:00"}`, http.StatusNotFound, apperrors.CodeNotFound},
		{"non-numeric restaurant", "/api/v1/restaurants/abc/reservations", "ali", `{"people":2,"datetime":"2030-05-01 19:00"}`, http.StatusBadRequest, apperrors.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router, http.MethodPost, tt.path, tt.user, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
		})
	}
}

func TestAvailableTimes(t *testing.T) {
	router := newTestRouter(t)

	rec := do(router, http.MethodPost, "/api/v1/restaurants/1/reservations", "ali", `{"people":5,"datetime":"2030-05-01 19:00"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(router, http.MethodGet, "/api/v1/restaurants/1/available-times?people=5&date=2030-05-01", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Date           string   `json:"date"`
		People         int      `json:"people"`
		AvailableTimes []string `json:"available_times"`
	}
	decodeData(t, rec, &resp)
	assert.Equal(t, "2030-05-01", resp.Date)
	assert.Equal(t, 5, resp.People)
	assert.Len(t, resp.AvailableTimes, 17)
	assert.NotContains(t, resp.AvailableTimes, "19:00")
	assert.Contains(t, resp.AvailableTimes, "17:00")

	rec = do(router, http.MethodGet, "/api/v1/restaurants/1/available-times?people=2&date=2030-05-01", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &resp)
	assert.Len(t, resp.AvailableTimes, 23, "the 4-seat table is still free all day")

	rec = do(router, http.MethodGet, "/api/v1/restaurants/1/available-times?people=2&date=2030-04-30", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodGet, "/api/v1/restaurants/1/available-times?people=2&date=01-05-2030", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCustomerReservations_HasReserved(t *testing.T) {
	router := newTestRouter(t)

	rec := do(router, http.MethodGet, "/api/v1/users/ali/reservations?restaurant_id=1", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp HasReservedResponse
	decodeData(t, rec, &resp)
	assert.False(t, resp.Reserved)
	assert.Equal(t, int64(1), resp.RestaurantID)

	rec = do(router, http.MethodGet, "/api/v1/users/ali/reservations?restaurant_id=5", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetByNumber_NotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := do(router, http.MethodGet, "/api/v1/reservations/77", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apperrors.CodeNotFound, decodeError(t, rec).Code)

	rec = do(router, http.MethodGet, "/api/v1/reservations/seventy", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
