package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"mizdooni/pkg/model"
)

// APIError is a non-2xx answer from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

type AvailableTimes struct {
	RestaurantID   int64             `json:"restaurant_id"`
	Date           string            `json:"date"`
	People         int               `json:"people"`
	AvailableTimes []model.TimeOfDay `json:"available_times"`
}

// ReservationsClient is a typed client for the reservation API.
type ReservationsClient struct {
	http *HttpClient
}

func NewReservationsClient(baseURL string) *ReservationsClient {
	return &ReservationsClient{http: NewHttpClient(baseURL)}
}

// WithUser sets the X-User-ID header sent with every request.
func (c *ReservationsClient) WithUser(userID string) *ReservationsClient {
	c.http.Headers["X-User-ID"] = userID
	return c
}

func (c *ReservationsClient) RegisterRestaurant(ctx context.Context, name, opening, closing string) (*model.Restaurant, error) {
	var out model.Restaurant
	err := c.do(ctx, func() (*Response, error) {
		return c.http.POST(ctx, "/api/v1/restaurants", model.RestaurantCreate{Name: name, Opening: opening, Closing: closing})
	}, &out)
	return &out, err
}

func (c *ReservationsClient) AddTable(ctx context.Context, restaurantID int64, seats int) (*model.Table, error) {
	var out model.Table
	err := c.do(ctx, func() (*Response, error) {
		return c.http.POST(ctx, fmt.Sprintf("/api/v1/restaurants/%d/tables", restaurantID), model.TableCreate{Seats: seats})
	}, &out)
	return &out, err
}

func (c *ReservationsClient) AvailableTimes(ctx context.Context, restaurantID int64, people int, date time.Time) (*AvailableTimes, error) {
	query := url.Values{}
	query.Set("people", strconv.Itoa(people))
	query.Set("date", date.Format("2006-01-02"))

	var out AvailableTimes
	err := c.do(ctx, func() (*Response, error) {
		return c.http.GET(ctx, fmt.Sprintf("/api/v1/restaurants/%d/available-times?%s", restaurantID, query.Encode()))
	}, &out)
	return &out, err
}

func (c *ReservationsClient) Reserve(ctx context.Context, restaurantID int64, people int, start time.Time) (*model.Reservation, error) {
	req := model.ReservationRequest{
		People:   people,
		DateTime: start.Format("2006-01-02 15:04"),
	}

	var out model.Reservation
	err := c.do(ctx, func() (*Response, error) {
		return c.http.POST(ctx, fmt.Sprintf("/api/v1/restaurants/%d/reservations", restaurantID), req)
	}, &out)
	return &out, err
}

func (c *ReservationsClient) Cancel(ctx context.Context, number int64) (*model.Reservation, error) {
	var out model.Reservation
	err := c.do(ctx, func() (*Response, error) {
		return c.http.DELETE(ctx, fmt.Sprintf("/api/v1/reservations/%d", number))
	}, &out)
	return &out, err
}

func (c *ReservationsClient) CustomerReservations(ctx context.Context, userID string) ([]model.Reservation, error) {
	var out []model.Reservation
	err := c.do(ctx, func() (*Response, error) {
		return c.http.GET(ctx, "/api/v1/users/"+url.PathEscape(userID)+"/reservations")
	}, &out)
	return out, err
}

func (c *ReservationsClient) do(ctx context.Context, call func() (*Response, error), target any) error {
	resp, err := call()
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return &APIError{StatusCode: resp.StatusCode, Message: GetErrorMessage(resp)}
	}
	return resp.DecodeData(target)
}
