package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	reservationerrors "mizdooni/internal/reservations/errors"
	"mizdooni/internal/reservations/service"
	"mizdooni/internal/reservations/validator"
	apperrors "mizdooni/pkg/errors"
	httputil "mizdooni/pkg/http"
	"mizdooni/pkg/logger"
	"mizdooni/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type AvailableTimesResponse struct {
	RestaurantID   int64             `json:"restaurant_id"`
	Date           string            `json:"date"`
	People         int               `json:"people"`
	AvailableTimes []model.TimeOfDay `json:"available_times"`
}

type HasReservedResponse struct {
	UserID       string `json:"user_id"`
	RestaurantID int64  `json:"restaurant_id"`
	Reserved     bool   `json:"reserved"`
}

type ReservationHandler struct {
	engine    service.BookingEngine
	validator *validator.ReservationValidator
	loc       *time.Location
	log       *logger.Logger
}

func NewReservationHandler(engine service.BookingEngine, validator *validator.ReservationValidator, loc *time.Location, log *logger.Logger) *ReservationHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ReservationHandler{
		engine:    engine,
		validator: validator,
		loc:       loc,
		log:       log,
	}
}

func (h *ReservationHandler) AvailableTimes(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	restaurantID, err := httputil.ParseInt64Param("restaurant id", ps.ByName("id"))
	if err != nil {
		h.writeError(w, "AvailableTimes", err)
		return
	}

	query := r.URL.Query()
	people, err := httputil.ParseIntParam("people", query.Get("people"))
	if err != nil {
		h.writeError(w, "AvailableTimes", err)
		return
	}
	date, err := httputil.ParseDate(query.Get("date"), h.loc)
	if err != nil {
		h.writeError(w, "AvailableTimes", err)
		return
	}

	times, err := h.engine.AvailableTimes(r.Context(), restaurantID, people, date)
	if err != nil {
		h.writeError(w, "AvailableTimes", err)
		return
	}

	response := AvailableTimesResponse{
		RestaurantID:   restaurantID,
		Date:           date.Format(httputil.DateLayout),
		People:         people,
		AvailableTimes: times,
	}
	if err := httputil.WriteSuccess(w, response); err != nil {
		h.log.Error("failed to write success response", "handler", "AvailableTimes", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) Reserve(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	restaurantID, err := httputil.ParseInt64Param("restaurant id", ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Reserve", err)
		return
	}

	userID, err := h.userID(r)
	if err != nil {
		h.writeError(w, "Reserve", err)
		return
	}

	var req model.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Reserve", apperrors.InvalidInput("Invalid request body"))
		return
	}
	if err := h.validator.ValidateRequest(&req); err != nil {
		h.writeError(w, "Reserve", validationError("Reservation validation failed", err))
		return
	}
	start, err := httputil.ParseDateTime(req.DateTime, h.loc)
	if err != nil {
		h.writeError(w, "Reserve", err)
		return
	}

	reservation, err := h.engine.ReserveTable(r.Context(), service.ReserveRequest{
		UserID:       userID,
		RestaurantID: restaurantID,
		People:       req.People,
		Start:        start,
	})
	if err != nil {
		h.writeError(w, "Reserve", err)
		return
	}

	if err := httputil.WriteCreated(w, reservation); err != nil {
		h.log.Error("failed to write created response", "handler", "Reserve", "operation", "WriteCreated", "error", err)
	}
}

func (h *ReservationHandler) TableReservations(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	restaurantID, err := httputil.ParseInt64Param("restaurant id", ps.ByName("id"))
	if err != nil {
		h.writeError(w, "TableReservations", err)
		return
	}
	tableNumber, err := httputil.ParseIntParam("table number", ps.ByName("table"))
	if err != nil {
		h.writeError(w, "TableReservations", err)
		return
	}
	date, err := httputil.ParseDate(r.URL.Query().Get("date"), h.loc)
	if err != nil {
		h.writeError(w, "TableReservations", err)
		return
	}

	reservations, err := h.engine.Reservations(r.Context(), restaurantID, tableNumber, date)
	if err != nil {
		h.writeError(w, "TableReservations", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservations); err != nil {
		h.log.Error("failed to write success response", "handler", "TableReservations", "operation", "WriteSuccess", "error", err)
	}
}

// CustomerReservations lists a customer's confirmed reservations. With ?restaurant_id it
// instead answers whether the customer has dined there.
func (h *ReservationHandler) CustomerReservations(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := ps.ByName("user")

	if raw := r.URL.Query().Get("restaurant_id"); raw != "" {
		restaurantID, err := httputil.ParseInt64Param("restaurant_id", raw)
		if err != nil {
			h.writeError(w, "CustomerReservations", err)
			return
		}
		reserved, err := h.engine.HasReserved(r.Context(), userID, restaurantID)
		if err != nil {
			h.writeError(w, "CustomerReservations", err)
			return
		}
		response := HasReservedResponse{
			UserID:       userID,
			RestaurantID: restaurantID,
			Reserved:     reserved,
		}
		if err := httputil.WriteSuccess(w, response); err != nil {
			h.log.Error("failed to write success response", "handler", "CustomerReservations", "operation", "WriteSuccess", "error", err)
		}
		return
	}

	reservations, err := h.engine.CustomerReservations(r.Context(), userID)
	if err != nil {
		h.writeError(w, "CustomerReservations", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservations); err != nil {
		h.log.Error("failed to write success response", "handler", "CustomerReservations", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) GetByNumber(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	number, err := httputil.ParseInt64Param("reservation number", ps.ByName("number"))
	if err != nil {
		h.writeError(w, "GetByNumber", err)
		return
	}

	reservation, err := h.engine.GetReservation(r.Context(), number)
	if err != nil {
		h.writeError(w, "GetByNumber", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservation); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByNumber", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	number, err := httputil.ParseInt64Param("reservation number", ps.ByName("number"))
	if err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	reservation, err := h.engine.CancelReservation(r.Context(), number)
	if err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservation); err != nil {
		h.log.Error("failed to write success response", "handler", "Cancel", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) userID(r *http.Request) (string, error) {
	userID := httputil.ExtractUserID(r)
	if userID == "" {
		return "", apperrors.WrapInvalidInput(reservationerrors.ErrMissingUser, "X-User-ID header is required")
	}
	if err := h.validator.ValidateUserID(userID); err != nil {
		return "", validationError("Invalid user id", err)
	}
	return userID, nil
}

func (h *ReservationHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/restaurants/:id/available-times", h.AvailableTimes)
	router.POST("/api/v1/restaurants/:id/reservations", h.Reserve)
	router.GET("/api/v1/restaurants/:id/tables/:table/reservations", h.TableReservations)
	router.GET("/api/v1/users/:user/reservations", h.CustomerReservations)
	router.GET("/api/v1/reservations/:number", h.GetByNumber)
	router.DELETE("/api/v1/reservations/:number", h.Cancel)
}

func validationError(message string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation(message, map[string]any{"errors": verrs})
	}
	return apperrors.Validation(message, map[string]any{"error": err.Error()})
}
