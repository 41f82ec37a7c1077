package handler

import (
	"encoding/json"
	"net/http"

	"mizdooni/internal/restaurants/service"
	apperrors "mizdooni/pkg/errors"
	httputil "mizdooni/pkg/http"
	"mizdooni/pkg/logger"
	"mizdooni/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type RestaurantHandler struct {
	service service.RestaurantService
	log     *logger.Logger
}

func NewRestaurantHandler(service service.RestaurantService, log *logger.Logger) *RestaurantHandler {
	return &RestaurantHandler{
		service: service,
		log:     log,
	}
}

func (h *RestaurantHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.RestaurantCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Register", apperrors.InvalidInput("Invalid request body"))
		return
	}

	restaurant, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Register", err)
		return
	}

	if err := httputil.WriteCreated(w, restaurant); err != nil {
		h.log.Error("failed to write created response", "handler", "Register", "operation", "WriteCreated", "error", err)
	}
}

func (h *RestaurantHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	restaurants, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, restaurants); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RestaurantHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ParseInt64Param("restaurant id", ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	restaurant, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, restaurant); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RestaurantHandler) UpdateHours(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ParseInt64Param("restaurant id", ps.ByName("id"))
	if err != nil {
		h.writeError(w, "UpdateHours", err)
		return
	}

	var req model.HoursUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "UpdateHours", apperrors.InvalidInput("Invalid request body"))
		return
	}

	restaurant, err := h.service.UpdateHours(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, "UpdateHours", err)
		return
	}

	if err := httputil.WriteSuccess(w, restaurant); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateHours", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RestaurantHandler) AddTable(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ParseInt64Param("restaurant id", ps.ByName("id"))
	if err != nil {
		h.writeError(w, "AddTable", err)
		return
	}

	var req model.TableCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "AddTable", apperrors.InvalidInput("Invalid request body"))
		return
	}

	table, err := h.service.AddTable(r.Context(), id, req.Seats)
	if err != nil {
		h.writeError(w, "AddTable", err)
		return
	}

	if err := httputil.WriteCreated(w, table); err != nil {
		h.log.Error("failed to write created response", "handler", "AddTable", "operation", "WriteCreated", "error", err)
	}
}

func (h *RestaurantHandler) Tables(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ParseInt64Param("restaurant id", ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Tables", err)
		return
	}

	tables, err := h.service.Tables(r.Context(), id)
	if err != nil {
		h.writeError(w, "Tables", err)
		return
	}

	if err := httputil.WriteSuccess(w, tables); err != nil {
		h.log.Error("failed to write success response", "handler", "Tables", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RestaurantHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *RestaurantHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/restaurants", h.Register)
	router.GET("/api/v1/restaurants", h.List)
	router.GET("/api/v1/restaurants/:id", h.GetByID)
	router.PATCH("/api/v1/restaurants/:id/hours", h.UpdateHours)
	router.POST("/api/v1/restaurants/:id/tables", h.AddTable)
	router.GET("/api/v1/restaurants/:id/tables", h.Tables)
}
