package get_user_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

const (
	msgUnauthorized  = "требуется авторизация"
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings
// Query params: active, paid (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	active, err := handlers.QueryBool(r, "active")
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid active parameter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	paid, err := handlers.QueryBool(r, "paid")
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid paid parameter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetUserBookings(r.Context(), principal, &models.GetUserBookingsRequest{
		Active: active,
		Paid:   paid,
	})
	if err != nil {
		h.logger.Error("GET /bookings - Failed to get user bookings: user_id=%d, error=%v", principal.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
