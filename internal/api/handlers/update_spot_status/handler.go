package update_spot_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/spots"
	"github.com/m04kA/SMC-ParkingService/internal/service/spots/models"
)

const (
	msgInvalidSpotNumber  = "некорректный номер места"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "статус должен быть available или unavailable"
	msgNotFound           = "парковочное место не найдено"
	msgOccupied           = "место занято активным бронированием"
)

type Handler struct {
	service SpotService
	logger  Logger
}

func NewHandler(service SpotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/spots/{spotNumber}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	number, err := handlers.PathInt64(r, "spotNumber")
	if err != nil {
		h.logger.Warn("PATCH /admin/spots/{number} - Invalid spot number: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpotNumber)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/spots/{number} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	spot, err := h.service.UpdateStatus(r.Context(), number, &req)
	if err != nil {
		switch {
		case errors.Is(err, spots.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/spots/{number} - Invalid status: spot_number=%d, status=%q", number, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, spots.ErrSpotNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, spots.ErrSpotOccupied):
			h.logger.Warn("PATCH /admin/spots/{number} - Spot occupied: spot_number=%d", number)
			handlers.RespondConflict(w, msgOccupied)

		default:
			h.logger.Error("PATCH /admin/spots/{number} - Failed to update spot: spot_number=%d, error=%v", number, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/spots/{number} - Spot status updated: spot_number=%d, status=%s", number, spot.Status)
	handlers.RespondJSON(w, http.StatusOK, spot)
}
