package delete_spot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/spots"
)

const (
	msgInvalidSpotNumber = "некорректный номер места"
	msgNotFound          = "парковочное место не найдено"
	msgOccupied          = "место занято активным бронированием"
	msgHasHistory        = "по месту есть история бронирований, переведите его в unavailable"
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

// Handle DELETE /api/v1/admin/spots/{spotNumber}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	number, err := handlers.PathInt64(r, "spotNumber")
	if err != nil {
		h.logger.Warn("DELETE /admin/spots/{number} - Invalid spot number: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpotNumber)
		return
	}

	if err := h.service.Delete(r.Context(), number); err != nil {
		switch {
		case errors.Is(err, spots.ErrSpotNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, spots.ErrSpotOccupied):
			h.logger.Warn("DELETE /admin/spots/{number} - Spot occupied: spot_number=%d", number)
			handlers.RespondConflict(w, msgOccupied)

		case errors.Is(err, spots.ErrSpotHasHistory):
			h.logger.Warn("DELETE /admin/spots/{number} - Spot has booking history: spot_number=%d", number)
			handlers.RespondConflict(w, msgHasHistory)

		default:
			h.logger.Error("DELETE /admin/spots/{number} - Failed to delete spot: spot_number=%d, error=%v", number, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/spots/{number} - Spot deleted: spot_number=%d", number)
	w.WriteHeader(http.StatusNoContent)
}
