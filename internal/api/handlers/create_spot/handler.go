package create_spot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/spots"
	"github.com/m04kA/SMC-ParkingService/internal/service/spots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректный номер или статус места"
	msgAlreadyExists      = "место с таким номером уже существует"
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

// Handle POST /api/v1/admin/spots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSpotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/spots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	spot, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, spots.ErrInvalidInput):
			h.logger.Warn("POST /admin/spots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, spots.ErrSpotAlreadyExists):
			h.logger.Warn("POST /admin/spots - Spot already exists: spot_number=%d", req.SpotNumber)
			handlers.RespondConflict(w, msgAlreadyExists)

		default:
			h.logger.Error("POST /admin/spots - Failed to create spot: spot_number=%d, error=%v", req.SpotNumber, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/spots - Spot created: spot_number=%d", spot.SpotNumber)
	handlers.RespondJSON(w, http.StatusCreated, spot)
}
