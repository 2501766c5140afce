package bulk_create_spots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/spots"
	"github.com/m04kA/SMC-ParkingService/internal/service/spots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "список мест пуст или слишком велик"
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

// Handle POST /api/v1/admin/spots/bulk
// Частичный успех отвечает 207 со списками созданных мест и ошибок
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.BulkCreateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/spots/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.BulkCreate(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, spots.ErrInvalidInput):
			h.logger.Warn("POST /admin/spots/bulk - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/spots/bulk - Failed to create spots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusCreated
	if result.HasErrors() {
		status = http.StatusMultiStatus
	}

	h.logger.Info("POST /admin/spots/bulk - Spots created: created=%d, failed=%d", len(result.Created), len(result.Errors))
	handlers.RespondJSON(w, status, result)
}
