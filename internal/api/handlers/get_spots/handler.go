package get_spots

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
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

// Handle GET /api/v1/spots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spots, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /spots - Failed to list spots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, spots)
}
