package get_admin_cars

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
)

const msgInvalidParams = "некорректные параметры запроса"

type Handler struct {
	service CarService
	logger  Logger
}

func NewHandler(service CarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/cars
// Query params: includeDeleted (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	includeDeleted, err := handlers.QueryBool(r, "includeDeleted")
	if err != nil {
		h.logger.Warn("GET /admin/cars - Invalid includeDeleted: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	cars, err := h.service.ListAll(r.Context(), includeDeleted != nil && *includeDeleted)
	if err != nil {
		h.logger.Error("GET /admin/cars - Failed to list cars: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, cars)
}
