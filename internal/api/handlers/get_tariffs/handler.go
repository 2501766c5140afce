package get_tariffs

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
)

type Handler struct {
	service         TariffService
	includeInactive bool
	logger          Logger
}

// NewHandler создает handler списка активных тарифов (для пользователей)
func NewHandler(service TariffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// NewAdminHandler создает handler списка всех тарифов, включая неактивные
func NewAdminHandler(service TariffService, logger Logger) *Handler {
	return &Handler{
		service:         service,
		includeInactive: true,
		logger:          logger,
	}
}

// Handle GET /api/v1/tariffs и GET /api/v1/admin/tariffs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tariffs, err := h.service.List(r.Context(), h.includeInactive)
	if err != nil {
		h.logger.Error("GET %s - Failed to list tariffs: %v", r.URL.Path, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, tariffs)
}
