package get_tariff_history

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
)

const msgInvalidTariffID = "некорректный ID тарифа"

type Handler struct {
	service TariffService
	logger  Logger
}

func NewHandler(service TariffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/tariffs/history
// Query params: tariffId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tariffID, err := handlers.QueryInt64(r, "tariffId")
	if err != nil {
		h.logger.Warn("GET /admin/tariffs/history - Invalid tariff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTariffID)
		return
	}

	history, err := h.service.History(r.Context(), tariffID)
	if err != nil {
		h.logger.Error("GET /admin/tariffs/history - Failed to get price history: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, history)
}
