package update_tariff

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/tariffs"
	"github.com/m04kA/SMC-ParkingService/internal/service/tariffs/models"
)

const (
	msgInvalidTariffID    = "некорректный ID тарифа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется авторизация"
	msgInvalidInput       = "некорректные параметры тарифа"
	msgNotFound           = "тариф не найден"
	msgNameTaken          = "тариф с таким названием уже существует"
)

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

// Handle PATCH /api/v1/admin/tariffs/{tariffId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tariffID, err := handlers.PathInt64(r, "tariffId")
	if err != nil {
		h.logger.Warn("PATCH /admin/tariffs/{id} - Invalid tariff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTariffID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.UpdateTariffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/tariffs/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	tariff, err := h.service.Update(r.Context(), principal, tariffID, &req)
	if err != nil {
		switch {
		case errors.Is(err, tariffs.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/tariffs/{id} - Invalid input: tariff_id=%d, %v", tariffID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, tariffs.ErrTariffNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, tariffs.ErrTariffNameTaken):
			handlers.RespondConflict(w, msgNameTaken)

		default:
			h.logger.Error("PATCH /admin/tariffs/{id} - Failed to update tariff: tariff_id=%d, error=%v", tariffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/tariffs/{id} - Tariff updated: tariff_id=%d, staff_id=%d", tariffID, principal.UserID)
	handlers.RespondJSON(w, http.StatusOK, tariff)
}
