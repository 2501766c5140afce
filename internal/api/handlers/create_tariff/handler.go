package create_tariff

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/tariffs"
	"github.com/m04kA/SMC-ParkingService/internal/service/tariffs/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры тарифа"
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

// Handle POST /api/v1/admin/tariffs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTariffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/tariffs - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	tariff, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, tariffs.ErrInvalidInput):
			h.logger.Warn("POST /admin/tariffs - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, tariffs.ErrTariffNameTaken):
			h.logger.Warn("POST /admin/tariffs - Name taken: name=%q", req.Name)
			handlers.RespondConflict(w, msgNameTaken)

		default:
			h.logger.Error("POST /admin/tariffs - Failed to create tariff: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/tariffs - Tariff created: tariff_id=%d, name=%q", tariff.ID, tariff.Name)
	handlers.RespondJSON(w, http.StatusCreated, tariff)
}
