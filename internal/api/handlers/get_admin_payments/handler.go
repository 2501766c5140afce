package get_admin_payments

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/payments/models"
)

const msgInvalidParams = "некорректные параметры запроса"

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/payments
// Query params: page, pageSize (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	page, err := handlers.QueryInt(r, "page")
	if err != nil {
		h.logger.Warn("GET /admin/payments - Invalid page: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	pageSize, err := handlers.QueryInt(r, "pageSize")
	if err != nil {
		h.logger.Warn("GET /admin/payments - Invalid pageSize: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListAll(r.Context(), &models.ListPaymentsRequest{Page: page, PageSize: pageSize})
	if err != nil {
		h.logger.Error("GET /admin/payments - Failed to list payments: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
