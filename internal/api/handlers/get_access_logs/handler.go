package get_access_logs

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/accesslogs/models"
)

const msgInvalidParams = "некорректные параметры запроса"

type Handler struct {
	service AccessLogService
	logger  Logger
}

func NewHandler(service AccessLogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/access-logs
// Query params: granted, bookingId, page, pageSize (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := toServiceRequest(r)
	if err != nil {
		h.logger.Warn("GET /admin/access-logs - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /admin/access-logs - Failed to list access logs: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func toServiceRequest(r *http.Request) (*models.ListAccessLogsRequest, error) {
	req := &models.ListAccessLogsRequest{}

	var err error
	if req.Granted, err = handlers.QueryBool(r, "granted"); err != nil {
		return nil, err
	}
	if req.BookingID, err = handlers.QueryInt64(r, "bookingId"); err != nil {
		return nil, err
	}
	if req.Page, err = handlers.QueryInt(r, "page"); err != nil {
		return nil, err
	}
	if req.PageSize, err = handlers.QueryInt(r, "pageSize"); err != nil {
		return nil, err
	}

	return req, nil
}
