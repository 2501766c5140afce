package validate_qr

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	validateQR "github.com/m04kA/SMC-ParkingService/internal/usecase/validate_qr"
)

const msgInvalidRequestBody = "некорректное тело запроса"

// maxQRBodyBytes ограничение размера тела; более длинные данные обрезаются и не проходят разбор
const maxQRBodyBytes = 16 << 10

var deniedMessages = map[domain.AccessFailureReason]string{
	domain.ReasonInvalidFormat:    "некорректный QR-код",
	domain.ReasonBookingNotFound:  "бронирование не найдено",
	domain.ReasonBookingInactive:  "бронирование не активно",
	domain.ReasonBookingUnpaid:    "бронирование не оплачено",
	domain.ReasonInvalidSignature: "недействительная подпись QR-кода",
	domain.ReasonExpired:          "QR-код вне периода бронирования",
}

type Handler struct {
	useCase ValidateQRUseCase
	logger  Logger
}

func NewHandler(useCase ValidateQRUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/access/validate
// Тело - конверт {"qrData": "..."} или сами данные QR-кода в любом виде.
// Каждая попытка попадает в журнал; любой отказ в доступе отвечает 403 с кодом причины
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxQRBodyBytes))
	if err != nil {
		h.logger.Warn("POST /admin/access/validate - Failed to read request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &validateQR.Request{Raw: extractQRData(body)})
	if err != nil {
		reason, ok := validateQR.ReasonFor(err)
		if !ok {
			h.logger.Error("POST /admin/access/validate - Validation failed: %v", err)
			handlers.RespondInternalError(w)
			return
		}

		h.logger.Warn("POST /admin/access/validate - Access denied: reason=%s", reason)
		handlers.RespondJSON(w, http.StatusForbidden, DeniedResponse{
			Code:    http.StatusForbidden,
			Message: deniedMessages[reason],
			Reason:  string(reason),
		})
		return
	}

	h.logger.Info("POST /admin/access/validate - Access granted: booking_id=%d, spot_number=%d",
		result.BookingID, result.SpotNumber)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// extractQRData достает данные из конверта qrData, иначе возвращает тело как есть
func extractQRData(body []byte) string {
	var envelope ValidateRequest
	if err := json.Unmarshal(body, &envelope); err == nil && strings.TrimSpace(envelope.QRData) != "" {
		return envelope.QRData
	}
	return string(body)
}
