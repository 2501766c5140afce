package run_sweep

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/usecase/expire_bookings"
)

// SweepResponse итоги прохода
type SweepResponse struct {
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

func fromResult(r expire_bookings.Result) SweepResponse {
	return SweepResponse{
		Completed: r.Completed,
		Cancelled: r.Cancelled,
		Skipped:   r.Skipped,
		Failed:    r.Failed,
	}
}

type Handler struct {
	useCase ExpireBookingsUseCase
	logger  Logger
}

func NewHandler(useCase ExpireBookingsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/bookings/sweep
// Ручной запуск прохода по просроченным бронированиям
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /admin/bookings/sweep - Sweep failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/bookings/sweep - Sweep done: completed=%d, cancelled=%d, skipped=%d, failed=%d",
		result.Completed, result.Cancelled, result.Skipped, result.Failed)
	handlers.RespondJSON(w, http.StatusOK, fromResult(result))
}
