package cancel_booking

import (
	"context"

	finishBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/finish_booking"
)

type FinishBookingUseCase interface {
	Execute(ctx context.Context, req *finishBooking.Request) (*finishBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
