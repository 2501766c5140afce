package issue_qr

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/qrsign"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetDetailsByID(ctx context.Context, id int64) (*domain.BookingDetails, error)
}

// Signer подписывает данные QR-кода
type Signer interface {
	Issue(c qrsign.Claims) string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
