package payments

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// PaymentRepository интерфейс репозитория оплат
type PaymentRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]*domain.PaymentDetails, error)
	List(ctx context.Context, limit, offset int) ([]*domain.PaymentDetails, int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
