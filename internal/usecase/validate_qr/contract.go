package validate_qr

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/qrsign"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetDetailsByID(ctx context.Context, id int64) (*domain.BookingDetails, error)
}

// AccessLogRepository журнал попыток доступа
type AccessLogRepository interface {
	Create(ctx context.Context, entry *domain.QRAccessLogEntry) (*domain.QRAccessLogEntry, error)
}

// Verifier проверяет подпись QR-кода
type Verifier interface {
	Verify(c qrsign.Claims, signature string) bool
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикует доменные события (fire-and-forget)
type EventPublisher interface {
	Publish(event domain.Event)
}

// Metrics интерфейс метрик доступа
type Metrics interface {
	IncQRAccess(granted bool, reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
