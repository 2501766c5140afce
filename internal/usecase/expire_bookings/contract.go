package expire_bookings

import (
	"context"
	"time"

	finishBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/finish_booking"
)

// BookingRepository интерфейс поиска кандидатов на завершение
type BookingRepository interface {
	ListExpiredActiveIDs(ctx context.Context, now time.Time) ([]int64, error)
	ListUnpaidActiveIDs(ctx context.Context, startedBefore time.Time) ([]int64, error)
}

// BookingFinisher переводит одно бронирование, повторно проверяя условие под блокировкой
type BookingFinisher interface {
	Expire(ctx context.Context, bookingID int64, now time.Time, grace time.Duration) (*finishBooking.Response, error)
}

// Metrics интерфейс метрик прохода
type Metrics interface {
	ObserveSweep(completed, cancelled, skipped, failed int, duration time.Duration)
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
