package expire_bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// UseCase проход по активным бронированиям: завершение истекших и отмена неоплаченных
type UseCase struct {
	bookingRepo  BookingRepository
	finisher     BookingFinisher
	unpaidGrace  time.Duration
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// unpaidGrace <= 0 заменяется значением по умолчанию (20 минут)
func NewUseCase(
	bookingRepo BookingRepository,
	finisher BookingFinisher,
	unpaidGrace time.Duration,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if unpaidGrace <= 0 {
		unpaidGrace = domain.DefaultUnpaidGrace
	}

	return &UseCase{
		bookingRepo:  bookingRepo,
		finisher:     finisher,
		unpaidGrace:  unpaidGrace,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет один проход
// Каждое бронирование переводится в своей транзакции; ошибка по одному не прерывает проход
// Отмена контекста прекращает обработку оставшихся кандидатов (они будут обработаны на следующем проходе)
func (uc *UseCase) Execute(ctx context.Context) (Result, error) {
	started := uc.timeProvider.Now()
	now := started.UTC()

	var result Result
	defer func() {
		uc.metrics.ObserveSweep(result.Completed, result.Cancelled, result.Skipped, result.Failed,
			uc.timeProvider.Now().Sub(started))
	}()

	// Сначала истекшие: при пересечении условий бронирование должно стать completed
	expired, err := uc.bookingRepo.ListExpiredActiveIDs(ctx, now)
	if err != nil {
		uc.logger.Error("ExpireBookings: failed to list expired bookings: %v", err)
		return result, fmt.Errorf("%w: expired: %v", ErrListCandidates, err)
	}

	unpaid, err := uc.bookingRepo.ListUnpaidActiveIDs(ctx, now.Add(-uc.unpaidGrace))
	if err != nil {
		uc.logger.Error("ExpireBookings: failed to list unpaid bookings: %v", err)
		return result, fmt.Errorf("%w: unpaid: %v", ErrListCandidates, err)
	}

	candidates := mergeCandidates(expired, unpaid)
	if len(candidates) == 0 {
		return result, nil
	}

	uc.logger.Info("ExpireBookings: %d candidates (%d expired, %d unpaid)", len(candidates), len(expired), len(unpaid))

	for i, id := range candidates {
		if err := ctx.Err(); err != nil {
			uc.logger.Warn("ExpireBookings: aborted after %d of %d bookings: %v", i, len(candidates), err)
			return result, fmt.Errorf("%w: %v", ErrAborted, err)
		}

		resp, err := uc.finisher.Expire(ctx, id, now, uc.unpaidGrace)
		if err != nil {
			uc.logger.Error("ExpireBookings: failed to process booking id=%d: %v", id, err)
			result.Failed++
			continue
		}

		switch {
		case !resp.Changed:
			result.Skipped++
		case resp.Booking.Status == domain.StatusCompleted:
			result.Completed++
		case resp.Booking.Status == domain.StatusCancelled:
			result.Cancelled++
		}
	}

	uc.logger.Info("ExpireBookings: completed=%d, cancelled=%d, skipped=%d, failed=%d",
		result.Completed, result.Cancelled, result.Skipped, result.Failed)

	return result, nil
}

// mergeCandidates объединяет списки, сохраняя порядок и убирая дубликаты
func mergeCandidates(lists ...[]int64) []int64 {
	seen := make(map[int64]struct{})
	merged := make([]int64, 0)

	for _, list := range lists {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			merged = append(merged, id)
		}
	}

	return merged
}
