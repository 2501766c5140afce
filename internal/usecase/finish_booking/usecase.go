package finish_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	spotModels "github.com/m04kA/SMC-ParkingService/internal/service/spots/models"
)

// UseCase переводит активное бронирование в финальный статус и освобождает место
type UseCase struct {
	bookingRepo BookingRepository
	spotRepo    SpotRepository
	txManager   TransactionManager
	publisher   EventPublisher
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	spotRepo SpotRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		spotRepo:    spotRepo,
		txManager:   txManager,
		publisher:   publisher,
		logger:      logger,
	}
}

// Execute завершает или отменяет бронирование
// Для бронирования в финальном статусе ничего не меняет и возвращает Changed=false
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FinishBooking: booking=%d, status=%s", req.BookingID, req.Status)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FinishBooking: validation failed: %v", err)
		return nil, err
	}

	return uc.finish(ctx, req.BookingID, func(details *domain.BookingDetails) (domain.BookingStatus, bool, error) {
		if req.Principal != nil && !req.Principal.CanAccessOwnedBy(details.OwnerID) {
			uc.logger.Warn("FinishBooking: access denied for user=%d to booking id=%d",
				req.Principal.UserID, req.BookingID)
			return "", false, ErrAccessDenied
		}

		if !details.CanTransitionTo(req.Status) {
			return details.Status, false, nil
		}

		return req.Status, true, nil
	})
}

// Expire повторно оценивает бронирование под блокировкой строки и при необходимости
// переводит его в completed (истекло) или cancelled (не оплачено дольше grace)
// Если оплата успела пройти или бронирование уже завершено, ничего не меняет
func (uc *UseCase) Expire(ctx context.Context, bookingID int64, now time.Time, grace time.Duration) (*Response, error) {
	return uc.finish(ctx, bookingID, func(details *domain.BookingDetails) (domain.BookingStatus, bool, error) {
		status, ok := domain.ExpirationVerdict(&details.Booking, details.IsPaid(), now, grace)
		return status, ok, nil
	})
}

// decideFunc решает, в какой статус перевести заблокированное бронирование
type decideFunc func(details *domain.BookingDetails) (domain.BookingStatus, bool, error)

func (uc *UseCase) finish(ctx context.Context, bookingID int64, decide decideFunc) (*Response, error) {
	var (
		result  *domain.BookingDetails
		changed bool
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// Все изменения статуса бронирования сериализуются блокировкой его строки
		if _, err := uc.bookingRepo.GetByIDForUpdate(txCtx, bookingID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("FinishBooking: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("FinishBooking: failed to lock booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: failed to lock booking: %v", ErrInternal, err)
		}

		details, err := uc.bookingRepo.GetDetailsByID(txCtx, bookingID)
		if err != nil {
			uc.logger.Error("FinishBooking: failed to load booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: failed to load booking: %v", ErrInternal, err)
		}

		next, ok, err := decide(details)
		if err != nil {
			return err
		}
		if !ok {
			result = details
			return nil
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, bookingID, next); err != nil {
			uc.logger.Error("FinishBooking: failed to update booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		if err := uc.spotRepo.UpdateStatus(txCtx, details.SpotNumber, domain.SpotAvailable); err != nil {
			uc.logger.Error("FinishBooking: failed to release spot number=%d: %v", details.SpotNumber, err)
			return fmt.Errorf("%w: failed to release spot: %v", ErrInternal, err)
		}

		updated, err := uc.bookingRepo.GetDetailsByID(txCtx, bookingID)
		if err != nil {
			uc.logger.Error("FinishBooking: failed to reload booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
		}

		result = updated
		changed = true
		return nil
	})

	if err != nil {
		return nil, err
	}

	if !changed {
		uc.logger.Info("FinishBooking: booking id=%d left as %s", bookingID, result.Status)
		return &Response{Booking: result, Changed: false}, nil
	}

	uc.logger.Info("FinishBooking: booking id=%d is now %s, spot=%d released",
		bookingID, result.Status, result.SpotNumber)

	uc.publishUpdated(result)

	return &Response{Booking: result, Changed: true}, nil
}

func (uc *UseCase) publishUpdated(details *domain.BookingDetails) {
	ownerID := details.OwnerID

	uc.publisher.Publish(domain.Event{
		Type:   domain.EventBooking,
		Action: domain.ActionUpdated,
		Data:   models.FromDomainBooking(details),
		UserID: &ownerID,
	})

	uc.publisher.Publish(domain.Event{
		Type:   domain.EventSpot,
		Action: domain.ActionUpdated,
		Data:   spotModels.SpotStatusChanged(details.SpotNumber, domain.SpotAvailable),
	})
}
