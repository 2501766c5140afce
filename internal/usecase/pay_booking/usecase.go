package pay_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	paymentModels "github.com/m04kA/SMC-ParkingService/internal/service/payments/models"
)

// UseCase use case оплаты бронирования
// Платеж считается подтвержденным внешней системой, здесь он только фиксируется
type UseCase struct {
	bookingRepo BookingRepository
	tariffRepo  TariffRepository
	paymentRepo PaymentRepository
	txManager   TransactionManager
	publisher   EventPublisher
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	tariffRepo TariffRepository,
	paymentRepo PaymentRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		tariffRepo:  tariffRepo,
		paymentRepo: paymentRepo,
		txManager:   txManager,
		publisher:   publisher,
		logger:      logger,
	}
}

// Execute фиксирует оплату бронирования
// Сумма равна цене тарифа на момент оплаты. Строка бронирования блокируется,
// поэтому оплата сериализована с проходом планировщика и конкурентными оплатами
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PayBooking: booking=%d, user=%d", req.BookingID, req.Principal.UserID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("PayBooking: validation failed: %v", err)
		return nil, err
	}

	var (
		payment *domain.Payment
		updated *domain.BookingDetails
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("PayBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("PayBooking: failed to lock booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to lock booking: %v", ErrInternal, err)
		}

		details, err := uc.bookingRepo.GetDetailsByID(txCtx, req.BookingID)
		if err != nil {
			uc.logger.Error("PayBooking: failed to load booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to load booking: %v", ErrInternal, err)
		}

		if err := checkPayable(details, req.Principal); err != nil {
			uc.logger.Warn("PayBooking: booking id=%d cannot be paid by user=%d: %v",
				req.BookingID, req.Principal.UserID, err)
			return err
		}

		// Цена читается в момент оплаты, а не в момент бронирования
		tariff, err := uc.tariffRepo.GetByID(txCtx, details.TariffID)
		if err != nil {
			uc.logger.Error("PayBooking: failed to get tariff id=%d: %v", details.TariffID, err)
			return fmt.Errorf("%w: failed to get tariff: %v", ErrInternal, err)
		}

		created, err := uc.paymentRepo.Create(txCtx, &domain.Payment{
			BookingID: req.BookingID,
			Amount:    tariff.Price,
		})
		if err != nil {
			if errors.Is(err, paymentRepo.ErrAlreadyPaid) {
				uc.logger.Warn("PayBooking: booking id=%d already paid", req.BookingID)
				return ErrAlreadyPaid
			}
			uc.logger.Error("PayBooking: failed to create payment for booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
		}

		updated, err = uc.bookingRepo.GetDetailsByID(txCtx, req.BookingID)
		if err != nil {
			uc.logger.Error("PayBooking: failed to reload booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
		}

		payment = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("PayBooking: booking id=%d paid, amount=%s", req.BookingID, payment.Amount.StringFixed(2))

	uc.publishPaid(payment, updated)

	return &Response{Payment: payment, Booking: updated}, nil
}

func (uc *UseCase) publishPaid(payment *domain.Payment, details *domain.BookingDetails) {
	ownerID := details.OwnerID

	uc.publisher.Publish(domain.Event{
		Type:   domain.EventPayment,
		Action: domain.ActionCreated,
		Data: paymentModels.FromDomainPayment(&domain.PaymentDetails{
			Payment:    *payment,
			OwnerID:    details.OwnerID,
			OwnerEmail: details.OwnerEmail,
			TariffName: details.TariffName,
		}),
		UserID: &ownerID,
	})

	uc.publisher.Publish(domain.Event{
		Type:   domain.EventBooking,
		Action: domain.ActionUpdated,
		Data:   models.FromDomainBooking(details),
		UserID: &ownerID,
	})
}
