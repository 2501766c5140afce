package validate_qr

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ParkingService/internal/service/accesslogs/models"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
	"github.com/m04kA/SMC-ParkingService/pkg/qrsign"
)

// UseCase use case проверки QR-кода на въезде
type UseCase struct {
	bookingRepo  BookingRepository
	logRepo      AccessLogRepository
	verifier     Verifier
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	logRepo AccessLogRepository,
	verifier Verifier,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		logRepo:      logRepo,
		verifier:     verifier,
		txManager:    txManager,
		publisher:    publisher,
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

// Execute проверяет QR-код и записывает ровно одну запись в журнал доступа
// Порядок проверок: формат, существование, активность, оплата, подпись, время
// Если запись в журнал не удалась, доступ не предоставляется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	now := uc.timeProvider.Now().UTC()

	var booking *domain.BookingDetails
	checkErr := uc.check(ctx, req.Raw, now, &booking)

	entry := &domain.QRAccessLogEntry{
		QRData:        req.Raw,
		AccessGranted: checkErr == nil,
		Time:          now,
	}
	if booking != nil {
		entry.BookingID = ptr.Ptr(booking.ID)
	}

	// Внутренняя ошибка чтения фиксируется как отказ без причины
	reason, isReject := ReasonFor(checkErr)
	if isReject {
		entry.FailureReason = &reason
	} else if checkErr != nil {
		uc.logger.Error("ValidateQR: check failed: %v", checkErr)
		reason = "internal"
	}

	created, err := uc.logRepo.Create(ctx, entry)
	if err != nil {
		uc.logger.Error("ValidateQR: failed to write access log: %v", err)
		uc.metrics.IncQRAccess(false, "log_failed")
		return nil, fmt.Errorf("%w: failed to write access log: %v", ErrInternal, err)
	}

	uc.metrics.IncQRAccess(created.AccessGranted, string(reason))
	uc.publisher.Publish(domain.Event{
		Type:   domain.EventAccessLog,
		Action: domain.ActionCreated,
		Data:   models.FromDomainEntry(created),
	})

	if checkErr != nil {
		if isReject {
			uc.logger.Warn("ValidateQR: access denied (%s): %v", reason, checkErr)
			return nil, checkErr
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, checkErr)
	}

	uc.logger.Info("ValidateQR: access granted for booking id=%d, spot=%d", booking.ID, booking.SpotNumber)

	return &Response{
		BookingID:  booking.ID,
		SpotNumber: booking.SpotNumber,
		EndTime:    booking.EndTime,
		Entry:      created,
	}, nil
}

// check выполняет проверки и возвращает найденное бронирование через found
func (uc *UseCase) check(ctx context.Context, raw string, now time.Time, found **domain.BookingDetails) error {
	payload, err := parsePayload(raw)
	if err != nil {
		return err
	}

	// Проверки состояния выполняются над единым снимком данных
	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetDetailsByID(txCtx, payload.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("failed to get booking id=%d: %v", payload.BookingID, err)
		}
		*found = booking

		if !booking.IsActive() {
			return fmt.Errorf("%w: status is %s", ErrBookingInactive, booking.Status)
		}

		if !booking.IsPaid() {
			return ErrBookingUnpaid
		}

		return nil
	})
	if err != nil {
		return err
	}

	claims := qrsign.Claims{
		BookingID: payload.BookingID,
		StartTime: payload.StartTime,
		EndTime:   payload.EndTime,
	}
	if !uc.verifier.Verify(claims, payload.Signature) {
		return ErrInvalidSignature
	}

	if !isWithin(now, payload.StartTime, payload.EndTime) {
		return fmt.Errorf("%w: now=%s, window=[%s, %s]", ErrOutsideWindow,
			qrsign.FormatTime(now), qrsign.FormatTime(payload.StartTime), qrsign.FormatTime(payload.EndTime))
	}

	return nil
}
