package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	carRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/car"
	spotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/spot"
	tariffRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/tariff"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	spotModels "github.com/m04kA/SMC-ParkingService/internal/service/spots/models"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	spotRepo     SpotRepository
	carRepo      CarRepository
	tariffRepo   TariffRepository
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	spotRepo SpotRepository,
	carRepo CarRepository,
	tariffRepo TariffRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		spotRepo:     spotRepo,
		carRepo:      carRepo,
		tariffRepo:   tariffRepo,
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

// Execute выполняет use case создания бронирования
// Место и автомобиль блокируются (FOR UPDATE) в одной транзакции, поэтому из двух
// конкурентных запросов на одно место успешен ровно один, второй получает ErrSpotNotAvailable
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, car=%d, spot=%d, tariff=%d",
		req.Principal.UserID, req.CarID, req.SpotNumber, req.TariffID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем тариф
	tariff, err := uc.tariffRepo.GetByID(ctx, req.TariffID)
	if err != nil {
		if errors.Is(err, tariffRepo.ErrTariffNotFound) {
			uc.logger.Warn("CreateBooking: tariff id=%d not found", req.TariffID)
			return nil, ErrTariffNotFound
		}
		uc.logger.Error("CreateBooking: failed to get tariff id=%d: %v", req.TariffID, err)
		return nil, fmt.Errorf("%w: failed to get tariff: %v", ErrInternal, err)
	}

	if err := validateTariff(tariff); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	var bookingID int64

	// 3. Проверки инвариантов и запись выполняются атомарно
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Блокируем место (порядок блокировок: место, затем автомобиль)
		spot, err := uc.spotRepo.GetByNumberForUpdate(txCtx, req.SpotNumber)
		if err != nil {
			if errors.Is(err, spotRepo.ErrSpotNotFound) {
				uc.logger.Warn("CreateBooking: spot number=%d not found", req.SpotNumber)
				return ErrSpotNotFound
			}
			uc.logger.Error("CreateBooking: failed to lock spot number=%d: %v", req.SpotNumber, err)
			return fmt.Errorf("%w: failed to lock spot: %v", ErrInternal, err)
		}

		// 3.2. Блокируем автомобиль
		car, err := uc.carRepo.GetByIDForUpdate(txCtx, req.CarID)
		if err != nil {
			if errors.Is(err, carRepo.ErrCarNotFound) {
				uc.logger.Warn("CreateBooking: car id=%d not found", req.CarID)
				return ErrCarNotFound
			}
			uc.logger.Error("CreateBooking: failed to lock car id=%d: %v", req.CarID, err)
			return fmt.Errorf("%w: failed to lock car: %v", ErrInternal, err)
		}

		if car.IsDeleted {
			uc.logger.Warn("CreateBooking: car id=%d is deleted", req.CarID)
			return ErrCarNotFound
		}

		// 3.3. Бронировать можно только свой автомобиль
		if !car.IsOwnedBy(req.Principal.UserID) {
			uc.logger.Warn("CreateBooking: car id=%d belongs to user=%d, not to user=%d",
				req.CarID, car.UserID, req.Principal.UserID)
			return ErrNotCarOwner
		}

		// 3.4. Не более одного активного бронирования на автомобиль
		hasActive, err := uc.bookingRepo.HasActiveByCar(txCtx, req.CarID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check active bookings for car id=%d: %v", req.CarID, err)
			return fmt.Errorf("%w: failed to check active bookings: %v", ErrInternal, err)
		}
		if hasActive {
			uc.logger.Warn("CreateBooking: car id=%d already has an active booking", req.CarID)
			return ErrCarAlreadyBooked
		}

		// 3.5. Место должно быть свободно
		if !spot.IsAvailable() {
			uc.logger.Warn("CreateBooking: spot number=%d is %s", req.SpotNumber, spot.Status)
			return ErrSpotNotAvailable
		}

		// 3.6. Создаем бронирование
		startTime, endTime := bookingWindow(uc.timeProvider.Now(), tariff)
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			CarID:      req.CarID,
			SpotNumber: req.SpotNumber,
			TariffID:   req.TariffID,
			Status:     domain.StatusActive,
			StartTime:  startTime,
			EndTime:    endTime,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrActiveBookingExists) {
				uc.logger.Warn("CreateBooking: unique constraint rejected booking: %v", err)
				return fmt.Errorf("%w: %v", ErrSpotNotAvailable, err)
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 3.7. Занимаем место
		if err := uc.spotRepo.UpdateStatus(txCtx, req.SpotNumber, domain.SpotBooked); err != nil {
			uc.logger.Error("CreateBooking: failed to mark spot number=%d as booked: %v", req.SpotNumber, err)
			return fmt.Errorf("%w: failed to update spot: %v", ErrInternal, err)
		}

		bookingID = created.ID
		return nil
	})

	if err != nil {
		return nil, err
	}

	details, err := uc.bookingRepo.GetDetailsByID(ctx, bookingID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to load booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to load created booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, spot=%d, ends at %s",
		details.ID, details.SpotNumber, details.EndTime.Format(domain.TimeFormat))

	uc.metrics.IncBookingCreated(details.TariffName)
	uc.publishCreated(details)

	return &Response{Booking: details}, nil
}

func (uc *UseCase) publishCreated(details *domain.BookingDetails) {
	ownerID := details.OwnerID

	uc.publisher.Publish(domain.Event{
		Type:   domain.EventBooking,
		Action: domain.ActionCreated,
		Data:   models.FromDomainBooking(details),
		UserID: &ownerID,
	})

	uc.publisher.Publish(domain.Event{
		Type:   domain.EventSpot,
		Action: domain.ActionUpdated,
		Data:   spotModels.SpotStatusChanged(details.SpotNumber, domain.SpotBooked),
	})
}
