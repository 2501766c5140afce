package cars

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	carRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/car"
	"github.com/m04kA/SMC-ParkingService/internal/service/cars/models"
)

var validate = validator.New()

// Service сервис автомобилей пользователей
type Service struct {
	carRepo     CarRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	publisher   EventPublisher
	logger      Logger
}

// NewService создает новый экземпляр сервиса автомобилей
func NewService(
	carRepo CarRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		carRepo:     carRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		publisher:   publisher,
		logger:      logger,
	}
}

// Register регистрирует автомобиль пользователя
// Госномер хранится в верхнем регистре без пробелов по краям
func (s *Service) Register(ctx context.Context, principal domain.Principal, req *models.RegisterCarRequest) (*models.CarResponse, error) {
	req.LicensePlate = strings.ToUpper(strings.TrimSpace(req.LicensePlate))

	s.logger.Info("Register: user=%d, plate=%s", principal.UserID, req.LicensePlate)

	if err := validate.Struct(req); err != nil {
		s.logger.Warn("Register: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var created *domain.Car

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.carRepo.EnsureUser(txCtx, principal); err != nil {
			s.logger.Error("Register: failed to store user=%d: %v", principal.UserID, err)
			return fmt.Errorf("%w: Register - user: %v", ErrInternal, err)
		}

		car, err := s.carRepo.Create(txCtx, &domain.Car{
			UserID:       principal.UserID,
			LicensePlate: req.LicensePlate,
			Make:         req.Make,
			Model:        req.Model,
			Color:        req.Color,
		})
		if err != nil {
			if errors.Is(err, carRepo.ErrLicensePlateTaken) {
				s.logger.Warn("Register: plate=%s already registered", req.LicensePlate)
				return ErrLicensePlateTaken
			}
			s.logger.Error("Register: repository error: %v", err)
			return fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
		}

		created = car
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainCar(&domain.CarDetails{Car: *created, OwnerEmail: principal.Email})
	s.publish(domain.ActionCreated, resp)

	s.logger.Info("Register: car id=%d registered for user=%d", created.ID, principal.UserID)
	return resp, nil
}

// ListMine возвращает автомобили пользователя
func (s *Service) ListMine(ctx context.Context, principal domain.Principal) ([]models.CarResponse, error) {
	cars, err := s.carRepo.ListByUser(ctx, principal.UserID)
	if err != nil {
		s.logger.Error("ListMine: repository error for user=%d: %v", principal.UserID, err)
		return nil, fmt.Errorf("%w: ListMine - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCarList(cars), nil
}

// ListAll возвращает все автомобили (для администратора)
func (s *Service) ListAll(ctx context.Context, includeDeleted bool) ([]models.CarResponse, error) {
	cars, err := s.carRepo.List(ctx, includeDeleted)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCarList(cars), nil
}

// Delete помечает автомобиль удаленным
// Автомобиль с активным бронированием удалить нельзя; повторное удаление ничего не меняет
func (s *Service) Delete(ctx context.Context, principal domain.Principal, id int64) error {
	s.logger.Info("Delete: car id=%d by user=%d", id, principal.UserID)

	var (
		deleted *domain.CarDetails
		changed bool
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		car, err := s.carRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			if errors.Is(err, carRepo.ErrCarNotFound) {
				s.logger.Warn("Delete: car id=%d not found", id)
				return ErrCarNotFound
			}
			s.logger.Error("Delete: repository error for car id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		if !car.IsOwnedBy(principal.UserID) {
			s.logger.Warn("Delete: user=%d is not the owner of car id=%d", principal.UserID, id)
			return ErrAccessDenied
		}

		if car.IsDeleted {
			return nil
		}

		active, err := s.bookingRepo.HasActiveByCar(txCtx, id)
		if err != nil {
			s.logger.Error("Delete: failed to check bookings for car id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - booking check: %v", ErrInternal, err)
		}
		if active {
			s.logger.Warn("Delete: car id=%d has an active booking", id)
			return ErrCarHasActiveBooking
		}

		if err := s.carRepo.SoftDelete(txCtx, id); err != nil {
			s.logger.Error("Delete: repository error for car id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		car.IsDeleted = true
		deleted = car
		changed = true
		return nil
	})
	if err != nil {
		return err
	}

	if changed {
		s.publish(domain.ActionUpdated, models.FromDomainCar(deleted))
		s.logger.Info("Delete: car id=%d deleted", id)
	}

	return nil
}

func (s *Service) publish(action domain.EventAction, car *models.CarResponse) {
	userID := car.UserID

	s.publisher.Publish(domain.Event{
		Type:   domain.EventCar,
		Action: action,
		Data:   car,
		UserID: &userID,
	})
}
