package spots

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	spotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/spot"
	"github.com/m04kA/SMC-ParkingService/internal/service/spots/models"
)

var validate = validator.New()

// Service сервис реестра парковочных мест
type Service struct {
	spotRepo    SpotRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	publisher   EventPublisher
	logger      Logger
}

// NewService создает новый экземпляр сервиса мест
func NewService(
	spotRepo SpotRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		spotRepo:    spotRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		publisher:   publisher,
		logger:      logger,
	}
}

// List возвращает все места с текущими статусами
func (s *Service) List(ctx context.Context) ([]models.SpotResponse, error) {
	spots, err := s.spotRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSpotList(spots), nil
}

// Create создает место; статус по умолчанию available
func (s *Service) Create(ctx context.Context, req *models.CreateSpotRequest) (*models.SpotResponse, error) {
	s.logger.Info("Create: creating spot number=%d, status=%q", req.SpotNumber, req.Status)

	spot, err := s.create(ctx, req)
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainSpot(spot)
	s.publish(domain.ActionCreated, resp)

	s.logger.Info("Create: spot number=%d created", spot.Number)
	return resp, nil
}

// BulkCreate создает несколько мест; ошибки по отдельным местам не прерывают операцию
func (s *Service) BulkCreate(ctx context.Context, req *models.BulkCreateRequest) (*models.BulkCreateResponse, error) {
	if len(req.Spots) == 0 {
		return nil, fmt.Errorf("%w: spots list is empty", ErrInvalidInput)
	}
	if len(req.Spots) > domain.MaxBulkSpots {
		return nil, fmt.Errorf("%w: at most %d spots per request", ErrInvalidInput, domain.MaxBulkSpots)
	}

	s.logger.Info("BulkCreate: creating %d spots", len(req.Spots))

	resp := &models.BulkCreateResponse{
		Created: make([]models.SpotResponse, 0, len(req.Spots)),
		Errors:  make([]models.BulkError, 0),
	}

	for i := range req.Spots {
		spotReq := req.Spots[i]

		spot, err := s.create(ctx, &spotReq)
		if err != nil {
			if !errors.Is(err, domain.ErrValidation) && !errors.Is(err, domain.ErrConflict) {
				return nil, err
			}
			resp.Errors = append(resp.Errors, models.BulkError{SpotNumber: spotReq.SpotNumber, Error: err.Error()})
			continue
		}

		created := models.FromDomainSpot(spot)
		resp.Created = append(resp.Created, *created)
		s.publish(domain.ActionCreated, created)
	}

	s.logger.Info("BulkCreate: created=%d, failed=%d", len(resp.Created), len(resp.Errors))
	return resp, nil
}

func (s *Service) create(ctx context.Context, req *models.CreateSpotRequest) (*domain.ParkingSpot, error) {
	if err := validate.Struct(req); err != nil {
		s.logger.Warn("Create: validation failed for spot number=%d: %v", req.SpotNumber, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	status := domain.SpotAvailable
	if req.Status != "" {
		status = domain.SpotStatus(req.Status)
	}

	spot, err := s.spotRepo.Create(ctx, &domain.ParkingSpot{Number: req.SpotNumber, Status: status})
	if err != nil {
		if errors.Is(err, spotRepo.ErrSpotAlreadyExists) {
			s.logger.Warn("Create: spot number=%d already exists", req.SpotNumber)
			return nil, fmt.Errorf("%w: number %d", ErrSpotAlreadyExists, req.SpotNumber)
		}
		s.logger.Error("Create: repository error for spot number=%d: %v", req.SpotNumber, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	return spot, nil
}

// UpdateStatus меняет статус места администратором (available или unavailable)
// Статус booked управляется только бронированиями
func (s *Service) UpdateStatus(ctx context.Context, number int64, req *models.UpdateStatusRequest) (*models.SpotResponse, error) {
	s.logger.Info("UpdateStatus: spot number=%d, status=%q", number, req.Status)

	if err := validate.Struct(req); err != nil {
		s.logger.Warn("UpdateStatus: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	status := domain.SpotStatus(req.Status)
	if !status.IsAdminSettable() {
		return nil, fmt.Errorf("%w: status %q cannot be set manually", ErrInvalidInput, req.Status)
	}

	var result *domain.ParkingSpot

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		spot, err := s.lockFree(txCtx, "UpdateStatus", number)
		if err != nil {
			return err
		}

		if err := s.spotRepo.UpdateStatus(txCtx, number, status); err != nil {
			s.logger.Error("UpdateStatus: repository error for spot number=%d: %v", number, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		spot.Status = status
		result = spot
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainSpot(result)
	s.publish(domain.ActionUpdated, resp)

	s.logger.Info("UpdateStatus: spot number=%d is now %s", number, status)
	return resp, nil
}

// Delete удаляет место, если оно не занято
func (s *Service) Delete(ctx context.Context, number int64) error {
	s.logger.Info("Delete: spot number=%d", number)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.lockFree(txCtx, "Delete", number); err != nil {
			return err
		}

		if err := s.spotRepo.Delete(txCtx, number); err != nil {
			if errors.Is(err, spotRepo.ErrSpotReferenced) {
				s.logger.Warn("Delete: spot number=%d has booking history", number)
				return ErrSpotHasHistory
			}
			s.logger.Error("Delete: repository error for spot number=%d: %v", number, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Delete: spot number=%d deleted", number)
	return nil
}

// lockFree блокирует место и проверяет, что на нем нет активного бронирования
func (s *Service) lockFree(ctx context.Context, op string, number int64) (*domain.ParkingSpot, error) {
	spot, err := s.spotRepo.GetByNumberForUpdate(ctx, number)
	if err != nil {
		if errors.Is(err, spotRepo.ErrSpotNotFound) {
			s.logger.Warn("%s: spot number=%d not found", op, number)
			return nil, ErrSpotNotFound
		}
		s.logger.Error("%s: repository error for spot number=%d: %v", op, number, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	occupied, err := s.bookingRepo.HasActiveBySpot(ctx, number)
	if err != nil {
		s.logger.Error("%s: failed to check bookings for spot number=%d: %v", op, number, err)
		return nil, fmt.Errorf("%w: %s - booking check: %v", ErrInternal, op, err)
	}

	if occupied || spot.Status == domain.SpotBooked {
		s.logger.Warn("%s: spot number=%d has an active booking", op, number)
		return nil, ErrSpotOccupied
	}

	return spot, nil
}

func (s *Service) publish(action domain.EventAction, spot *models.SpotResponse) {
	s.publisher.Publish(domain.Event{
		Type:   domain.EventSpot,
		Action: action,
		Data:   spot,
	})
}
