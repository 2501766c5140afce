package tariffs

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	tariffRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/tariff"
	"github.com/m04kA/SMC-ParkingService/internal/service/tariffs/models"
)

var validate = validator.New()

// Service сервис каталога тарифов
type Service struct {
	tariffRepo TariffRepository
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса тарифов
func NewService(tariffRepo TariffRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		tariffRepo: tariffRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// List возвращает тарифы; для пользователей только активные
func (s *Service) List(ctx context.Context, includeInactive bool) ([]models.TariffResponse, error) {
	tariffs, err := s.tariffRepo.List(ctx, includeInactive)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTariffList(tariffs), nil
}

// Create создает тариф
func (s *Service) Create(ctx context.Context, req *models.CreateTariffRequest) (*models.TariffResponse, error) {
	s.logger.Info("Create: creating tariff name=%q, duration=%s", req.Name, req.Duration)

	if err := validateCreate(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	tariff := &domain.Tariff{
		Name:            req.Name,
		Price:           req.Price,
		Duration:        domain.TariffDuration(req.Duration),
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
	}
	if req.IsActive != nil {
		tariff.IsActive = *req.IsActive
	}

	created, err := s.tariffRepo.Create(ctx, tariff)
	if err != nil {
		if errors.Is(err, tariffRepo.ErrTariffNameTaken) {
			s.logger.Warn("Create: tariff name=%q already taken", req.Name)
			return nil, ErrTariffNameTaken
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: tariff id=%d created", created.ID)
	return models.FromDomainTariff(created), nil
}

// Update меняет тариф
// Изменение цены добавляет запись в историю в той же транзакции, под блокировкой строки тарифа
func (s *Service) Update(ctx context.Context, principal domain.Principal, id int64, req *models.UpdateTariffRequest) (*models.TariffResponse, error) {
	s.logger.Info("Update: tariff id=%d by user=%d", id, principal.UserID)

	if err := validateUpdate(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Tariff

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		tariff, err := s.tariffRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			if errors.Is(err, tariffRepo.ErrTariffNotFound) {
				s.logger.Warn("Update: tariff id=%d not found", id)
				return ErrTariffNotFound
			}
			s.logger.Error("Update: repository error for tariff id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		if req.Price != nil && !req.Price.Equal(tariff.Price) {
			_, err := s.tariffRepo.CreatePriceHistory(txCtx, &domain.TariffPriceHistory{
				TariffID:  id,
				OldPrice:  tariff.Price,
				NewPrice:  *req.Price,
				ChangedBy: principal.UserID,
			})
			if err != nil {
				s.logger.Error("Update: failed to record price history for tariff id=%d: %v", id, err)
				return fmt.Errorf("%w: Update - price history: %v", ErrInternal, err)
			}

			s.logger.Info("Update: tariff id=%d price %s -> %s",
				id, tariff.Price.StringFixed(2), req.Price.StringFixed(2))
			tariff.Price = *req.Price
		}

		if req.Name != nil {
			tariff.Name = *req.Name
		}
		if req.IsActive != nil {
			tariff.IsActive = *req.IsActive
		}

		if err := s.tariffRepo.Update(txCtx, tariff); err != nil {
			if errors.Is(err, tariffRepo.ErrTariffNameTaken) {
				return ErrTariffNameTaken
			}
			s.logger.Error("Update: repository error for tariff id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		result = tariff
		return nil
	})
	if err != nil {
		return nil, err
	}

	return models.FromDomainTariff(result), nil
}

// History возвращает историю изменения цен (по одному тарифу или по всем)
func (s *Service) History(ctx context.Context, tariffID *int64) ([]models.PriceHistoryResponse, error) {
	history, err := s.tariffRepo.ListPriceHistory(ctx, tariffID)
	if err != nil {
		s.logger.Error("History: repository error: %v", err)
		return nil, fmt.Errorf("%w: History - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainHistoryList(history), nil
}
