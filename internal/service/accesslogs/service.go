package accesslogs

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/accesslogs/models"
)

// ErrInternal возвращается при внутренних ошибках сервиса
var ErrInternal = errors.New("accesslogs: internal error")

// Service сервис просмотра журнала доступа по QR-кодам
type Service struct {
	logRepo AccessLogRepository
	logger  Logger
}

// NewService создает новый экземпляр сервиса журнала
func NewService(logRepo AccessLogRepository, logger Logger) *Service {
	return &Service{
		logRepo: logRepo,
		logger:  logger,
	}
}

// List возвращает страницу журнала (сначала новые записи)
func (s *Service) List(ctx context.Context, req *models.ListAccessLogsRequest) (*models.AccessLogListResponse, error) {
	page, pageSize := domain.NormalizePage(req.Page, req.PageSize)

	entries, total, err := s.logRepo.List(ctx, domain.AccessLogFilter{
		Granted:   req.Granted,
		BookingID: req.BookingID,
		Limit:     pageSize,
		Offset:    domain.PageOffset(page, pageSize),
	})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEntryList(entries, total, page, pageSize), nil
}
