package payments

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/payments/models"
)

// Service сервис чтения оплат
type Service struct {
	paymentRepo PaymentRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса оплат
func NewService(paymentRepo PaymentRepository, logger Logger) *Service {
	return &Service{
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

// ListMine возвращает оплаты пользователя
func (s *Service) ListMine(ctx context.Context, principal domain.Principal) (*models.PaymentListResponse, error) {
	payments, err := s.paymentRepo.ListByUser(ctx, principal.UserID)
	if err != nil {
		s.logger.Error("ListMine: repository error for user=%d: %v", principal.UserID, err)
		return nil, fmt.Errorf("%w: ListMine - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPaymentList(payments), nil
}

// ListAll возвращает страницу всех оплат
func (s *Service) ListAll(ctx context.Context, req *models.ListPaymentsRequest) (*models.PaymentListResponse, error) {
	page, pageSize := domain.NormalizePage(req.Page, req.PageSize)

	payments, total, err := s.paymentRepo.List(ctx, pageSize, domain.PageOffset(page, pageSize))
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainPaymentList(payments)
	resp.Total = total
	resp.Page = page
	resp.PageSize = pageSize

	s.logger.Info("ListAll: page=%d, pageSize=%d, total=%d", page, pageSize, total)
	return resp, nil
}
