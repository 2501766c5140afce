package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только свои бронирования, администратор - любые
func (s *Service) GetByID(ctx context.Context, id int64, principal domain.Principal) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, principal.UserID)

	booking, err := s.bookingRepo.GetDetailsByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !principal.CanAccessOwnedBy(booking.OwnerID) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", principal.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает бронирования пользователя (сначала новые)
// Опционально фильтрует по активности и оплате
func (s *Service) GetUserBookings(ctx context.Context, principal domain.Principal, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, active=%v, paid=%v",
		principal.UserID, req.Active, req.Paid)

	bookings, err := s.bookingRepo.ListByUser(ctx, domain.UserBookingsFilter{
		UserID: principal.UserID,
		Active: req.Active,
		Paid:   req.Paid,
	})
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", principal.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(bookings), principal.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetAdminBookings получает бронирования с фильтрацией по статусам и поиском по email/госномеру
// Пустой список статусов означает все статусы
func (s *Service) GetAdminBookings(ctx context.Context, req *models.GetAdminBookingsRequest) (*models.BookingListResponse, error) {
	req.Page, req.PageSize = domain.NormalizePage(req.Page, req.PageSize)

	s.logger.Info("GetAdminBookings: statuses=%v, search=%q, page=%d, pageSize=%d",
		req.Statuses, req.Search, req.Page, req.PageSize)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetAdminBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, total, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetAdminBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAdminBookings - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainBookingList(bookings)
	resp.Total = total
	resp.Page = req.Page
	resp.PageSize = req.PageSize

	return resp, nil
}
