package issue_qr

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ParkingService/pkg/qrsign"
)

// UseCase use case выпуска подписанного QR-кода доступа
type UseCase struct {
	bookingRepo BookingRepository
	signer      Signer
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, signer Signer, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		signer:      signer,
		logger:      logger,
	}
}

// Execute выпускает токен для бронирования
// Выпустить токен может только владелец; статус бронирования здесь не проверяется,
// он проверяется при сканировании
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("IssueQR: booking=%d, user=%d", req.BookingID, req.Principal.UserID)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	details, err := uc.bookingRepo.GetDetailsByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("IssueQR: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("IssueQR: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if details.OwnerID != req.Principal.UserID {
		uc.logger.Warn("IssueQR: user=%d is not the owner of booking id=%d", req.Principal.UserID, req.BookingID)
		return nil, ErrAccessDenied
	}

	token := uc.signer.Issue(qrsign.Claims{
		BookingID: details.ID,
		StartTime: details.StartTime,
		EndTime:   details.EndTime,
	})

	uc.logger.Info("IssueQR: token issued for booking id=%d", req.BookingID)

	return &Response{
		BookingID: details.ID,
		StartTime: details.StartTime.UTC(),
		EndTime:   details.EndTime.UTC(),
		Token:     token,
	}, nil
}
