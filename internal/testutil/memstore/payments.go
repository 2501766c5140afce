package memstore

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	paymentRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/payment"
)

// PaymentRepository mirrors payment.Repository
type PaymentRepository struct {
	s *Store
}

func (s *Store) PaymentRepo() *PaymentRepository {
	return &PaymentRepository{s: s}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("payment.Create"); err != nil {
		return nil, err
	}

	if _, ok := r.s.data.payments[payment.BookingID]; ok {
		return nil, paymentRepo.ErrAlreadyPaid
	}
	payment.ID = r.s.nextID()
	payment.PaymentDate = r.s.now()
	r.s.data.payments[payment.BookingID] = *payment
	return payment, nil
}

func (r *PaymentRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("payment.GetByBookingID"); err != nil {
		return nil, err
	}

	p, ok := r.s.data.payments[bookingID]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	return &p, nil
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.PaymentDetails, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("payment.ListByUser"); err != nil {
		return nil, err
	}

	result := make([]*domain.PaymentDetails, 0)
	for _, d := range r.s.paymentDetails() {
		if d.OwnerID == userID {
			result = append(result, d)
		}
	}
	return result, nil
}

func (r *PaymentRepository) List(ctx context.Context, limit, offset int) ([]*domain.PaymentDetails, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("payment.List"); err != nil {
		return nil, 0, err
	}

	all := r.s.paymentDetails()
	return page(all, limit, offset), len(all), nil
}

// paymentDetails returns every payment, newest first. Must be called with mu held.
func (s *Store) paymentDetails() []*domain.PaymentDetails {
	result := make([]*domain.PaymentDetails, 0, len(s.data.payments))
	for _, p := range s.data.payments {
		d := &domain.PaymentDetails{Payment: p}
		if b, ok := s.data.bookings[p.BookingID]; ok {
			bd := s.bookingDetails(b)
			d.OwnerID = bd.OwnerID
			d.OwnerEmail = bd.OwnerEmail
			d.TariffName = bd.TariffName
		}
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].PaymentDate.Equal(result[j].PaymentDate) {
			return result[i].PaymentDate.After(result[j].PaymentDate)
		}
		return result[i].ID > result[j].ID
	})
	return result
}
