package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
)

// BookingRepository mirrors booking.Repository
type BookingRepository struct {
	s *Store
}

func (s *Store) BookingRepo() *BookingRepository {
	return &BookingRepository{s: s}
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("booking.Create"); err != nil {
		return nil, err
	}

	if booking.Status == domain.StatusActive {
		for _, b := range r.s.data.bookings {
			if !b.IsActive() {
				continue
			}
			if b.CarID == booking.CarID {
				return nil, fmt.Errorf("%w: %s", bookingRepo.ErrActiveBookingExists, "uq_bookings_active_car")
			}
			if b.SpotNumber == booking.SpotNumber {
				return nil, fmt.Errorf("%w: %s", bookingRepo.ErrActiveBookingExists, "uq_bookings_active_spot")
			}
		}
	}

	booking.ID = r.s.nextID()
	booking.CreatedAt = r.s.now()
	booking.UpdatedAt = booking.CreatedAt
	r.s.data.bookings[booking.ID] = *booking
	return booking, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("booking.GetByID"); err != nil {
		return nil, err
	}

	b, ok := r.s.data.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (r *BookingRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.GetByID(ctx, id)
}

func (r *BookingRepository) GetDetailsByID(ctx context.Context, id int64) (*domain.BookingDetails, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("booking.GetDetailsByID"); err != nil {
		return nil, err
	}

	b, ok := r.s.data.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return r.s.bookingDetails(b), nil
}

func (r *BookingRepository) HasActiveByCar(ctx context.Context, carID int64) (bool, error) {
	return r.hasActive("booking.HasActiveByCar", func(b domain.Booking) bool { return b.CarID == carID })
}

func (r *BookingRepository) HasActiveBySpot(ctx context.Context, spotNumber int64) (bool, error) {
	return r.hasActive("booking.HasActiveBySpot", func(b domain.Booking) bool { return b.SpotNumber == spotNumber })
}

func (r *BookingRepository) hasActive(op string, match func(domain.Booking) bool) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(op); err != nil {
		return false, err
	}

	for _, b := range r.s.data.bookings {
		if b.IsActive() && match(b) {
			return true, nil
		}
	}
	return false, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("booking.UpdateStatus"); err != nil {
		return err
	}

	b, ok := r.s.data.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	b.UpdatedAt = r.s.now()
	r.s.data.bookings[id] = b
	return nil
}

func (r *BookingRepository) ListExpiredActiveIDs(ctx context.Context, now time.Time) ([]int64, error) {
	return r.listIDs("booking.ListExpiredActiveIDs", func(b domain.Booking) bool {
		return b.EndTime.Before(now)
	})
}

func (r *BookingRepository) ListUnpaidActiveIDs(ctx context.Context, startedBefore time.Time) ([]int64, error) {
	return r.listIDs("booking.ListUnpaidActiveIDs", func(b domain.Booking) bool {
		_, paid := r.s.data.payments[b.ID]
		return !paid && !b.StartTime.After(startedBefore)
	})
}

func (r *BookingRepository) listIDs(op string, match func(domain.Booking) bool) ([]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(op); err != nil {
		return nil, err
	}

	ids := make([]int64, 0)
	for _, b := range r.s.data.bookings {
		if b.IsActive() && match(b) {
			ids = append(ids, b.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.BookingDetails, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("booking.ListByUser"); err != nil {
		return nil, err
	}

	result := make([]*domain.BookingDetails, 0)
	for _, b := range r.s.data.bookings {
		d := r.s.bookingDetails(b)
		if d.OwnerID != filter.UserID {
			continue
		}
		if filter.Active != nil && d.IsActive() != *filter.Active {
			continue
		}
		if filter.Paid != nil && d.IsPaid() != *filter.Paid {
			continue
		}
		result = append(result, d)
	}
	sortDetailsDesc(result)
	return result, nil
}

func (r *BookingRepository) ListWithFilter(ctx context.Context, filter domain.AdminBookingsFilter) ([]*domain.BookingDetails, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("booking.ListWithFilter"); err != nil {
		return nil, 0, err
	}

	search := strings.ToLower(filter.Search)
	result := make([]*domain.BookingDetails, 0)
	for _, b := range r.s.data.bookings {
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, b.Status) {
			continue
		}
		d := r.s.bookingDetails(b)
		if search != "" &&
			!strings.Contains(strings.ToLower(d.OwnerEmail), search) &&
			!strings.Contains(strings.ToLower(d.LicensePlate), search) {
			continue
		}
		result = append(result, d)
	}
	sortDetailsDesc(result)

	return page(result, filter.Limit, filter.Offset), len(result), nil
}

// bookingDetails must be called with mu held
func (s *Store) bookingDetails(b domain.Booking) *domain.BookingDetails {
	d := &domain.BookingDetails{Booking: b}
	if t, ok := s.data.tariffs[b.TariffID]; ok {
		d.TariffName = t.Name
	}
	if c, ok := s.data.cars[b.CarID]; ok {
		d.LicensePlate = c.LicensePlate
		d.CarMake = c.Make
		d.CarModel = c.Model
		d.CarColor = c.Color
		d.OwnerID = c.UserID
		d.OwnerEmail = s.data.users[c.UserID].Email
	}
	if p, ok := s.data.payments[b.ID]; ok {
		d.Payment = &p
	}
	return d
}

func sortDetailsDesc(items []*domain.BookingDetails) {
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
}

func containsStatus(statuses []domain.BookingStatus, status domain.BookingStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
