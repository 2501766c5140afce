package memstore

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	spotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/spot"
)

// SpotRepository mirrors spot.Repository
type SpotRepository struct {
	s *Store
}

func (s *Store) SpotRepo() *SpotRepository {
	return &SpotRepository{s: s}
}

func (r *SpotRepository) Create(ctx context.Context, spot *domain.ParkingSpot) (*domain.ParkingSpot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("spot.Create"); err != nil {
		return nil, err
	}

	if _, ok := r.s.data.spots[spot.Number]; ok {
		return nil, spotRepo.ErrSpotAlreadyExists
	}
	spot.CreatedAt = r.s.now()
	spot.UpdatedAt = spot.CreatedAt
	r.s.data.spots[spot.Number] = *spot
	return spot, nil
}

func (r *SpotRepository) GetByNumber(ctx context.Context, number int64) (*domain.ParkingSpot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("spot.GetByNumber"); err != nil {
		return nil, err
	}

	spot, ok := r.s.data.spots[number]
	if !ok {
		return nil, spotRepo.ErrSpotNotFound
	}
	return &spot, nil
}

func (r *SpotRepository) GetByNumberForUpdate(ctx context.Context, number int64) (*domain.ParkingSpot, error) {
	return r.GetByNumber(ctx, number)
}

func (r *SpotRepository) List(ctx context.Context) ([]*domain.ParkingSpot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("spot.List"); err != nil {
		return nil, err
	}

	spots := make([]*domain.ParkingSpot, 0, len(r.s.data.spots))
	for _, spot := range r.s.data.spots {
		spot := spot
		spots = append(spots, &spot)
	}
	sort.Slice(spots, func(i, j int) bool { return spots[i].Number < spots[j].Number })
	return spots, nil
}

func (r *SpotRepository) UpdateStatus(ctx context.Context, number int64, status domain.SpotStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("spot.UpdateStatus"); err != nil {
		return err
	}

	spot, ok := r.s.data.spots[number]
	if !ok {
		return spotRepo.ErrSpotNotFound
	}
	spot.Status = status
	spot.UpdatedAt = r.s.now()
	r.s.data.spots[number] = spot
	return nil
}

func (r *SpotRepository) Delete(ctx context.Context, number int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("spot.Delete"); err != nil {
		return err
	}

	if _, ok := r.s.data.spots[number]; !ok {
		return spotRepo.ErrSpotNotFound
	}
	for _, b := range r.s.data.bookings {
		if b.SpotNumber == number {
			return spotRepo.ErrSpotReferenced
		}
	}
	delete(r.s.data.spots, number)
	return nil
}
