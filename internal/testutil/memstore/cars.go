package memstore

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	carRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/car"
)

// CarRepository mirrors car.Repository
type CarRepository struct {
	s *Store
}

func (s *Store) CarRepo() *CarRepository {
	return &CarRepository{s: s}
}

func (r *CarRepository) EnsureUser(ctx context.Context, principal domain.Principal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("car.EnsureUser"); err != nil {
		return err
	}

	r.s.data.users[principal.UserID] = principal
	return nil
}

func (r *CarRepository) Create(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("car.Create"); err != nil {
		return nil, err
	}

	// The plate stays unique across soft-deleted cars too
	for _, c := range r.s.data.cars {
		if c.LicensePlate == car.LicensePlate {
			return nil, carRepo.ErrLicensePlateTaken
		}
	}
	car.ID = r.s.nextID()
	car.IsDeleted = false
	car.RegisteredAt = r.s.now()
	r.s.data.cars[car.ID] = *car
	return car, nil
}

func (r *CarRepository) GetByID(ctx context.Context, id int64) (*domain.CarDetails, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("car.GetByID"); err != nil {
		return nil, err
	}

	c, ok := r.s.data.cars[id]
	if !ok {
		return nil, carRepo.ErrCarNotFound
	}
	return r.s.carDetails(c), nil
}

func (r *CarRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.CarDetails, error) {
	return r.GetByID(ctx, id)
}

func (r *CarRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.CarDetails, error) {
	return r.list("car.ListByUser", func(c domain.Car) bool {
		return c.UserID == userID && !c.IsDeleted
	})
}

func (r *CarRepository) List(ctx context.Context, includeDeleted bool) ([]*domain.CarDetails, error) {
	return r.list("car.List", func(c domain.Car) bool {
		return includeDeleted || !c.IsDeleted
	})
}

func (r *CarRepository) list(op string, match func(domain.Car) bool) ([]*domain.CarDetails, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(op); err != nil {
		return nil, err
	}

	cars := make([]*domain.CarDetails, 0)
	for _, c := range r.s.data.cars {
		if match(c) {
			cars = append(cars, r.s.carDetails(c))
		}
	}
	sort.Slice(cars, func(i, j int) bool { return cars[i].ID < cars[j].ID })
	return cars, nil
}

func (r *CarRepository) SoftDelete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("car.SoftDelete"); err != nil {
		return err
	}

	c, ok := r.s.data.cars[id]
	if !ok {
		return carRepo.ErrCarNotFound
	}
	c.IsDeleted = true
	r.s.data.cars[id] = c
	return nil
}

// carDetails must be called with mu held
func (s *Store) carDetails(c domain.Car) *domain.CarDetails {
	return &domain.CarDetails{Car: c, OwnerEmail: s.data.users[c.UserID].Email}
}
