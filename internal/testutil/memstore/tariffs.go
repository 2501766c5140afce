package memstore

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	tariffRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/tariff"
)

// TariffRepository mirrors tariff.Repository
type TariffRepository struct {
	s *Store
}

func (s *Store) TariffRepo() *TariffRepository {
	return &TariffRepository{s: s}
}

func (r *TariffRepository) Create(ctx context.Context, tariff *domain.Tariff) (*domain.Tariff, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("tariff.Create"); err != nil {
		return nil, err
	}

	if r.s.tariffNameTaken(tariff.Name, 0) {
		return nil, tariffRepo.ErrTariffNameTaken
	}
	tariff.ID = r.s.nextID()
	tariff.CreatedAt = r.s.now()
	tariff.UpdatedAt = tariff.CreatedAt
	r.s.data.tariffs[tariff.ID] = *tariff
	return tariff, nil
}

func (r *TariffRepository) GetByID(ctx context.Context, id int64) (*domain.Tariff, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("tariff.GetByID"); err != nil {
		return nil, err
	}

	t, ok := r.s.data.tariffs[id]
	if !ok {
		return nil, tariffRepo.ErrTariffNotFound
	}
	return &t, nil
}

func (r *TariffRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Tariff, error) {
	return r.GetByID(ctx, id)
}

func (r *TariffRepository) List(ctx context.Context, includeInactive bool) ([]*domain.Tariff, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("tariff.List"); err != nil {
		return nil, err
	}

	tariffs := make([]*domain.Tariff, 0)
	for _, t := range r.s.data.tariffs {
		if !includeInactive && !t.IsActive {
			continue
		}
		t := t
		tariffs = append(tariffs, &t)
	}
	sort.Slice(tariffs, func(i, j int) bool { return tariffs[i].ID < tariffs[j].ID })
	return tariffs, nil
}

func (r *TariffRepository) Update(ctx context.Context, tariff *domain.Tariff) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("tariff.Update"); err != nil {
		return err
	}

	existing, ok := r.s.data.tariffs[tariff.ID]
	if !ok {
		return tariffRepo.ErrTariffNotFound
	}
	if r.s.tariffNameTaken(tariff.Name, tariff.ID) {
		return tariffRepo.ErrTariffNameTaken
	}
	existing.Name = tariff.Name
	existing.Price = tariff.Price
	existing.IsActive = tariff.IsActive
	existing.UpdatedAt = r.s.now()
	r.s.data.tariffs[tariff.ID] = existing
	tariff.UpdatedAt = existing.UpdatedAt
	return nil
}

func (r *TariffRepository) CreatePriceHistory(ctx context.Context, entry *domain.TariffPriceHistory) (*domain.TariffPriceHistory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("tariff.CreatePriceHistory"); err != nil {
		return nil, err
	}

	entry.ID = r.s.nextID()
	entry.ChangedAt = r.s.now()
	r.s.data.history = append(r.s.data.history, *entry)
	return entry, nil
}

func (r *TariffRepository) ListPriceHistory(ctx context.Context, tariffID *int64) ([]*domain.TariffPriceHistory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("tariff.ListPriceHistory"); err != nil {
		return nil, err
	}

	history := make([]*domain.TariffPriceHistory, 0)
	for _, h := range r.s.data.history {
		if tariffID != nil && h.TariffID != *tariffID {
			continue
		}
		h := h
		history = append(history, &h)
	}
	sort.Slice(history, func(i, j int) bool {
		if !history[i].ChangedAt.Equal(history[j].ChangedAt) {
			return history[i].ChangedAt.After(history[j].ChangedAt)
		}
		return history[i].ID > history[j].ID
	})
	return history, nil
}

// tariffNameTaken must be called with mu held
func (s *Store) tariffNameTaken(name string, exceptID int64) bool {
	for _, t := range s.data.tariffs {
		if t.ID != exceptID && t.Name == name {
			return true
		}
	}
	return false
}
