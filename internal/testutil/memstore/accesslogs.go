package memstore

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// AccessLogRepository mirrors accesslog.Repository
type AccessLogRepository struct {
	s *Store
}

func (s *Store) AccessLogRepo() *AccessLogRepository {
	return &AccessLogRepository{s: s}
}

func (r *AccessLogRepository) Create(ctx context.Context, entry *domain.QRAccessLogEntry) (*domain.QRAccessLogEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("accesslog.Create"); err != nil {
		return nil, err
	}

	entry.ID = r.s.nextID()
	r.s.data.logs = append(r.s.data.logs, *entry)
	return entry, nil
}

func (r *AccessLogRepository) List(ctx context.Context, filter domain.AccessLogFilter) ([]*domain.QRAccessLogEntry, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("accesslog.List"); err != nil {
		return nil, 0, err
	}

	entries := make([]*domain.QRAccessLogEntry, 0)
	for _, e := range r.s.data.logs {
		if filter.Granted != nil && e.AccessGranted != *filter.Granted {
			continue
		}
		if filter.BookingID != nil && (e.BookingID == nil || *e.BookingID != *filter.BookingID) {
			continue
		}
		e := e
		entries = append(entries, &e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Time.Equal(entries[j].Time) {
			return entries[i].Time.After(entries[j].Time)
		}
		return entries[i].ID > entries[j].ID
	})

	return page(entries, filter.Limit, filter.Offset), len(entries), nil
}
