// Package memstore is an in-memory stand-in for the Postgres repositories,
// used by usecase and service tests. Transactions are serialized and a
// failed transaction restores the state it started from.
package memstore

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Store holds every table. Repositories are views over the same Store.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	data     state
	now      func() time.Time
	failures map[string]error
}

type state struct {
	spots    map[int64]domain.ParkingSpot
	tariffs  map[int64]domain.Tariff
	history  []domain.TariffPriceHistory
	users    map[int64]domain.Principal
	cars     map[int64]domain.Car
	bookings map[int64]domain.Booking
	payments map[int64]domain.Payment // by booking id
	logs     []domain.QRAccessLogEntry
	nextID   int64
}

func New() *Store {
	return &Store{
		data: state{
			spots:    make(map[int64]domain.ParkingSpot),
			tariffs:  make(map[int64]domain.Tariff),
			users:    make(map[int64]domain.Principal),
			cars:     make(map[int64]domain.Car),
			bookings: make(map[int64]domain.Booking),
			payments: make(map[int64]domain.Payment),
		},
		now:      func() time.Time { return time.Now().UTC() },
		failures: make(map[string]error),
	}
}

func (st state) clone() state {
	c := state{
		spots:    make(map[int64]domain.ParkingSpot, len(st.spots)),
		tariffs:  make(map[int64]domain.Tariff, len(st.tariffs)),
		history:  append([]domain.TariffPriceHistory(nil), st.history...),
		users:    make(map[int64]domain.Principal, len(st.users)),
		cars:     make(map[int64]domain.Car, len(st.cars)),
		bookings: make(map[int64]domain.Booking, len(st.bookings)),
		payments: make(map[int64]domain.Payment, len(st.payments)),
		logs:     append([]domain.QRAccessLogEntry(nil), st.logs...),
		nextID:   st.nextID,
	}
	for k, v := range st.spots {
		c.spots[k] = v
	}
	for k, v := range st.tariffs {
		c.tariffs[k] = v
	}
	for k, v := range st.users {
		c.users[k] = v
	}
	for k, v := range st.cars {
		c.cars[k] = v
	}
	for k, v := range st.bookings {
		c.bookings[k] = v
	}
	for k, v := range st.payments {
		c.payments[k] = v
	}
	return c
}

// SetNow fixes the clock used for generated timestamps
func (s *Store) SetNow(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = func() time.Time { return t }
}

// FailNext makes the next call of op (for example "accesslog.Create") return err
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

// fail must be called with mu held
func (s *Store) fail(op string) error {
	err, ok := s.failures[op]
	if !ok {
		return nil
	}
	delete(s.failures, op)
	return err
}

func (s *Store) nextID() int64 {
	s.data.nextID++
	return s.data.nextID
}

// Seed helpers write rows directly, bypassing the repositories.

func (s *Store) AddUser(p domain.Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.users[p.UserID] = p
}

func (s *Store) AddSpot(number int64, status domain.SpotStatus) domain.ParkingSpot {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	spot := domain.ParkingSpot{Number: number, Status: status, CreatedAt: now, UpdatedAt: now}
	s.data.spots[number] = spot
	return spot
}

func (s *Store) AddTariff(t domain.Tariff) domain.Tariff {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextID()
	t.CreatedAt = s.now()
	t.UpdatedAt = t.CreatedAt
	s.data.tariffs[t.ID] = t
	return t
}

func (s *Store) AddCar(c domain.Car) domain.Car {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.nextID()
	c.RegisteredAt = s.now()
	s.data.cars[c.ID] = c
	return c
}

func (s *Store) AddBooking(b domain.Booking) domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.nextID()
	b.CreatedAt = s.now()
	b.UpdatedAt = b.CreatedAt
	s.data.bookings[b.ID] = b
	return b
}

func (s *Store) AddPayment(bookingID int64, amount decimal.Decimal) domain.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := domain.Payment{ID: s.nextID(), BookingID: bookingID, Amount: amount, PaymentDate: s.now()}
	s.data.payments[bookingID] = p
	return p
}

// Accessors read rows directly for assertions.

func (s *Store) Booking(id int64) (domain.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.data.bookings[id]
	return b, ok
}

func (s *Store) Spot(number int64) (domain.ParkingSpot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	spot, ok := s.data.spots[number]
	return spot, ok
}

func (s *Store) Car(id int64) (domain.Car, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.data.cars[id]
	return c, ok
}

func (s *Store) Tariff(id int64) (domain.Tariff, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.data.tariffs[id]
	return t, ok
}

func (s *Store) User(id int64) (domain.Principal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.data.users[id]
	return p, ok
}

func (s *Store) Payment(bookingID int64) (domain.Payment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.data.payments[bookingID]
	return p, ok
}

// Payments returns every payment ordered by id
func (s *Store) Payments() []domain.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Payment, 0, len(s.data.payments))
	for _, p := range s.data.payments {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AccessLogs returns the access log in insertion order
func (s *Store) AccessLogs() []domain.QRAccessLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.QRAccessLogEntry(nil), s.data.logs...)
}

// PriceHistory returns the price history in insertion order
func (s *Store) PriceHistory() []domain.TariffPriceHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.TariffPriceHistory(nil), s.data.history...)
}

// page applies offset and limit the way the SQL repositories do
func page[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return items[:0]
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
