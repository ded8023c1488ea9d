package memory

import (
	"context"
	"sort"
	"sync"

	"driveu/internal/domain"
	"driveu/internal/repository"
)

// BookingStore is an in-memory repository.BookingRepository.
type BookingStore struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking
}

// NewBookingStore creates an empty BookingStore.
func NewBookingStore() *BookingStore {
	return &BookingStore{bookings: make(map[string]*domain.Booking)}
}

// Create stores a new booking.
func (s *BookingStore) Create(ctx context.Context, booking *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[booking.ID]; ok {
		return repository.ErrConflict
	}
	s.bookings[booking.ID] = cloneBooking(booking)
	return nil
}

// GetByID retrieves a booking by ID.
func (s *BookingStore) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneBooking(b), nil
}

// Update replaces the booking if its stored status is still prev.
func (s *BookingStore) Update(ctx context.Context, booking *domain.Booking, prev domain.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.bookings[booking.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if cur.Status != prev {
		return repository.ErrConflict
	}
	s.bookings[booking.ID] = cloneBooking(booking)
	return nil
}

// ListByOwner returns the owner's bookings, newest first.
func (s *BookingStore) ListByOwner(ctx context.Context, ownerID string, limit int) ([]*domain.Booking, error) {
	return s.list(func(b *domain.Booking) bool { return b.OwnerID == ownerID }, newestFirst, limit), nil
}

// ListByDriver returns the driver's bookings, newest first.
func (s *BookingStore) ListByDriver(ctx context.Context, driverID string, limit int) ([]*domain.Booking, error) {
	return s.list(func(b *domain.Booking) bool { return b.DriverID == driverID }, newestFirst, limit), nil
}

// ListRequestedForDriver returns the driver's pending requests, oldest first.
func (s *BookingStore) ListRequestedForDriver(ctx context.Context, driverID string) ([]*domain.Booking, error) {
	match := func(b *domain.Booking) bool {
		return b.DriverID == driverID && b.Status == domain.BookingStatusRequested
	}
	return s.list(match, oldestFirst, 0), nil
}

func newestFirst(a, b *domain.Booking) bool { return a.RequestedAt.After(b.RequestedAt) }
func oldestFirst(a, b *domain.Booking) bool { return a.RequestedAt.Before(b.RequestedAt) }

func (s *BookingStore) list(match func(*domain.Booking) bool, less func(a, b *domain.Booking) bool, limit int) []*domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if match(b) {
			out = append(out, cloneBooking(b))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if less(out[i], out[j]) {
			return true
		}
		if less(out[j], out[i]) {
			return false
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
