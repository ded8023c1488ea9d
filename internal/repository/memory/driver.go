package memory

import (
	"context"
	"math"
	"sync"

	"driveu/internal/domain"
	"driveu/internal/repository"
)

// DriverStore is an in-memory repository.DriverRepository. Reserve and
// Release are atomic under the store mutex.
type DriverStore struct {
	mu      sync.RWMutex
	drivers map[string]*domain.Driver
}

// NewDriverStore creates an empty DriverStore.
func NewDriverStore() *DriverStore {
	return &DriverStore{drivers: make(map[string]*domain.Driver)}
}

// Create adds a new driver.
func (s *DriverStore) Create(ctx context.Context, driver *domain.Driver) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drivers[driver.ID]; ok {
		return repository.ErrConflict
	}
	s.drivers[driver.ID] = cloneDriver(driver)
	return nil
}

// GetByID retrieves a driver by ID.
func (s *DriverStore) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneDriver(d), nil
}

// GetByIDs returns the drivers that exist among ids, in the order given.
func (s *DriverStore) GetByIDs(ctx context.Context, ids []string) ([]*domain.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Driver, 0, len(ids))
	for _, id := range ids {
		if d, ok := s.drivers[id]; ok {
			out = append(out, cloneDriver(d))
		}
	}
	return out, nil
}

// UpdateLocation stores the driver's last reported position.
func (s *DriverStore) UpdateLocation(ctx context.Context, id string, loc domain.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drivers[id]
	if !ok {
		return repository.ErrNotFound
	}
	d.Location = loc
	return nil
}

// Reserve marks the driver unavailable for bookingID if it is free.
func (s *DriverStore) Reserve(ctx context.Context, driverID, bookingID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drivers[driverID]
	if !ok {
		return false, repository.ErrNotFound
	}
	if !d.Available {
		return false, nil
	}
	d.Available = false
	d.ActiveBookingID = bookingID
	return true, nil
}

// Release frees the driver if bookingID still holds it.
func (s *DriverStore) Release(ctx context.Context, driverID, bookingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drivers[driverID]
	if !ok {
		return repository.ErrNotFound
	}
	if d.ActiveBookingID != bookingID {
		return nil
	}
	d.Available = true
	d.ActiveBookingID = ""
	return nil
}

// RecordTrip adds a completed trip and folds rating into the average.
func (s *DriverStore) RecordTrip(ctx context.Context, driverID string, fare, rating float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drivers[driverID]
	if !ok {
		return repository.ErrNotFound
	}
	total := d.Rating*float64(d.CompletedTrips) + rating
	d.CompletedTrips++
	d.TotalEarnings += fare
	d.Rating = math.Round(total/float64(d.CompletedTrips)*100) / 100
	return nil
}
