package tests

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"driveu/internal/booking"
	"driveu/internal/domain"
	"driveu/internal/redis"
	"driveu/internal/repository"
	"driveu/internal/repository/memory"
	"driveu/internal/service"
	"driveu/internal/session"
)

// ──────────────────────────────────────────────
// MOCK LOCATION STORE
// ──────────────────────────────────────────────

// MockLocationStore is a mock implementation of the driver geo index.
type MockLocationStore struct {
	mu        sync.RWMutex
	locations []redis.DriverLocation

	// Counters
	UpdateLocationCallCount int32

	// Error injection
	UpdateLocationError    error
	FindNearbyDriversError error
}

// NewMockLocationStore creates a new mock location store.
func NewMockLocationStore() *MockLocationStore {
	return &MockLocationStore{
		locations: make([]redis.DriverLocation, 0),
	}
}

func (m *MockLocationStore) UpdateLocation(ctx context.Context, driverID string, lat, lng float64) error {
	atomic.AddInt32(&m.UpdateLocationCallCount, 1)
	if m.UpdateLocationError != nil {
		return m.UpdateLocationError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, loc := range m.locations {
		if loc.DriverID == driverID {
			m.locations[i].Lat = lat
			m.locations[i].Lng = lng
			return nil
		}
	}
	m.locations = append(m.locations, redis.DriverLocation{DriverID: driverID, Lat: lat, Lng: lng})
	return nil
}

// FindNearbyDrivers returns every stored location; the mock does no geo
// filtering so callers must do their own.
func (m *MockLocationStore) FindNearbyDrivers(ctx context.Context, lat, lng, radiusKm float64) ([]redis.DriverLocation, error) {
	if m.FindNearbyDriversError != nil {
		return nil, m.FindNearbyDriversError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]redis.DriverLocation, len(m.locations))
	copy(result, m.locations)
	return result, nil
}

func (m *MockLocationStore) IsIndexed(ctx context.Context, driverID string) (bool, error) {
	return m.HasLocation(driverID), nil
}

func (m *MockLocationStore) RemoveLocation(ctx context.Context, driverID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, loc := range m.locations {
		if loc.DriverID == driverID {
			m.locations = append(m.locations[:i], m.locations[i+1:]...)
			return nil
		}
	}
	return nil
}

// SetLocations replaces the stored locations (for test setup).
func (m *MockLocationStore) SetLocations(locations []redis.DriverLocation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations = append([]redis.DriverLocation(nil), locations...)
}

// HasLocation checks if a driver location exists.
func (m *MockLocationStore) HasLocation(driverID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, loc := range m.locations {
		if loc.DriverID == driverID {
			return true
		}
	}
	return false
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of the booking lock store.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]string

	// Counters
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error

	// Force lock failure
	ForceAcquireFailure bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{locks: make(map[string]string)}
}

func (m *MockLockStore) AcquireBookingLock(ctx context.Context, bookingID string, ttl time.Duration) (string, error) {
	n := atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return "", m.AcquireError
	}
	if m.ForceAcquireFailure {
		return "", nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, held := m.locks[bookingID]; held {
		return "", nil
	}
	token := fmt.Sprintf("%s#%d", bookingID, n)
	m.locks[bookingID] = token
	return token, nil
}

func (m *MockLockStore) ReleaseBookingLock(ctx context.Context, bookingID, token string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[bookingID] == token {
		delete(m.locks, bookingID)
	}
	return nil
}

// IsLocked checks if a booking is locked (for test assertions).
func (m *MockLockStore) IsLocked(bookingID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, held := m.locks[bookingID]
	return held
}

// ──────────────────────────────────────────────
// MOCK DRIVER CACHE
// ──────────────────────────────────────────────

// MockDriverCache is a mock implementation of the driver profile cache.
type MockDriverCache struct {
	mu      sync.Mutex
	drivers map[string]*redis.CachedDriver

	// Counters
	GetCallCount        int32
	SetCallCount        int32
	InvalidateCallCount int32
}

// NewMockDriverCache creates a new mock driver cache.
func NewMockDriverCache() *MockDriverCache {
	return &MockDriverCache{drivers: make(map[string]*redis.CachedDriver)}
}

func (m *MockDriverCache) GetDriversBatch(ctx context.Context, ids []string) (map[string]*redis.CachedDriver, []string, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	hits := make(map[string]*redis.CachedDriver)
	var missing []string
	for _, id := range ids {
		if d, ok := m.drivers[id]; ok {
			c := *d
			hits[id] = &c
			continue
		}
		missing = append(missing, id)
	}
	return hits, missing, nil
}

func (m *MockDriverCache) SetDriversBatch(ctx context.Context, drivers []*redis.CachedDriver) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range drivers {
		c := *d
		m.drivers[d.ID] = &c
	}
	return nil
}

func (m *MockDriverCache) InvalidateDriver(ctx context.Context, driverID string) error {
	atomic.AddInt32(&m.InvalidateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drivers, driverID)
	return nil
}

// Has reports whether driverID is cached.
func (m *MockDriverCache) Has(driverID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.drivers[driverID]
	return ok
}

// ──────────────────────────────────────────────
// MOCK NOTIFIER
// ──────────────────────────────────────────────

// MockNotifier records published booking events.
type MockNotifier struct {
	mu     sync.Mutex
	events []domain.BookingEvent

	// Error injection
	PublishError error
}

// NewMockNotifier creates a new mock notifier.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Publish(ctx context.Context, event domain.BookingEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return m.PublishError
}

// Types returns the published event types in order.
func (m *MockNotifier) Types() []domain.EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.EventType, len(m.events))
	for i, e := range m.events {
		out[i] = e.Type
	}
	return out
}

// ──────────────────────────────────────────────
// MOCK BOOKING REPOSITORY
// ──────────────────────────────────────────────

// MockBookingRepository wraps the in-memory store with error injection.
type MockBookingRepository struct {
	*memory.BookingStore

	// Counters
	UpdateCallCount int32

	// Error injection
	UpdateError error
}

// NewMockBookingRepository creates a new mock booking repository.
func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{BookingStore: memory.NewBookingStore()}
}

func (m *MockBookingRepository) Update(ctx context.Context, b *domain.Booking, prev domain.BookingStatus) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	return m.BookingStore.Update(ctx, b, prev)
}

var _ repository.BookingRepository = (*MockBookingRepository)(nil)

// ──────────────────────────────────────────────
// MOCK ACCOUNT REPOSITORY
// ──────────────────────────────────────────────

// MockAccountRepository wraps the in-memory account store with error
// injection. An injected error fails the call before anything is written.
type MockAccountRepository struct {
	*memory.AccountStore

	// Counters
	CreateAccountCallCount int32

	// Error injection
	CreateAccountError error
}

// NewMockAccountRepository creates a mock account repository over users and drivers.
func NewMockAccountRepository(users *memory.UserStore, drivers *memory.DriverStore) *MockAccountRepository {
	return &MockAccountRepository{AccountStore: memory.NewAccountStore(users, drivers)}
}

func (m *MockAccountRepository) CreateAccount(ctx context.Context, user *domain.User, driver *domain.Driver) error {
	atomic.AddInt32(&m.CreateAccountCallCount, 1)
	if m.CreateAccountError != nil {
		return m.CreateAccountError
	}
	return m.AccountStore.CreateAccount(ctx, user, driver)
}

var _ repository.AccountRepository = (*MockAccountRepository)(nil)

// ──────────────────────────────────────────────
// FIXTURE
// ──────────────────────────────────────────────

// fixedSource returns n modulo the requested bound, so an OTP draw yields
// 1000+n for n < 9000.
type fixedSource struct{ n int }

func (s fixedSource) IntN(bound int) int { return s.n % bound }

// testOTP is the OTP every fixture booking receives.
const testOTP = "1234"

type fixture struct {
	users     *memory.UserStore
	drivers   *memory.DriverStore
	accounts  *MockAccountRepository
	bookings  *MockBookingRepository
	locations *memory.LocationIndex
	locks     *MockLockStore
	cache     *MockDriverCache
	notifier  *MockNotifier
	issuer    *session.Issuer

	auth       *service.AuthService
	driverSvc  *service.DriverService
	bookingSvc *service.BookingService
	placesSvc  *service.PlacesService
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		users:     memory.NewUserStore(),
		drivers:   memory.NewDriverStore(),
		bookings:  NewMockBookingRepository(),
		locations: memory.NewLocationIndex(),
		locks:     NewMockLockStore(),
		cache:     NewMockDriverCache(),
		notifier:  NewMockNotifier(),
		issuer:    session.NewIssuer("test-secret", time.Hour, 30*24*time.Hour),
	}

	f.accounts = NewMockAccountRepository(f.users, f.drivers)

	log := discardLogger()
	matcher := service.NewMatchingService(f.locations, f.cache, f.drivers, log)

	f.auth = service.NewAuthService(f.users, f.drivers, f.accounts, f.issuer, 4, log)
	f.driverSvc = service.NewDriverService(f.locations, matcher, f.users, f.drivers, 5)
	f.bookingSvc = service.NewBookingService(
		f.bookings,
		f.drivers,
		f.drivers,
		f.locks,
		matcher,
		booking.NewLifecycle(fixedSource{n: 234}),
		f.notifier,
		service.BookingSettings{LockTTL: time.Second, AvgSpeedKmh: 30},
		log,
	)
	f.placesSvc = service.NewPlacesService(memory.NewPlaceStore(repository.SeedPlaces()), 30)

	return f
}

// addOwner stores an owner account and returns its session.
func (f *fixture) addOwner(t *testing.T, id string, loc *domain.Location) session.Session {
	t.Helper()
	err := f.users.Create(context.Background(), &domain.User{
		ID:       id,
		Name:     "Owner " + id,
		Email:    id + "@example.com",
		Role:     domain.RoleOwner,
		Location: loc,
	})
	if err != nil {
		t.Fatalf("add owner: %v", err)
	}
	return session.Session{UserID: id, Role: domain.RoleOwner}
}

// addDriver stores an available driver at loc, indexes its position and
// returns its session.
func (f *fixture) addDriver(t *testing.T, id string, loc domain.Location, rate float64) session.Session {
	t.Helper()
	ctx := context.Background()
	if err := f.users.Create(ctx, &domain.User{ID: id, Name: "Driver " + id, Email: id + "@example.com", Role: domain.RoleDriver, Location: &loc}); err != nil {
		t.Fatalf("add driver user: %v", err)
	}
	if err := f.drivers.Create(ctx, &domain.Driver{ID: id, Name: "Driver " + id, Location: loc, Available: true, HourlyRate: rate}); err != nil {
		t.Fatalf("add driver: %v", err)
	}
	if err := f.locations.UpdateLocation(ctx, id, loc.Lat, loc.Lng); err != nil {
		t.Fatalf("index driver: %v", err)
	}
	return session.Session{UserID: id, Role: domain.RoleDriver}
}

// driver returns the stored driver profile.
func (f *fixture) driver(t *testing.T, id string) *domain.Driver {
	t.Helper()
	d, err := f.drivers.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get driver %s: %v", id, err)
	}
	return d
}

// stored returns the persisted booking, bypassing OTP redaction.
func (f *fixture) stored(t *testing.T, id string) *domain.Booking {
	t.Helper()
	b, err := f.bookings.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get booking %s: %v", id, err)
	}
	return b
}

var (
	delhi       = domain.Location{Lat: 28.6139, Lng: 77.2090}
	indiaGate   = domain.Location{Lat: 28.6129, Lng: 77.2295, Name: "India Gate"}
	nearDelhi   = domain.Location{Lat: 28.6229, Lng: 77.2090} // ~1 km north of delhi
	gurgaonPark = domain.Location{Lat: 28.4951, Lng: 77.0890}
)
