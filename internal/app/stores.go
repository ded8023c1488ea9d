package app

import (
	"database/sql"

	goredis "github.com/redis/go-redis/v9"

	"driveu/internal/redis"
	"driveu/internal/repository"
	"driveu/internal/repository/memory"
	"driveu/internal/repository/postgres"
	"driveu/internal/service"
)

// Stores groups every persistence dependency of the services.
type Stores struct {
	Users        repository.UserRepository
	Accounts     repository.AccountRepository
	Drivers      repository.DriverRepository
	Availability service.AvailabilityStore
	Bookings     repository.BookingRepository
	Places       repository.PlaceRepository

	Locations redis.LocationStoreInterface
	Locks     redis.LockStoreInterface
	Cache     redis.DriverCacheInterface // nil disables profile caching
	Responses redis.ResponseStoreInterface
}

// NewBackedStores wires PostgreSQL repositories and Redis stores.
func NewBackedStores(db *sql.DB, client *goredis.Client) *Stores {
	drivers := postgres.NewDriverRepository(db)
	return &Stores{
		Users:        postgres.NewUserRepository(db),
		Accounts:     postgres.NewAccountRepository(db),
		Drivers:      drivers,
		Availability: drivers,
		Bookings:     postgres.NewBookingRepository(db),
		Places:       postgres.NewPlaceRepository(db),
		Locations:    redis.NewLocationStore(client),
		Locks:        redis.NewLockStore(client),
		Cache:        redis.NewCacheStore(client),
		Responses:    redis.NewIdempotencyStore(client),
	}
}

// NewMemoryStores wires in-process stores for a single instance.
func NewMemoryStores() *Stores {
	users := memory.NewUserStore()
	drivers := memory.NewDriverStore()
	return &Stores{
		Users:        users,
		Accounts:     memory.NewAccountStore(users, drivers),
		Drivers:      drivers,
		Availability: drivers,
		Bookings:     memory.NewBookingStore(),
		Places:       memory.NewPlaceStore(repository.SeedPlaces()),
		Locations:    memory.NewLocationIndex(),
		Locks:        memory.NewLockStore(),
		Responses:    memory.NewResponseStore(),
	}
}
