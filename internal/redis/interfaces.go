package redis

import (
	"context"
	"time"
)

// LocationStoreInterface defines the interface for driver location operations.
type LocationStoreInterface interface {
	UpdateLocation(ctx context.Context, driverID string, lat, lng float64) error
	FindNearbyDrivers(ctx context.Context, lat, lng, radiusKm float64) ([]DriverLocation, error)
	RemoveLocation(ctx context.Context, driverID string) error
	IsIndexed(ctx context.Context, driverID string) (bool, error)
}

// LockStoreInterface defines the interface for booking locks.
type LockStoreInterface interface {
	AcquireBookingLock(ctx context.Context, bookingID string, ttl time.Duration) (string, error)
	ReleaseBookingLock(ctx context.Context, bookingID, token string) error
}

// DriverCacheInterface defines the interface for driver profile caching.
type DriverCacheInterface interface {
	GetDriversBatch(ctx context.Context, driverIDs []string) (map[string]*CachedDriver, []string, error)
	SetDriversBatch(ctx context.Context, drivers []*CachedDriver) error
	InvalidateDriver(ctx context.Context, driverID string) error
}

// ResponseStoreInterface defines the interface for idempotent response replay.
type ResponseStoreInterface interface {
	GetResponse(ctx context.Context, key string) ([]byte, bool, error)
	SetResponse(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// Ensure concrete types implement interfaces.
var (
	_ LocationStoreInterface = (*LocationStore)(nil)
	_ LockStoreInterface     = (*LockStore)(nil)
	_ DriverCacheInterface   = (*CacheStore)(nil)
	_ ResponseStoreInterface = (*IdempotencyStore)(nil)
)
