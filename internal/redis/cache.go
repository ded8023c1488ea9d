package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"driveu/internal/domain"
)

// DriverCacheTTL bounds how stale a cached profile may be. Availability is
// always re-checked atomically when a booking is accepted.
const DriverCacheTTL = 30 * time.Second

const driverCachePrefix = "driveu:cache:driver:"

// CacheStore caches driver profiles in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// CachedDriver is the cached form of a driver profile.
type CachedDriver struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Phone           string   `json:"phone"`
	LicenseNumber   string   `json:"license_number"`
	ExperienceYears int      `json:"experience_years"`
	Rating          float64  `json:"rating"`
	CompletedTrips  int      `json:"completed_trips"`
	TotalEarnings   float64  `json:"total_earnings"`
	Skills          []string `json:"skills"`
	Habits          []string `json:"habits"`
	Lat             float64  `json:"lat"`
	Lng             float64  `json:"lng"`
	Available       bool     `json:"available"`
	HourlyRate      float64  `json:"hourly_rate"`
}

// NewCachedDriver converts a driver into its cached form.
func NewCachedDriver(d *domain.Driver) *CachedDriver {
	return &CachedDriver{
		ID:              d.ID,
		Name:            d.Name,
		Phone:           d.Phone,
		LicenseNumber:   d.LicenseNumber,
		ExperienceYears: d.ExperienceYears,
		Rating:          d.Rating,
		CompletedTrips:  d.CompletedTrips,
		TotalEarnings:   d.TotalEarnings,
		Skills:          d.Skills,
		Habits:          d.Habits,
		Lat:             d.Location.Lat,
		Lng:             d.Location.Lng,
		Available:       d.Available,
		HourlyRate:      d.HourlyRate,
	}
}

// Driver converts the cached form back into a domain driver.
func (c *CachedDriver) Driver() *domain.Driver {
	return &domain.Driver{
		ID:              c.ID,
		Name:            c.Name,
		Phone:           c.Phone,
		LicenseNumber:   c.LicenseNumber,
		ExperienceYears: c.ExperienceYears,
		Rating:          c.Rating,
		CompletedTrips:  c.CompletedTrips,
		TotalEarnings:   c.TotalEarnings,
		Skills:          c.Skills,
		Habits:          c.Habits,
		Location:        domain.Location{Lat: c.Lat, Lng: c.Lng},
		Available:       c.Available,
		HourlyRate:      c.HourlyRate,
	}
}

// InvalidateDriver removes a driver from cache.
func (s *CacheStore) InvalidateDriver(ctx context.Context, driverID string) error {
	return s.client.Del(ctx, driverCachePrefix+driverID).Err()
}

// GetDriversBatch retrieves multiple drivers from cache using a pipeline.
// It returns the hits keyed by id and the ids that missed.
func (s *CacheStore) GetDriversBatch(ctx context.Context, driverIDs []string) (map[string]*CachedDriver, []string, error) {
	if len(driverIDs) == 0 {
		return make(map[string]*CachedDriver), nil, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(driverIDs))
	for i, id := range driverIDs {
		cmds[i] = pipe.Get(ctx, driverCachePrefix+id)
	}

	// Exec reports redis.Nil when any key is missing; per-command results
	// are inspected below.
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, nil, err
	}

	result := make(map[string]*CachedDriver, len(driverIDs))
	var missing []string

	for i, cmd := range cmds {
		id := driverIDs[i]
		data, err := cmd.Bytes()
		if err != nil {
			missing = append(missing, id)
			continue
		}

		var driver CachedDriver
		if err := json.Unmarshal(data, &driver); err != nil {
			missing = append(missing, id)
			continue
		}
		result[id] = &driver
	}

	return result, missing, nil
}

// SetDriversBatch stores multiple drivers in cache using a pipeline.
func (s *CacheStore) SetDriversBatch(ctx context.Context, drivers []*CachedDriver) error {
	if len(drivers) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	for _, driver := range drivers {
		data, err := json.Marshal(driver)
		if err != nil {
			continue
		}
		pipe.Set(ctx, driverCachePrefix+driver.ID, data, DriverCacheTTL)
	}

	_, err := pipe.Exec(ctx)
	return err
}
