package service

import (
	"context"
	"log/slog"

	"driveu/internal/domain"
	"driveu/internal/matching"
	"driveu/internal/redis"
	"driveu/internal/repository"
)

// MatchingService resolves the available drivers around a point.
//
// Candidates come from the geo index, profiles from the cache store with a
// single repository round trip for misses, and the final filter and ranking
// from the DriverMatcher on exact haversine distance.
type MatchingService struct {
	locationStore redis.LocationStoreInterface
	cacheStore    redis.DriverCacheInterface // optional
	driverRepo    repository.DriverRepository
	log           *slog.Logger
}

// NewMatchingService creates a new MatchingService. cacheStore may be nil.
func NewMatchingService(
	locationStore redis.LocationStoreInterface,
	cacheStore redis.DriverCacheInterface,
	driverRepo repository.DriverRepository,
	log *slog.Logger,
) *MatchingService {
	return &MatchingService{
		locationStore: locationStore,
		cacheStore:    cacheStore,
		driverRepo:    driverRepo,
		log:           log,
	}
}

// Nearby returns the available drivers within radiusKm of center, nearest
// first.
func (s *MatchingService) Nearby(ctx context.Context, center domain.Location, radiusKm float64) ([]matching.Match, error) {
	if !(radiusKm > 0) {
		return nil, ErrInvalidRadius
	}

	indexed, err := s.locationStore.FindNearbyDrivers(ctx, center.Lat, center.Lng, radiusKm)
	if err != nil {
		return nil, err
	}
	if len(indexed) == 0 {
		return []matching.Match{}, nil
	}

	ids := make([]string, len(indexed))
	for i, loc := range indexed {
		ids[i] = loc.DriverID
	}

	profiles, err := s.loadDrivers(ctx, ids)
	if err != nil {
		return nil, err
	}

	// The geo index holds the freshest position; profiles may lag behind it.
	drivers := make([]domain.Driver, 0, len(indexed))
	for _, loc := range indexed {
		d, ok := profiles[loc.DriverID]
		if !ok {
			continue
		}
		driver := *d
		driver.Location.Lat = loc.Lat
		driver.Location.Lng = loc.Lng
		drivers = append(drivers, driver)
	}

	return matching.RankNearby(center, radiusKm, matching.FilterAvailable(drivers))
}

// loadDrivers batch-reads profiles from cache, then the repository.
func (s *MatchingService) loadDrivers(ctx context.Context, ids []string) (map[string]*domain.Driver, error) {
	result := make(map[string]*domain.Driver, len(ids))
	missing := ids

	if s.cacheStore != nil {
		cached, miss, err := s.cacheStore.GetDriversBatch(ctx, ids)
		if err != nil {
			s.log.WarnContext(ctx, "driver cache read failed", "error", err)
		} else {
			for id, c := range cached {
				result[id] = c.Driver()
			}
			missing = miss
		}
	}

	if len(missing) == 0 {
		return result, nil
	}

	fromDB, err := s.driverRepo.GetByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}

	toCache := make([]*redis.CachedDriver, 0, len(fromDB))
	for _, d := range fromDB {
		result[d.ID] = d
		toCache = append(toCache, redis.NewCachedDriver(d))
	}

	if s.cacheStore != nil && len(toCache) > 0 {
		if err := s.cacheStore.SetDriversBatch(ctx, toCache); err != nil {
			s.log.WarnContext(ctx, "driver cache write failed", "error", err)
		}
	}

	return result, nil
}

// invalidateDriver drops a cached profile after its availability or stats change.
// isIndexed reports whether the driver is visible to searches. A nil
// service treats every driver as visible.
func (s *MatchingService) isIndexed(ctx context.Context, driverID string) (bool, error) {
	if s == nil {
		return true, nil
	}
	return s.locationStore.IsIndexed(ctx, driverID)
}

func (s *MatchingService) invalidateDriver(ctx context.Context, driverID string) {
	if s == nil || s.cacheStore == nil {
		return
	}
	if err := s.cacheStore.InvalidateDriver(ctx, driverID); err != nil {
		s.log.WarnContext(ctx, "driver cache invalidation failed", "driver_id", driverID, "error", err)
	}
}
