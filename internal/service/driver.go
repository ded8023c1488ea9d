package service

import (
	"context"
	"errors"
	"strings"

	"driveu/internal/domain"
	"driveu/internal/matching"
	"driveu/internal/redis"
	"driveu/internal/repository"
	"driveu/internal/session"
)

// DriverService handles location reports and driver search.
type DriverService struct {
	locationStore   redis.LocationStoreInterface
	matcher         *MatchingService
	userRepo        repository.UserRepository
	driverRepo      repository.DriverRepository
	defaultRadiusKm float64
}

// NewDriverService creates a new DriverService.
func NewDriverService(
	locationStore redis.LocationStoreInterface,
	matcher *MatchingService,
	userRepo repository.UserRepository,
	driverRepo repository.DriverRepository,
	defaultRadiusKm float64,
) *DriverService {
	return &DriverService{
		locationStore:   locationStore,
		matcher:         matcher,
		userRepo:        userRepo,
		driverRepo:      driverRepo,
		defaultRadiusKm: defaultRadiusKm,
	}
}

// UpdateLocationRequest contains a caller's reported position.
type UpdateLocationRequest struct {
	Lat     float64
	Lng     float64
	Address string
}

// UpdateLocation stores the caller's position. Driver positions also go to
// the geo index so they become searchable.
func (s *DriverService) UpdateLocation(ctx context.Context, sess session.Session, req UpdateLocationRequest) (domain.Location, error) {
	if !domain.ValidCoordinates(req.Lat, req.Lng) {
		return domain.Location{}, ErrInvalidLocation
	}

	loc := domain.Location{Lat: req.Lat, Lng: req.Lng, Address: strings.TrimSpace(req.Address)}
	if err := s.userRepo.UpdateLocation(ctx, sess.UserID, loc); err != nil {
		return domain.Location{}, err
	}

	if !sess.IsDriver() {
		return loc, nil
	}

	if err := s.driverRepo.UpdateLocation(ctx, sess.UserID, loc); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return domain.Location{}, err
	}
	if err := s.locationStore.UpdateLocation(ctx, sess.UserID, req.Lat, req.Lng); err != nil {
		return domain.Location{}, err
	}
	s.matcher.invalidateDriver(ctx, sess.UserID)

	return loc, nil
}

// GoOffline removes the driver from the geo index so searches stop returning
// them until the next location report.
func (s *DriverService) GoOffline(ctx context.Context, sess session.Session) error {
	if !sess.IsDriver() {
		return ErrForbidden
	}
	if err := s.locationStore.RemoveLocation(ctx, sess.UserID); err != nil {
		return err
	}
	s.matcher.invalidateDriver(ctx, sess.UserID)
	return nil
}

// AvailableDriversQuery narrows a driver search. A nil center falls back to
// the caller's stored location and a zero radius to the configured default.
type AvailableDriversQuery struct {
	Lat      *float64
	Lng      *float64
	RadiusKm float64
}

// FindAvailable lists available drivers around the owner, nearest first.
func (s *DriverService) FindAvailable(ctx context.Context, sess session.Session, q AvailableDriversQuery) ([]matching.Match, error) {
	if !sess.IsOwner() {
		return nil, ErrForbidden
	}

	var center domain.Location
	switch {
	case q.Lat != nil && q.Lng != nil:
		center = domain.Location{Lat: *q.Lat, Lng: *q.Lng}
	case q.Lat != nil || q.Lng != nil:
		return nil, invalidArgument("lat and lng must be given together")
	default:
		user, err := s.userRepo.GetByID(ctx, sess.UserID)
		if err != nil {
			return nil, err
		}
		if user.Location == nil {
			return nil, ErrLocationRequired
		}
		center = *user.Location
	}
	if !center.Valid() {
		return nil, ErrInvalidLocation
	}

	radius := q.RadiusKm
	if radius == 0 {
		radius = s.defaultRadiusKm
	}
	if !(radius > 0) || radius > maxRadiusKm {
		return nil, ErrInvalidRadius
	}

	return s.matcher.Nearby(ctx, center, radius)
}

const maxRadiusKm = 50.0
