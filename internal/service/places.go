package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"driveu/internal/domain"
	"driveu/internal/fare"
	"driveu/internal/geo"
	"driveu/internal/repository"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
	defaultNearbyLimit = 20
	maxNearbyLimit     = 100
	defaultPlaceRadius = 5.0
)

// PlacesService answers place lookups and straight-line directions.
type PlacesService struct {
	placeRepo   repository.PlaceRepository
	avgSpeedKmh float64
}

// NewPlacesService creates a new PlacesService.
func NewPlacesService(placeRepo repository.PlaceRepository, avgSpeedKmh float64) *PlacesService {
	if avgSpeedKmh <= 0 {
		avgSpeedKmh = fare.DefaultAvgSpeedKmh
	}
	return &PlacesService{placeRepo: placeRepo, avgSpeedKmh: avgSpeedKmh}
}

// PlaceDistance is a place with its distance and travel time from a point.
type PlaceDistance struct {
	Place      domain.Place
	DistanceKm float64
	EtaMinutes int
	EtaText    string
}

// Directions is the straight-line route between two points.
type Directions struct {
	DistanceKm      float64
	DistanceText    string
	DurationMinutes int
	DurationText    string
}

// Search finds places whose name, city or address contains query.
func (s *PlacesService) Search(ctx context.Context, query string, limit int) ([]domain.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" || len(query) > 200 {
		return nil, invalidArgument("query must be 1-200 characters")
	}
	return s.placeRepo.Search(ctx, query, clampLimit(limit, defaultSearchLimit, maxSearchLimit))
}

// Nearby lists places within radiusKm of lat/lng, nearest first.
func (s *PlacesService) Nearby(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]PlaceDistance, error) {
	if !domain.ValidCoordinates(lat, lng) {
		return nil, ErrInvalidLocation
	}
	if radiusKm == 0 {
		radiusKm = defaultPlaceRadius
	}
	if !(radiusKm > 0) || radiusKm > maxRadiusKm {
		return nil, ErrInvalidRadius
	}

	places, err := s.placeRepo.All(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]PlaceDistance, 0)
	for _, p := range places {
		d := geo.DistanceCoords(lat, lng, p.Lat, p.Lng)
		if d > radiusKm {
			continue
		}
		eta, err := fare.EstimateEta(d, s.avgSpeedKmh)
		if err != nil {
			return nil, err
		}
		out = append(out, PlaceDistance{
			Place:      p,
			DistanceKm: roundTo(d, 1),
			EtaMinutes: eta,
			EtaText:    fare.FormatEta(eta),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })

	if n := clampLimit(limit, defaultNearbyLimit, maxNearbyLimit); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// Directions estimates distance and duration between origin and dest.
func (s *PlacesService) Directions(ctx context.Context, origin, dest domain.Location) (Directions, error) {
	if !origin.Valid() || !dest.Valid() {
		return Directions{}, ErrInvalidLocation
	}

	d := geo.Distance(origin, dest)
	eta, err := fare.EstimateEta(d, s.avgSpeedKmh)
	if err != nil {
		return Directions{}, err
	}

	return Directions{
		DistanceKm:      roundTo(d, 2),
		DistanceText:    fmt.Sprintf("%.1f km", d),
		DurationMinutes: eta,
		DurationText:    fare.FormatEta(eta),
	}, nil
}

func clampLimit(limit, fallback, ceiling int) int {
	switch {
	case limit <= 0:
		return fallback
	case limit > ceiling:
		return ceiling
	default:
		return limit
	}
}
