// Package matching selects and ranks drivers around a point.
package matching

import (
	"fmt"
	"math"
	"sort"

	"driveu/internal/domain"
	"driveu/internal/geo"
)

// Match is a driver within range together with its distance from the centre.
type Match struct {
	Driver     domain.Driver
	DistanceKm float64
}

// RankNearby returns the drivers whose great-circle distance to center is at
// most radiusKm, nearest first. Drivers at equal distance keep their input
// order. The input slice is not modified.
func RankNearby(center domain.Location, radiusKm float64, drivers []domain.Driver) ([]Match, error) {
	if !(radiusKm > 0) || math.IsInf(radiusKm, 1) {
		return nil, fmt.Errorf("%w: radius must be positive, got %v", domain.ErrInvalidArgument, radiusKm)
	}

	matches := make([]Match, 0, len(drivers))
	for _, d := range drivers {
		dist := geo.Distance(center, d.Location)
		if dist <= radiusKm {
			matches = append(matches, Match{Driver: d, DistanceKm: dist})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].DistanceKm < matches[j].DistanceKm
	})

	return matches, nil
}

// FindNearby is RankNearby without the distances.
func FindNearby(center domain.Location, radiusKm float64, drivers []domain.Driver) ([]domain.Driver, error) {
	matches, err := RankNearby(center, radiusKm, drivers)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Driver, len(matches))
	for i, m := range matches {
		out[i] = m.Driver
	}
	return out, nil
}

// FilterAvailable keeps only drivers flagged as available, preserving order.
func FilterAvailable(drivers []domain.Driver) []domain.Driver {
	out := make([]domain.Driver, 0, len(drivers))
	for _, d := range drivers {
		if d.Available {
			out = append(out, d)
		}
	}
	return out
}
