// Package fare computes hourly fares and travel-time estimates.
package fare

import (
	"fmt"
	"math"

	"driveu/internal/domain"
)

// DefaultAvgSpeedKmh is the assumed city driving speed.
const DefaultAvgSpeedKmh = 30.0

// ComputeFare returns hours * hourlyRate.
func ComputeFare(hours, hourlyRate float64) (float64, error) {
	if !(hours > 0) {
		return 0, fmt.Errorf("%w: hours must be positive, got %v", domain.ErrInvalidArgument, hours)
	}
	if !(hourlyRate > 0) {
		return 0, fmt.Errorf("%w: hourly rate must be positive, got %v", domain.ErrInvalidArgument, hourlyRate)
	}
	return hours * hourlyRate, nil
}

// EstimateEta returns the travel time in whole minutes for distanceKm at
// avgSpeedKmh.
func EstimateEta(distanceKm, avgSpeedKmh float64) (int, error) {
	if !(distanceKm >= 0) || math.IsInf(distanceKm, 0) {
		return 0, fmt.Errorf("%w: distance must be non-negative, got %v", domain.ErrInvalidArgument, distanceKm)
	}
	if !(avgSpeedKmh > 0) {
		return 0, fmt.Errorf("%w: average speed must be positive, got %v", domain.ErrInvalidArgument, avgSpeedKmh)
	}
	return int(math.Round(distanceKm / avgSpeedKmh * 60)), nil
}

// FormatEta renders minutes as "12 min", "2 hr" or "1 hr 5 min".
func FormatEta(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%d hr", h)
	}
	return fmt.Sprintf("%d hr %d min", h, m)
}
