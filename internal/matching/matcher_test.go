package matching

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"driveu/internal/domain"
	"driveu/internal/geo"
)

// kmPerDegreeLat is the length of one degree of latitude on the haversine sphere.
var kmPerDegreeLat = geo.EarthRadiusKm * math.Pi / 180

// driverNorthOf places a driver distanceKm due north of center.
func driverNorthOf(id string, center domain.Location, distanceKm float64) domain.Driver {
	return domain.Driver{
		ID:        id,
		Available: true,
		Location:  domain.Location{Lat: center.Lat + distanceKm/kmPerDegreeLat, Lng: center.Lng},
	}
}

func ids(drivers []domain.Driver) []string {
	out := make([]string, len(drivers))
	for i, d := range drivers {
		out[i] = d.ID
	}
	return out
}

func TestFindNearby_FiltersByRadiusAndSortsAscending(t *testing.T) {
	center := domain.Location{Lat: 28.6, Lng: 77.2}
	drivers := []domain.Driver{
		driverNorthOf("d-2km", center, 2),
		driverNorthOf("d-6km", center, 6),
		driverNorthOf("d-4.9km", center, 4.9),
	}

	got, err := FindNearby(center, 5, drivers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"d-2km", "d-4.9km"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Errorf("FindNearby = %v, want %v", ids(got), want)
	}
}

func TestFindNearby_StableForEqualDistances(t *testing.T) {
	center := domain.Location{Lat: 0, Lng: 0}
	drivers := []domain.Driver{
		driverNorthOf("first", center, 1),
		driverNorthOf("closest", center, 0.5),
		driverNorthOf("second", center, 1),
		driverNorthOf("third", center, 1),
	}

	got, err := FindNearby(center, 3, drivers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"closest", "first", "second", "third"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Errorf("FindNearby = %v, want %v", ids(got), want)
	}
}

func TestFindNearby_DoesNotMutateInput(t *testing.T) {
	center := domain.Location{Lat: 0, Lng: 0}
	drivers := []domain.Driver{
		driverNorthOf("far", center, 3),
		driverNorthOf("near", center, 1),
	}
	before := ids(drivers)

	if _, err := FindNearby(center, 5, drivers); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(ids(drivers), before) {
		t.Errorf("input reordered: %v, want %v", ids(drivers), before)
	}
}

func TestFindNearby_RejectsNonPositiveRadius(t *testing.T) {
	for _, r := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := FindNearby(domain.Location{}, r, nil)
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("radius %v: expected ErrInvalidArgument, got %v", r, err)
		}
	}
}

func TestRankNearby_ReportsDistances(t *testing.T) {
	center := domain.Location{Lat: 12.97, Lng: 77.59}
	matches, err := RankNearby(center, 10, []domain.Driver{driverNorthOf("d", center, 2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if math.Abs(matches[0].DistanceKm-2) > 1e-6 {
		t.Errorf("distance = %f, want 2", matches[0].DistanceKm)
	}
}

func TestFilterAvailable_PreservesOrder(t *testing.T) {
	drivers := []domain.Driver{
		{ID: "a", Available: true},
		{ID: "b", Available: false},
		{ID: "c", Available: true},
		{ID: "d", Available: false},
	}

	got := FilterAvailable(drivers)

	want := []string{"a", "c"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Errorf("FilterAvailable = %v, want %v", ids(got), want)
	}
}
