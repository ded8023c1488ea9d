package memory

import (
	"context"
	"sort"
	"strings"

	"driveu/internal/domain"
)

// PlaceStore is a read-only in-memory repository.PlaceRepository.
type PlaceStore struct {
	places []domain.Place
}

// NewPlaceStore creates a PlaceStore over the given catalog.
func NewPlaceStore(places []domain.Place) *PlaceStore {
	return &PlaceStore{places: append([]domain.Place(nil), places...)}
}

func (s *PlaceStore) Search(ctx context.Context, query string, limit int) ([]domain.Place, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Place, 0)
	for _, p := range s.places {
		if q == "" ||
			strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.City), q) ||
			strings.Contains(strings.ToLower(p.Address), q) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Popular && !out[j].Popular })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *PlaceStore) All(ctx context.Context) ([]domain.Place, error) {
	return append([]domain.Place(nil), s.places...), nil
}
