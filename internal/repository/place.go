package repository

import (
	"context"

	"driveu/internal/domain"
)

// PlaceRepository defines read access to the places catalog.
type PlaceRepository interface {
	// Search matches query against name, city and address, case-insensitively.
	// Popular places come first.
	Search(ctx context.Context, query string, limit int) ([]domain.Place, error)

	// All returns every place in the catalog.
	All(ctx context.Context) ([]domain.Place, error)
}
