package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"driveu/internal/domain"
)

// PlaceRepository is a PostgreSQL implementation of repository.PlaceRepository.
type PlaceRepository struct {
	q Querier
}

// NewPlaceRepository creates a new PostgreSQL place repository.
func NewPlaceRepository(db *sql.DB) *PlaceRepository {
	return &PlaceRepository{q: db}
}

// NewPlaceRepositoryWithTx creates a place repository using a transaction.
func NewPlaceRepositoryWithTx(tx *sql.Tx) *PlaceRepository {
	return &PlaceRepository{q: tx}
}

const placeColumns = `id, name, city, state, country, lat, lng, address, place_type, popular`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search matches query against name, city and address.
func (r *PlaceRepository) Search(ctx context.Context, query string, limit int) ([]domain.Place, error) {
	pattern := "%" + likeEscaper.Replace(strings.TrimSpace(query)) + "%"
	stmt := `
		SELECT ` + placeColumns + ` FROM places
		WHERE name ILIKE $1 OR city ILIKE $1 OR address ILIKE $1
		ORDER BY popular DESC, name
		LIMIT $2
	`
	return r.list(ctx, stmt, pattern, limitOrDefault(limit))
}

// All returns every place.
func (r *PlaceRepository) All(ctx context.Context) ([]domain.Place, error) {
	return r.list(ctx, `SELECT `+placeColumns+` FROM places ORDER BY name`)
}

// Upsert inserts the places that are not stored yet.
func (r *PlaceRepository) Upsert(ctx context.Context, places []domain.Place) error {
	query := `
		INSERT INTO places (` + placeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`
	for _, p := range places {
		if _, err := r.q.ExecContext(ctx, query,
			p.ID, p.Name, p.City, p.State, p.Country, p.Lat, p.Lng, p.Address, p.PlaceType, p.Popular,
		); err != nil {
			return fmt.Errorf("failed to insert place %s: %w", p.ID, err)
		}
	}
	return nil
}

// SeedPlaces writes the catalog in a single transaction.
func SeedPlaces(ctx context.Context, db *sql.DB, places []domain.Place) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := NewPlaceRepositoryWithTx(tx).Upsert(ctx, places); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PlaceRepository) list(ctx context.Context, query string, args ...any) ([]domain.Place, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var places []domain.Place
	for rows.Next() {
		var p domain.Place
		if err := rows.Scan(&p.ID, &p.Name, &p.City, &p.State, &p.Country, &p.Lat, &p.Lng, &p.Address, &p.PlaceType, &p.Popular); err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	return places, rows.Err()
}
