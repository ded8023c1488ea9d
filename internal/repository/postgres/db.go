package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"

	"driveu/internal/domain"
)

//go:embed schema.sql
var schema string

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint failures.
const uniqueViolation = "23505"

// Querier is an interface satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Ensure interfaces are satisfied.
var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// Migrate creates any missing tables and indexes.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

// nullCoords splits an optional location into nullable lat/lng columns.
func nullCoords(l *domain.Location) (sql.NullFloat64, sql.NullFloat64) {
	if l == nil {
		return sql.NullFloat64{}, sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: l.Lat, Valid: true}, sql.NullFloat64{Float64: l.Lng, Valid: true}
}

// locationFromNull rebuilds an optional location from its coordinate columns
// and the display fields in meta; nil when either coordinate is NULL.
func locationFromNull(lat, lng sql.NullFloat64, meta domain.Location) *domain.Location {
	if !lat.Valid || !lng.Valid {
		return nil
	}
	meta.Lat, meta.Lng = lat.Float64, lng.Float64
	return &meta
}

// locationColumns maps a location onto the six
// <prefix>_{lat,lng,name,address,city,state} columns of a row.
type locationColumns struct {
	lat, lng                   sql.NullFloat64
	name, address, city, state string
}

func columnsOf(l *domain.Location) locationColumns {
	var c locationColumns
	c.lat, c.lng = nullCoords(l)
	if l != nil {
		c.name, c.address, c.city, c.state = l.Name, l.Address, l.City, l.State
	}
	return c
}

func (c locationColumns) values() []any {
	return []any{c.lat, c.lng, c.name, c.address, c.city, c.state}
}

func (c *locationColumns) targets() []any {
	return []any{&c.lat, &c.lng, &c.name, &c.address, &c.city, &c.state}
}

func (c locationColumns) location() *domain.Location {
	return locationFromNull(c.lat, c.lng, domain.Location{Name: c.name, Address: c.address, City: c.city, State: c.state})
}

// locationColumnNames lists the columns of a location stored under prefix.
func locationColumnNames(prefix string) string {
	return prefix + "_lat, " + prefix + "_lng, " + prefix + "_name, " +
		prefix + "_address, " + prefix + "_city, " + prefix + "_state"
}

// locationAssignments returns "<prefix>_lat = $from, ..." for the six
// location columns, numbering parameters from from.
func locationAssignments(prefix string, from int) string {
	cols := strings.Split(locationColumnNames(prefix), ", ")
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = col + " = $" + strconv.Itoa(from+i)
	}
	return strings.Join(parts, ", ")
}

// placeholders returns "$from, ..., $to".
func placeholders(from, to int) string {
	var b strings.Builder
	for i := from; i <= to; i++ {
		if i > from {
			b.WriteString(", ")
		}
		b.WriteString("$" + strconv.Itoa(i))
	}
	return b.String()
}
