package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"driveu/internal/domain"
	"driveu/internal/repository"
)

// DriverRepository is a PostgreSQL implementation of repository.DriverRepository.
type DriverRepository struct {
	q Querier
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{q: db}
}

// NewDriverRepositoryWithTx creates a driver repository using a transaction.
func NewDriverRepositoryWithTx(tx *sql.Tx) *DriverRepository {
	return &DriverRepository{q: tx}
}

const driverColumns = `id, name, phone, license_number, experience_years, rating, completed_trips,
	total_earnings, skills, habits, lat, lng, available, hourly_rate, COALESCE(active_booking_id, '')`

// Create adds a new driver.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	query := `
		INSERT INTO drivers (id, name, phone, license_number, experience_years, rating, completed_trips,
			total_earnings, skills, habits, lat, lng, available, hourly_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.q.ExecContext(ctx, query,
		driver.ID,
		driver.Name,
		driver.Phone,
		driver.LicenseNumber,
		driver.ExperienceYears,
		driver.Rating,
		driver.CompletedTrips,
		driver.TotalEarnings,
		pq.Array(nonNil(driver.Skills)),
		pq.Array(nonNil(driver.Habits)),
		driver.Location.Lat,
		driver.Location.Lng,
		driver.Available,
		driver.HourlyRate,
	)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	return err
}

// GetByID retrieves a driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`

	driver, err := scanDriver(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return driver, nil
}

// GetByIDs retrieves the drivers that exist among ids.
func (r *DriverRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Driver, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = ANY($1)`
	rows, err := r.q.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []*domain.Driver
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, driver)
	}
	return drivers, rows.Err()
}

// UpdateLocation stores the driver's last reported position.
func (r *DriverRepository) UpdateLocation(ctx context.Context, id string, loc domain.Location) error {
	return execOne(ctx, r.q, `UPDATE drivers SET lat = $1, lng = $2 WHERE id = $3`, loc.Lat, loc.Lng, id)
}

// Reserve flips available from true to false in a single conditional UPDATE,
// so concurrent callers cannot both win.
func (r *DriverRepository) Reserve(ctx context.Context, driverID, bookingID string) (bool, error) {
	query := `UPDATE drivers SET available = FALSE, active_booking_id = $2 WHERE id = $1 AND available`

	result, err := r.q.ExecContext(ctx, query, driverID, bookingID)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if rowsAffected == 1 {
		return true, nil
	}

	if err := r.exists(ctx, driverID); err != nil {
		return false, err
	}
	return false, nil
}

// Release frees the driver if it is still held by bookingID.
func (r *DriverRepository) Release(ctx context.Context, driverID, bookingID string) error {
	query := `UPDATE drivers SET available = TRUE, active_booking_id = NULL WHERE id = $1 AND active_booking_id = $2`

	if _, err := r.q.ExecContext(ctx, query, driverID, bookingID); err != nil {
		return err
	}
	return nil
}

// RecordTrip adds a completed trip and folds rating into the average,
// rounded to two decimals.
func (r *DriverRepository) RecordTrip(ctx context.Context, driverID string, fare, rating float64) error {
	query := `
		UPDATE drivers
		SET rating = ROUND(((rating * completed_trips + $2) / (completed_trips + 1))::numeric, 2),
			completed_trips = completed_trips + 1,
			total_earnings = total_earnings + $3
		WHERE id = $1
	`
	return execOne(ctx, r.q, query, driverID, rating, fare)
}

func (r *DriverRepository) exists(ctx context.Context, id string) error {
	var found bool
	if err := r.q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM drivers WHERE id = $1)`, id).Scan(&found); err != nil {
		return err
	}
	if !found {
		return repository.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDriver(row rowScanner) (*domain.Driver, error) {
	var driver domain.Driver
	err := row.Scan(
		&driver.ID,
		&driver.Name,
		&driver.Phone,
		&driver.LicenseNumber,
		&driver.ExperienceYears,
		&driver.Rating,
		&driver.CompletedTrips,
		&driver.TotalEarnings,
		pq.Array(&driver.Skills),
		pq.Array(&driver.Habits),
		&driver.Location.Lat,
		&driver.Location.Lng,
		&driver.Available,
		&driver.HourlyRate,
		&driver.ActiveBookingID,
	)
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
