package postgres

import (
	"context"
	"database/sql"
	"errors"

	"driveu/internal/domain"
	"driveu/internal/repository"
)

// BookingRepository is a PostgreSQL implementation of repository.BookingRepository.
type BookingRepository struct {
	q Querier
}

// NewBookingRepository creates a new PostgreSQL booking repository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{q: db}
}

var bookingColumns = `id, code, owner_id, driver_id, ` + locationColumnNames("pickup") + `, ` +
	locationColumnNames("destination") + `, duration_hours, hourly_rate, fare, otp, status, rating, review,
	distance_km, estimated_minutes, requested_at, accepted_at, started_at, completed_at, ` +
	locationColumnNames("start") + `, ` + locationColumnNames("end") + `,
	actual_distance_km, actual_duration_minutes`

// Create persists a new booking.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := bookingArgs(booking)
	query := `INSERT INTO bookings (` + bookingColumns + `) VALUES (` + placeholders(1, len(args)) + `)`

	_, err := r.q.ExecContext(ctx, query, args...)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	return err
}

// GetByID retrieves a booking by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return booking, nil
}

// Update overwrites the mutable booking columns if the stored status is prev.
func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking, prev domain.BookingStatus) error {
	query := `
		UPDATE bookings
		SET otp = $1, status = $2, rating = $3, review = $4, accepted_at = $5, started_at = $6,
			completed_at = $7, actual_distance_km = $8, actual_duration_minutes = $9,
			` + locationAssignments("start", 10) + `,
			` + locationAssignments("end", 16) + `
		WHERE id = $22 AND status = $23
	`

	args := []any{
		booking.OTP,
		booking.Status,
		nullFloat(booking.Rating),
		booking.Review,
		nullTime(booking.AcceptedAt),
		nullTime(booking.StartedAt),
		nullTime(booking.CompletedAt),
		booking.ActualDistanceKm,
		booking.ActualDurationMinutes,
	}
	args = append(args, columnsOf(booking.ActualStartLocation).values()...)
	args = append(args, columnsOf(booking.ActualEndLocation).values()...)
	args = append(args, booking.ID, prev)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 1 {
		return nil
	}

	// Distinguish a missing booking from one another writer moved on.
	if _, err := r.GetByID(ctx, booking.ID); err != nil {
		return err
	}
	return repository.ErrConflict
}

// ListByOwner returns the owner's bookings, newest first.
func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID string, limit int) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE owner_id = $1 ORDER BY requested_at DESC, id LIMIT $2`
	return r.list(ctx, query, ownerID, limitOrDefault(limit))
}

// ListByDriver returns the driver's bookings, newest first.
func (r *BookingRepository) ListByDriver(ctx context.Context, driverID string, limit int) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE driver_id = $1 ORDER BY requested_at DESC, id LIMIT $2`
	return r.list(ctx, query, driverID, limitOrDefault(limit))
}

// ListRequestedForDriver returns the driver's pending requests, oldest first.
func (r *BookingRepository) ListRequestedForDriver(ctx context.Context, driverID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE driver_id = $1 AND status = $2 ORDER BY requested_at, id`
	return r.list(ctx, query, driverID, domain.BookingStatusRequested)
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Booking, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return 100
	}
	return limit
}

func bookingArgs(b *domain.Booking) []any {
	args := []any{b.ID, b.Code, b.OwnerID, b.DriverID}
	args = append(args, columnsOf(b.Pickup).values()...)
	args = append(args, columnsOf(&b.Destination).values()...)
	args = append(args,
		b.DurationHours,
		b.HourlyRate,
		b.Fare,
		b.OTP,
		b.Status,
		nullFloat(b.Rating),
		b.Review,
		b.DistanceKm,
		b.EstimatedMinutes,
		b.RequestedAt,
		nullTime(b.AcceptedAt),
		nullTime(b.StartedAt),
		nullTime(b.CompletedAt),
	)
	args = append(args, columnsOf(b.ActualStartLocation).values()...)
	args = append(args, columnsOf(b.ActualEndLocation).values()...)
	return append(args, b.ActualDistanceKm, b.ActualDurationMinutes)
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var pickup, destination, start, end locationColumns
	var rating sql.NullFloat64
	var acceptedAt, startedAt, completedAt sql.NullTime

	dest := []any{&b.ID, &b.Code, &b.OwnerID, &b.DriverID}
	dest = append(dest, pickup.targets()...)
	dest = append(dest, destination.targets()...)
	dest = append(dest,
		&b.DurationHours,
		&b.HourlyRate,
		&b.Fare,
		&b.OTP,
		&b.Status,
		&rating,
		&b.Review,
		&b.DistanceKm,
		&b.EstimatedMinutes,
		&b.RequestedAt,
		&acceptedAt,
		&startedAt,
		&completedAt,
	)
	dest = append(dest, start.targets()...)
	dest = append(dest, end.targets()...)
	dest = append(dest, &b.ActualDistanceKm, &b.ActualDurationMinutes)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	b.Pickup = pickup.location()
	if d := destination.location(); d != nil {
		b.Destination = *d
	}
	b.ActualStartLocation = start.location()
	b.ActualEndLocation = end.location()
	if rating.Valid {
		r := rating.Float64
		b.Rating = &r
	}
	if acceptedAt.Valid {
		b.AcceptedAt = acceptedAt.Time
	}
	if startedAt.Valid {
		b.StartedAt = startedAt.Time
	}
	if completedAt.Valid {
		b.CompletedAt = completedAt.Time
	}

	return &b, nil
}
