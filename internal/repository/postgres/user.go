package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"driveu/internal/domain"
	"driveu/internal/repository"
)

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	q Querier
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{q: db}
}

// NewUserRepositoryWithTx creates a user repository using a transaction.
func NewUserRepositoryWithTx(tx *sql.Tx) *UserRepository {
	return &UserRepository{q: tx}
}

const userColumns = `id, name, email, phone, password_hash, role, city, lat, lng, location_address,
	car_model, car_number, car_color, car_year, created_at, last_login_at`

// Create adds a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	lat, lng := nullCoords(user.Location)
	var address string
	if user.Location != nil {
		address = user.Location.Address
	}

	var carModel, carNumber, carColor sql.NullString
	var carYear sql.NullInt64
	if user.Car != nil {
		carModel = sql.NullString{String: user.Car.Model, Valid: true}
		carNumber = sql.NullString{String: user.Car.Number, Valid: true}
		carColor = sql.NullString{String: user.Car.Color, Valid: true}
		carYear = sql.NullInt64{Int64: int64(user.Car.Year), Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.Role,
		user.City,
		lat,
		lng,
		address,
		carModel,
		carNumber,
		carColor,
		carYear,
		user.CreatedAt,
		nullTime(user.LastLoginAt),
	)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	return err
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.q.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return scanUser(r.q.QueryRowContext(ctx, query, email))
}

// UpdateLocation stores the user's last known position.
func (r *UserRepository) UpdateLocation(ctx context.Context, id string, loc domain.Location) error {
	query := `UPDATE users SET lat = $1, lng = $2, location_address = $3 WHERE id = $4`
	return execOne(ctx, r.q, query, loc.Lat, loc.Lng, loc.Address, id)
}

// TouchLogin records a successful login.
func (r *UserRepository) TouchLogin(ctx context.Context, id string, at time.Time) error {
	return execOne(ctx, r.q, `UPDATE users SET last_login_at = $1 WHERE id = $2`, at, id)
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var lat, lng sql.NullFloat64
	var address string
	var carModel, carNumber, carColor sql.NullString
	var carYear sql.NullInt64
	var lastLogin sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.Role,
		&user.City,
		&lat,
		&lng,
		&address,
		&carModel,
		&carNumber,
		&carColor,
		&carYear,
		&user.CreatedAt,
		&lastLogin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	user.Location = locationFromNull(lat, lng, domain.Location{Address: address})
	if carModel.Valid {
		user.Car = &domain.CarDetails{
			Model:  carModel.String,
			Number: carNumber.String,
			Color:  carColor.String,
			Year:   int(carYear.Int64),
		}
	}
	if lastLogin.Valid {
		user.LastLoginAt = lastLogin.Time
	}

	return &user, nil
}

// execOne runs an UPDATE that must touch exactly one row.
func execOne(ctx context.Context, q Querier, query string, args ...any) error {
	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}
