package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"driveu/internal/domain"
)

// AccountRepository writes users and driver profiles in one transaction.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new PostgreSQL account repository.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// CreateAccount inserts the user row and, for drivers, the profile row.
func (r *AccountRepository) CreateAccount(ctx context.Context, user *domain.User, driver *domain.Driver) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = NewUserRepositoryWithTx(tx).Create(ctx, user); err != nil {
		return err
	}
	if driver != nil {
		if err = NewDriverRepositoryWithTx(tx).Create(ctx, driver); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit account: %w", err)
	}
	return nil
}
