package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/diagnosis/local-hotel/internal/apperr"
	"github.com/diagnosis/local-hotel/internal/domain"
)

// GuestsRepo is the identity store. Emails are expected to be normalized by
// the caller.
type GuestsRepo struct {
	db      DBTX
	timeout time.Duration
}

func NewGuestsRepo(db DBTX, timeout time.Duration) *GuestsRepo {
	return &GuestsRepo{db: db, timeout: timeout}
}

const guestCols = `id, first_name, last_name, email_address, password_hash, verified, phone_number, created_at, updated_at`

func scanGuest(row pgx.Row) (*domain.Guest, error) {
	var g domain.Guest
	err := row.Scan(
		&g.ID, &g.FirstName, &g.LastName, &g.EmailAddress, &g.PasswordHash,
		&g.Verified, &g.PhoneNumber, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GuestsRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM guests WHERE email_address = $1)`
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var exists bool
	if err := r.db.QueryRow(ctx, q, email).Scan(&exists); err != nil {
		return false, oops.Code("DB_QUERY_FAILED").With("operation", "guest exists by email").Wrap(err)
	}
	return exists, nil
}

// Create inserts a guest and returns the stored row. A concurrent insert of
// the same email surfaces as a conflict.
func (r *GuestsRepo) Create(ctx context.Context, in *domain.NewGuest) (*domain.Guest, error) {
	const q = `
		INSERT INTO guests (first_name, last_name, email_address, password_hash, phone_number)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + guestCols

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	g, err := scanGuest(r.db.QueryRow(ctx, q,
		in.FirstName, in.LastName, in.EmailAddress, in.PasswordHash, in.PhoneNumber,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("Guest with that email already exists")
		}
		return nil, oops.Code("DB_QUERY_FAILED").With("operation", "create guest").Wrap(err)
	}
	return g, nil
}

// FindByEmail returns nil, nil when no guest has the email.
func (r *GuestsRepo) FindByEmail(ctx context.Context, email string) (*domain.Guest, error) {
	const q = `SELECT ` + guestCols + ` FROM guests WHERE email_address = $1`
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	g, err := scanGuest(r.db.QueryRow(ctx, q, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, oops.Code("DB_QUERY_FAILED").With("operation", "find guest by email").Wrap(err)
	}
	return g, nil
}

// FindByID returns nil, nil when the guest does not exist.
func (r *GuestsRepo) FindByID(ctx context.Context, id int64) (*domain.Guest, error) {
	const q = `SELECT ` + guestCols + ` FROM guests WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	g, err := scanGuest(r.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, oops.Code("DB_QUERY_FAILED").With("operation", "find guest by id").Wrap(err)
	}
	return g, nil
}
