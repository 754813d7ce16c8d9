package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/diagnosis/local-hotel/internal/apperr"
	"github.com/diagnosis/local-hotel/internal/domain"
)

// BookingsRepo scopes every statement to a guest id. A booking owned by
// another guest is indistinguishable from a missing one.
type BookingsRepo struct {
	db      DBTX
	timeout time.Duration
}

func NewBookingsRepo(db DBTX, timeout time.Duration) *BookingsRepo {
	return &BookingsRepo{db: db, timeout: timeout}
}

const bookingCols = `id, guest_id, payment_status_id, checkin_date, checkout_date,
num_adults, num_children, booking_amount::float8, created_at, updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		b                 domain.Booking
		status            int32
		checkin, checkout time.Time
	)
	err := row.Scan(
		&b.ID, &b.GuestID, &status, &checkin, &checkout,
		&b.NumAdults, &b.NumChildren, &b.BookingAmount, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.PaymentStatusID = domain.PaymentStatus(status)
	b.CheckinDate = domain.Date{Time: checkin}
	b.CheckoutDate = domain.Date{Time: checkout}
	return &b, nil
}

func (r *BookingsRepo) ListByGuest(ctx context.Context, guestID int64, opts domain.FilterOptions) ([]domain.Booking, error) {
	opts = opts.Normalize()

	const q = `
		SELECT ` + bookingCols + `
		FROM bookings
		WHERE guest_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3`

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, q, guestID, opts.Limit, opts.Offset())
	if err != nil {
		return nil, oops.Code("DB_QUERY_FAILED").With("operation", "list bookings").Wrap(err)
	}
	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, oops.Code("DB_QUERY_FAILED").With("operation", "scan booking").Wrap(err)
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("DB_QUERY_FAILED").With("operation", "list bookings").Wrap(err)
	}
	return bookings, nil
}

// GetForGuest returns nil, nil when the booking does not exist for guestID.
func (r *BookingsRepo) GetForGuest(ctx context.Context, guestID, id int64) (*domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id = $1 AND guest_id = $2`
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	b, err := scanBooking(r.db.QueryRow(ctx, q, id, guestID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, oops.Code("DB_QUERY_FAILED").With("operation", "get booking").Wrap(err)
	}
	return b, nil
}

func (r *BookingsRepo) Create(ctx context.Context, guestID int64, in *domain.CreateBookingRequest) (*domain.Booking, error) {
	const q = `
		INSERT INTO bookings (guest_id, payment_status_id, checkin_date, checkout_date,
			num_adults, num_children, booking_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + bookingCols

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	b, err := scanBooking(r.db.QueryRow(ctx, q,
		guestID, int32(domain.PaymentPending), in.CheckinDate.Time, in.CheckoutDate.Time,
		in.NumAdults, in.NumChildren, in.BookingAmount,
	))
	if err != nil {
		return nil, writeError(err, "create booking")
	}
	return b, nil
}

// Update applies the non-nil fields of in. It returns nil, nil when the
// booking does not exist for guestID.
func (r *BookingsRepo) Update(ctx context.Context, guestID, id int64, in *domain.UpdateBookingRequest) (*domain.Booking, error) {
	const q = `
		UPDATE bookings SET
			checkin_date   = COALESCE($3, checkin_date),
			checkout_date  = COALESCE($4, checkout_date),
			num_adults     = COALESCE($5, num_adults),
			num_children   = COALESCE($6, num_children),
			booking_amount = COALESCE($7, booking_amount),
			updated_at     = now()
		WHERE id = $1 AND guest_id = $2
		RETURNING ` + bookingCols

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	b, err := scanBooking(r.db.QueryRow(ctx, q,
		id, guestID, dateArg(in.CheckinDate), dateArg(in.CheckoutDate),
		in.NumAdults, in.NumChildren, in.BookingAmount,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, writeError(err, "update booking")
	}
	return b, nil
}

// Delete reports whether a row was removed.
func (r *BookingsRepo) Delete(ctx context.Context, guestID, id int64) (bool, error) {
	const q = `DELETE FROM bookings WHERE id = $1 AND guest_id = $2`
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.db.Exec(ctx, q, id, guestID)
	if err != nil {
		return false, oops.Code("DB_QUERY_FAILED").With("operation", "delete booking").Wrap(err)
	}
	return result.RowsAffected() > 0, nil
}

func dateArg(d *domain.Date) *time.Time {
	if d == nil {
		return nil
	}
	return &d.Time
}

// writeError turns constraint violations into client errors.
func writeError(err error, operation string) error {
	code, constraint := pgErrorCode(err)
	if code == pgerrcode.CheckViolation {
		if constraint == "bookings_dates_ordered" {
			return apperr.Invalid("checkout_date must be after checkin_date")
		}
		return apperr.Invalid("booking values are out of range")
	}
	if code == pgerrcode.NumericValueOutOfRange {
		return apperr.Invalid("booking values are out of range")
	}
	return oops.Code("DB_QUERY_FAILED").With("operation", operation).Wrap(err)
}
