package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/diagnosis/local-hotel/internal/apperr"
)

type PaymentStatus int

const (
	PaymentPaid     PaymentStatus = 1
	PaymentRefunded PaymentStatus = 2
	PaymentPending  PaymentStatus = 3
)

func (s PaymentStatus) String() string {
	switch s {
	case PaymentPaid:
		return "paid"
	case PaymentRefunded:
		return "refunded"
	case PaymentPending:
		return "pending"
	default:
		return "unknown"
	}
}

const dateLayout = "2006-01-02"

// Date is a calendar day encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, apperr.Invalid("dates must use the YYYY-MM-DD format")
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return apperr.Invalid("dates must be strings in the YYYY-MM-DD format")
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

type Booking struct {
	ID              int64         `json:"id"`
	GuestID         int64         `json:"guest_id"`
	PaymentStatusID PaymentStatus `json:"payment_status_id"`
	CheckinDate     Date          `json:"checkin_date"`
	CheckoutDate    Date          `json:"checkout_date"`
	NumAdults       int32         `json:"num_adults"`
	NumChildren     int32         `json:"num_children"`
	BookingAmount   float64       `json:"booking_amount"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

type CreateBookingRequest struct {
	CheckinDate   Date    `json:"checkin_date"`
	CheckoutDate  Date    `json:"checkout_date"`
	NumAdults     int32   `json:"num_adults"`
	NumChildren   int32   `json:"num_children"`
	BookingAmount float64 `json:"booking_amount"`
}

func (r *CreateBookingRequest) Validate() error {
	if r.CheckinDate.IsZero() || r.CheckoutDate.IsZero() {
		return apperr.Invalid("checkin_date and checkout_date are required")
	}
	if !r.CheckoutDate.After(r.CheckinDate.Time) {
		return apperr.Invalid("checkout_date must be after checkin_date")
	}
	return validateCounts(&r.NumAdults, &r.NumChildren, &r.BookingAmount)
}

// UpdateBookingRequest is a partial update: nil fields keep their stored value.
type UpdateBookingRequest struct {
	CheckinDate   *Date    `json:"checkin_date,omitempty"`
	CheckoutDate  *Date    `json:"checkout_date,omitempty"`
	NumAdults     *int32   `json:"num_adults,omitempty"`
	NumChildren   *int32   `json:"num_children,omitempty"`
	BookingAmount *float64 `json:"booking_amount,omitempty"`
}

func (r *UpdateBookingRequest) Empty() bool {
	return r.CheckinDate == nil && r.CheckoutDate == nil && r.NumAdults == nil &&
		r.NumChildren == nil && r.BookingAmount == nil
}

// Validate checks the fields that are present. Date ordering against stored
// values is enforced by the database.
func (r *UpdateBookingRequest) Validate() error {
	if r.Empty() {
		return apperr.Invalid("no fields to update")
	}
	if r.CheckinDate != nil && r.CheckoutDate != nil && !r.CheckoutDate.After(r.CheckinDate.Time) {
		return apperr.Invalid("checkout_date must be after checkin_date")
	}
	return validateCounts(r.NumAdults, r.NumChildren, r.BookingAmount)
}

func validateCounts(adults, children *int32, amount *float64) error {
	if adults != nil && *adults < 1 {
		return apperr.Invalid("num_adults must be at least 1")
	}
	if children != nil && *children < 0 {
		return apperr.Invalid("num_children cannot be negative")
	}
	if amount != nil && *amount < 0 {
		return apperr.Invalid("booking_amount cannot be negative")
	}
	if amount != nil && *amount >= MaxBookingAmount {
		return apperr.Invalid("booking_amount must be less than %.0f", MaxBookingAmount)
	}
	return nil
}

// FilterOptions is the page/limit pagination used by booking listings.
type FilterOptions struct {
	Page  int
	Limit int
}

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
	MaxPage          = 100_000
)

// MaxBookingAmount is the first value the NUMERIC(12,2) column cannot hold.
const MaxBookingAmount = 1e10

// Validate rejects pages whose offset the store cannot represent.
func (f FilterOptions) Validate() error {
	if f.Page > MaxPage {
		return apperr.Invalid("page must be at most %d", MaxPage)
	}
	return nil
}

func (f FilterOptions) Normalize() FilterOptions {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Page > MaxPage {
		f.Page = MaxPage
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		f.Limit = MaxPageLimit
	}
	return f
}

func (f FilterOptions) Offset() int {
	return (f.Page - 1) * f.Limit
}
