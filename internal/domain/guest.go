package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/diagnosis/local-hotel/internal/apperr"
)

type Guest struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	EmailAddress string    `json:"email_address"`
	PasswordHash string    `json:"-"`
	Verified     bool      `json:"verified"`
	PhoneNumber  string    `json:"phone_number"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FilteredGuest is the only guest shape written to responses.
type FilteredGuest struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	EmailAddress string    `json:"email_address"`
	Verified     bool      `json:"verified"`
	PhoneNumber  string    `json:"phone_number"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (g *Guest) Filtered() FilteredGuest {
	return FilteredGuest{
		ID:           g.ID,
		FirstName:    g.FirstName,
		LastName:     g.LastName,
		EmailAddress: g.EmailAddress,
		Verified:     g.Verified,
		PhoneNumber:  g.PhoneNumber,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

type RegisterGuestRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
	PhoneNumber  string `json:"phone_number"`
}

// NewGuest is what the store inserts: a normalized registration plus its hash.
type NewGuest struct {
	FirstName    string
	LastName     string
	EmailAddress string
	PasswordHash string
	PhoneNumber  string
}

type LoginGuestRequest struct {
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// NormalizeEmail is applied before every lookup and insert so uniqueness is
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *RegisterGuestRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.EmailAddress = NormalizeEmail(r.EmailAddress)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
}

func (r *RegisterGuestRequest) Validate() error {
	switch {
	case r.FirstName == "":
		return apperr.Invalid("first_name is required")
	case r.LastName == "":
		return apperr.Invalid("last_name is required")
	case r.EmailAddress == "":
		return apperr.Invalid("email_address is required")
	case !emailRegex.MatchString(r.EmailAddress):
		return apperr.Invalid("email_address is not a valid email")
	case r.Password == "":
		return apperr.Invalid("password is required")
	case r.PhoneNumber == "":
		return apperr.Invalid("phone_number is required")
	}
	return nil
}

func (r *LoginGuestRequest) Normalize() {
	r.EmailAddress = NormalizeEmail(r.EmailAddress)
}

func (r *LoginGuestRequest) Validate() error {
	if r.EmailAddress == "" || r.Password == "" {
		return apperr.Invalid("email_address and password are required")
	}
	return nil
}
