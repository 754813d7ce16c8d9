package service

import (
	"context"
	"sync"
	"time"

	"github.com/samber/oops"

	"github.com/diagnosis/local-hotel/internal/apperr"
	"github.com/diagnosis/local-hotel/internal/domain"
	"github.com/diagnosis/local-hotel/internal/platform/mailer"
	"github.com/diagnosis/local-hotel/pkg/events"
	"github.com/diagnosis/local-hotel/pkg/logger"
)

type GuestStore interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, in *domain.NewGuest) (*domain.Guest, error)
	FindByEmail(ctx context.Context, email string) (*domain.Guest, error)
	FindByID(ctx context.Context, id int64) (*domain.Guest, error)
}

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, encoded string) bool
}

type TokenIssuer interface {
	Issue(subjectID int64, now time.Time) (string, error)
}

type AuthService interface {
	Register(ctx context.Context, req *domain.RegisterGuestRequest) (*domain.Guest, error)
	Login(ctx context.Context, req *domain.LoginGuestRequest) (string, *domain.Guest, error)
}

const invalidCredentials = "Invalid email or password"

type authService struct {
	guests    GuestStore
	hasher    PasswordHasher
	tokens    TokenIssuer
	mailer    mailer.Service
	publisher events.Publisher
	now       func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(
	guests GuestStore,
	hasher PasswordHasher,
	tokens TokenIssuer,
	mailer mailer.Service,
	publisher events.Publisher,
) AuthService {
	return &authService{
		guests:    guests,
		hasher:    hasher,
		tokens:    tokens,
		mailer:    mailer,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req *domain.RegisterGuestRequest) (*domain.Guest, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.guests.ExistsByEmail(ctx, req.EmailAddress)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("Guest with that email already exists")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, oops.Code("PASSWORD_HASH_FAILED").Wrap(err)
	}

	guest, err := s.guests.Create(ctx, &domain.NewGuest{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		EmailAddress: req.EmailAddress,
		PasswordHash: hash,
		PhoneNumber:  req.PhoneNumber,
	})
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Guest registered", "guest_id", guest.ID)

	if err := s.mailer.SendWelcomeEmail(ctx, guest.EmailAddress, guest.FirstName); err != nil {
		logger.ErrorContext(ctx, "Failed to send welcome email", "error", err, "guest_id", guest.ID)
	}

	if err := s.publisher.Publish(ctx, events.GuestRegistered, events.GuestRegisteredEvent{
		GuestID:      guest.ID,
		EmailAddress: guest.EmailAddress,
		RegisteredAt: guest.CreatedAt,
	}); err != nil {
		logger.WarnContext(ctx, "Failed to publish event", "subject", events.GuestRegistered, "error", err)
	}

	return guest, nil
}

// Login returns a session token for valid credentials. Unknown emails and
// wrong passwords produce the same error after the same amount of hashing.
func (s *authService) Login(ctx context.Context, req *domain.LoginGuestRequest) (string, *domain.Guest, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return "", nil, err
	}

	guest, err := s.guests.FindByEmail(ctx, req.EmailAddress)
	if err != nil {
		return "", nil, err
	}

	if guest == nil {
		s.hasher.Verify(req.Password, s.dummy())
		return "", nil, apperr.Unauthorized(invalidCredentials)
	}
	if !s.hasher.Verify(req.Password, guest.PasswordHash) {
		return "", nil, apperr.Unauthorized(invalidCredentials)
	}

	token, err := s.tokens.Issue(guest.ID, s.now())
	if err != nil {
		return "", nil, oops.Code("TOKEN_ISSUE_FAILED").Wrap(err)
	}
	return token, guest, nil
}

func (s *authService) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("local-hotel-dummy-password")
		if err != nil {
			logger.Error("Failed to prepare dummy hash", "error", err)
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
