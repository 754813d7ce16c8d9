package service

import (
	"context"
	"time"

	"github.com/diagnosis/local-hotel/internal/apperr"
	"github.com/diagnosis/local-hotel/internal/domain"
	"github.com/diagnosis/local-hotel/pkg/events"
	"github.com/diagnosis/local-hotel/pkg/logger"
)

type BookingStore interface {
	ListByGuest(ctx context.Context, guestID int64, opts domain.FilterOptions) ([]domain.Booking, error)
	GetForGuest(ctx context.Context, guestID, id int64) (*domain.Booking, error)
	Create(ctx context.Context, guestID int64, in *domain.CreateBookingRequest) (*domain.Booking, error)
	Update(ctx context.Context, guestID, id int64, in *domain.UpdateBookingRequest) (*domain.Booking, error)
	Delete(ctx context.Context, guestID, id int64) (bool, error)
}

// BookingService operates only on the bookings of the guest passed in.
type BookingService interface {
	List(ctx context.Context, guest *domain.Guest, opts domain.FilterOptions) ([]domain.Booking, error)
	Get(ctx context.Context, guest *domain.Guest, id int64) (*domain.Booking, error)
	Create(ctx context.Context, guest *domain.Guest, req *domain.CreateBookingRequest) (*domain.Booking, error)
	Update(ctx context.Context, guest *domain.Guest, id int64, req *domain.UpdateBookingRequest) (*domain.Booking, error)
	Delete(ctx context.Context, guest *domain.Guest, id int64) error
}

type bookingService struct {
	bookings  BookingStore
	publisher events.Publisher
	now       func() time.Time
}

func NewBookingService(bookings BookingStore, publisher events.Publisher) BookingService {
	return &bookingService{bookings: bookings, publisher: publisher, now: time.Now}
}

func notFound(id int64) error {
	return apperr.NotFound("Booking with ID: %d not found", id)
}

func (s *bookingService) List(ctx context.Context, guest *domain.Guest, opts domain.FilterOptions) ([]domain.Booking, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return s.bookings.ListByGuest(ctx, guest.ID, opts.Normalize())
}

func (s *bookingService) Get(ctx context.Context, guest *domain.Guest, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetForGuest(ctx, guest.ID, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, notFound(id)
	}
	return b, nil
}

func (s *bookingService) Create(ctx context.Context, guest *domain.Guest, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.bookings.Create(ctx, guest.ID, req)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.BookingCreated, b)
	return b, nil
}

func (s *bookingService) Update(ctx context.Context, guest *domain.Guest, id int64, req *domain.UpdateBookingRequest) (*domain.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.bookings.Update(ctx, guest.ID, id, req)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, notFound(id)
	}

	s.publish(ctx, events.BookingUpdated, b)
	return b, nil
}

func (s *bookingService) Delete(ctx context.Context, guest *domain.Guest, id int64) error {
	deleted, err := s.bookings.Delete(ctx, guest.ID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound(id)
	}

	s.publish(ctx, events.BookingDeleted, &domain.Booking{ID: id, GuestID: guest.ID})
	return nil
}

func (s *bookingService) publish(ctx context.Context, subject string, b *domain.Booking) {
	ev := events.BookingEvent{
		BookingID:  b.ID,
		GuestID:    b.GuestID,
		OccurredAt: s.now().UTC(),
	}
	if !b.CheckinDate.IsZero() {
		ev.CheckinDate = b.CheckinDate.String()
		ev.CheckoutDate = b.CheckoutDate.String()
	}
	if err := s.publisher.Publish(ctx, subject, ev); err != nil {
		logger.WarnContext(ctx, "Failed to publish event", "subject", subject, "error", err)
	}
}
