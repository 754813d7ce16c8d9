package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/diagnosis/local-hotel/internal/domain"
)

type fakeGuests struct {
	mu      sync.Mutex
	byID    map[int64]*domain.Guest
	nextID  int64
	err     error
	creates int
}

func newFakeGuests() *fakeGuests {
	return &fakeGuests{byID: map[int64]*domain.Guest{}, nextID: 1}
}

func (f *fakeGuests) ExistsByEmail(_ context.Context, email string) (bool, error) {
	g, err := f.FindByEmail(context.Background(), email)
	return g != nil, err
}

func (f *fakeGuests) Create(_ context.Context, in *domain.NewGuest) (*domain.Guest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.creates++
	g := &domain.Guest{
		ID:           f.nextID,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		EmailAddress: in.EmailAddress,
		PasswordHash: in.PasswordHash,
		PhoneNumber:  in.PhoneNumber,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.byID[g.ID] = g
	f.nextID++
	return g, nil
}

func (f *fakeGuests) FindByEmail(_ context.Context, email string) (*domain.Guest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, g := range f.byID {
		if g.EmailAddress == email {
			return g, nil
		}
	}
	return nil, nil
}

func (f *fakeGuests) FindByID(_ context.Context, id int64) (*domain.Guest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

type fakeHasher struct {
	mu       sync.Mutex
	verified []string
	hashErr  error
}

func (h *fakeHasher) Hash(p string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hash:" + p, nil
}

func (h *fakeHasher) Verify(p, encoded string) bool {
	h.mu.Lock()
	h.verified = append(h.verified, encoded)
	h.mu.Unlock()
	return strings.TrimPrefix(encoded, "hash:") == p && strings.HasPrefix(encoded, "hash:")
}

type fakeTokens struct {
	issuedFor []int64
	at        []time.Time
}

func (f *fakeTokens) Issue(id int64, now time.Time) (string, error) {
	f.issuedFor = append(f.issuedFor, id)
	f.at = append(f.at, now)
	return "token-for-guest", nil
}

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) SendWelcomeEmail(_ context.Context, to, _ string) error {
	m.sent = append(m.sent, to)
	return m.err
}

type published struct {
	subject string
	data    any
}

type fakePublisher struct {
	events []published
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, subject string, data any) error {
	p.events = append(p.events, published{subject, data})
	return p.err
}

func (p *fakePublisher) Close() error { return nil }

var errStore = errors.New("pool exhausted")
