package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/diagnosis/local-hotel/internal/domain"
	"github.com/diagnosis/local-hotel/internal/http/response"
	"github.com/diagnosis/local-hotel/pkg/logger"
)

// GuestHandlerFunc is a handler that runs only for an authenticated guest.
type GuestHandlerFunc func(w http.ResponseWriter, r *http.Request, guest *domain.Guest)

type TokenExtractor interface {
	TokenFromRequest(r *http.Request) (string, bool)
}

type TokenValidator interface {
	Validate(token string, now time.Time) (int64, error)
}

type GuestFinder interface {
	FindByID(ctx context.Context, id int64) (*domain.Guest, error)
}

// NotLoggedIn is the single message for every authentication failure.
const NotLoggedIn = "You are not logged in or your session has expired"

var AuthRejections = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "local_hotel_auth_rejections_total",
		Help: "Protected requests rejected by the auth gate",
	},
	[]string{"reason"},
)

func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(AuthRejections)
}

// Authenticator resolves the session token on a request to a guest.
type Authenticator struct {
	carrier TokenExtractor
	tokens  TokenValidator
	guests  GuestFinder
	now     func() time.Time
}

func NewAuthenticator(carrier TokenExtractor, tokens TokenValidator, guests GuestFinder) *Authenticator {
	return &Authenticator{carrier: carrier, tokens: tokens, guests: guests, now: time.Now}
}

// Guard adapts next into a plain handler that first authenticates the
// request. Missing, invalid and orphaned tokens all get the same 401. The
// guest is looked up once per request and never cached.
func (a *Authenticator) Guard(next GuestHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := a.carrier.TokenFromRequest(r)
		if !ok {
			a.reject(w, "no_token")
			return
		}

		guestID, err := a.tokens.Validate(token, a.now())
		if err != nil {
			a.reject(w, "invalid_token")
			return
		}

		guest, err := a.guests.FindByID(r.Context(), guestID)
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		if guest == nil {
			a.reject(w, "unknown_guest")
			return
		}

		ctx := logger.WithGuestID(r.Context(), guest.ID)
		next(w, r.WithContext(ctx), guest)
	}
}

func (a *Authenticator) reject(w http.ResponseWriter, reason string) {
	AuthRejections.WithLabelValues(reason).Inc()
	response.Fail(w, http.StatusUnauthorized, NotLoggedIn)
}
