package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/diagnosis/local-hotel/internal/domain"
	"github.com/diagnosis/local-hotel/internal/http/handlers"
	"github.com/diagnosis/local-hotel/internal/http/middleware"
	"github.com/diagnosis/local-hotel/internal/platform/auth"
	"github.com/diagnosis/local-hotel/internal/service"
	"github.com/diagnosis/local-hotel/pkg/config"
	mw "github.com/diagnosis/local-hotel/pkg/middleware"
)

// Deps is everything the route table needs. RateLimits and Idempotency are
// optional; a nil store turns the feature off.
type Deps struct {
	Config      *config.Config
	Auth        service.AuthService
	Bookings    service.BookingService
	Guests      middleware.GuestFinder
	Tokens      middleware.TokenValidator
	Session     auth.SessionCarrier
	RateLimits  middleware.RateLimitStore
	Idempotency mw.IdempotencyStore
	Gatherer    prometheus.Gatherer
}

func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("local-hotel"))
	r.Use(mw.Logging)
	r.Use(mw.Recoverer)
	r.Use(mw.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Accept", "Content-Type", "Idempotency-Key"},
		ExposedHeaders:   []string{"X-Request-ID", "Idempotent-Replayed"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", mw.MetricsHandler(d.Gatherer))
	}
	r.Get("/api/healthchecker", handlers.HealthChecker)

	gate := middleware.NewAuthenticator(d.Session, d.Tokens, d.Guests)
	authHandler := handlers.NewAuthHandler(d.Auth, d.Session)
	bookingsHandler := handlers.NewBookingsHandler(d.Bookings)

	loginLimit := passthrough
	if d.RateLimits != nil {
		loginLimit = middleware.NewRateLimiter(d.RateLimits, middleware.RateLimitConfig{
			Name:     "login",
			Requests: d.Config.RateLimit.LoginRequests,
			Window:   d.Config.RateLimit.LoginWindow,

			TrustProxyHeaders: d.Config.RateLimit.TrustProxyHeaders,
		}).Middleware()
	}

	createBooking := bookingsHandler.Create
	if d.Idempotency != nil {
		createBooking = idempotentForGuest(d.Idempotency, d.Config.RateLimit.IdempotencyTTL, createBooking)
	}

	r.Route("/v1/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimit).Post("/register", authHandler.Register)
			r.With(loginLimit).Post("/login", authHandler.Login)
			r.Get("/logout", gate.Guard(authHandler.Logout))
		})

		r.Get("/guests/me", gate.Guard(handlers.Me))

		r.Route("/guest", func(r chi.Router) {
			r.Get("/bookings", gate.Guard(bookingsHandler.List))
			r.Post("/booking/create", gate.Guard(createBooking))
			r.Get("/booking/{id}", gate.Guard(bookingsHandler.Get))
			r.Patch("/booking/{id}", gate.Guard(bookingsHandler.Update))
			r.Delete("/booking/{id}", gate.Guard(bookingsHandler.Delete))
		})
	})

	return r
}

func passthrough(next http.Handler) http.Handler { return next }

// idempotentForGuest replays recorded responses only after the gate has
// authenticated the request, and keys them by guest.
func idempotentForGuest(store mw.IdempotencyStore, ttl time.Duration, next middleware.GuestHandlerFunc) middleware.GuestHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, guest *domain.Guest) {
		scope := func(*http.Request) string { return "guest:" + strconv.FormatInt(guest.ID, 10) }
		h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { next(w, r, guest) })
		mw.Idempotency(store, scope, ttl)(h).ServeHTTP(w, r)
	}
}
