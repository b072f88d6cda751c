package web

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Antonio1491/parksys-sub000/internal/usecase"
)

// Server exposes the checkout / registration API consumed by the public
// activity pages and the admin dashboard.
type Server struct {
	activityUC     usecase.ActivityUseCase
	checkoutUC     usecase.CheckoutUseCase
	registrationUC usecase.RegistrationUseCase
	apiKey         string
	log            *zerolog.Logger
}

func NewServer(
	activityUC usecase.ActivityUseCase,
	checkoutUC usecase.CheckoutUseCase,
	registrationUC usecase.RegistrationUseCase,
	apiKey string,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		activityUC:     activityUC,
		checkoutUC:     checkoutUC,
		registrationUC: registrationUC,
		apiKey:         apiKey,
		log:            logger,
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/activities/{activityID}", func(r chi.Router) {
			r.Get("/", s.getActivity)
			r.Post("/create-payment-intent", s.createPaymentIntent)
			r.Post("/complete-payment-registration", s.completeRegistration)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/registrations", s.listRegistrations)
		})
	})

	return r
}

// authMiddleware provides simple Bearer token authentication for the admin API.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey == "" {
			s.log.Error().Msg("Admin API key is not configured")
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "bearer") {
			http.Error(w, "Unauthorized: Malformed token", http.StatusUnauthorized)
			return
		}

		if tokenParts[1] != s.apiKey {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
