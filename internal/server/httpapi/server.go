package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/avelichko/skillswap/internal/logging"
	"github.com/avelichko/skillswap/internal/server/config"
	"github.com/avelichko/skillswap/internal/server/services"
)

type Server struct {
	config     *config.Config
	logger     logging.Logger
	users      *services.UserService
	swaps      *services.SwapService
	photos     *services.PhotoService
	otpLimiter *rateLimiter

	http *http.Server
}

func NewServer(cfg *config.Config, logger logging.Logger,
	users *services.UserService, swaps *services.SwapService, photos *services.PhotoService) *Server {

	s := &Server{
		config:     cfg,
		logger:     logger,
		users:      users,
		swaps:      swaps,
		photos:     photos,
		otpLimiter: newRateLimiter(time.Minute, cfg.OTPRateLimitPerMinute),
	}
	s.http = &http.Server{
		Addr:              cfg.EndpointAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Router builds the API route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/send-otp", s.handleSendOTP)
			r.Post("/verify-otp", s.handleVerifyOTP)
			r.Post("/login", s.handleLogin)
			r.Post("/signup", s.handleSignup)
			r.Post("/logout", s.handleLogout)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Get("/me", s.handleMe)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/users", s.handleListUsers)

			r.Get("/swap-requests", s.handleListSwaps)
			r.Post("/swap-requests", s.handleCreateSwap)
			r.Patch("/swap-requests/{id}", s.handleUpdateSwap)

			r.Post("/profile/photo-upload", s.handlePhotoUpload)
		})
	})

	return r
}

// Run serves the API until the context is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.http.Shutdown(shutdownCtx)
}
