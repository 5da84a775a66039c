package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/atlashaul/portal/internal/transport/httpapi/handler"
	"github.com/atlashaul/portal/internal/transport/httpapi/middleware"
	"github.com/atlashaul/portal/pkg/logger"
)

// Config holds router configuration
type Config struct {
	Logger         *logger.Logger
	AllowedOrigins []string
	WalletHandler  *handler.WalletHandler
	EventsHandler  *handler.EventsHandler
	InviteHandler  *handler.InviteHandler
	JWTMiddleware  func(http.Handler) http.Handler
}

// NewRouter creates a new HTTP router
func NewRouter(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.RateLimit())

	// Health check endpoints (no authentication required)
	r.Get("/health", handler.GetHealth)
	r.Get("/health/live", handler.GetLiveness)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		if cfg.EventsHandler != nil {
			r.Get("/events", cfg.EventsHandler.GetEvents)
		}
		if cfg.InviteHandler != nil {
			r.With(middleware.InviteRateLimit()).Post("/invites", cfg.InviteHandler.SubmitInvite)
		}

		// Protected routes (require a valid session token)
		if cfg.JWTMiddleware != nil && cfg.WalletHandler != nil {
			r.Group(func(r chi.Router) {
				r.Use(cfg.JWTMiddleware)

				r.Get("/wallet", cfg.WalletHandler.GetWallet)
				r.Post("/wallet/purchases", cfg.WalletHandler.SubmitPurchase)
			})
		}
	})

	return r
}
