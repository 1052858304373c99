package api

import (
	"net/http"

	"github.com/beamcollective/portal-api/internal/api/handler"
	customMiddleware "github.com/beamcollective/portal-api/internal/api/middleware"
	"github.com/beamcollective/portal-api/internal/config"
	"github.com/beamcollective/portal-api/internal/domain"
	"github.com/beamcollective/portal-api/internal/google"
	"github.com/beamcollective/portal-api/internal/mail"
	"github.com/beamcollective/portal-api/internal/payments/stripe"
	"github.com/beamcollective/portal-api/internal/repository/mongo"
	"github.com/beamcollective/portal-api/internal/repository/redis"
	"github.com/beamcollective/portal-api/internal/security"
	"github.com/beamcollective/portal-api/internal/service"
	"github.com/beamcollective/portal-api/internal/tenant"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *mongo.DB, redisClient *redis.Client, registry *tenant.Registry) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Security components
	jwtManager := security.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	encryptor, err := security.NewEncryptor(security.DeriveKey(cfg.Auth.JWTSecret))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize credential encryptor")
	}

	if cfg.Auth.DevelopmentBypass() {
		log.Warn().Msg("Development bypass auth policy selected; content reads are unauthenticated")
	}

	// Repositories
	prospectRepo := mongo.NewProspectRepository(db)
	intakeRepo := mongo.NewIntakeRepository(db)
	donationRepo := mongo.NewDonationRepository(db)
	credentialRepo := mongo.NewCredentialRepository(db)
	rosterRepo := mongo.NewRosterRepository(db, cfg.Mongo.BatchSize)
	userRepo := mongo.NewUserRepository(db)

	// Redis-backed stores
	rateLimiter := redis.NewRateLimiter(
		redisClient,
		cfg.Auth.RateLimit.RequestsPerMinute,
		cfg.Auth.RateLimit.Burst,
	)
	stateStore := redis.NewStateStore(redisClient)
	eventDedup := redis.NewEventDedup(redisClient)

	// Outbound bridges
	var mailer mail.Mailer = mail.NoopMailer{}
	if cfg.SMTP.Enabled() {
		mailer = mail.NewSMTPMailer(cfg.SMTP)
	}
	paymentGateway := stripe.NewGateway(cfg.Stripe)
	searchBridge := google.NewBridge(cfg.Google)

	// Services
	inviteService := service.NewInviteService(prospectRepo, mailer, cfg.Server.BaseURL)
	intakeService := service.NewIntakeService(intakeRepo, cfg.Intake.MaxSelections)
	paymentService := service.NewPaymentService(paymentGateway, donationRepo, eventDedup)
	adminService := service.NewAdminService(userRepo)
	integrationService := service.NewIntegrationService(searchBridge, credentialRepo, rosterRepo, stateStore, encryptor)

	// Handlers
	portalHandler := handler.NewPortalHandler(registry)
	inviteHandler := handler.NewInviteHandler(inviteService)
	intakeHandler := handler.NewIntakeHandler(intakeService, cfg.Intake.ListLimit)
	paymentHandler := handler.NewPaymentHandler(paymentService, cfg.Intake.ListLimit)
	adminHandler := handler.NewAdminHandler(adminService)
	integrationHandler := handler.NewIntegrationHandler(integrationService)

	// Gate middleware
	authMiddleware := customMiddleware.NewAuthMiddleware(jwtManager, cfg.Auth.DevelopmentBypass())
	rateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(rateLimiter)

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db, redisClient))

		// Public portal content
		r.Route("/portal/{tenantKey}", func(r chi.Router) {
			r.Get("/", portalHandler.Context)
			r.Get("/projects", portalHandler.Projects)
			r.Get("/nav", portalHandler.Nav)

			r.With(authMiddleware.AuthenticateOptional).Get("/slides", portalHandler.Slides)
		})

		// Token-credentialed invitation endpoints (no bearer auth)
		r.Get("/prospects/{prospectID}", inviteHandler.Fetch)
		r.Post("/invites/confirm", inviteHandler.Confirm)

		// Provider webhook, authenticated by signature
		r.Post("/donations/webhook", paymentHandler.Webhook)

		// OAuth callback, authenticated by state nonce
		r.Get("/integrations/google/callback", integrationHandler.Callback)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(rateLimitMiddleware.Limit)

			r.Route("/requests", func(r chi.Router) {
				r.Post("/staff", intakeHandler.SubmitStaff)
				r.Post("/bookings", intakeHandler.SubmitBooking)
				r.Post("/community-bookings", intakeHandler.SubmitCommunityBooking)
			})

			r.Post("/subscriptions/checkout", paymentHandler.CreateCheckout)

			r.With(authMiddleware.Require(domain.CapabilityAdmin)).
				Post("/invites", inviteHandler.Create)

			// Admin surface
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Require(domain.CapabilityAdmin))

				r.Post("/admin/roles", adminHandler.SetRole)
				r.Get("/admin/users/{uid}", adminHandler.GetProfile)
				r.Get("/admin/requests/staff", intakeHandler.ListStaff)
				r.Get("/admin/donations", paymentHandler.ListDonations)

				r.Get("/integrations", integrationHandler.List)
				r.Get("/integrations/google/connect", integrationHandler.Connect)
				r.Delete("/integrations/{provider}", integrationHandler.Delete)

				r.Post("/search/mail", integrationHandler.SearchMail)
				r.Post("/search/drive", integrationHandler.SearchDrive)
			})
		})
	})

	return r
}
