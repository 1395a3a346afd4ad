package api

import (
	"net/http"

	"github.com/Rrens/tourism-api/internal/api/handler"
	customMiddleware "github.com/Rrens/tourism-api/internal/api/middleware"
	"github.com/Rrens/tourism-api/internal/api/response"
	"github.com/Rrens/tourism-api/internal/config"
	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/Rrens/tourism-api/internal/llm"
	"github.com/Rrens/tourism-api/internal/repository/postgres"
	"github.com/Rrens/tourism-api/internal/repository/redis"
	"github.com/Rrens/tourism-api/internal/security"
	"github.com/Rrens/tourism-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *postgres.DB, redisClient *redis.Client, llmRouter *llm.Router) http.Handler {
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
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler())
	}

	jwtManager := security.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	conversationRepo := postgres.NewConversationRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	listingRepo := postgres.NewListingRatingRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	savedRepo := postgres.NewSavedRepository(db)
	eventRepo := postgres.NewEventRepository(db)

	rateLimiter := redis.NewRateLimiter(
		redisClient,
		cfg.Security.RateLimit.RequestsPerMinute,
		cfg.Security.RateLimit.Burst,
	)
	listingCache := redis.NewListingCache(redisClient, cfg.Cache.ListingTTL)

	// Services
	authService := service.NewAuthService(userRepo, jwtManager)
	aggregator := service.NewRatingAggregator(reviewRepo, listingRepo)
	reviewService := service.NewReviewService(db, reviewRepo, listingRepo, aggregator, listingCache)
	savedService := service.NewSavedService(savedRepo, listingRepo)
	bookingService := service.NewBookingService(
		db,
		postgres.NewBookingRepository(db),
		postgres.NewPaymentRepository(db),
		eventRepo,
		listingRepo,
		listingCache,
	)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	destinationHandler := handler.NewDestinationHandler(service.NewDestinationService(postgres.NewDestinationRepository(db), listingCache))
	eventHandler := handler.NewEventHandler(service.NewEventService(eventRepo, listingCache))
	businessHandler := handler.NewBusinessHandler(service.NewBusinessService(postgres.NewBusinessRepository(db), listingCache))
	packageHandler := handler.NewPackageHandler(service.NewPackageService(postgres.NewPackageRepository(db), listingCache))
	bookingHandler := handler.NewBookingHandler(bookingService)
	blogHandler := handler.NewBlogHandler(service.NewBlogService(
		postgres.NewBlogPostRepository(db),
		postgres.NewBlogCommentRepository(db),
		postgres.NewSavedPostRepository(db),
		userRepo,
	))

	var chatHandler *handler.ChatHandler
	provider, err := llmRouter.GetProvider(cfg.LLM.DefaultProvider)
	if err != nil {
		log.Error().Err(err).Str("provider", cfg.LLM.DefaultProvider).Msg("chat provider unavailable, chatbot endpoints disabled")
	} else {
		chatHandler = handler.NewChatHandler(service.NewChatService(conversationRepo, messageRepo, provider, cfg.LLM.Timeout))
	}

	authMiddleware := customMiddleware.NewAuthMiddleware(jwtManager)
	rateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(rateLimiter)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db, redisClient))

		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Use(customMiddleware.IPRateLimit(cfg.Security.RateLimit.PublicRequestsPerMinute))
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.With(authMiddleware.Authenticate).Get("/me", authHandler.Me)
		})

		// Listings: reads are public, writes need a token
		listings := []struct {
			path    string
			kind    domain.ListingKind
			routes  listingRoutes
			extraFn func(r chi.Router)
		}{
			{"/destinations", domain.KindDestination, destinationHandler, func(r chi.Router) {
				r.Post("/{id}/toggle-status", destinationHandler.ToggleStatus)
			}},
			{"/events", domain.KindEvent, eventHandler, nil},
			{"/businesses", domain.KindBusiness, businessHandler, func(r chi.Router) {
				r.With(customMiddleware.RequireAdmin).Post("/{id}/verify", businessHandler.Verify)
			}},
			{"/packages", domain.KindPackage, packageHandler, nil},
		}

		for _, l := range listings {
			reviews := handler.NewReviewHandler(l.kind, reviewService)
			saved := handler.NewSavedHandler(l.kind, savedService)
			routes, extra := l.routes, l.extraFn

			r.Route(l.path, func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(authMiddleware.Optional)
					r.Get("/", routes.List)
					r.Get("/{id}", routes.Get)
					r.Get("/{id}/reviews", reviews.List)
					r.Get("/{id}/reviews/{reviewID}", reviews.Get)
				})

				r.Group(func(r chi.Router) {
					r.Use(authMiddleware.Authenticate)
					r.Use(rateLimitMiddleware.Limit)

					r.Post("/", routes.Create)
					r.Get("/saved", saved.List)
					r.Patch("/{id}", routes.Update)
					r.Delete("/{id}", routes.Delete)
					r.With(customMiddleware.RequireAdmin).Post("/{id}/toggle-featured", routes.ToggleFeatured)
					if extra != nil {
						extra(r)
					}

					r.Post("/{id}/save", saved.Save)
					r.Post("/{id}/unsave", saved.Unsave)

					r.Post("/{id}/reviews", reviews.Create)
					r.Patch("/{id}/reviews/{reviewID}", reviews.Update)
					r.Delete("/{id}/reviews/{reviewID}", reviews.Delete)
					r.Post("/{id}/reviews/{reviewID}/helpful", reviews.Helpful)
					r.Post("/{id}/reviews/{reviewID}/report", reviews.Report)
				})
			})
		}

		r.Route("/blog/posts", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Optional)
				r.Get("/", blogHandler.List)
				r.Get("/featured", blogHandler.Featured)
				r.Get("/{id}", blogHandler.Get)
				r.Post("/{id}/view", blogHandler.View)
				r.Get("/{id}/comments", blogHandler.ListComments)
				r.Get("/{id}/comments/{commentID}", blogHandler.GetComment)
			})

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Use(rateLimitMiddleware.Limit)

				r.Post("/", blogHandler.Create)
				r.Get("/saved", blogHandler.Saved)
				r.Patch("/{id}", blogHandler.Update)
				r.Delete("/{id}", blogHandler.Delete)
				r.With(customMiddleware.RequireAdmin).Post("/{id}/toggle-featured", blogHandler.ToggleFeatured)

				r.Post("/{id}/save", blogHandler.Save)
				r.Post("/{id}/unsave", blogHandler.Unsave)

				r.Post("/{id}/comments", blogHandler.CreateComment)
				r.Patch("/{id}/comments/{commentID}", blogHandler.UpdateComment)
				r.Delete("/{id}/comments/{commentID}", blogHandler.DeleteComment)
				r.Post("/{id}/comments/{commentID}/helpful", blogHandler.CommentHelpful)
				r.Post("/{id}/comments/{commentID}/report", blogHandler.ReportComment)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(rateLimitMiddleware.Limit)

			r.Get("/llm-providers", handler.ListLLMProviders(llmRouter))

			r.Route("/chatbot", func(r chi.Router) {
				if chatHandler == nil {
					r.HandleFunc("/*", chatUnavailable)
					return
				}
				r.Post("/message", chatHandler.SendMessage)
				r.Get("/history", chatHandler.History)
				r.Get("/conversations", chatHandler.Conversations)
			})

			r.Route("/bookings", func(r chi.Router) {
				r.Get("/", bookingHandler.List)
				r.Post("/", bookingHandler.Create)
				r.Get("/{id}", bookingHandler.Get)
				r.Post("/{id}/cancel", bookingHandler.Cancel)
				r.Get("/{id}/payments", bookingHandler.ListPayments)
				r.Post("/{id}/payments", bookingHandler.AddPayment)
			})

			r.With(customMiddleware.RequireAdmin).Post("/payments/{id}/status", bookingHandler.UpdatePaymentStatus)

			r.Route("/admin", func(r chi.Router) {
				r.Use(customMiddleware.RequireAdmin)
				r.Post("/cache/flush", handler.FlushCache(listingCache))
			})
		})
	})

	return r
}

// listingRoutes is the handler surface every listing kind shares
type listingRoutes interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ToggleFeatured(w http.ResponseWriter, r *http.Request)
}

func chatUnavailable(w http.ResponseWriter, r *http.Request) {
	response.ServiceUnavailable(w, "chatbot service is not configured")
}
