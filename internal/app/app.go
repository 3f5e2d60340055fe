package app

import (
	"net/http"

	"expertbridge/internal/config"
	"expertbridge/internal/middleware"
	"expertbridge/internal/modules/admin"
	"expertbridge/internal/modules/auth"
	"expertbridge/internal/modules/booking"
	"expertbridge/internal/modules/directory"
	"expertbridge/internal/modules/notification"
	"expertbridge/internal/modules/profile"
	jwtsvc "expertbridge/internal/pkg/jwt"
	"expertbridge/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	// Redis backs session revocation; nil falls back to process memory.
	Redis  redis.UniversalClient
	Mailer notification.Mailer
	Log    *zap.Logger
}

type App struct {
	Router     *gin.Engine
	Handler    http.Handler
	Hub        *notification.Hub
	Dispatcher *notification.Dispatcher
}

// New builds every module on top of d and mounts the HTTP routes.
func New(d Deps) *App {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	mailer := d.Mailer
	if mailer == nil {
		mailer = notification.NewMailer(d.Config.SMTP)
	}

	profileRepo := repository.NewProfileRepository(d.DB)
	expertRepo := repository.NewExpertRepository(d.DB)
	seekerRepo := repository.NewSeekerRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)
	adminRepo := repository.NewAdminRepository(d.DB)

	var revoker auth.Revoker
	if d.Redis != nil {
		revoker = auth.NewRedisRevoker(d.Redis)
	} else {
		revoker = auth.NewMemoryRevoker()
	}

	j := jwtsvc.New(d.Config.JWTSecret, d.Config.JWTTTL)

	hub := notification.NewHub()
	dispatcher := notification.NewDispatcher(hub, mailer, log.Named("notification"))

	resolver := profile.NewService(profileRepo, expertRepo, seekerRepo, adminRepo)

	authHandler := auth.NewHandler(auth.NewService(profileRepo, j, revoker, resolver, log.Named("auth")))
	directoryHandler := directory.NewHandler(directory.NewService(expertRepo, profileRepo, bookingRepo))
	bookingHandler := booking.NewHandler(
		booking.NewService(bookingRepo, expertRepo, seekerRepo, profileRepo, dispatcher, log.Named("booking")),
		resolver,
	)
	adminHandler := admin.NewHandler(
		admin.NewService(profileRepo, expertRepo, bookingRepo, resolver, dispatcher, log.Named("admin")),
	)
	wsHandler := notification.NewHandler(hub, d.Config.CORSAllowedOrigins, log.Named("ws"))

	if d.Config.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(log), middleware.ErrorLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		directoryHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(j, revoker))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			wsHandler.RegisterRoutes(protected)

			adminGroup := protected.Group("/admin")
			adminGroup.Use(middleware.RequireAdmin(resolver))
			adminHandler.RegisterRoutes(adminGroup)
		}
	}

	return &App{
		Router:     r,
		Handler:    corsHandler(d.Config.CORSAllowedOrigins).Handler(r),
		Hub:        hub,
		Dispatcher: dispatcher,
	}
}

func corsHandler(origins []string) *cors.Cors {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	})
}
