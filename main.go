package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"glowbook/cache"
	"glowbook/config"
	"glowbook/database"
	adminRepoPkg "glowbook/database/repository/admin"
	availabilityRepoPkg "glowbook/database/repository/availability"
	"glowbook/handlers"
	"glowbook/middleware"
	"glowbook/routes"
	adminSvc "glowbook/services/admin"
	availabilitySvc "glowbook/services/availability"
	"glowbook/services/booking"
	"glowbook/services/calendar"
	"glowbook/services/notification"
	"glowbook/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()

	// Repositories.
	availRepo := availabilityRepoPkg.NewMongoAvailabilityRepo()
	admRepo := adminRepoPkg.NewMongoAdminRepo()

	// Services.
	availService := &availabilitySvc.DefaultAvailabilityService{Repo: availRepo}
	adminService := &adminSvc.DefaultAdminService{Repo: admRepo}

	if user := os.Getenv("ADMIN_BOOTSTRAP_USER"); user != "" {
		pass := os.Getenv("ADMIN_BOOTSTRAP_PASSWORD")
		if err := adminService.Bootstrap(context.Background(), user, pass); err != nil {
			logger.Sugar().Fatalf("main: failed to bootstrap admin account: %v", err)
		}
	}

	mailer := notification.NewSMTPMailer(
		config.AppConfig.SMTPHost,
		config.AppConfig.SMTPPort,
		config.AppConfig.SMTPUser,
		config.AppConfig.SMTPPassword,
		config.AppConfig.MailSender,
	)
	notifyService := &notification.DefaultNotificationService{
		Mailer:     mailer,
		StudioName: config.AppConfig.StudioName,
		OwnerEmail: config.AppConfig.OwnerEmail,
		BaseURL:    config.AppConfig.SiteBaseURL,
	}

	dial := func(ctx context.Context) (calendar.Client, error) {
		return calendar.NewGoogleClient(ctx,
			config.AppConfig.GoogleServiceAccountFile,
			config.AppConfig.CalendarID,
		)
	}

	bookingService := &booking.DefaultBookingService{
		Dial:            dial,
		Cache:           cache.NewMemory(),
		Availability:    availService,
		Notification:    notifyService,
		SlotLen:         config.BookingDuration(),
		CacheTTL:        config.CacheTTL(),
		DefaultTimezone: config.AppConfig.DefaultTimezone,
	}

	sessionStore := booking.NewSessionStore(utils.GetSessionCacheClient(), config.SessionTTL())

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	handlerBundle := &routes.HandlerBundle{
		Booking:  handlers.NewBookingHandler(bookingService, logger),
		Admin:    handlers.NewAdminHandler(adminService, availService, logger),
		Contact:  handlers.NewContactHandler(notifyService, logger),
		Sessions: sessionStore,
	}
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(utils.GetSessionCacheClient(), database.MongoClient)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
