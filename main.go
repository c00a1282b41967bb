package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ayursutra/config"
	"ayursutra/cron"
	"ayursutra/database"
	appointmentRepo "ayursutra/database/repository/appointment"
	clinicRepo "ayursutra/database/repository/clinic"
	reviewRepo "ayursutra/database/repository/review"
	"ayursutra/handlers"
	"ayursutra/routes"
	"ayursutra/services/auth"
	"ayursutra/services/booking"
	clinicSvc "ayursutra/services/clinic"
	"ayursutra/services/discovery"
	"ayursutra/services/identity"
	"ayursutra/services/notification"
	"ayursutra/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// Repositories.
	clinics := clinicRepo.NewMongoClinicRepo()
	reviews := reviewRepo.NewMongoReviewRepo()
	appointments := appointmentRepo.NewMongoAppointmentRepo()
	if repo, ok := clinics.(*clinicRepo.MongoClinicRepo); ok {
		if err := repo.EnsureIndexes(); err != nil {
			logger.Sugar().Warnf("main: failed to ensure clinic indexes: %v", err)
		}
	}

	// Shared stores and outbound clients.
	contextStore := utils.NewSessionContextStore(utils.GetCacheClient())
	selectionStore := booking.NewRedisSelectionStore(utils.GetCacheClient())
	identityClient := identity.NewHTTPClient(
		config.AppConfig.IdentityEndpoint,
		config.AppConfig.IdentityProject,
		config.AppConfig.IdentityAPIKey,
	)
	relay := notification.NewRelayClient(&config.AppConfig)

	// Services.
	authService := &auth.DefaultAuthService{
		Identity: identityClient,
		Clinics:  clinics,
		Sessions: auth.NewRedisSessionStore(utils.GetAuthCacheClient()),
		Context:  contextStore,
		Resend:   auth.NewRedisResendGate(utils.GetResendCacheClient()),
		Tokens:   auth.NewRedisTokenRevoker(utils.GetAuthCacheClient()),
	}
	discoveryService := discovery.NewDiscoveryService(clinics)
	clinicService := clinicSvc.NewClinicService(clinics, reviews, appointments, contextStore)
	bookingService := booking.NewBookingService(clinics, reviews, selectionStore, contextStore, relay)

	// Background reminder pipeline.
	cron.InitReminderWorker(relay)
	cron.StartReminderScheduler(appointments)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		SignInHandler:  handlers.SignInHandler(authService),
		VerifyHandler:  handlers.VerifyHandler(authService),
		ResendHandler:  handlers.ResendHandler(authService),
		ProfileHandler: handlers.ProfileHandler(authService),
		SignOutHandler: handlers.SignOutHandler(authService),

		ListClinicsHandler: handlers.ListClinicsHandler(discoveryService),
		GetClinicHandler:   handlers.GetClinicHandler(discoveryService),

		RegisterClinicHandler: handlers.RegisterClinicHandler(clinicService),
		DashboardHandler:      handlers.DashboardHandler(clinicService, contextStore),
		AddSlotHandler:        handlers.AddSlotHandler(clinicService),
		ToggleSlotHandler:     handlers.ToggleSlotHandler(clinicService),

		SelectHandler:    handlers.SelectHandler(bookingService),
		BookSlotHandler:  handlers.BookSlotHandler(bookingService),
		SelectionHandler: handlers.SelectionHandler(bookingService),

		ListReviewsHandler:  handlers.ListReviewsHandler(bookingService),
		SubmitReviewHandler: handlers.SubmitReviewHandler(bookingService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
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
