package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Waleed-420/E-Clinical/config"
	croncfg "github.com/Waleed-420/E-Clinical/cron"
	"github.com/Waleed-420/E-Clinical/database"
	appointmentRepoPkg "github.com/Waleed-420/E-Clinical/database/repository/appointment"
	chatRepoPkg "github.com/Waleed-420/E-Clinical/database/repository/chat"
	doctorRepoPkg "github.com/Waleed-420/E-Clinical/database/repository/doctor"
	userRepoPkg "github.com/Waleed-420/E-Clinical/database/repository/user"
	"github.com/Waleed-420/E-Clinical/handlers"
	"github.com/Waleed-420/E-Clinical/middleware"
	"github.com/Waleed-420/E-Clinical/routes"
	"github.com/Waleed-420/E-Clinical/services/availability"
	"github.com/Waleed-420/E-Clinical/services/booking"
	"github.com/Waleed-420/E-Clinical/services/chat"
	"github.com/Waleed-420/E-Clinical/services/notification"
	"github.com/Waleed-420/E-Clinical/services/reminder"
	"github.com/Waleed-420/E-Clinical/services/user"
	"github.com/Waleed-420/E-Clinical/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	doctorRepo := doctorRepoPkg.NewMongoDoctorRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	chatRepo := chatRepoPkg.NewMongoChatThreadRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	for _, ensure := range []func() error{
		doctorRepo.EnsureIndexes,
		appointmentRepo.EnsureIndexes,
		chatRepo.EnsureIndexes,
		userRepo.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
		}
	}

	// services.
	authService := &user.DefaultAuthService{Repo: userRepo}

	chatService := &chat.DefaultThreadService{
		Repo:   chatRepo,
		Logger: logger,
	}

	availabilityService := &availability.Service{
		Doctors:      doctorRepo,
		Appointments: appointmentRepo,
		Cache:        utils.GetCacheClient(),
		Logger:       logger,
	}

	bookingService := &booking.DefaultBookingService{
		Doctors:      doctorRepo,
		Appointments: appointmentRepo,
		Chat:         chatService,
		Availability: availabilityService,
		Logger:       logger,
	}

	notificationService := &notification.DefaultNotificationService{
		Users:   userRepo,
		Doctors: doctorRepo,
	}

	// Reminder pipeline: the scheduler scans and enqueues, the cron
	// worker consumes the queue and pushes over FCM.
	loc, err := time.LoadLocation(config.AppConfig.Timezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid timezone %q: %v", config.AppConfig.Timezone, err)
	}
	dispatcher := reminder.NewAsynqDispatcher()
	reminderScheduler := reminder.NewScheduler(
		appointmentRepo,
		dispatcher,
		loc,
		config.AppConfig.ReminderWindowLow,
		config.AppConfig.ReminderWindowHigh,
		logger,
	)
	if err := reminderScheduler.Start(); err != nil {
		logger.Sugar().Fatalf("main: failed to start reminder scheduler: %v", err)
	}
	croncfg.InitReminderWorker(notificationService)

	// handlers.
	authHandler := handlers.NewAuthHandler(authService)
	doctorHandler := handlers.NewDoctorHandler(doctorRepo, availabilityService)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)

	handlerBundle := &handlers.HandlerBundle{
		SignupHandler:     authHandler.Signup,
		SigninHandler:     authHandler.Signin,
		CheckEmailHandler: authHandler.CheckEmail,

		RegisterDoctorHandler: doctorHandler.RegisterDoctor,
		GetDoctorHandler:      doctorHandler.GetDoctor,
		UpdateScheduleHandler: doctorHandler.UpdateSchedule,

		GetAvailabilityHandler:         availabilityHandler.GetAvailability,
		BookAppointmentHandler:         bookingHandler.BookAppointment,
		ListAppointmentsHandler:        bookingHandler.ListAppointments,
		UpdateAppointmentStatusHandler: bookingHandler.UpdateAppointmentStatus,
	}

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

	reminderScheduler.Stop()
	if err := dispatcher.Close(); err != nil {
		logger.Sugar().Warnf("main: failed to close reminder dispatcher: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
