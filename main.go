// File: clinicvoice/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinicvoice/config"
	"clinicvoice/cron"
	"clinicvoice/database"
	appointmentRepo "clinicvoice/database/repository/appointment"
	"clinicvoice/handlers"
	"clinicvoice/middleware"
	"clinicvoice/routes"
	ai "clinicvoice/services/intelligence"
	"clinicvoice/services/notification"
	"clinicvoice/services/tasks"
	"clinicvoice/services/telephony"
	"clinicvoice/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()
	healthChecks := map[string]utils.HealthCheck{}

	// Call sessions.
	var sessionStore ai.SessionStore
	switch config.AppConfig.SessionStore {
	case "redis":
		client := utils.GetSessionCacheClient()
		sessionStore = ai.NewRedisContextStore(client, config.AppConfig.SessionTTL)
		healthChecks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	default:
		sessionStore = ai.NewMemoryContextStore()
	}
	registry := ai.NewSessionRegistry(sessionStore)

	// Appointments.
	var appointments appointmentRepo.AppointmentRepository
	switch config.AppConfig.AppointmentStore {
	case "mongo":
		database.InitDB()
		appointments = appointmentRepo.NewMongoAppointmentRepo()
		healthChecks["mongo"] = func(ctx context.Context) error { return database.MongoClient.Ping(ctx, nil) }
	default:
		appointments = appointmentRepo.NewFileAppointmentRepo(config.AppConfig.AppointmentsFile)
	}

	assistant, err := ai.NewGeminiAssistant(rootCtx, config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	if err != nil {
		logger.Fatal("main: failed to initialize Gemini", zap.Error(err))
	}
	defer assistant.Close()

	twilioClient := telephony.NewTwilioRestClient(config.AppConfig.TwilioAccountSID, config.AppConfig.TwilioAuthToken)

	// Booking notifications are optional; without them a booking is only stored.
	var notifier ai.BookingNotifier
	var (
		queueClient *asynq.Client
		smsWorker   *asynq.Server
	)
	if config.AppConfig.NotificationsEnabled {
		loc, err := time.LoadLocation(config.AppConfig.ClinicTimezone)
		if err != nil {
			logger.Fatal("main: invalid clinic timezone", zap.String("tz", config.AppConfig.ClinicTimezone), zap.Error(err))
		}
		queueClient = asynq.NewClient(cron.QueueRedisOpt())
		notifier = tasks.NewBookingScheduler(queueClient, loc, config.AppConfig.ReminderLead)

		sender := notification.NewTwilioSMSSender(twilioClient, config.AppConfig.FromPhoneNumber)
		smsWorker, err = cron.StartSMSWorker(sender, logger)
		if err != nil {
			logger.Fatal("main: failed to start sms worker", zap.Error(err))
		}
	}

	conversation := ai.NewDefaultConversationService(registry, assistant, appointments, notifier, logger)

	responder := telephony.NewResponder(telephony.VoiceOptions{
		Voice:         config.AppConfig.VoiceName,
		Language:      config.AppConfig.VoiceLanguage,
		GatherTimeout: config.AppConfig.GatherTimeout,
		ProcessPath:   "/process",
	})
	calls := telephony.NewTwilioCalls(twilioClient, config.AppConfig.FromPhoneNumber, config.AppConfig.PublicBaseURL)

	var validator *telephony.SignatureValidator
	if config.AppConfig.TwilioValidateSignature {
		validator = telephony.NewSignatureValidator(config.AppConfig.TwilioAuthToken, config.AppConfig.PublicBaseURL)
	}

	utils.StartHealthMonitor(rootCtx, healthChecks, 30*time.Second)

	callHandler := handlers.NewCallHandler(conversation, responder, calls, logger)
	appointmentHandler := handlers.NewAppointmentHandler(appointments, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Index:         callHandler.Index,
		InboundCall:   callHandler.InboundCall,
		ProcessSpeech: callHandler.ProcessSpeech,
		CallStatus:    callHandler.CallStatus,

		MakeCall:         callHandler.MakeCall,
		ListAppointments: appointmentHandler.ListAppointments,

		WebhookGuard: middleware.TwilioSignatureMiddleware(validator),
		APIAuth:      middleware.JWTAuthMiddleware(config.AppConfig.APIJWTSecret),
		CallLimiter:  middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin),
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "5000"
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
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	if smsWorker != nil {
		smsWorker.Shutdown()
	}
	if queueClient != nil {
		if err := queueClient.Close(); err != nil {
			logger.Warn("main: failed to close task queue client", zap.Error(err))
		}
	}
	if err := database.CloseDB(ctx); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
