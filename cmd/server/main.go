package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/cache"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/config"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/database"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/handlers"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/middleware"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/roomstate"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/services"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/pkg/jwt"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/pkg/notify"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting hotel room state backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Repositories
	businessRepository := database.NewBusinessRepository(db)
	roomRepository := database.NewRoomRepository(db)
	reservationRepository := database.NewReservationRepository(db)
	scheduleRepository := database.NewScheduleRepository(db)

	// Business cache (pass-through when REDIS_ADDR is empty)
	redisClient := cache.NewRedisClient(cfg.Redis)
	if redisClient != nil {
		defer redisClient.Close()
		logger.WithField("addr", cfg.Redis.Addr).Info("Business cache enabled")
	} else {
		logger.Info("REDIS_ADDR not set, business cache disabled")
	}
	businessCache := cache.NewBusinessCache(redisClient, businessRepository, cfg.Redis.BusinessTTL, logger)

	// Derivation engine
	resolver := roomstate.NewResolver(nil).WithDefaultCountry(cfg.Hotel.DefaultCountry)
	engine := roomstate.NewEngine(resolver).WithDefaults(roomstate.Defaults{
		CheckInTime:  cfg.Hotel.DefaultCheckInTime,
		CheckOutTime: cfg.Hotel.DefaultCheckOutTime,
	})

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	auditService := services.NewAuditService(db)

	roomStatusService := services.NewRoomStatusService(
		businessCache,
		roomRepository,
		reservationRepository,
		engine,
		auditService,
		logger,
	)
	calendarService := services.NewCalendarService(roomRepository, reservationRepository, scheduleRepository, logger)
	roomService := services.NewRoomService(roomRepository, auditService, logger)
	frontDeskService := services.NewFrontDeskService(reservationRepository, auditService, logger)
	scheduleService := services.NewScheduleService(
		businessCache,
		businessRepository,
		roomRepository,
		scheduleRepository,
		resolver,
		auditService,
		logger,
	)

	notifier := notify.NewWebhookNotifier(notify.WebhookConfig{
		URL:        cfg.Notify.WebhookURL,
		Timeout:    cfg.Notify.Timeout,
		RetryCount: cfg.Notify.RetryCount,
	})
	if !notifier.Enabled() {
		logger.Info("NOTIFY_WEBHOOK_URL not set, overdue alerts disabled")
	}
	overdueAlertService := services.NewOverdueAlertService(businessRepository, roomStatusService, notifier, logger)

	cronService := services.NewCronService(cfg.Jobs, scheduleService, overdueAlertService, logger)
	if cfg.Jobs.Enabled {
		if err := cronService.Start(); err != nil {
			logger.Fatalf("Failed to start cron service: %v", err)
		}
		logger.Info("Cron service started")
	} else {
		logger.Info("JOBS_ENABLED=false, background sweeps only run on demand")
	}

	logger.Info("Services initialized")

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", handlers.Health(db, businessCache, version))

	handlers.RegisterRoutes(router.Group("/api/v1"), handlers.Handlers{
		Auth:       handlers.NewAuthHandler(jwtService, logger),
		RoomStatus: handlers.NewRoomStatusHandler(roomStatusService, calendarService, logger),
		Rooms:      handlers.NewRoomHandler(roomService, logger),
		FrontDesk:  handlers.NewFrontDeskHandler(frontDeskService, logger),
		Schedules:  handlers.NewScheduleHandler(scheduleService, logger),
		Jobs:       handlers.NewJobHandler(cronService, logger),
	}, middleware.AuthMiddleware(jwtService, logger))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	cronService.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}
