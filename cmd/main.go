package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	assignSpotsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/assign_spots"
	cancelReservationHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/cancel_reservation"
	createBlockHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_block"
	getAvailabilityHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_availability"
	getReservationHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_reservation"
	listBlocksHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/list_blocks"
	releaseBlockHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/release_block"
	reserveCapacityHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/reserve_capacity"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/config"
	"github.com/m04kA/SMC-ParkingService/internal/infra/cache/availability"
	"github.com/m04kA/SMC-ParkingService/internal/infra/events"
	addonRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/addon"
	blockRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/block"
	categoryRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/category"
	hotelRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/hotel"
	reservationRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/reservation"
	spotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/spot"
	"github.com/m04kA/SMC-ParkingService/internal/jobs/occupancy"
	blocksService "github.com/m04kA/SMC-ParkingService/internal/service/blocks"
	ledgerService "github.com/m04kA/SMC-ParkingService/internal/service/ledger"
	"github.com/m04kA/SMC-ParkingService/internal/service/planner"
	reservationsService "github.com/m04kA/SMC-ParkingService/internal/service/reservations"
	assignSpotsUC "github.com/m04kA/SMC-ParkingService/internal/usecase/assign_spots"
	getAvailabilityUC "github.com/m04kA/SMC-ParkingService/internal/usecase/get_availability"
	reserveCapacityUC "github.com/m04kA/SMC-ParkingService/internal/usecase/reserve_capacity"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ParkingService...")

	// Метрики (nil *Metrics безопасен и ничего не пишет)
	var (
		metricsCollector *metrics.Metrics
		dbRecorder       dbmetrics.Recorder
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbRecorder = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, dbRecorder, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Redis кэш сводок доступности
	var availabilityCache *availability.Cache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Warn("Redis unavailable at %s, availability cache disabled: %v", cfg.Redis.Addr, err)
		} else {
			availabilityCache = availability.New(redisClient, time.Duration(cfg.Redis.TTL)*time.Second)
			log.Info("Availability cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
		}
	}

	// RabbitMQ публикация событий
	var publisher *events.Publisher
	if cfg.RabbitMQ.Enabled {
		publisher, err = events.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.Warn("RabbitMQ unavailable, events disabled: %v", err)
			publisher = nil
		} else {
			defer publisher.Close()
			log.Info("Event publisher enabled (exchange=%s)", cfg.RabbitMQ.Exchange)
		}
	}

	// Репозитории
	hotelRepository := hotelRepo.NewRepository(wrappedDB)
	categoryRepository := categoryRepo.NewRepository(wrappedDB)
	spotRepository := spotRepo.NewRepository(wrappedDB)
	blockRepository := blockRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	addonRepository := addonRepo.NewRepository(wrappedDB)

	// Сервисы
	blocksSvc := blocksService.NewService(
		blockRepository,
		hotelRepository,
		spotRepository,
		availabilityCache,
		publisher,
		metricsCollector,
		log,
	)
	ledgerSvc := ledgerService.NewService(
		hotelRepository,
		categoryRepository,
		spotRepository,
		reservationRepository,
		blocksSvc,
		log,
	)
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		txMgr,
		availabilityCache,
		publisher,
		log,
	)
	spotPlanner := planner.New(log)
	limits := cfg.Booking.Limits()

	// Use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		ledgerSvc,
		availabilityCache,
		txMgr,
		limits,
		log,
	)
	reserveCapacityUseCase := reserveCapacityUC.NewUseCase(
		ledgerSvc,
		hotelRepository,
		categoryRepository,
		spotRepository,
		addonRepository,
		reservationRepository,
		spotPlanner,
		txMgr,
		availabilityCache,
		publisher,
		metricsCollector,
		limits,
		log,
	)
	assignSpotsUseCase := assignSpotsUC.NewUseCase(
		hotelRepository,
		categoryRepository,
		spotRepository,
		reservationRepository,
		addonRepository,
		blocksSvc,
		spotPlanner,
		txMgr,
		availabilityCache,
		publisher,
		metricsCollector,
		limits,
		log,
	)

	// Handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	listBlocks := listBlocksHandler.NewHandler(blocksSvc, log)
	createBlock := createBlockHandler.NewHandler(blocksSvc, log)
	releaseBlock := releaseBlockHandler.NewHandler(blocksSvc, log)
	reserveCapacity := reserveCapacityHandler.NewHandler(reserveCapacityUseCase, log)
	assignSpots := assignSpotsHandler.NewHandler(assignSpotsUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)

	// Фоновая задача gauge доступности
	scheduler := cron.New()
	if cfg.Jobs.OccupancyEnabled {
		job := occupancy.NewJob(hotelRepository, categoryRepository, ledgerSvc, metricsCollector, cfg.Jobs.HorizonDays, log)
		if err := job.Schedule(scheduler, cfg.Jobs.OccupancySchedule); err != nil {
			log.Fatal("Failed to schedule occupancy job: %v", err)
		}
		scheduler.Start()
		log.Info("Occupancy job scheduled (%s, horizon=%d days)", cfg.Jobs.OccupancySchedule, cfg.Jobs.HorizonDays)
	}

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (чтение)
	// ============================================================

	api.HandleFunc("/hotels/{hotelId}/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/hotels/{hotelId}/blocks", listBlocks.Handle).Methods(http.MethodGet)
	api.HandleFunc("/hotels/{hotelId}/reservations/{reservationDetailsId}/parking",
		getReservation.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Блокировки ---
	protected.HandleFunc("/hotels/{hotelId}/blocks", createBlock.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/blocks/{blockId}", releaseBlock.Handle).Methods(http.MethodDelete)

	// --- Брони парковки ---
	protected.HandleFunc("/hotels/{hotelId}/capacity-reservations", reserveCapacity.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/hotels/{hotelId}/spot-assignments", assignSpots.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/hotels/{hotelId}/reservations/{reservationDetailsId}/cancel",
		cancelReservation.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Ждем завершения запущенной задачи
	<-scheduler.Stop().Done()
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
