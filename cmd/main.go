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

	firebase "firebase.google.com/go/v4"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"google.golang.org/api/option"

	cancelBookingHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/delete_booking"
	extendBookingHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/extend_booking"
	finalizeBookingHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/finalize_booking"
	getBookingHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/get_booking"
	getBookingInvoicesHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/get_booking_invoices"
	getCarHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/get_car"
	getLoyaltyHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/get_loyalty"
	getUserBookingsHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/get_user_bookings"
	processPaymentHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/process_payment"
	redeemPointsHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/redeem_points"
	upsertCarHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/upsert_car"
	"github.com/m04kA/SMC-CarRentalService/internal/api/middleware"
	"github.com/m04kA/SMC-CarRentalService/internal/config"
	bookingRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/booking"
	carRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/car"
	"github.com/m04kA/SMC-CarRentalService/internal/infra/storage/docstore"
	invoiceRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/invoice"
	loyaltyRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/loyalty"
	"github.com/m04kA/SMC-CarRentalService/internal/integrations/identity"
	"github.com/m04kA/SMC-CarRentalService/internal/jobs"
	"github.com/m04kA/SMC-CarRentalService/internal/scheduler"
	bookingsService "github.com/m04kA/SMC-CarRentalService/internal/service/bookings"
	carsService "github.com/m04kA/SMC-CarRentalService/internal/service/cars"
	invoicesService "github.com/m04kA/SMC-CarRentalService/internal/service/invoices"
	loyaltyService "github.com/m04kA/SMC-CarRentalService/internal/service/loyalty"
	"github.com/m04kA/SMC-CarRentalService/internal/service/pricing"
	cancelBookingUC "github.com/m04kA/SMC-CarRentalService/internal/usecase/cancel_booking"
	checkAvailabilityUC "github.com/m04kA/SMC-CarRentalService/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/SMC-CarRentalService/internal/usecase/create_booking"
	extendBookingUC "github.com/m04kA/SMC-CarRentalService/internal/usecase/extend_booking"
	finalizeBookingUC "github.com/m04kA/SMC-CarRentalService/internal/usecase/finalize_booking"
	processPaymentUC "github.com/m04kA/SMC-CarRentalService/internal/usecase/process_payment"
	"github.com/m04kA/SMC-CarRentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarRentalService/pkg/logger"
	"github.com/m04kA/SMC-CarRentalService/pkg/metrics"
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

	log.Info("Starting SMC-CarRentalService...")
	log.Info("Configuration loaded from config.toml (storage=%s, auth=%s)", cfg.Storage.Backend, cfg.Auth.Provider)

	ctx := context.Background()

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Firebase нужен и для Firestore, и для проверки токенов Firebase Auth
	var firebaseApp *firebase.App
	if cfg.Storage.Backend == config.StorageFirestore || cfg.Auth.Provider == config.AuthFirebase {
		var opts []option.ClientOption
		if cfg.Firestore.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.Firestore.CredentialsFile))
		}
		firebaseApp, err = firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firestore.ProjectID}, opts...)
		if err != nil {
			log.Fatal("Failed to initialize firebase app: %v", err)
		}
		log.Info("Firebase app initialized (project=%s)", cfg.Firestore.ProjectID)
	}

	// Подключаем документное хранилище
	var store docstore.Store

	switch cfg.Storage.Backend {
	case config.StoragePostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.PingContext(ctx); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		if err := docstore.Migrate(ctx, db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")

		// При выключенных метриках обёртка работает как обычный *sql.DB
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		store = docstore.NewPostgres(wrappedDB)

	case config.StorageFirestore:
		client, err := firebaseApp.Firestore(ctx)
		if err != nil {
			log.Fatal("Failed to initialize firestore client: %v", err)
		}
		defer client.Close()
		store = docstore.NewFirestore(client)
		log.Info("Firestore document store initialized")

	default:
		store = docstore.NewMemory()
		log.Warn("Using in-memory document store, data will be lost on restart")
	}

	// Проверка токенов
	var verifier middleware.TokenVerifier
	switch cfg.Auth.Provider {
	case config.AuthFirebase:
		authClient, err := firebaseApp.Auth(ctx)
		if err != nil {
			log.Fatal("Failed to initialize firebase auth client: %v", err)
		}
		verifier = identity.NewFirebaseVerifier(authClient)
	default:
		verifier = identity.NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
	}
	log.Info("Identity verifier initialized (provider=%s)", cfg.Auth.Provider)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(store)
	carRepository := carRepo.NewRepository(store)
	invoiceRepository := invoiceRepo.NewRepository(store)
	loyaltyRepository := loyaltyRepo.NewRepository(store)

	// Правила ценообразования
	calculator := pricing.NewCalculator(pricing.Rules{
		AdditionalDriverRate: cfg.Booking.AdditionalDriverRate,
		CrossLocationFee:     cfg.Booking.CrossLocationFee,
		EarlyBookingBonus:    cfg.Booking.EarlyBookingBonus,
		EarlyBookingDays:     cfg.Booking.EarlyBookingDays,
	})
	if !cfg.Booking.EnforceAvailability {
		log.Warn("Availability enforcement is DISABLED, overlapping bookings will be accepted")
	}

	// Инициализируем сервисы (хранилище само выступает менеджером транзакций)
	bookingSvc := bookingsService.NewService(bookingRepository, store, log)
	carSvc := carsService.NewService(carRepository, log)
	invoiceSvc := invoicesService.NewService(bookingRepository, invoiceRepository, log)
	loyaltySvc := loyaltyService.NewService(loyaltyRepository, store, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		carRepository,
		store,
		calculator,
		cfg.Booking.EnforceAvailability,
		log,
	)
	extendBookingUseCase := extendBookingUC.NewUseCase(
		bookingRepository,
		carRepository,
		invoiceRepository,
		store,
		calculator,
		cfg.Booking.EnforceAvailability,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(bookingRepository, store, log)
	processPaymentUseCase := processPaymentUC.NewUseCase(
		bookingRepository,
		invoiceRepository,
		loyaltySvc,
		store,
		cfg.Booking.EnforceAvailability,
		log,
	)
	finalizeBookingUseCase := finalizeBookingUC.NewUseCase(createBookingUseCase, loyaltySvc, calculator, log)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(bookingRepository, carRepository, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, metricsCollector, log)
	finalizeBooking := finalizeBookingHandler.NewHandler(finalizeBookingUseCase, metricsCollector, log)
	extendBooking := extendBookingHandler.NewHandler(extendBookingUseCase, metricsCollector, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, metricsCollector, log)
	processPayment := processPaymentHandler.NewHandler(processPaymentUseCase, metricsCollector, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getBookingInvoices := getBookingInvoicesHandler.NewHandler(invoiceSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getCar := getCarHandler.NewHandler(carSvc, log)
	upsertCar := upsertCarHandler.NewHandler(carSvc, log)
	getLoyalty := getLoyaltyHandler.NewHandler(loyaltySvc, log)
	redeemPoints := redeemPointsHandler.NewHandler(loyaltySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог и проверка занятости
	api.HandleFunc("/cars/{carId}", getCar.Handle).Methods(http.MethodGet)
	api.HandleFunc("/cars/{carId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Authorization: Bearer <token>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(verifier, log))

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/finalize", finalizeBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/extend", extendBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/payment", processPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/invoices", getBookingInvoices.Handle).Methods(http.MethodGet)

	// --- Пользователи ---
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/loyalty", getLoyalty.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/loyalty/redeem", redeemPoints.Handle).Methods(http.MethodPost)

	// --- Каталог (для администраторов) ---
	protected.HandleFunc("/cars/{carId}", upsertCar.Handle).Methods(http.MethodPut)

	// Фоновый перевод бронирований по статусам
	var cronScheduler *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		cronScheduler = scheduler.NewScheduler(log)
		lifecycleJob := jobs.NewLifecycleJob(bookingRepository, log)
		if err := cronScheduler.Register("booking-lifecycle", cfg.Scheduler.LifecycleSpec, lifecycleJob); err != nil {
			log.Fatal("Failed to register lifecycle job: %v", err)
		}
		cronScheduler.Start()
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
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

	if cronScheduler != nil {
		cronScheduler.Stop()
	}

	// Останавливаем сбор метрик connection pool
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
