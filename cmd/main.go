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

	bulkCreateSpotsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/bulk_create_spots"
	cancelBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_booking"
	createSpotHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_spot"
	createTariffHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_tariff"
	deleteCarHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/delete_car"
	deleteSpotHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/delete_spot"
	getAccessLogsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_access_logs"
	getAdminBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_admin_bookings"
	getAdminCarsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_admin_cars"
	getAdminPaymentsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_admin_payments"
	getBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_booking"
	getSpotsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_spots"
	getTariffHistoryHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_tariff_history"
	getTariffsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_tariffs"
	getUserBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_user_bookings"
	getUserCarsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_user_cars"
	getUserPaymentsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_user_payments"
	issueQRHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/issue_qr"
	payBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/pay_booking"
	registerCarHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/register_car"
	runSweepHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/run_sweep"
	subscribeHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/subscribe"
	updateBookingStatusHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/update_booking_status"
	updateSpotStatusHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/update_spot_status"
	updateTariffHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/update_tariff"
	validateQRHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/validate_qr"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/config"
	accessLogRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/accesslog"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	carRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/car"
	paymentRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/payment"
	spotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/spot"
	tariffRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/tariff"
	"github.com/m04kA/SMC-ParkingService/internal/notify"
	"github.com/m04kA/SMC-ParkingService/internal/scheduler"
	accessLogsService "github.com/m04kA/SMC-ParkingService/internal/service/accesslogs"
	bookingsService "github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	carsService "github.com/m04kA/SMC-ParkingService/internal/service/cars"
	paymentsService "github.com/m04kA/SMC-ParkingService/internal/service/payments"
	spotsService "github.com/m04kA/SMC-ParkingService/internal/service/spots"
	tariffsService "github.com/m04kA/SMC-ParkingService/internal/service/tariffs"
	createBookingUC "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
	expireBookingsUC "github.com/m04kA/SMC-ParkingService/internal/usecase/expire_bookings"
	finishBookingUC "github.com/m04kA/SMC-ParkingService/internal/usecase/finish_booking"
	issueQRUC "github.com/m04kA/SMC-ParkingService/internal/usecase/issue_qr"
	payBookingUC "github.com/m04kA/SMC-ParkingService/internal/usecase/pay_booking"
	validateQRUC "github.com/m04kA/SMC-ParkingService/internal/usecase/validate_qr"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
	"github.com/m04kA/SMC-ParkingService/pkg/qrsign"
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
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены); nil-метрики работают как no-op
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.Wrap(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Подпись QR-кодов
	signer, err := qrsign.NewSigner(cfg.QR.SignatureKey)
	if err != nil {
		log.Fatal("Failed to initialize QR signer: %v", err)
	}

	// Рассылка уведомлений
	hub := notify.NewHub(cfg.Notifications.ClientBuffer, metricsCollector, log)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	spotRepository := spotRepo.NewRepository(wrappedDB)
	tariffRepository := tariffRepo.NewRepository(wrappedDB)
	carRepository := carRepo.NewRepository(wrappedDB)
	paymentRepository := paymentRepo.NewRepository(wrappedDB)
	accessLogRepository := accessLogRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	spotSvc := spotsService.NewService(spotRepository, bookingRepository, txMgr, hub, log)
	tariffSvc := tariffsService.NewService(tariffRepository, txMgr, log)
	carSvc := carsService.NewService(carRepository, bookingRepository, txMgr, hub, log)
	paymentSvc := paymentsService.NewService(paymentRepository, log)
	accessLogSvc := accessLogsService.NewService(accessLogRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		spotRepository,
		carRepository,
		tariffRepository,
		txMgr,
		hub,
		metricsCollector,
		log,
	)
	finishBookingUseCase := finishBookingUC.NewUseCase(
		bookingRepository,
		spotRepository,
		txMgr,
		hub,
		log,
	)
	expireBookingsUseCase := expireBookingsUC.NewUseCase(
		bookingRepository,
		finishBookingUseCase,
		cfg.Scheduler.UnpaidGrace(),
		metricsCollector,
		log,
	)
	payBookingUseCase := payBookingUC.NewUseCase(
		bookingRepository,
		tariffRepository,
		paymentRepository,
		txMgr,
		hub,
		log,
	)
	issueQRUseCase := issueQRUC.NewUseCase(bookingRepository, signer, log)
	validateQRUseCase := validateQRUC.NewUseCase(
		bookingRepository,
		accessLogRepository,
		signer,
		txMgr,
		hub,
		metricsCollector,
		log,
	)

	// Планировщик просрочек
	var sweepScheduler *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sweepScheduler, err = scheduler.New(cfg.Scheduler.Spec, cfg.Scheduler.Timeout(), expireBookingsUseCase, log)
		if err != nil {
			log.Fatal("Failed to initialize scheduler: %v", err)
		}
		sweepScheduler.Start()
		log.Info("Expiration sweep scheduled (%s)", cfg.Scheduler.Spec)
	}

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(finishBookingUseCase, log)
	payBooking := payBookingHandler.NewHandler(payBookingUseCase, log)
	issueQR := issueQRHandler.NewHandler(issueQRUseCase, log)
	getUserPayments := getUserPaymentsHandler.NewHandler(paymentSvc, log)
	getSpots := getSpotsHandler.NewHandler(spotSvc, log)
	getTariffs := getTariffsHandler.NewHandler(tariffSvc, log)
	registerCar := registerCarHandler.NewHandler(carSvc, log)
	getUserCars := getUserCarsHandler.NewHandler(carSvc, log)
	deleteCar := deleteCarHandler.NewHandler(carSvc, log)

	getAdminBookings := getAdminBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(finishBookingUseCase, log)
	runSweep := runSweepHandler.NewHandler(expireBookingsUseCase, log)
	getAdminPayments := getAdminPaymentsHandler.NewHandler(paymentSvc, log)
	validateQR := validateQRHandler.NewHandler(validateQRUseCase, log)
	getAccessLogs := getAccessLogsHandler.NewHandler(accessLogSvc, log)
	createSpot := createSpotHandler.NewHandler(spotSvc, log)
	bulkCreateSpots := bulkCreateSpotsHandler.NewHandler(spotSvc, log)
	updateSpotStatus := updateSpotStatusHandler.NewHandler(spotSvc, log)
	deleteSpot := deleteSpotHandler.NewHandler(spotSvc, log)
	getAdminTariffs := getTariffsHandler.NewAdminHandler(tariffSvc, log)
	createTariff := createTariffHandler.NewHandler(tariffSvc, log)
	updateTariff := updateTariffHandler.NewHandler(tariffSvc, log)
	getTariffHistory := getTariffHistoryHandler.NewHandler(tariffSvc, log)
	getAdminCars := getAdminCarsHandler.NewHandler(carSvc, log)

	subscribe := subscribeHandler.NewHandler(hub, log)

	auth := middleware.NewAuthenticator(cfg.Auth.JWTSecret)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

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

	// Список активных тарифов
	api.HandleFunc("/tariffs", getTariffs.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer JWT)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Auth)

	// --- Парковочные места ---
	protected.HandleFunc("/spots", getSpots.Handle).Methods(http.MethodGet)

	// --- Автомобили ---
	protected.HandleFunc("/cars", registerCar.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/cars", getUserCars.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/cars/{carId}", deleteCar.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/pay", payBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/qr", issueQR.Handle).Methods(http.MethodGet)

	// --- Оплаты ---
	protected.HandleFunc("/payments", getUserPayments.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют is_staff)
	// ============================================================

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireStaff)

	admin.HandleFunc("/bookings", getAdminBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/sweep", runSweep.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	admin.HandleFunc("/payments", getAdminPayments.Handle).Methods(http.MethodGet)

	admin.HandleFunc("/access/validate", validateQR.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/access-logs", getAccessLogs.Handle).Methods(http.MethodGet)

	admin.HandleFunc("/spots", createSpot.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/spots/bulk", bulkCreateSpots.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/spots/{spotNumber}", updateSpotStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/spots/{spotNumber}", deleteSpot.Handle).Methods(http.MethodDelete)

	admin.HandleFunc("/tariffs", getAdminTariffs.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/tariffs", createTariff.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/tariffs/history", getTariffHistory.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/tariffs/{tariffId}", updateTariff.Handle).Methods(http.MethodPatch)

	admin.HandleFunc("/cars", getAdminCars.Handle).Methods(http.MethodGet)

	// ============================================================
	// WEBSOCKET (токен в заголовке или ?token=)
	// ============================================================

	ws := r.PathPrefix("/ws").Subrouter()
	ws.Use(auth.Auth)
	ws.HandleFunc("/parking", subscribe.Parking).Methods(http.MethodGet)
	ws.HandleFunc("/me", subscribe.Me).Methods(http.MethodGet)

	wsAdmin := ws.PathPrefix("/admin").Subrouter()
	wsAdmin.Use(middleware.RequireStaff)
	wsAdmin.HandleFunc("/{group}", subscribe.Admin).Methods(http.MethodGet)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if sweepScheduler != nil {
		sweepScheduler.Stop(shutdownCtx)
	}

	// Закрываем WebSocket-подписчиков до остановки сервера: Shutdown не ждет hijacked-соединения
	hub.Close()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
