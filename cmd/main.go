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

	cancelPaymentHandler "github.com/avdeew/HCC-ReservationService/internal/api/handlers/cancel_payment"
	cancelReservationHandler "github.com/avdeew/HCC-ReservationService/internal/api/handlers/cancel_reservation"
	clearBlockedSlotsHandler "github.com/avdeew/HCC-ReservationService/internal/api/handlers/clear_blocked_slots"
	confirmPaymentHandler "github.com/avdeew/HCC-ReservationService/internal/api/handlers/confirm_payment"
	createBlockedSlotsHandler "github.com/avdeew/HCC-ReservationService/internal/api/handlers/create_blocked_slots"
	createReservationHandler "github.com/avdeew/HCC-ReservationService/internal/api/handlers/create_reservation"
	deleteBlockedSlotHandler "github.com/avdeew/HCC-ReservationService/internal/api/handlers/delete_blocked_slot"
	deleteReservationHandler "github.com/avdeew/HCC-ReservationService/internal/api/handlers/delete_reservation"
	getAdminReservationsHandler "github.com/avdeew/HCC-ReservationService/internal/api/handlers/get_admin_reservations"
	getAvailableSlotsHandler "github.com/avdeew/HCC-ReservationService/internal/api/handlers/get_available_slots"
	getReservationHandler "github.com/avdeew/HCC-ReservationService/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/avdeew/HCC-ReservationService/internal/api/handlers/get_user_reservations"
	preparePaymentHandler "github.com/avdeew/HCC-ReservationService/internal/api/handlers/prepare_payment"
	rescheduleReservationHandler "github.com/avdeew/HCC-ReservationService/internal/api/handlers/reschedule_reservation"
	updateReservationStatusHandler "github.com/avdeew/HCC-ReservationService/internal/api/handlers/update_reservation_status"
	"github.com/avdeew/HCC-ReservationService/internal/api/middleware"
	"github.com/avdeew/HCC-ReservationService/internal/config"
	blockedSlotRepo "github.com/avdeew/HCC-ReservationService/internal/infra/storage/blockedslot"
	checkupPackageRepo "github.com/avdeew/HCC-ReservationService/internal/infra/storage/checkuppackage"
	paymentRepo "github.com/avdeew/HCC-ReservationService/internal/infra/storage/payment"
	reservationRepo "github.com/avdeew/HCC-ReservationService/internal/infra/storage/reservation"
	"github.com/avdeew/HCC-ReservationService/internal/integrations/payprovider"
	blockedSlotsService "github.com/avdeew/HCC-ReservationService/internal/service/blockedslots"
	paymentsService "github.com/avdeew/HCC-ReservationService/internal/service/payments"
	reservationsService "github.com/avdeew/HCC-ReservationService/internal/service/reservations"
	confirmPaymentUC "github.com/avdeew/HCC-ReservationService/internal/usecase/confirm_payment"
	createReservationUC "github.com/avdeew/HCC-ReservationService/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/avdeew/HCC-ReservationService/internal/usecase/get_available_slots"
	rescheduleReservationUC "github.com/avdeew/HCC-ReservationService/internal/usecase/reschedule_reservation"
	"github.com/avdeew/HCC-ReservationService/pkg/dbmetrics"
	"github.com/avdeew/HCC-ReservationService/pkg/logger"
	"github.com/avdeew/HCC-ReservationService/pkg/metrics"
	"github.com/avdeew/HCC-ReservationService/pkg/simpletxmanager"
	"github.com/avdeew/HCC-ReservationService/pkg/txmanager"
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

	log.Info("Starting HCC-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем клиента платёжного провайдера
	providerClient := payprovider.NewClient(
		cfg.PaymentGateway.URL,
		cfg.PaymentGateway.SecretKey,
		time.Duration(cfg.PaymentGateway.Timeout)*time.Second,
		log,
	)
	log.Info("Payment provider client initialized (url=%s, timeout=%ds)",
		cfg.PaymentGateway.URL, cfg.PaymentGateway.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		packageRepository     *checkupPackageRepo.Repository
		blockedSlotRepository *blockedSlotRepo.Repository
		paymentRepository     *paymentRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		packageRepository = checkupPackageRepo.NewRepository(wrappedDB)
		blockedSlotRepository = blockedSlotRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		packageRepository = checkupPackageRepo.NewRepository(db)
		blockedSlotRepository = blockedSlotRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(reservationRepository, log)
	blockedSlotSvc := blockedSlotsService.NewService(blockedSlotRepository, log)
	paymentSvc := paymentsService.NewService(
		paymentRepository,
		reservationRepository,
		providerClient,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		packageRepository,
		blockedSlotRepository,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		packageRepository,
		blockedSlotRepository,
		log,
	)

	rescheduleReservationUseCase := rescheduleReservationUC.NewUseCase(
		reservationRepository,
		packageRepository,
		blockedSlotRepository,
		txMgr,
		log,
	)

	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		paymentRepository,
		reservationRepository,
		providerClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	preparePayment := preparePaymentHandler.NewHandler(paymentSvc, log)
	confirmPayment := confirmPaymentHandler.NewHandler(confirmPaymentUseCase, log)
	cancelPayment := cancelPaymentHandler.NewHandler(paymentSvc, log)
	getAdminReservations := getAdminReservationsHandler.NewHandler(reservationSvc, log)
	rescheduleReservation := rescheduleReservationHandler.NewHandler(rescheduleReservationUseCase, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationSvc, log)
	createBlockedSlots := createBlockedSlotsHandler.NewHandler(blockedSlotSvc, log)
	deleteBlockedSlot := deleteBlockedSlotHandler.NewHandler(blockedSlotSvc, log)
	clearBlockedSlots := clearBlockedSlotsHandler.NewHandler(blockedSlotSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Картина доступности слотов пакета на дату
	api.HandleFunc("/packages/{packageId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования с расчётом возврата
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Платежи ---
	// Подготовка платежа (выдача orderId)
	protected.HandleFunc("/payments/prepare", preparePayment.Handle).Methods(http.MethodPost)

	// Подтверждение платежа после платёжного окна провайдера
	protected.HandleFunc("/payments/confirm", confirmPayment.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-ID header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth)

	// Список бронирований с фильтрацией
	admin.HandleFunc("/reservations", getAdminReservations.Handle).Methods(http.MethodGet)

	// Перенос бронирования с повторной проверкой допуска
	admin.HandleFunc("/reservations/{reservationId}/reschedule", rescheduleReservation.Handle).Methods(http.MethodPatch)

	// Принудительная смена статуса
	admin.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// Физическое удаление отменённого бронирования
	admin.HandleFunc("/reservations/{reservationId}", deleteReservation.Handle).Methods(http.MethodDelete)

	// Массовая блокировка ячеек
	admin.HandleFunc("/blocked-slots", createBlockedSlots.Handle).Methods(http.MethodPost)

	// Снятие одной блокировки
	admin.HandleFunc("/blocked-slots/{blockId:[0-9]+}", deleteBlockedSlot.Handle).Methods(http.MethodDelete)

	// Снятие блокировок на дату
	admin.HandleFunc("/blocked-slots", clearBlockedSlots.Handle).Methods(http.MethodDelete)

	// Полный или частичный возврат платежа
	admin.HandleFunc("/payments/{paymentKey}/cancel", cancelPayment.Handle).Methods(http.MethodPost)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
