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

	branchScheduleHandler "github.com/kyros-barber/KB-BookingService/internal/api/handlers/branch_schedule"
	cancelAppointmentHandler "github.com/kyros-barber/KB-BookingService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/kyros-barber/KB-BookingService/internal/api/handlers/create_appointment"
	createPublicBookingHandler "github.com/kyros-barber/KB-BookingService/internal/api/handlers/create_public_booking"
	getAppointmentHandler "github.com/kyros-barber/KB-BookingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/kyros-barber/KB-BookingService/internal/api/handlers/get_available_slots"
	getBranchAppointmentsHandler "github.com/kyros-barber/KB-BookingService/internal/api/handlers/get_branch_appointments"
	getPublicBranchHandler "github.com/kyros-barber/KB-BookingService/internal/api/handlers/get_public_branch"
	getPublicEmployeesHandler "github.com/kyros-barber/KB-BookingService/internal/api/handlers/get_public_employees"
	getPublicOpenDaysHandler "github.com/kyros-barber/KB-BookingService/internal/api/handlers/get_public_open_days"
	getPublicServicesHandler "github.com/kyros-barber/KB-BookingService/internal/api/handlers/get_public_services"
	manageBranchesHandler "github.com/kyros-barber/KB-BookingService/internal/api/handlers/manage_branches"
	manageClientsHandler "github.com/kyros-barber/KB-BookingService/internal/api/handlers/manage_clients"
	manageEmployeesHandler "github.com/kyros-barber/KB-BookingService/internal/api/handlers/manage_employees"
	manageServicesHandler "github.com/kyros-barber/KB-BookingService/internal/api/handlers/manage_services"
	statisticsHandler "github.com/kyros-barber/KB-BookingService/internal/api/handlers/statistics"
	updateAppointmentHandler "github.com/kyros-barber/KB-BookingService/internal/api/handlers/update_appointment"
	updateAppointmentStatusHandler "github.com/kyros-barber/KB-BookingService/internal/api/handlers/update_appointment_status"
	"github.com/kyros-barber/KB-BookingService/internal/api/middleware"
	"github.com/kyros-barber/KB-BookingService/internal/config"
	appointmentRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/appointment"
	branchRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/branch"
	clientRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/client"
	employeeRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/employee"
	scheduleRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/schedule"
	serviceRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/service"
	statsRepo "github.com/kyros-barber/KB-BookingService/internal/infra/storage/stats"
	authServiceClient "github.com/kyros-barber/KB-BookingService/internal/integrations/authservice"
	appointmentsService "github.com/kyros-barber/KB-BookingService/internal/service/appointments"
	branchesService "github.com/kyros-barber/KB-BookingService/internal/service/branches"
	catalogService "github.com/kyros-barber/KB-BookingService/internal/service/catalog"
	clientsService "github.com/kyros-barber/KB-BookingService/internal/service/clients"
	scheduleService "github.com/kyros-barber/KB-BookingService/internal/service/schedule"
	staffService "github.com/kyros-barber/KB-BookingService/internal/service/staff"
	statisticsService "github.com/kyros-barber/KB-BookingService/internal/service/statistics"
	createAppointmentUC "github.com/kyros-barber/KB-BookingService/internal/usecase/create_appointment"
	createPublicBookingUC "github.com/kyros-barber/KB-BookingService/internal/usecase/create_public_booking"
	getAvailableSlotsUC "github.com/kyros-barber/KB-BookingService/internal/usecase/get_available_slots"
	updateAppointmentUC "github.com/kyros-barber/KB-BookingService/internal/usecase/update_appointment"
	"github.com/kyros-barber/KB-BookingService/pkg/dbmetrics"
	"github.com/kyros-barber/KB-BookingService/pkg/logger"
	"github.com/kyros-barber/KB-BookingService/pkg/metrics"
	"github.com/kyros-barber/KB-BookingService/pkg/simpletxmanager"
	"github.com/kyros-barber/KB-BookingService/pkg/txmanager"
)

// TxManager объединяет транзакционные режимы, используемые сервисами и usecases
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

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

	log.Info("Starting KB-BookingService...")
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

	// Инициализируем клиент AuthService (учетные записи филиалов)
	authClient := authServiceClient.NewClient(
		cfg.AuthService.URL,
		cfg.AuthService.Token,
		time.Duration(cfg.AuthService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (AuthService=%s timeout=%ds)",
		cfg.AuthService.URL, cfg.AuthService.Timeout)

	// Инициализируем репозитории и transaction manager
	// (с обёрткой метрик или без)
	var executor dbmetrics.DBExecutor = db
	var txMgr TxManager = simpletxmanager.NewTransactionManager(db)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		executor = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		log.Info("Database metrics collection started")
	}

	appointmentRepository := appointmentRepo.NewRepository(executor)
	branchRepository := branchRepo.NewRepository(executor)
	clientRepository := clientRepo.NewRepository(executor)
	employeeRepository := employeeRepo.NewRepository(executor)
	scheduleRepository := scheduleRepo.NewRepository(executor)
	serviceRepository := serviceRepo.NewRepository(executor)
	statsRepository := statsRepo.NewRepository(executor)

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, txMgr, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, branchRepository, log)
	catalogSvc := catalogService.NewService(serviceRepository, log)
	staffSvc := staffService.NewService(employeeRepository, serviceRepository, txMgr, log)
	clientsSvc := clientsService.NewService(clientRepository, txMgr, log)
	branchesSvc := branchesService.NewService(
		branchRepository,
		appointmentRepository,
		scheduleRepository,
		employeeRepository,
		serviceRepository,
		authClient,
		txMgr,
		log,
	)
	statisticsSvc := statisticsService.NewService(statsRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		branchRepository,
		scheduleRepository,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		branchRepository,
		scheduleRepository,
		serviceRepository,
		employeeRepository,
		txMgr,
		log,
	)
	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		serviceRepository,
		employeeRepository,
		txMgr,
		log,
	)
	createPublicBookingUseCase := createPublicBookingUC.NewUseCase(
		appointmentRepository,
		branchRepository,
		scheduleRepository,
		serviceRepository,
		employeeRepository,
		clientsSvc,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, branchesSvc, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getBranchAppointments := getBranchAppointmentsHandler.NewHandler(appointmentsSvc, log)
	createPublicBooking := createPublicBookingHandler.NewHandler(createPublicBookingUseCase, branchesSvc, log)
	getPublicBranch := getPublicBranchHandler.NewHandler(branchesSvc, log)
	getPublicServices := getPublicServicesHandler.NewHandler(catalogSvc, branchesSvc, log)
	getPublicOpenDays := getPublicOpenDaysHandler.NewHandler(scheduleSvc, log)
	getPublicEmployees := getPublicEmployeesHandler.NewHandler(staffSvc, branchesSvc, log)
	branchSchedule := branchScheduleHandler.NewHandler(scheduleSvc, log)
	manageBranches := manageBranchesHandler.NewHandler(branchesSvc, log)
	manageServices := manageServicesHandler.NewHandler(catalogSvc, log)
	manageEmployees := manageEmployeesHandler.NewHandler(staffSvc, log)
	manageClients := manageClientsHandler.NewHandler(clientsSvc, log)
	statistics := statisticsHandler.NewHandler(statisticsSvc, log)

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
	// PUBLIC ROUTES (чат-виджет, без аутентификации)
	// ============================================================

	public := api.PathPrefix("/public").Subrouter()

	// Карточка филиала
	public.HandleFunc("/branches/{branchId}", getPublicBranch.Handle).Methods(http.MethodGet)

	// Услуги филиала (собственные плюс глобальные)
	public.HandleFunc("/branches/{branchId}/services", getPublicServices.Handle).Methods(http.MethodGet)

	// Дни недели, в которые филиал открыт
	public.HandleFunc("/branches/{branchId}/open-days", getPublicOpenDays.Handle).Methods(http.MethodGet)

	// Доступные слоты на дату
	public.HandleFunc("/branches/{branchId}/available-slots", getAvailableSlots.HandlePublic).Methods(http.MethodGet)

	// Сотрудники, выполняющие все выбранные услуги
	public.HandleFunc("/branches/{branchId}/employees", getPublicEmployees.Handle).Methods(http.MethodGet)

	// Создание бронирования из чата (статус pending)
	public.HandleFunc("/branches/{branchId}/bookings", createPublicBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (заголовки X-Business-ID / X-Branch-ID / X-Role)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Actor(log))

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{appointmentId}", cancelAppointment.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// --- Журнал филиала ---
	protected.HandleFunc("/branches/{branchId}/appointments", getBranchAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/branches/{branchId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Расписание филиала ---
	protected.HandleFunc("/branches/{branchId}/schedule", branchSchedule.HandleGet).Methods(http.MethodGet)
	protected.HandleFunc("/branches/{branchId}/schedule", branchSchedule.HandleUpsertDay).Methods(http.MethodPut)
	protected.HandleFunc("/branches/{branchId}/schedule/{dayOfWeek}", branchSchedule.HandleDeleteDay).Methods(http.MethodDelete)

	// --- Бизнес и филиалы ---
	protected.HandleFunc("/business", manageBranches.HandleGetBusiness).Methods(http.MethodGet)
	protected.HandleFunc("/branches", manageBranches.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/branches", manageBranches.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/branches/{branchId}", manageBranches.HandleGet).Methods(http.MethodGet)
	protected.HandleFunc("/branches/{branchId}", manageBranches.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/branches/{branchId}", manageBranches.HandleDelete).Methods(http.MethodDelete)

	// --- Каталог услуг ---
	protected.HandleFunc("/services", manageServices.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/services", manageServices.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/services/{serviceId}", manageServices.HandleGet).Methods(http.MethodGet)
	protected.HandleFunc("/services/{serviceId}", manageServices.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/services/{serviceId}", manageServices.HandleDelete).Methods(http.MethodDelete)

	// --- Сотрудники ---
	protected.HandleFunc("/employees", manageEmployees.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/employees", manageEmployees.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/employees/{employeeId}", manageEmployees.HandleGet).Methods(http.MethodGet)
	protected.HandleFunc("/employees/{employeeId}", manageEmployees.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/employees/{employeeId}", manageEmployees.HandleDelete).Methods(http.MethodDelete)

	// --- Клиенты ---
	protected.HandleFunc("/clients", manageClients.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/clients", manageClients.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/clients/{clientId}", manageClients.HandleGet).Methods(http.MethodGet)
	protected.HandleFunc("/clients/{clientId}", manageClients.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/clients/{clientId}", manageClients.HandleDelete).Methods(http.MethodDelete)

	// --- Статистика ---
	protected.HandleFunc("/statistics/branches", statistics.HandleBranchCounts).Methods(http.MethodGet)
	protected.HandleFunc("/statistics/services", statistics.HandlePopularServices).Methods(http.MethodGet)
	protected.HandleFunc("/statistics/revenue", statistics.HandleRevenue).Methods(http.MethodGet)

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
