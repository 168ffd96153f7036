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

	createEventHandler "github.com/KUL-Services/bookly-sub001/internal/api/handlers/create_event"
	deleteEventHandler "github.com/KUL-Services/bookly-sub001/internal/api/handlers/delete_event"
	getCalendarHandler "github.com/KUL-Services/bookly-sub001/internal/api/handlers/get_calendar"
	getSlotAvailabilityHandler "github.com/KUL-Services/bookly-sub001/internal/api/handlers/get_slot_availability"
	updateEventHandler "github.com/KUL-Services/bookly-sub001/internal/api/handlers/update_event"
	updateWorkingHoursHandler "github.com/KUL-Services/bookly-sub001/internal/api/handlers/update_working_hours"
	"github.com/KUL-Services/bookly-sub001/internal/api/middleware"
	"github.com/KUL-Services/bookly-sub001/internal/catalog"
	"github.com/KUL-Services/bookly-sub001/internal/config"
	eventRepo "github.com/KUL-Services/bookly-sub001/internal/infra/storage/event"
	scheduleRepo "github.com/KUL-Services/bookly-sub001/internal/infra/storage/schedule"
	staticslotRepo "github.com/KUL-Services/bookly-sub001/internal/infra/storage/staticslot"
	availabilityService "github.com/KUL-Services/bookly-sub001/internal/service/availability"
	eventsService "github.com/KUL-Services/bookly-sub001/internal/service/events"
	scheduleService "github.com/KUL-Services/bookly-sub001/internal/service/schedule"
	getCalendarUC "github.com/KUL-Services/bookly-sub001/internal/usecase/get_calendar"
	getSlotAvailabilityUC "github.com/KUL-Services/bookly-sub001/internal/usecase/get_slot_availability"
	"github.com/KUL-Services/bookly-sub001/pkg/dbmetrics"
	"github.com/KUL-Services/bookly-sub001/pkg/logger"
	"github.com/KUL-Services/bookly-sub001/pkg/metrics"
	"github.com/KUL-Services/bookly-sub001/pkg/simpletxmanager"
	"github.com/KUL-Services/bookly-sub001/pkg/txmanager"
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

	log.Info("Starting Bookly-CalendarService...")
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

	// Загружаем каталог ресурсов из seed-файла
	resourceCatalog, err := catalog.Load(cfg.Catalog.SeedFile)
	if err != nil {
		log.Fatal("Failed to load resource catalog: %v", err)
	}
	log.Info("Resource catalog loaded from %s (%d branches, %d staff, %d rooms)",
		cfg.Catalog.SeedFile,
		len(resourceCatalog.ListBranches()),
		len(resourceCatalog.ListStaff()),
		len(resourceCatalog.ListRooms()))

	// Инициализируем репозитории (с метриками или без)
	var (
		eventRepository    *eventRepo.Repository
		slotRepository     *staticslotRepo.Repository
		scheduleRepository *scheduleRepo.Repository
	)

	var txMgr eventsService.TransactionManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		eventRepository = eventRepo.NewRepository(wrappedDB)
		slotRepository = staticslotRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		eventRepository = eventRepo.NewRepository(db)
		slotRepository = staticslotRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		resourceCatalog,
		log,
	)
	availabilitySvc := availabilityService.NewService(
		eventRepository,
		slotRepository,
		scheduleSvc,
		log,
	)
	eventsSvc := eventsService.NewService(
		eventRepository,
		availabilitySvc,
		resourceCatalog,
		txMgr,
		log,
	)

	// Инициализируем use cases
	getCalendarUseCase := getCalendarUC.NewUseCase(
		eventsSvc,
		resourceCatalog,
		scheduleSvc,
		slotRepository,
		availabilitySvc,
		log,
	)
	getSlotAvailabilityUseCase := getSlotAvailabilityUC.NewUseCase(
		availabilitySvc,
		log,
	)

	// Инициализируем handlers
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, log)
	getSlotAvailability := getSlotAvailabilityHandler.NewHandler(getSlotAvailabilityUseCase, log)
	createEvent := createEventHandler.NewHandler(eventsSvc, log)
	updateEvent := updateEventHandler.NewHandler(eventsSvc, log)
	deleteEvent := deleteEventHandler.NewHandler(eventsSvc, log)
	updateWorkingHours := updateWorkingHoursHandler.NewHandler(scheduleSvc, log)

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

	// Вместимость статичного слота на дату
	api.HandleFunc("/slots/{slotId}/availability", getSlotAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Календарь ---
	// Составленное представление с фильтрами, подсветкой и поиском
	protected.HandleFunc("/calendar", getCalendar.Handle).Methods(http.MethodGet)

	// --- События ---
	protected.HandleFunc("/events", createEvent.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/events/{eventId}", updateEvent.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/events/{eventId}", deleteEvent.Handle).Methods(http.MethodDelete)

	// --- Рабочие часы сотрудников ---
	protected.HandleFunc("/staff/{staffId}/working-hours/{weekday}",
		updateWorkingHours.Handle).Methods(http.MethodPut)

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
