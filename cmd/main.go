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
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createLinkHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_link"
	createMeetingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_meeting"
	createWindowHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_window"
	deleteLinkHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/delete_link"
	deleteWindowHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/delete_window"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_slots"
	getLinkHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_link"
	listLinkMeetingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_link_meetings"
	listLinksHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_links"
	listWindowsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_windows"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	linkRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/link"
	meetingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/meeting"
	windowRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/window"
	calendarServiceClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/calendarservice"
	linksService "github.com/m04kA/SMC-SchedulingService/internal/service/links"
	windowsService "github.com/m04kA/SMC-SchedulingService/internal/service/windows"
	createMeetingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_meeting"
	getAvailableSlotsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
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

	log.Info("Starting SMC-SchedulingService...")
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

	// Применяем миграции (если включено)
	if cfg.Database.AutoMigrate {
		if err := goose.SetDialect("postgres"); err != nil {
			log.Fatal("Failed to set goose dialect: %v", err)
		}
		if err := goose.Up(db, cfg.Database.MigrationsDir); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Migrations applied from %s", cfg.Database.MigrationsDir)
	}

	// Инициализируем интеграционного клиента
	calendarClient := calendarServiceClient.NewClient(
		cfg.CalendarService.URL,
		time.Duration(cfg.CalendarService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (CalendarService=%s timeout=%ds)",
		cfg.CalendarService.URL, cfg.CalendarService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		linkRepository    *linkRepo.Repository
		windowRepository  *windowRepo.Repository
		meetingRepository *meetingRepo.Repository
	)

	var txMgr createMeetingUC.TransactionManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		linkRepository = linkRepo.NewRepository(wrappedDB)
		windowRepository = windowRepo.NewRepository(wrappedDB)
		meetingRepository = meetingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		linkRepository = linkRepo.NewRepository(db)
		windowRepository = windowRepo.NewRepository(db)
		meetingRepository = meetingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	linkSvc := linksService.NewService(linkRepository, meetingRepository, log)
	windowSvc := windowsService.NewService(windowRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		linkRepository,
		windowRepository,
		meetingRepository,
		calendarClient,
		log,
	)
	createMeetingUseCase := createMeetingUC.NewUseCase(
		linkRepository,
		windowRepository,
		meetingRepository,
		calendarClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createMeeting := createMeetingHandler.NewHandler(createMeetingUseCase, log)
	getLink := getLinkHandler.NewHandler(linkSvc, log)
	createLink := createLinkHandler.NewHandler(linkSvc, log)
	listLinks := listLinksHandler.NewHandler(linkSvc, log)
	deleteLink := deleteLinkHandler.NewHandler(linkSvc, log)
	listLinkMeetings := listLinkMeetingsHandler.NewHandler(linkSvc, log)
	createWindow := createWindowHandler.NewHandler(windowSvc, log)
	listWindows := listWindowsHandler.NewHandler(windowSvc, log)
	deleteWindow := deleteWindowHandler.NewHandler(windowSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации - для приглашённых)
	// ============================================================

	// Описание ссылки и её вопросы
	api.HandleFunc("/links/{slug}", getLink.Handle).Methods(http.MethodGet)

	// Доступные слоты по ссылке
	api.HandleFunc("/links/{slug}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Бронирование встречи по ссылке
	api.HandleFunc("/links/{slug}/meetings", createMeeting.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header - для владельцев)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Ссылки ---
	protected.HandleFunc("/links", createLink.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/links", listLinks.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/links/{slug}/meetings", listLinkMeetings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/links/{linkId}", deleteLink.Handle).Methods(http.MethodDelete)

	// --- Окна доступности ---
	protected.HandleFunc("/windows", createWindow.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/windows", listWindows.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/windows/{windowId}", deleteWindow.Handle).Methods(http.MethodDelete)

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
