package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/dashboard"
	"taskboard/internal/handlers"
	"taskboard/internal/logger"
	"taskboard/internal/middleware"
	"taskboard/internal/notify"
	"taskboard/internal/repository/inmemory"
	"taskboard/internal/repository/postgres"
	"taskboard/internal/seed"
	"taskboard/internal/service"
	"taskboard/internal/tasklist"
	"taskboard/internal/worker"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

type App struct {
	config     *config.Config
	server     *http.Server
	router     *chi.Mux
	repository service.Repository // интерфейс!
	tasks      *service.TaskService
	categories *service.CategoryService
	board      *dashboard.Dashboard
	hub        *notify.Hub
	worker     *worker.DueWorker
	shutdowns  []func() // функции для graceful shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) (*App, error) {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return nil, fmt.Errorf("инициализация логгера: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	repo, err := a.initRepository(ctx)
	if err != nil {
		a.Shutdown()
		return nil, err
	}
	a.repository = repo

	latency := service.NewLatency(a.config.Simulation.Scale())
	a.tasks = service.NewTaskService(repo, repo, latency)
	a.categories = service.NewCategoryService(repo, latency)

	a.hub = notify.NewHub(a.config.HTTP.AllowedOrigins)
	notifier := notify.Multi{notify.NewLogNotifier(logger.Named("notify")), a.hub}

	list := tasklist.NewController(a.tasks, a.categories, notifier)
	a.board = dashboard.New(list, a.tasks, notifier, a.hub)
	a.worker = worker.NewDueWorker(a.tasks, notifier, &a.config.Worker.Interval)

	a.initRouter()
	a.server = &http.Server{
		Addr:              a.config.GetServerAddr(),
		Handler:           otelhttp.NewHandler(a.router, "taskboard"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Приложение инициализировано",
		zap.String("repository", a.config.Repository.Type),
		zap.Float64("latency_scale", a.config.Simulation.Scale()),
	)
	return a, nil
}

func (a *App) initRepository(ctx context.Context) (service.Repository, error) {
	switch a.config.Repository.Type {
	case config.RepositoryPostgres:
		storage, err := postgres.New(ctx, a.config.Database)
		if err != nil {
			return nil, fmt.Errorf("подключение к postgres: %w", err)
		}
		a.shutdowns = append(a.shutdowns, func() {
			logger.Info("Закрытие пула соединений postgres...")
			storage.Close()
		})

		if err := storage.Migrate(); err != nil {
			return nil, fmt.Errorf("миграции postgres: %w", err)
		}
		if !a.config.Database.SkipSeed {
			ds, err := seed.Default()
			if err != nil {
				return nil, err
			}
			if err := storage.Seed(ctx, ds); err != nil {
				return nil, fmt.Errorf("начальные данные postgres: %w", err)
			}
		}
		return storage, nil
	default:
		ds, err := seed.Default()
		if err != nil {
			return nil, err
		}
		return inmemory.NewStore(ds), nil
	}
}

func (a *App) initRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recover)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(a.config.HTTP.AllowedOrigins))
	r.Use(middleware.RateLimit(a.config.HTTP.RateLimit))
	r.Use(middleware.Timeout(a.config.HTTP.RequestTimeout))

	th := handlers.NewTaskHandler(a.tasks, a.board)
	ch := handlers.NewCategoryHandler(a.categories, a.tasks, a.board)
	dh := handlers.NewDashboardHandler(a.board, a.tasks)
	handlers.Routes(r, &th, &ch, &dh)

	r.Get("/ws", a.hub.ServeWS)

	a.router = r
}

// Run блокируется до отмены ctx или ошибки сервера
func (a *App) Run(ctx context.Context) error {
	go a.hub.Run(ctx)

	if a.config.Worker.Disabled {
		logger.Info("Worker: Фоновая проверка сроков отключена")
	} else {
		go a.worker.Start(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Сервер запущен", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("запуск сервера: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Остановка сервера...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("остановка сервера: %w", err)
	}
	return nil
}

// Shutdown освобождает ресурсы в обратном порядке
func (a *App) Shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
	a.shutdowns = nil
}

func (a *App) Handler() http.Handler {
	return a.router
}
