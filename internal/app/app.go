package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"challengeTracker/internal/config"
	"challengeTracker/internal/handlers"
	"challengeTracker/internal/logger"
	"challengeTracker/internal/repository/challenge/jsonfile"
	"challengeTracker/internal/repository/challenge/postgres"
	"challengeTracker/internal/service"
	"challengeTracker/internal/storage/kv"
	"challengeTracker/internal/suggest"
	"challengeTracker/internal/worker"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	config    *config.Config
	server    *http.Server
	router    *chi.Mux
	service   service.ChallengeService
	worker    *worker.StatusWorker
	shutdowns []func() // функции для graceful shutdown, вызываются в обратном порядке
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {

	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	repo, err := a.initRepository(ctx)
	if err != nil {
		return err
	}

	a.service = service.NewChallengeService(repo)

	// первая сверка статусов - до того, как сервер начнёт отвечать
	flipped, err := a.service.ReconcileStatuses(ctx)
	if err != nil {
		return fmt.Errorf("первая сверка статусов: %w", err)
	}
	logger.Info("App: Первая сверка статусов завершена", zap.Int("flipped", flipped))

	interval := a.config.Worker.Interval
	a.worker = worker.NewStatusWorker(&a.service, &interval)

	suggester, err := a.initSuggester(ctx)
	if err != nil {
		return err
	}

	handler := handlers.NewChallengeHandler(&a.service, suggester)
	a.router = newRouter(&handler)

	a.server = &http.Server{
		Addr:    a.config.GetServerAddr(),
		Handler: a.router,
	}

	return nil
}

func (a *App) initRepository(ctx context.Context) (service.ChallengeRepository, error) {
	switch a.config.Repository.Type {
	case "postgres":
		storage, err := postgres.New(ctx, a.config.Repository.URL)
		if err != nil {
			return nil, fmt.Errorf("инициализация postgres: %w", err)
		}

		if err := storage.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("миграции: %w", err)
		}

		a.shutdowns = append(a.shutdowns, storage.Close)
		return storage, nil

	default:
		store := kv.New(a.config.Repository.Path)
		if err := store.Load(); err != nil {
			return nil, fmt.Errorf("загрузка хранилища: %w", err)
		}

		storage := jsonfile.NewChallengeStorage(store)
		if err := storage.Load(ctx); err != nil {
			return nil, fmt.Errorf("загрузка коллекции: %w", err)
		}
		return storage, nil
	}
}

// initSuggester возвращает nil, если ключ не задан -
// приложение работает, просто без AI подсказок
func (a *App) initSuggester(ctx context.Context) (handlers.Suggester, error) {
	if a.config.AI.APIKey == "" {
		logger.Warn("App: AI ключ не задан, подсказки отключены")
		return nil, nil
	}

	client, err := suggest.NewClient(ctx, a.config.AI.APIKey, a.config.AI.Model)
	if err != nil {
		return nil, fmt.Errorf("инициализация AI клиента: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		client.Close()
	})
	return client, nil
}

// Run запускает фоновую сверку и HTTP сервер.
// Блокируется до остановки сервера.
func (a *App) Run(ctx context.Context) error {
	workerCtx, cancelWorker := context.WithCancel(ctx)
	a.shutdowns = append(a.shutdowns, cancelWorker)

	go a.worker.Start(workerCtx)

	logger.Info("App: Сервер запущен", zap.String("addr", a.server.Addr))

	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("работа сервера: %w", err)
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if a.server != nil {
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			logger.Error("App: Ошибка остановки сервера", err)
		}
	}

	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}
