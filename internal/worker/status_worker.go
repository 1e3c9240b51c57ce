package worker

import (
	"context"
	"time"

	"challengeTracker/internal/logger"

	"go.uber.org/zap"
)

type Reconciler interface {
	ReconcileStatuses(context.Context) (int, error)
}

// StatusWorker периодически переводит просроченные активные челленджи
// в completed. Период не влияет на корректность - сверка идемпотентна.
type StatusWorker struct {
	service  Reconciler
	interval time.Duration
}

func NewStatusWorker(service Reconciler, interval *time.Duration) *StatusWorker {
	var intervalToSet time.Duration
	if interval == nil || *interval <= 0 {
		intervalToSet = time.Hour
	} else {
		intervalToSet = *interval
	}

	return &StatusWorker{
		service:  service,
		interval: intervalToSet,
	}
}

// Start блокируется до отмены контекста - вызывающий сам решает,
// в какой горутине его крутить
func (w *StatusWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logger.Info("Worker: Фоновая сверка статусов", zap.Time("started_at", time.Now()))
			w.Check(ctx)
		case <-ctx.Done():
			logger.Info("Worker: Фоновая сверка останавливается")
			return
		}
	}
}

func (w *StatusWorker) Check(ctx context.Context) {
	start := time.Now()

	flipped, err := w.service.ReconcileStatuses(ctx)
	if err != nil {
		logger.Warn("Worker: ошибка сверки статусов", zap.Error(err))
		return
	}

	logger.Info(
		"Worker: Завершение сверки статусов",
		zap.Duration("ms", time.Since(start)),
		zap.Int("flipped", flipped),
	)
}
