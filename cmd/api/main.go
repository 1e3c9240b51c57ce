package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"challengeTracker/internal/app"
	"challengeTracker/internal/config"
	"challengeTracker/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("конфигурация: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg)
	if err := application.Init(ctx); err != nil {
		log.Fatalf("инициализация приложения: %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- application.Run(ctx)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Получен сигнал остановки")
	case err := <-errCh:
		if err != nil {
			logger.Error("Сервер завершился с ошибкой", err)
		}
	}

	application.Shutdown(context.Background())
	os.Exit(0)
}
