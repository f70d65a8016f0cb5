package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"sahna/cmd/consumers/jobs"
	"sahna/internal/config"
	"sahna/internal/consumers"
	"sahna/internal/logger"
)

func main() {
	// Загружаем конфигурацию
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// Создаем сервис консьюмеров
	service, err := consumers.NewConsumerService(cfg)
	if err != nil {
		log.Fatalf("Failed to create consumer service: %v", err)
	}

	if err := service.Start(); err != nil {
		log.Fatalf("Failed to start consumers: %v", err)
	}

	// Фоновая задача: перевод просроченных билетов в статус EXPIRED
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	expirationJob := jobs.NewTicketExpirationJob(service.Repos().Tickets, service.NATS(), cfg.ExpirationCheckInterval)
	expirationJob.Start(ctx)

	log.Println("Consumers started, waiting for messages...")

	// Ждем сигнал для graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down consumers...")

	expirationJob.Stop()
	service.Stop()

	log.Println("Consumers stopped")
}
