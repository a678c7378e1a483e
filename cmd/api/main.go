package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"taskboard/internal/app"
	"taskboard/internal/config"
	"taskboard/internal/logger"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yml", "путь к файлу конфигурации сервера")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "конфигурация:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg).Init(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "инициализация:", err)
		os.Exit(1)
	}
	defer a.Shutdown()

	if err := a.Run(ctx); err != nil {
		logger.Error("Сервер остановлен с ошибкой", err)
		a.Shutdown()
		os.Exit(1)
	}
	logger.Info("Сервер остановлен")
}
