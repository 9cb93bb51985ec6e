// @title Dicing Disc Catalog API
// @version 1.0
// @description API подбора отрезных дисков для резки полупроводниковых пластин: загрузка каталога из Excel, расшифровка артикулов, расчет показателей и подбор под сценарий резки.

// @contact.name API Support
// @contact.email support@example.com

// @host localhost:9990
// @BasePath /
// @schemes http

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"dicingserver/database"
	"dicingserver/internal/config"
	"dicingserver/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("не удалось загрузить конфигурацию", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg.LogLevel)
	slog.Info("конфигурация загружена", "port", cfg.Port, "database", cfg.DatabasePath)

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		slog.Error("не удалось открыть базу каталогов", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	srv, err := server.NewServer(cfg, db)
	if err != nil {
		slog.Error("не удалось создать сервер", "error", err)
		os.Exit(1)
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			slog.Error("сервер завершился с ошибкой", "error", err)
			os.Exit(1)
		}
	case sig := <-quit:
		slog.Info("получен сигнал остановки", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("ошибка при остановке сервера", "error", err)
			os.Exit(1)
		}
	}
	slog.Info("сервер остановлен")
}

// setupLogger настраивает уровень структурированного логирования
func setupLogger(level string) {
	var lvl slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		lvl = slog.LevelDebug
	case "WARN":
		lvl = slog.LevelWarn
	case "ERROR":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}
