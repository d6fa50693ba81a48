package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignatzorin/kerjaku-backend/internal/cms"
	"github.com/ignatzorin/kerjaku-backend/internal/config"
	"github.com/ignatzorin/kerjaku-backend/internal/goroutine"
	httpHandlers "github.com/ignatzorin/kerjaku-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/kerjaku-backend/internal/http/router"
	"github.com/ignatzorin/kerjaku-backend/internal/logger"
	"github.com/ignatzorin/kerjaku-backend/internal/service"
	"github.com/ignatzorin/kerjaku-backend/internal/session"
	"github.com/ignatzorin/kerjaku-backend/internal/storage"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}

	// Хранилище ключ-значение для коллекций и сессий.
	opened, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("main: ошибка открытия хранилища: %v", err)
	}
	defer safeClose(opened.Close)

	mediaStorage, err := storage.NewMediaStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	registry := cms.NewRegistry(opened.KV)
	sessions := session.NewManager(opened.KV)
	tokenManager := service.NewTokenManager(cfg.ContextSecret, cfg.AdminSecret, cfg.AdminTokenTTL)

	// Сервисы.
	authService := service.NewAuthService(registry)
	marketService := service.NewMarketplaceService(registry)
	adminService := service.NewAdminService(registry, tokenManager, cfg.AdminPasswordHash)
	if cfg.AdminPasswordHash == "" {
		logger.Warn("main: ADMIN_PASSWORD_HASH не задан, вход в админку отключён", nil)
	}

	// HTTP хэндлеры.
	handlers := httpRouter.Handlers{
		Auth:      httpHandlers.NewAuthHandler(authService),
		Workers:   httpHandlers.NewWorkerHandler(marketService),
		Jobs:      httpHandlers.NewJobHandler(marketService),
		Content:   httpHandlers.NewContentHandler(marketService),
		Dashboard: httpHandlers.NewDashboardHandler(marketService),
		Portfolio: httpHandlers.NewPortfolioHandler(marketService, mediaStorage),
		Admin:     httpHandlers.NewAdminHandler(adminService, sessions),
		Health:    httpHandlers.NewHealthHandler(cfg.StorageDriver, opened.Ping),
	}

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, handlers, tokenManager, sessions, adminService)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	goroutine.SafeGo("shutdown", func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	})

	log.Printf("main: HTTP сервер запущен на порту %s (хранилище %s)", cfg.HTTPPort, cfg.StorageDriver)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose освобождает хранилище.
func safeClose(closeFn func() error) {
	if err := closeFn(); err != nil {
		log.Printf("main: ошибка закрытия хранилища: %v", err)
	}
}
