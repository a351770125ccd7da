package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	dbadapter "taskpulse/internal/adapter/db"
	httpadapter "taskpulse/internal/adapter/http"
	"taskpulse/internal/adapter/http/handlers"
	httpmiddleware "taskpulse/internal/adapter/http/middleware"
	"taskpulse/internal/adapter/memstore"
	"taskpulse/internal/adapter/notify"
	appservice "taskpulse/internal/app/service"
	"taskpulse/internal/config"
	"taskpulse/internal/core/ports"
	"taskpulse/pkg/translator"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  "pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	cfg := config.LoadConfig()

	var store ports.TaskStore
	var db *sqlx.DB
	switch cfg.StoreBackend {
	case config.StoreBackendMySQL:
		db, err = dbadapter.ConnectDB(cfg)
		if err != nil {
			logger.Fatal("failed to connect to mysql", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Warn("failed to close mysql connection", zap.Error(err))
			}
		}()
		store = dbadapter.NewTaskStore(db)
	default:
		store = memstore.New()
	}

	taskService := appservice.NewTaskService(store)

	sink := notify.NewLogSink(logger)
	scheduler, err := appservice.NewReminderScheduler(store, sink, logger,
		appservice.WithPollInterval(cfg.ReminderPoll),
		appservice.WithQueueSize(cfg.NotificationBuffer),
	)
	if err != nil {
		logger.Fatal("failed to build reminder scheduler", zap.Error(err))
	}
	if err := scheduler.Start(); err != nil {
		logger.Fatal("failed to start reminder scheduler", zap.Error(err))
	}
	defer scheduler.Stop()

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	if cfg.TrustedProxies != nil {
		if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			logger.Fatal("invalid trusted proxies", zap.Error(err))
		}
	}

	healthHandler := handlers.NewHealthHandler(db, cfg.StoreBackend)
	taskHandler := handlers.NewTaskHandler(taskService)
	httpadapter.RegisterRoutes(r, healthHandler, taskHandler)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	server := &http.Server{Addr: ":" + port, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown failed", zap.Error(err))
	}
}
