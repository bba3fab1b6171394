package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/fueldepot/internal/calibration"
	"github.com/mamadbah2/fueldepot/internal/config"
	"github.com/mamadbah2/fueldepot/internal/repository/mongodb"
	"github.com/mamadbah2/fueldepot/internal/repository/sheets"
	"github.com/mamadbah2/fueldepot/internal/repository/sqlstore"
	"github.com/mamadbah2/fueldepot/internal/scheduler"
	"github.com/mamadbah2/fueldepot/internal/server/handlers"
	"github.com/mamadbah2/fueldepot/internal/server/router"
	"github.com/mamadbah2/fueldepot/internal/service/depot"
	whatsappsvc "github.com/mamadbah2/fueldepot/internal/service/whatsapp"
	whatsappclient "github.com/mamadbah2/fueldepot/pkg/clients/whatsapp"
	"github.com/mamadbah2/fueldepot/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.NewWithLevel(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	loc, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		baseLogger.Fatal("invalid timezone", zap.String("timezone", cfg.Reporting.Timezone), zap.Error(err))
	}

	registry, err := calibration.Load()
	if err != nil {
		baseLogger.Fatal("failed to load calibration tables", zap.Error(err))
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	var store depot.Store
	switch cfg.Store.Backend {
	case config.BackendSheets:
		sheetsStore, err := sheets.NewDocumentStore(startCtx, cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets store", zap.Error(err))
		}
		store = sheetsStore
	default:
		sqlStore, err := sqlstore.Open(cfg.Store, logger.Named(baseLogger, "repo."+cfg.Store.Backend))
		if err != nil {
			baseLogger.Fatal("failed to init document store", zap.Error(err))
		}
		defer func() {
			if err := sqlStore.Close(); err != nil {
				baseLogger.Error("failed to close document store", zap.Error(err))
			}
		}()
		store = sqlStore
	}

	opts := []depot.Option{depot.WithLocation(loc)}
	if cfg.MongoDB.Enabled {
		mongoRepo, err := mongodb.NewMongoDBRepository(startCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName, logger.Named(baseLogger, "repo.mongodb"))
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		opts = append(opts, depot.WithArchive(mongoRepo))
	} else {
		baseLogger.Warn("mongodb uri missing, daily summaries are not archived")
	}

	depotSvc, err := depot.NewService(startCtx, registry, store, logger.Named(baseLogger, "svc.depot"), opts...)
	if err != nil {
		baseLogger.Fatal("failed to load depot document", zap.Error(err))
	}

	var (
		handlerNotifier   handlers.Notifier
		scheduledNotifier scheduler.Notifier
	)
	if cfg.WhatsApp.Enabled() {
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		messagingSvc := whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, logger.Named(baseLogger, "svc.whatsapp"))
		handlerNotifier = messagingSvc
		scheduledNotifier = messagingSvc
		baseLogger.Info("whatsapp daily summaries enabled")
	} else {
		baseLogger.Warn("whatsapp not configured, daily summaries are not sent")
	}

	depotHandler := handlers.NewDepotHandler(depotSvc, handlerNotifier, logger.Named(baseLogger, "handlers.depot"))
	engine := router.New(depotHandler, logger.Named(baseLogger, "router"))

	sched := scheduler.NewScheduler(cfg.Reporting.CronSchedule, loc, depotSvc, scheduledNotifier, logger.Named(baseLogger, "scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("store", cfg.Store.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
