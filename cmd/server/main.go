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

	"github.com/mamadbah2/poultrydash/internal/config"
	"github.com/mamadbah2/poultrydash/internal/repository/mongodb"
	"github.com/mamadbah2/poultrydash/internal/repository/sheets"
	"github.com/mamadbah2/poultrydash/internal/scheduler"
	"github.com/mamadbah2/poultrydash/internal/server/handlers"
	"github.com/mamadbah2/poultrydash/internal/server/router"
	dashboardsvc "github.com/mamadbah2/poultrydash/internal/service/dashboard"
	forecastsvc "github.com/mamadbah2/poultrydash/internal/service/forecast"
	reportingsvc "github.com/mamadbah2/poultrydash/internal/service/reporting"
	whatsappsvc "github.com/mamadbah2/poultrydash/internal/service/whatsapp"
	forecastclient "github.com/mamadbah2/poultrydash/pkg/clients/forecast"
	whatsappclient "github.com/mamadbah2/poultrydash/pkg/clients/whatsapp"
	"github.com/mamadbah2/poultrydash/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	loc, err := cfg.Reporting.Location()
	if err != nil {
		baseLogger.Fatal("invalid timezone", zap.Error(err))
	}

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	var forecasts dashboardsvc.ForecastSource
	if cfg.Forecast.Remote() {
		forecasts = forecastclient.NewClient(cfg.Forecast)
		baseLogger.Info("using remote forecast backend", zap.String("base_url", cfg.Forecast.BaseURL))
	} else {
		forecasts = forecastsvc.NewLocal(mongoRepo)
		baseLogger.Info("using built-in forecast generator")
	}

	dashboardSvc := dashboardsvc.NewService(mongoRepo, forecasts, loc, cfg.Reporting.HistoryWindow, baseLogger.Named("svc.dashboard"))

	var messagingSvc whatsappsvc.MessagingService
	if cfg.WhatsApp.Enabled() {
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		messagingSvc = whatsappsvc.NewMetaWhatsAppService(whatsClient, baseLogger.Named("svc.whatsapp"))
	} else {
		baseLogger.Warn("whatsapp not configured, daily summaries disabled")
	}

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		repo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sheetsRepo = repo
	}

	reportingSvc := reportingsvc.NewService(sheetsRepo, baseLogger.Named("svc.reporting"))

	sched := scheduler.NewScheduler(*cfg, loc, dashboardSvc, reportingSvc, messagingSvc, baseLogger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	dashboardHandler := handlers.NewDashboardHandler(dashboardSvc, baseLogger.Named("handlers.dashboard"))
	engine := router.New(dashboardHandler, cfg.Server.APIToken, baseLogger.Named("router"))

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
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
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
