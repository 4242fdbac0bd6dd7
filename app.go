package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nailspa-backend/config"
	"nailspa-backend/controllers"
	"nailspa-backend/routes"
	"nailspa-backend/services"
	"nailspa-backend/store"
	"nailspa-backend/utils"
)

// application is the wired server: router, background jobs and the
// resources to release on shutdown.
type application struct {
	router    *gin.Engine
	scheduler *services.Scheduler
	closers   []func() error
}

// openKV connects the record store selected by STORE_DRIVER.
func openKV(ctx context.Context, cfg config.Config, logger *zap.Logger) (store.KV, func() error, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		return store.NewMemoryKV(), nil, nil
	case config.DriverRedis:
		kv := store.NewRedisKV(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := kv.Ping(ctx); err != nil {
			_ = kv.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return kv, kv.Close, nil
	default:
		db, err := config.ConnectDB(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		kv, err := store.NewGormKV(db)
		if err != nil {
			_ = sqlDB.Close()
			return nil, nil, fmt.Errorf("migrate records: %w", err)
		}
		return kv, sqlDB.Close, nil
	}
}

func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*application, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	kv, closeKV, err := openKV(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	app := &application{}
	if closeKV != nil {
		app.closers = append(app.closers, closeKV)
	}
	if err := app.wire(ctx, cfg, kv, loc, logger); err != nil {
		app.close(logger)
		return nil, err
	}
	return app, nil
}

// wire loads the stores from kv and builds the services, jobs and router.
func (a *application) wire(ctx context.Context, cfg config.Config, kv store.KV, loc *time.Location, logger *zap.Logger) error {
	var err error

	bills := store.NewBillStore(kv, logger)
	catalog := store.NewCatalogStore(kv, logger)
	settings := store.NewSettingsStore(kv, logger)
	bills.Load(ctx)
	catalog.Load(ctx)
	settings.Load(ctx)
	logger.Info("records loaded",
		zap.Int("bills", len(bills.List())),
		zap.Int("services", len(catalog.Services())))

	analytics := services.NewAnalytics(loc)
	billing := services.NewBillingService(catalog, bills, loc, logger)
	backup := services.NewBackupService(kv, bills, catalog, settings, loc, logger)

	passwordHash := ""
	if cfg.AuthEnabled() {
		if passwordHash, err = utils.HashPassword(cfg.OwnerPassword); err != nil {
			return fmt.Errorf("hash owner password: %w", err)
		}
	} else {
		logger.Warn("OWNER_PASSWORD not set, API is open to anyone who can reach it")
	}

	var notifier services.Notifier
	if cfg.SMSEnabled() {
		notifier = services.NewTwilioNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken,
			cfg.TwilioPhoneNumber, cfg.TwilioWhatsApp, logger)
	}
	a.scheduler, err = services.NewScheduler(services.SchedulerConfig{
		BackupDir:       cfg.BackupDir,
		BackupSchedule:  cfg.BackupSchedule,
		SummarySchedule: cfg.SummarySchedule,
		OwnerPhone:      cfg.OwnerPhone,
	}, backup, bills, settings, analytics, notifier, loc, logger)
	if err != nil {
		return err
	}

	a.router = routes.SetupRouter(routes.Deps{
		Origins:   cfg.Origins(),
		JWTSecret: cfg.JWTSecret,
		Log:       logger,
		Auth:      controllers.NewAuthController(passwordHash, cfg.JWTSecret, cfg.TokenTTL(), cfg.IsProduction(), logger),
		Bills:     controllers.NewBillController(billing, analytics, logger),
		Catalog:   controllers.NewCatalogController(services.NewCatalogService(catalog), logger),
		Settings:  controllers.NewSettingsController(settings),
		Reports:   controllers.NewReportController(billing, analytics, loc, logger),
		Backup:    controllers.NewBackupController(backup, logger),
	})
	return nil
}

func (a *application) close(logger *zap.Logger) {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			logger.Error("close error", zap.Error(err))
		}
	}
}
