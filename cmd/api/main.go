package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/lock"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/snapshot"
	"github.com/BruksfildServices01/salon-scheduler/internal/jobs"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

func main() {

	cfg := config.Load()

	if err := logger.Init(cfg.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		logger.Log.Fatal("database", zap.Error(err))
	}
	if err := dbpkg.Seed(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Log.Fatal("seed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	locker := newLocker(ctx, cfg)

	auditDispatcher := audit.NewDispatcher(audit.New(db))

	var notifier booking.Notifier = notify.LogOnly{}
	if cfg.TwilioEnabled() {
		notifier = notify.NewWhatsApp(cfg)
	}
	notifications := notify.NewAsync(notifier, 15*time.Second)

	schedulingRepo := infraRepo.NewSchedulingGormRepository(db)
	catalogRepo := infraRepo.NewCatalogGormRepository(db)

	checkout, err := payment.NewMercadoPago(cfg.MercadoPagoToken, schedulingRepo, catalogRepo)
	if err != nil {
		logger.Log.Fatal("mercadopago", zap.Error(err))
	}

	scheduler := startJobs(cfg, db)

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Locker:   locker,
		Audit:    auditDispatcher,
		Notifier: notifications,
		Checkout: checkout,
		Today:    timezone.ClockIn(cfg.Timezone),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("shutdown", zap.Error(err))
	}

	// Producers first, then the audit queue they write into.
	scheduler.Stop()
	notifications.Wait()
	auditDispatcher.Close()
}

// newLocker prefers Redis so several API instances share slot locks.
func newLocker(ctx context.Context, cfg *config.Config) lock.Locker {
	opts := lock.Options{TTL: cfg.LockTTL, Retries: cfg.LockRetries}

	if cfg.RedisURL == "" {
		logger.Log.Warn("REDIS_URL not set, slot locks are process-local")
		return lock.NewLocalLocker(opts)
	}

	client, err := lock.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Log.Fatal("redis", zap.Error(err))
	}
	return lock.NewRedisLocker(client, opts)
}

func startJobs(cfg *config.Config, db *gorm.DB) *jobs.Scheduler {
	s := jobs.NewScheduler()

	reconcile := booking.NewReconcileConsumptions(infraRepo.NewSchedulingGormRepository(db))
	if err := s.Add(jobs.Job{
		Name: "reconcile_consumptions",
		Spec: cfg.ReconcileCron,
		Run: func(ctx context.Context) error {
			_, err := reconcile.Execute(ctx)
			return err
		},
	}); err != nil {
		logger.Log.Fatal("jobs", zap.Error(err))
	}

	if cfg.S3Enabled() {
		exporter := snapshot.NewExporter(db, snapshot.NewS3Client(cfg), cfg.S3Bucket)
		if err := s.Add(jobs.Job{
			Name:    "store_snapshot",
			Spec:    cfg.BackupCron,
			Timeout: 5 * time.Minute,
			Run: func(ctx context.Context) error {
				_, err := exporter.Run(ctx)
				return err
			},
		}); err != nil {
			logger.Log.Fatal("jobs", zap.Error(err))
		}
	}

	s.Start()
	return s
}
