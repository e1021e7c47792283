package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/ohhpeejoshi/grievance-management-system-sub000/internal/api/http"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/api/http/handlers"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/auth"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/config"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/events"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/mail"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/observability"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/persistence"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/repository"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/scheduler"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	grievanceRepo := repository.NewGrievanceRepository(pool)
	sequenceRepo := repository.NewTicketSequenceRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	workerRepo := repository.NewWorkerRepository(pool)
	accountRepo := repository.NewAccountRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	sender := mail.NewSender(cfg.Mail, logger)

	notificationService := service.NewNotificationService(sender, accountRepo, logger, metrics)
	notificationService.RegisterHandlers(dispatcher)

	grievanceService := service.NewGrievanceService(service.GrievanceDependencies{
		GrievanceRepo:  grievanceRepo,
		SequenceRepo:   sequenceRepo,
		DepartmentRepo: departmentRepo,
		CategoryRepo:   categoryRepo,
		WorkerRepo:     workerRepo,
		Dispatcher:     dispatcher,
	})
	escalationService := service.NewEscalationService(grievanceRepo, dispatcher, logger, metrics, cfg.Escalation.MaxLevel)

	otpStore := auth.NewOTPStore(redis.Client, cfg.Auth.OTPTTL())
	authService := service.NewAuthService(cfg.Auth, accountRepo, otpStore, dispatcher)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), accountRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Grievances:     handlers.NewGrievancesHandler(grievanceService),
		Escalations:    handlers.NewEscalationsHandler(escalationService, metrics),
		Reference:      handlers.NewReferenceHandler(departmentRepo, categoryRepo, workerRepo),
		AuthMiddleware: authMiddleware,
	})

	if cfg.Escalation.SweepSchedule != "" {
		sweeper := scheduler.New(func(ctx context.Context) error {
			_, err := escalationService.RunSweep(ctx)
			return err
		}, logger)
		if err := sweeper.Register(cfg.Escalation.SweepSchedule); err != nil {
			logger.Fatal("invalid sweep schedule", zap.Error(err))
		}
		go func() {
			_ = sweeper.Start(ctx)
		}()
	}

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)
	cancel()

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
