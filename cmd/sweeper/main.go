// Command sweeper runs one escalation sweep and exits. It exists for
// external time-based invokers (cron, systemd timers) that prefer a
// one-shot process over the in-server schedule.
package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/config"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/events"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/mail"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/observability"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/persistence"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/repository"
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

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	pool := pg.PoolHandle()
	grievanceRepo := repository.NewGrievanceRepository(pool)
	accountRepo := repository.NewAccountRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	sender := mail.NewSender(cfg.Mail, logger)

	notificationService := service.NewNotificationService(sender, accountRepo, logger, metrics)
	notificationService.RegisterHandlers(dispatcher)

	escalationService := service.NewEscalationService(grievanceRepo, dispatcher, logger, metrics, cfg.Escalation.MaxLevel)

	report, err := escalationService.RunSweep(ctx)
	if err != nil {
		logger.Error("sweep aborted", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("sweep complete",
		zap.Int("scanned", report.Scanned),
		zap.Int("escalated", report.Escalated),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed))
}
