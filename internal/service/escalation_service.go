package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/domain"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/events"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/observability"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/repository"
	apperrors "github.com/ohhpeejoshi/grievance-management-system-sub000/pkg/util/errorutil"
)

// EscalationService runs the deadline sweep: every unresolved
// grievance past its resolution deadline is advanced one escalation
// level and the next role up the hierarchy is notified. The sweep does
// not dedupe across runs; a ticket that stays overdue keeps climbing
// until it is resolved, reverted, or hits the configured ceiling.
type EscalationService struct {
	grievances repository.GrievanceRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
	maxLevel   int
}

// SweepReport summarizes one sweep run.
type SweepReport struct {
	Scanned   int       `json:"scanned"`
	Escalated int       `json:"escalated"`
	Skipped   int       `json:"skipped"`
	Failed    int       `json:"failed"`
	RanAt     time.Time `json:"ran_at"`
}

// NewEscalationService constructs the service. maxLevel caps
// escalation_level; 0 disables the ceiling.
func NewEscalationService(grievances repository.GrievanceRepository, dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics, maxLevel int) *EscalationService {
	return &EscalationService{
		grievances: grievances,
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
		maxLevel:   maxLevel,
	}
}

// RunSweep performs one scan-and-escalate pass. A failure to list the
// qualifying grievances aborts the run for the scheduler to retry;
// per-ticket persistence or notification failures are logged and do
// not stop the remaining tickets.
func (s *EscalationService) RunSweep(ctx context.Context) (*SweepReport, error) {
	now := time.Now()
	overdue, err := s.grievances.ListOverdueUnresolved(ctx, now)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	report := &SweepReport{Scanned: len(overdue), RanAt: now}
	for i := range overdue {
		grievance := &overdue[i]
		if s.maxLevel > 0 && grievance.EscalationLevel >= s.maxLevel {
			report.Skipped++
			continue
		}

		grievance.EscalationLevel++
		if err := s.grievances.Update(ctx, grievance); err != nil {
			report.Failed++
			s.logger.Error("escalation update failed",
				zap.String("ticket_id", grievance.TicketID),
				zap.Error(err))
			continue
		}
		report.Escalated++

		s.publishEscalated(ctx, grievance)
	}

	s.metrics.RecordSweep(report.Escalated, report.Failed)
	s.logger.Info("escalation sweep finished",
		zap.Int("scanned", report.Scanned),
		zap.Int("escalated", report.Escalated),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed))
	return report, nil
}

func (s *EscalationService) publishEscalated(ctx context.Context, grievance *domain.Grievance) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventGrievanceEscalated,
		TicketID:  grievance.TicketID,
		Timestamp: time.Now(),
		Payload: events.GrievanceEscalatedPayload{
			NewLevel:           grievance.EscalationLevel,
			Title:              grievance.Title,
			DepartmentID:       grievance.DepartmentID,
			ResolutionDeadline: grievance.ResolutionDeadline,
		},
	})
}
