package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/domain"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/domain/workdays"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/events"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/repository"
	apperrors "github.com/ohhpeejoshi/grievance-management-system-sub000/pkg/util/errorutil"
)

// GrievanceService owns the grievance lifecycle: creation, assignment,
// resolution, reverts and transfers. Every mutation reads the current
// persisted state, checks preconditions, commits, and only then
// publishes the notification event.
type GrievanceService struct {
	grievances  repository.GrievanceRepository
	sequences   repository.TicketSequenceRepository
	departments repository.DepartmentRepository
	categories  repository.CategoryRepository
	workers     repository.WorkerRepository
	dispatcher  events.Dispatcher
}

// GrievanceDependencies bundles repositories for the service.
type GrievanceDependencies struct {
	GrievanceRepo  repository.GrievanceRepository
	SequenceRepo   repository.TicketSequenceRepository
	DepartmentRepo repository.DepartmentRepository
	CategoryRepo   repository.CategoryRepository
	WorkerRepo     repository.WorkerRepository
	Dispatcher     events.Dispatcher
}

// GrievanceCreateInput describes a submission payload.
type GrievanceCreateInput struct {
	Title             string
	Description       string
	Location          string
	DepartmentID      string
	CategoryID        string
	Urgency           domain.Urgency
	ComplainantName   string
	ComplainantEmail  string
	ComplainantMobile string
	AttachmentKey     *string
}

// NewGrievanceService constructs the service.
func NewGrievanceService(deps GrievanceDependencies) *GrievanceService {
	return &GrievanceService{
		grievances:  deps.GrievanceRepo,
		sequences:   deps.SequenceRepo,
		departments: deps.DepartmentRepo,
		categories:  deps.CategoryRepo,
		workers:     deps.WorkerRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// Create validates a submission, allocates a ticket ID, computes the
// resolution deadline from urgency, and persists the grievance as
// SUBMITTED at escalation level 0.
func (s *GrievanceService) Create(ctx context.Context, input GrievanceCreateInput) (*domain.Grievance, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("title and description required", nil)
	}
	if strings.TrimSpace(input.ComplainantName) == "" || strings.TrimSpace(input.ComplainantEmail) == "" {
		return nil, apperrors.NewValidationError("complainant name and email required", nil)
	}

	if _, err := s.departments.GetByID(ctx, input.DepartmentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("unknown department", map[string]any{"department_id": input.DepartmentID})
		}
		return nil, apperrors.NewStorageError(err)
	}
	category, err := s.categories.GetByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("unknown category", map[string]any{"category_id": input.CategoryID})
		}
		return nil, apperrors.NewStorageError(err)
	}
	if category.DepartmentID != input.DepartmentID {
		return nil, apperrors.NewValidationError("category does not belong to department", map[string]any{
			"category_id":   input.CategoryID,
			"department_id": input.DepartmentID,
		})
	}

	urgency := input.Urgency
	if !urgency.Valid() {
		urgency = category.DefaultUrgency
	}
	if !urgency.Valid() {
		urgency = domain.UrgencyNormal
	}

	now := time.Now()
	seq, err := s.sequences.Next(ctx, now.Year(), now.Month())
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	grievance := &domain.Grievance{
		TicketID:           domain.FormatTicketID(now.Year(), now.Month(), seq),
		Title:              strings.TrimSpace(input.Title),
		Description:        strings.TrimSpace(input.Description),
		Location:           strings.TrimSpace(input.Location),
		ComplainantName:    strings.TrimSpace(input.ComplainantName),
		ComplainantEmail:   strings.TrimSpace(input.ComplainantEmail),
		ComplainantMobile:  strings.TrimSpace(input.ComplainantMobile),
		AttachmentKey:      input.AttachmentKey,
		DepartmentID:       input.DepartmentID,
		CategoryID:         input.CategoryID,
		Urgency:            urgency,
		Status:             domain.GrievanceStatusSubmitted,
		EscalationLevel:    domain.EscalationLevelNone,
		ResolutionDeadline: workdays.Add(now, urgency.ResolutionDays()),
	}

	if err := s.grievances.Create(ctx, grievance); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventGrievanceCreated,
		TicketID: grievance.TicketID,
		Payload: events.GrievanceCreatedPayload{
			ComplainantName:    grievance.ComplainantName,
			ComplainantEmail:   grievance.ComplainantEmail,
			Title:              grievance.Title,
			DepartmentID:       grievance.DepartmentID,
			Urgency:            grievance.Urgency,
			ResolutionDeadline: grievance.ResolutionDeadline,
		},
	})
	return grievance, nil
}

// Assign hands a SUBMITTED, unescalated grievance to a worker of its
// department and moves it to IN_PROGRESS.
func (s *GrievanceService) Assign(ctx context.Context, ticketID, workerID, officeBearerEmail string) (*domain.Grievance, error) {
	grievance, err := s.getByTicketID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if grievance.Escalated() {
		return nil, apperrors.NewInvalidState("grievance is escalated; revert before assignment", map[string]any{
			"ticket_id":        ticketID,
			"escalation_level": grievance.EscalationLevel,
		})
	}
	if !domain.IsValidTransition(grievance.Status, domain.GrievanceStatusInProgress) {
		return nil, apperrors.NewInvalidState("grievance is not awaiting assignment", map[string]any{
			"ticket_id": ticketID,
			"status":    grievance.Status,
		})
	}

	worker, err := s.workers.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("worker", map[string]any{"worker_id": workerID})
		}
		return nil, apperrors.NewStorageError(err)
	}
	if worker.DepartmentID != grievance.DepartmentID {
		return nil, apperrors.NewValidationError("worker belongs to another department", map[string]any{
			"worker_id":     workerID,
			"department_id": grievance.DepartmentID,
		})
	}

	grievance.AssignedWorkerID = &worker.ID
	grievance.AssignedByEmail = &officeBearerEmail
	grievance.Status = domain.GrievanceStatusInProgress
	if err := s.grievances.Update(ctx, grievance); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventGrievanceAssigned,
		TicketID: grievance.TicketID,
		Payload: events.GrievanceAssignedPayload{
			ComplainantEmail: grievance.ComplainantEmail,
			WorkerName:       worker.Name,
			WorkerEmail:      worker.Email,
			WorkerPhone:      worker.Phone,
			AssignedByEmail:  officeBearerEmail,
			Title:            grievance.Title,
			Location:         grievance.Location,
			AttachmentKey:    grievance.AttachmentKey,
		},
	})
	return grievance, nil
}

// Resolve marks a grievance RESOLVED. Resolving an already resolved
// ticket is an error, not a silent success.
func (s *GrievanceService) Resolve(ctx context.Context, ticketID string) (*domain.Grievance, error) {
	grievance, err := s.getByTicketID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !domain.IsValidTransition(grievance.Status, domain.GrievanceStatusResolved) {
		return nil, apperrors.NewInvalidState("grievance already resolved", map[string]any{"ticket_id": ticketID})
	}

	grievance.Status = domain.GrievanceStatusResolved
	if err := s.grievances.Update(ctx, grievance); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventGrievanceResolved,
		TicketID: grievance.TicketID,
		Payload: events.GrievanceResolvedPayload{
			ComplainantEmail: grievance.ComplainantEmail,
			Title:            grievance.Title,
		},
	})
	return grievance, nil
}

// RevertToOfficeBearer is the approving authority's override: a level 1
// grievance goes back to level 0 with a fresh deadline, and the owning
// department's office bearers are told to re-assign.
func (s *GrievanceService) RevertToOfficeBearer(ctx context.Context, ticketID string, newDeadlineDays int, comment, authorityEmail string) (*domain.Grievance, error) {
	if err := validateRevert(newDeadlineDays, comment); err != nil {
		return nil, err
	}
	grievance, err := s.getByTicketID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if grievance.Status == domain.GrievanceStatusResolved {
		return nil, apperrors.NewInvalidState("grievance already resolved", map[string]any{"ticket_id": ticketID})
	}
	if grievance.EscalationLevel != domain.EscalationLevelAuthority {
		return nil, apperrors.NewInvalidState("grievance is not at approving authority level", map[string]any{
			"ticket_id":        ticketID,
			"escalation_level": grievance.EscalationLevel,
		})
	}

	return s.applyRevert(ctx, grievance, domain.EscalationLevelNone, newDeadlineDays, comment, authorityEmail)
}

// RevertToAuthority is the admin's override: a level >= 2 grievance
// goes back to level 1 with a fresh deadline, and the approving
// authorities are notified with the comment.
func (s *GrievanceService) RevertToAuthority(ctx context.Context, ticketID string, newDeadlineDays int, comment, adminEmail string) (*domain.Grievance, error) {
	if err := validateRevert(newDeadlineDays, comment); err != nil {
		return nil, err
	}
	grievance, err := s.getByTicketID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if grievance.Status == domain.GrievanceStatusResolved {
		return nil, apperrors.NewInvalidState("grievance already resolved", map[string]any{"ticket_id": ticketID})
	}
	if grievance.EscalationLevel < domain.EscalationLevelAdmin {
		return nil, apperrors.NewInvalidState("grievance is not at admin level", map[string]any{
			"ticket_id":        ticketID,
			"escalation_level": grievance.EscalationLevel,
		})
	}

	return s.applyRevert(ctx, grievance, domain.EscalationLevelAuthority, newDeadlineDays, comment, adminEmail)
}

// Transfer moves a grievance to another department. The worker
// assignment is cleared because workers are department-scoped;
// escalation level and deadline stay untouched.
func (s *GrievanceService) Transfer(ctx context.Context, ticketID, newDepartmentID string) (*domain.Grievance, error) {
	if _, err := s.departments.GetByID(ctx, newDepartmentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("unknown target department", map[string]any{"department_id": newDepartmentID})
		}
		return nil, apperrors.NewStorageError(err)
	}
	grievance, err := s.getByTicketID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if grievance.DepartmentID == newDepartmentID {
		return nil, apperrors.NewValidationError("grievance already belongs to department", map[string]any{"department_id": newDepartmentID})
	}

	oldDepartmentID := grievance.DepartmentID
	grievance.DepartmentID = newDepartmentID
	grievance.AssignedWorkerID = nil
	grievance.AssignedByEmail = nil
	if err := s.grievances.Update(ctx, grievance); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventGrievanceTransferred,
		TicketID: grievance.TicketID,
		Payload: events.GrievanceTransferredPayload{
			OldDepartmentID: oldDepartmentID,
			NewDepartmentID: newDepartmentID,
			Title:           grievance.Title,
		},
	})
	return grievance, nil
}

// Get fetches a grievance by its ticket ID.
func (s *GrievanceService) Get(ctx context.Context, ticketID string) (*domain.Grievance, error) {
	return s.getByTicketID(ctx, ticketID)
}

// List returns grievances matching the filter.
func (s *GrievanceService) List(ctx context.Context, filter repository.GrievanceFilter) ([]domain.Grievance, error) {
	result, err := s.grievances.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	return result, nil
}

func (s *GrievanceService) applyRevert(ctx context.Context, grievance *domain.Grievance, newLevel, newDeadlineDays int, comment, revertedBy string) (*domain.Grievance, error) {
	grievance.EscalationLevel = newLevel
	grievance.ResolutionDeadline = time.Now().AddDate(0, 0, newDeadlineDays)
	if err := s.grievances.Update(ctx, grievance); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventGrievanceReverted,
		TicketID: grievance.TicketID,
		Payload: events.GrievanceRevertedPayload{
			NewLevel:     newLevel,
			Comment:      comment,
			NewDeadline:  grievance.ResolutionDeadline,
			RevertedBy:   revertedBy,
			DepartmentID: grievance.DepartmentID,
			Title:        grievance.Title,
		},
	})
	return grievance, nil
}

func (s *GrievanceService) getByTicketID(ctx context.Context, ticketID string) (*domain.Grievance, error) {
	grievance, err := s.grievances.GetByTicketID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("grievance", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.NewStorageError(err)
	}
	return grievance, nil
}

func validateRevert(newDeadlineDays int, comment string) error {
	if strings.TrimSpace(comment) == "" {
		return apperrors.NewValidationError("revert requires a comment", nil)
	}
	if newDeadlineDays <= 0 {
		return apperrors.NewValidationError("revert requires a positive deadline day count", nil)
	}
	return nil
}

func (s *GrievanceService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
