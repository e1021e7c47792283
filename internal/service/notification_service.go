package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/domain"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/events"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/mail"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/observability"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/repository"
)

// NotificationService turns domain events into outbound mail. Every
// send is best-effort: failures are logged and counted, never surfaced
// to the operation that committed the state change.
type NotificationService struct {
	sender   mail.Sender
	accounts repository.AccountRepository
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// NewNotificationService creates the service.
func NewNotificationService(sender mail.Sender, accounts repository.AccountRepository, logger *zap.Logger, metrics *observability.Metrics) *NotificationService {
	return &NotificationService{
		sender:   sender,
		accounts: accounts,
		logger:   logger,
		metrics:  metrics,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventGrievanceCreated, n.handleCreated)
	dispatcher.Subscribe(events.EventGrievanceAssigned, n.handleAssigned)
	dispatcher.Subscribe(events.EventGrievanceResolved, n.handleResolved)
	dispatcher.Subscribe(events.EventGrievanceEscalated, n.handleEscalated)
	dispatcher.Subscribe(events.EventGrievanceReverted, n.handleReverted)
	dispatcher.Subscribe(events.EventGrievanceTransferred, n.handleTransferred)
	dispatcher.Subscribe(events.EventAccountRegistered, n.handleAccountRegistered)
	dispatcher.Subscribe(events.EventOTPRequested, n.handleOTPRequested)
}

func (n *NotificationService) handleCreated(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.GrievanceCreatedPayload)
	if !ok {
		return nil
	}
	subject := fmt.Sprintf("Grievance registered: %s", event.TicketID)
	body := fmt.Sprintf(
		"<p>Dear %s,</p><p>Your grievance <b>%s</b> has been registered with ticket ID <b>%s</b>.</p><p>Expected resolution by %s.</p>",
		payload.ComplainantName, payload.Title, event.TicketID,
		payload.ResolutionDeadline.Format("02 Jan 2006"))
	n.send(event, []string{payload.ComplainantEmail}, subject, body)
	return nil
}

func (n *NotificationService) handleAssigned(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.GrievanceAssignedPayload)
	if !ok {
		return nil
	}
	n.send(event, []string{payload.ComplainantEmail},
		fmt.Sprintf("Action taken on %s", event.TicketID),
		fmt.Sprintf("<p>Your grievance <b>%s</b> is now in progress. %s (%s) has been assigned to it.</p>",
			event.TicketID, payload.WorkerName, payload.WorkerPhone))
	n.send(event, []string{payload.WorkerEmail},
		fmt.Sprintf("Work order %s", event.TicketID),
		workOrderBody(event.TicketID, payload))
	return nil
}

func (n *NotificationService) handleResolved(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.GrievanceResolvedPayload)
	if !ok {
		return nil
	}
	n.send(event, []string{payload.ComplainantEmail},
		fmt.Sprintf("Grievance resolved: %s", event.TicketID),
		fmt.Sprintf("<p>Your grievance <b>%s</b> (%s) has been resolved.</p>", event.TicketID, payload.Title))
	return nil
}

func (n *NotificationService) handleEscalated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.GrievanceEscalatedPayload)
	if !ok {
		return nil
	}
	role := domain.RoleForLevel(payload.NewLevel)
	receivers, err := n.accounts.ListEmailsByRole(ctx, role)
	if err != nil {
		n.recordFailure(event, err)
		return nil
	}
	subject := fmt.Sprintf("Grievance escalated to level %d: %s", payload.NewLevel, event.TicketID)
	body := fmt.Sprintf(
		"<p>Grievance <b>%s</b> (%s) missed its resolution deadline of %s and has been escalated to level %d.</p>",
		event.TicketID, payload.Title,
		payload.ResolutionDeadline.Format("02 Jan 2006"), payload.NewLevel)
	n.send(event, receivers, subject, body)
	return nil
}

func (n *NotificationService) handleReverted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.GrievanceRevertedPayload)
	if !ok {
		return nil
	}
	var receivers []string
	var err error
	if payload.NewLevel == domain.EscalationLevelNone {
		receivers, err = n.accounts.ListEmailsByRoleAndDepartment(ctx, domain.RoleOfficeBearer, payload.DepartmentID)
	} else {
		receivers, err = n.accounts.ListEmailsByRole(ctx, domain.RoleApprovingAuthority)
	}
	if err != nil {
		n.recordFailure(event, err)
		return nil
	}
	subject := fmt.Sprintf("Grievance reverted: %s", event.TicketID)
	body := fmt.Sprintf(
		"<p>Grievance <b>%s</b> (%s) has been sent back by %s with a new deadline of %s.</p><p>Comment: %s</p>",
		event.TicketID, payload.Title, payload.RevertedBy,
		payload.NewDeadline.Format("02 Jan 2006"), payload.Comment)
	n.send(event, receivers, subject, body)
	return nil
}

func (n *NotificationService) handleTransferred(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.GrievanceTransferredPayload)
	if !ok {
		return nil
	}
	receivers, err := n.accounts.ListEmailsByRoleAndDepartment(ctx, domain.RoleOfficeBearer, payload.NewDepartmentID)
	if err != nil {
		n.recordFailure(event, err)
		return nil
	}
	n.send(event, receivers,
		fmt.Sprintf("Grievance transferred to your department: %s", event.TicketID),
		fmt.Sprintf("<p>Grievance <b>%s</b> (%s) has been transferred to your department and needs assignment.</p>",
			event.TicketID, payload.Title))
	return nil
}

func (n *NotificationService) handleAccountRegistered(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AccountRegisteredPayload)
	if !ok {
		return nil
	}
	n.send(event, []string{payload.Email},
		"Welcome to the grievance portal",
		fmt.Sprintf("<p>Dear %s,</p><p>Your %s account has been created.</p>", payload.Name, payload.Role))
	return nil
}

func (n *NotificationService) handleOTPRequested(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.OTPRequestedPayload)
	if !ok {
		return nil
	}
	n.send(event, []string{payload.Email},
		"Your one-time login code",
		fmt.Sprintf("<p>Your code is <b>%s</b>. It expires in %s.</p>", payload.Code, payload.TTL))
	return nil
}

func (n *NotificationService) send(event events.Event, receivers []string, subject, body string) {
	if len(receivers) == 0 {
		return
	}
	if err := n.sender.Send(receivers, subject, body); err != nil {
		n.recordFailure(event, err)
	}
}

func (n *NotificationService) recordFailure(event events.Event, err error) {
	n.metrics.RecordNotifyFailure()
	n.logger.Warn("notification dropped",
		zap.String("event_type", string(event.Type)),
		zap.String("ticket_id", event.TicketID),
		zap.Error(err))
}

// workOrderBody renders the summary document mailed to an assigned
// worker.
func workOrderBody(ticketID string, payload events.GrievanceAssignedPayload) string {
	attachment := "none"
	if payload.AttachmentKey != nil {
		attachment = *payload.AttachmentKey
	}
	return fmt.Sprintf(
		"<h3>Work order %s</h3><p><b>Issue:</b> %s</p><p><b>Location:</b> %s</p><p><b>Attachment:</b> %s</p><p>Assigned by %s.</p>",
		ticketID, payload.Title, payload.Location, attachment, payload.AssignedByEmail)
}
