package events

import (
	"time"

	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventGrievanceCreated     EventType = "grievance_created"
	EventGrievanceAssigned    EventType = "grievance_assigned"
	EventGrievanceResolved    EventType = "grievance_resolved"
	EventGrievanceEscalated   EventType = "grievance_escalated"
	EventGrievanceReverted    EventType = "grievance_reverted"
	EventGrievanceTransferred EventType = "grievance_transferred"
	EventAccountRegistered    EventType = "account_registered"
	EventOTPRequested         EventType = "otp_requested"
)

// Event represents a domain event emitted by services after a durable
// commit. Handlers must treat delivery as best-effort.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// GrievanceCreatedPayload payload.
type GrievanceCreatedPayload struct {
	ComplainantName    string         `json:"complainant_name"`
	ComplainantEmail   string         `json:"complainant_email"`
	Title              string         `json:"title"`
	DepartmentID       string         `json:"department_id"`
	Urgency            domain.Urgency `json:"urgency"`
	ResolutionDeadline time.Time      `json:"resolution_deadline"`
}

// GrievanceAssignedPayload payload.
type GrievanceAssignedPayload struct {
	ComplainantEmail string  `json:"complainant_email"`
	WorkerName       string  `json:"worker_name"`
	WorkerEmail      string  `json:"worker_email"`
	WorkerPhone      string  `json:"worker_phone"`
	AssignedByEmail  string  `json:"assigned_by_email"`
	Title            string  `json:"title"`
	Location         string  `json:"location"`
	AttachmentKey    *string `json:"attachment_key,omitempty"`
}

// GrievanceResolvedPayload payload.
type GrievanceResolvedPayload struct {
	ComplainantEmail string `json:"complainant_email"`
	Title            string `json:"title"`
}

// GrievanceEscalatedPayload payload.
type GrievanceEscalatedPayload struct {
	NewLevel           int       `json:"new_level"`
	Title              string    `json:"title"`
	DepartmentID       string    `json:"department_id"`
	ResolutionDeadline time.Time `json:"resolution_deadline"`
}

// GrievanceRevertedPayload payload.
type GrievanceRevertedPayload struct {
	NewLevel     int       `json:"new_level"`
	Comment      string    `json:"comment"`
	NewDeadline  time.Time `json:"new_deadline"`
	RevertedBy   string    `json:"reverted_by"`
	DepartmentID string    `json:"department_id"`
	Title        string    `json:"title"`
}

// GrievanceTransferredPayload payload.
type GrievanceTransferredPayload struct {
	OldDepartmentID string `json:"old_department_id"`
	NewDepartmentID string `json:"new_department_id"`
	Title           string `json:"title"`
}

// AccountRegisteredPayload payload.
type AccountRegisteredPayload struct {
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Role  domain.AccountRole `json:"role"`
}

// OTPRequestedPayload payload.
type OTPRequestedPayload struct {
	Email string `json:"email"`
	Code  string `json:"code"`
	TTL   string `json:"ttl"`
}
