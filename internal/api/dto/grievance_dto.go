package dto

import (
	"time"

	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/domain"
)

// CreateGrievanceRequest is the submission payload.
type CreateGrievanceRequest struct {
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	Location          string  `json:"location"`
	DepartmentID      string  `json:"department_id"`
	CategoryID        string  `json:"category_id"`
	Urgency           string  `json:"urgency"`
	ComplainantName   string  `json:"complainant_name"`
	ComplainantEmail  string  `json:"complainant_email"`
	ComplainantMobile string  `json:"complainant_mobile"`
	AttachmentKey     *string `json:"attachment_key,omitempty"`
}

// AssignGrievanceRequest assigns a worker.
type AssignGrievanceRequest struct {
	WorkerID string `json:"worker_id"`
}

// RevertGrievanceRequest carries the mandatory override context.
type RevertGrievanceRequest struct {
	NewDeadlineDays int    `json:"new_deadline_days"`
	Comment         string `json:"comment"`
}

// TransferGrievanceRequest moves a grievance between departments.
type TransferGrievanceRequest struct {
	NewDepartmentID string `json:"new_department_id"`
}

// GrievanceResponse is the API shape of a grievance.
type GrievanceResponse struct {
	TicketID           string                 `json:"ticket_id"`
	Title              string                 `json:"title"`
	Description        string                 `json:"description"`
	Location           string                 `json:"location"`
	ComplainantName    string                 `json:"complainant_name"`
	ComplainantEmail   string                 `json:"complainant_email"`
	DepartmentID       string                 `json:"department_id"`
	CategoryID         string                 `json:"category_id"`
	Urgency            domain.Urgency         `json:"urgency"`
	Status             domain.GrievanceStatus `json:"status"`
	EscalationLevel    int                    `json:"escalation_level"`
	ResolutionDeadline time.Time              `json:"resolution_deadline"`
	AssignedWorkerID   *string                `json:"assigned_worker_id,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

// CreateDepartmentRequest registers a department.
type CreateDepartmentRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateCategoryRequest registers a category under a department.
type CreateCategoryRequest struct {
	DepartmentID   string `json:"department_id"`
	Name           string `json:"name"`
	DefaultUrgency string `json:"default_urgency"`
}

// CreateWorkerRequest registers a department worker.
type CreateWorkerRequest struct {
	DepartmentID string `json:"department_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
}
