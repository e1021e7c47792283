package domain

import (
	"fmt"
	"time"
)

// GrievanceStatus enumerates lifecycle states for grievances.
type GrievanceStatus string

const (
	GrievanceStatusSubmitted  GrievanceStatus = "SUBMITTED"
	GrievanceStatusInProgress GrievanceStatus = "IN_PROGRESS"
	GrievanceStatusResolved   GrievanceStatus = "RESOLVED"
)

// Urgency enumerates how quickly a grievance must be resolved.
type Urgency string

const (
	UrgencyNormal    Urgency = "NORMAL"
	UrgencyHigh      Urgency = "HIGH"
	UrgencyEmergency Urgency = "EMERGENCY"
)

// Escalation levels: 0 sits with the office bearer, 1 with the
// approving authority, 2 and above with the admin.
const (
	EscalationLevelNone      = 0
	EscalationLevelAuthority = 1
	EscalationLevelAdmin     = 2
)

// TicketIDPrefix is the institution tag leading every ticket ID.
const TicketIDPrefix = "lnm"

// Grievance is the aggregate for submitted complaints.
type Grievance struct {
	ID                 string
	TicketID           string
	Title              string
	Description        string
	Location           string
	ComplainantName    string
	ComplainantEmail   string
	ComplainantMobile  string
	AttachmentKey      *string
	DepartmentID       string
	CategoryID         string
	Urgency            Urgency
	Status             GrievanceStatus
	EscalationLevel    int
	ResolutionDeadline time.Time
	AssignedWorkerID   *string
	AssignedByEmail    *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Escalated reports whether the grievance left the office bearer's desk.
func (g *Grievance) Escalated() bool {
	return g.EscalationLevel > EscalationLevelNone
}

// ResolutionDays maps urgency to the number of working days granted
// for resolution.
func (u Urgency) ResolutionDays() int {
	switch u {
	case UrgencyEmergency:
		return 1
	case UrgencyHigh:
		return 3
	default:
		return 5
	}
}

// Valid reports whether the urgency is one of the known values.
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyNormal, UrgencyHigh, UrgencyEmergency:
		return true
	}
	return false
}

var allowedTransitions = map[GrievanceStatus][]GrievanceStatus{
	GrievanceStatusSubmitted:  {GrievanceStatusInProgress, GrievanceStatusResolved},
	GrievanceStatusInProgress: {GrievanceStatusResolved},
	GrievanceStatusResolved:   {},
}

// IsValidTransition reports whether the status may move from current to next.
func IsValidTransition(current, next GrievanceStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// FormatTicketID composes the human-readable ticket identifier from
// the creation year, month and the monthly sequence number.
func FormatTicketID(year int, month time.Month, seq int) string {
	return fmt.Sprintf("%s/%04d/%02d/%04d", TicketIDPrefix, year, int(month), seq)
}
