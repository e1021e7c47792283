package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTicketID(t *testing.T) {
	assert.Equal(t, "lnm/2026/03/0001", FormatTicketID(2026, time.March, 1))
	assert.Equal(t, "lnm/2026/11/0042", FormatTicketID(2026, time.November, 42))
	assert.Equal(t, "lnm/2027/01/1234", FormatTicketID(2027, time.January, 1234))
}

func TestResolutionDays(t *testing.T) {
	assert.Equal(t, 1, UrgencyEmergency.ResolutionDays())
	assert.Equal(t, 3, UrgencyHigh.ResolutionDays())
	assert.Equal(t, 5, UrgencyNormal.ResolutionDays())
	assert.Equal(t, 5, Urgency("").ResolutionDays())
}

func TestUrgencyValid(t *testing.T) {
	assert.True(t, UrgencyNormal.Valid())
	assert.True(t, UrgencyHigh.Valid())
	assert.True(t, UrgencyEmergency.Valid())
	assert.False(t, Urgency("").Valid())
	assert.False(t, Urgency("CRITICAL").Valid())
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, IsValidTransition(GrievanceStatusSubmitted, GrievanceStatusInProgress))
	assert.True(t, IsValidTransition(GrievanceStatusSubmitted, GrievanceStatusResolved))
	assert.True(t, IsValidTransition(GrievanceStatusInProgress, GrievanceStatusResolved))

	assert.False(t, IsValidTransition(GrievanceStatusResolved, GrievanceStatusSubmitted))
	assert.False(t, IsValidTransition(GrievanceStatusResolved, GrievanceStatusInProgress))
	assert.False(t, IsValidTransition(GrievanceStatusResolved, GrievanceStatusResolved))
	assert.False(t, IsValidTransition(GrievanceStatusInProgress, GrievanceStatusSubmitted))
}

func TestEscalated(t *testing.T) {
	g := Grievance{EscalationLevel: EscalationLevelNone}
	assert.False(t, g.Escalated())
	g.EscalationLevel = EscalationLevelAuthority
	assert.True(t, g.Escalated())
}

func TestRoleForLevel(t *testing.T) {
	assert.Equal(t, RoleOfficeBearer, RoleForLevel(0))
	assert.Equal(t, RoleApprovingAuthority, RoleForLevel(1))
	assert.Equal(t, RoleAdmin, RoleForLevel(2))
	assert.Equal(t, RoleAdmin, RoleForLevel(5))
}
