package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/domain"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/events"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/observability"
	apperrors "github.com/ohhpeejoshi/grievance-management-system-sub000/pkg/util/errorutil"
)

func newSweepFixture(maxLevel int) (*EscalationService, *fakeGrievanceRepo, *recordingDispatcher) {
	grievances := newFakeGrievanceRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewEscalationService(grievances, dispatcher, zap.NewNop(), observability.NewMetrics(), maxLevel)
	return svc, grievances, dispatcher
}

func overdueGrievance(seq, level int) domain.Grievance {
	return domain.Grievance{
		TicketID:           domain.FormatTicketID(2026, time.February, seq),
		Title:              "Broken street light",
		DepartmentID:       "dept-civil",
		Urgency:            domain.UrgencyNormal,
		Status:             domain.GrievanceStatusSubmitted,
		EscalationLevel:    level,
		ResolutionDeadline: time.Now().Add(-24 * time.Hour),
	}
}

func TestSweepEscalatesOverdueTickets(t *testing.T) {
	svc, grievances, dispatcher := newSweepFixture(2)
	overdue := overdueGrievance(1, 0)
	grievances.byTicket[overdue.TicketID] = overdue

	fresh := overdueGrievance(2, 0)
	fresh.ResolutionDeadline = time.Now().Add(24 * time.Hour)
	grievances.byTicket[fresh.TicketID] = fresh

	resolved := overdueGrievance(3, 0)
	resolved.Status = domain.GrievanceStatusResolved
	grievances.byTicket[resolved.TicketID] = resolved

	report, err := svc.RunSweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Scanned)
	assert.Equal(t, 1, report.Escalated)
	assert.Equal(t, 0, report.Skipped)
	assert.Equal(t, 0, report.Failed)

	stored, getErr := grievances.GetByTicketID(context.Background(), overdue.TicketID)
	require.NoError(t, getErr)
	assert.Equal(t, 1, stored.EscalationLevel)

	untouched, getErr := grievances.GetByTicketID(context.Background(), fresh.TicketID)
	require.NoError(t, getErr)
	assert.Equal(t, 0, untouched.EscalationLevel)

	published := dispatcher.byType(events.EventGrievanceEscalated)
	require.Len(t, published, 1)
	payload, ok := published[0].Payload.(events.GrievanceEscalatedPayload)
	require.True(t, ok)
	assert.Equal(t, 1, payload.NewLevel)
	assert.Equal(t, overdue.TicketID, published[0].TicketID)
}

func TestSweepClimbsOneLevelPerRun(t *testing.T) {
	svc, grievances, dispatcher := newSweepFixture(2)
	overdue := overdueGrievance(1, 0)
	grievances.byTicket[overdue.TicketID] = overdue

	for expected := 1; expected <= 2; expected++ {
		report, err := svc.RunSweep(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, report.Escalated)

		stored, getErr := grievances.GetByTicketID(context.Background(), overdue.TicketID)
		require.NoError(t, getErr)
		assert.Equal(t, expected, stored.EscalationLevel)
	}

	assert.Len(t, dispatcher.byType(events.EventGrievanceEscalated), 2)
}

func TestSweepStopsAtCeiling(t *testing.T) {
	svc, grievances, dispatcher := newSweepFixture(2)
	atCeiling := overdueGrievance(1, 2)
	grievances.byTicket[atCeiling.TicketID] = atCeiling

	report, err := svc.RunSweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Scanned)
	assert.Equal(t, 0, report.Escalated)
	assert.Equal(t, 1, report.Skipped)

	stored, getErr := grievances.GetByTicketID(context.Background(), atCeiling.TicketID)
	require.NoError(t, getErr)
	assert.Equal(t, 2, stored.EscalationLevel)
	assert.Empty(t, dispatcher.byType(events.EventGrievanceEscalated))
}

func TestSweepUnboundedWhenCeilingDisabled(t *testing.T) {
	svc, grievances, _ := newSweepFixture(0)
	deep := overdueGrievance(1, 7)
	grievances.byTicket[deep.TicketID] = deep

	report, err := svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Escalated)

	stored, getErr := grievances.GetByTicketID(context.Background(), deep.TicketID)
	require.NoError(t, getErr)
	assert.Equal(t, 8, stored.EscalationLevel)
}

func TestSweepContinuesPastUpdateFailure(t *testing.T) {
	svc, grievances, dispatcher := newSweepFixture(2)
	broken := overdueGrievance(1, 0)
	healthy := overdueGrievance(2, 0)
	grievances.byTicket[broken.TicketID] = broken
	grievances.byTicket[healthy.TicketID] = healthy
	grievances.updateErr[broken.TicketID] = errors.New("connection reset")

	report, err := svc.RunSweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Scanned)
	assert.Equal(t, 1, report.Escalated)
	assert.Equal(t, 1, report.Failed)

	stored, getErr := grievances.GetByTicketID(context.Background(), broken.TicketID)
	require.NoError(t, getErr)
	assert.Equal(t, 0, stored.EscalationLevel)

	published := dispatcher.byType(events.EventGrievanceEscalated)
	require.Len(t, published, 1)
	assert.Equal(t, healthy.TicketID, published[0].TicketID)
}

func TestOverdueEmergencyGrievanceReachesAuthorities(t *testing.T) {
	fixture := newGrievanceFixture()
	input := validCreateInput()
	input.Urgency = domain.UrgencyEmergency

	created, err := fixture.svc.Create(context.Background(), input)
	require.NoError(t, err)

	// Push the deadline into the past so the sweep picks it up.
	stored := fixture.grievances.byTicket[created.TicketID]
	stored.ResolutionDeadline = time.Now().Add(-time.Hour)
	fixture.grievances.byTicket[created.TicketID] = stored

	sender := &fakeSender{}
	accounts := &fakeAccountRepo{accounts: []domain.Account{
		{ID: "acc-1", Email: "authority@lnmiit.ac.in", Role: domain.RoleApprovingAuthority},
	}}
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	NewNotificationService(sender, accounts, zap.NewNop(), metrics).RegisterHandlers(dispatcher)

	sweeper := NewEscalationService(fixture.grievances, dispatcher, zap.NewNop(), metrics, 2)
	report, err := sweeper.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Escalated)

	escalated, getErr := fixture.grievances.GetByTicketID(context.Background(), created.TicketID)
	require.NoError(t, getErr)
	assert.Equal(t, 1, escalated.EscalationLevel)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"authority@lnmiit.ac.in"}, sender.sent[0].receivers)
	assert.Contains(t, sender.sent[0].subject, created.TicketID)
}

func TestSweepAbortsWhenListFails(t *testing.T) {
	svc, grievances, dispatcher := newSweepFixture(2)
	grievances.listErr = errors.New("pool closed")

	report, err := svc.RunSweep(context.Background())
	assert.Nil(t, report)
	assert.True(t, apperrors.IsCode(err, "STORAGE_ERROR"))
	assert.Empty(t, dispatcher.events)
}
