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
)

func newNotificationFixture() (*fakeSender, *fakeAccountRepo, *observability.Metrics, events.Dispatcher) {
	deptCivil := "dept-civil"
	deptIT := "dept-it"
	sender := &fakeSender{}
	accounts := &fakeAccountRepo{accounts: []domain.Account{
		{ID: "acc-1", Email: "bearer.civil@lnmiit.ac.in", Role: domain.RoleOfficeBearer, DepartmentID: &deptCivil},
		{ID: "acc-2", Email: "bearer.it@lnmiit.ac.in", Role: domain.RoleOfficeBearer, DepartmentID: &deptIT},
		{ID: "acc-3", Email: "authority@lnmiit.ac.in", Role: domain.RoleApprovingAuthority},
		{ID: "acc-4", Email: "admin@lnmiit.ac.in", Role: domain.RoleAdmin},
	}}
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	NewNotificationService(sender, accounts, zap.NewNop(), metrics).RegisterHandlers(dispatcher)
	return sender, accounts, metrics, dispatcher
}

func escalatedEvent(level int) events.Event {
	return events.Event{
		ID:        "evt-1",
		Type:      events.EventGrievanceEscalated,
		TicketID:  domain.FormatTicketID(2026, time.February, 1),
		Timestamp: time.Now(),
		Payload: events.GrievanceEscalatedPayload{
			NewLevel:           level,
			Title:              "Broken street light",
			DepartmentID:       "dept-civil",
			ResolutionDeadline: time.Now().Add(-24 * time.Hour),
		},
	}
}

func TestEscalationMailFollowsHierarchy(t *testing.T) {
	sender, _, _, dispatcher := newNotificationFixture()

	require.NoError(t, dispatcher.Publish(context.Background(), escalatedEvent(1)))
	require.NoError(t, dispatcher.Publish(context.Background(), escalatedEvent(2)))

	require.Len(t, sender.sent, 2)
	assert.Equal(t, []string{"authority@lnmiit.ac.in"}, sender.sent[0].receivers)
	assert.Contains(t, sender.sent[0].subject, "level 1")
	assert.Equal(t, []string{"admin@lnmiit.ac.in"}, sender.sent[1].receivers)
	assert.Contains(t, sender.sent[1].subject, "level 2")
}

func TestRevertMailTargetsOwningDepartmentBearers(t *testing.T) {
	sender, _, _, dispatcher := newNotificationFixture()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:     events.EventGrievanceReverted,
		TicketID: domain.FormatTicketID(2026, time.February, 2),
		Payload: events.GrievanceRevertedPayload{
			NewLevel:     domain.EscalationLevelNone,
			Comment:      "assign to another worker",
			NewDeadline:  time.Now().AddDate(0, 0, 3),
			RevertedBy:   "authority@lnmiit.ac.in",
			DepartmentID: "dept-civil",
			Title:        "Leaking tap",
		},
	})
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"bearer.civil@lnmiit.ac.in"}, sender.sent[0].receivers)
	assert.Contains(t, sender.sent[0].body, "assign to another worker")
}

func TestSendFailureIsSwallowedAndCounted(t *testing.T) {
	sender, _, metrics, dispatcher := newNotificationFixture()
	sender.failWith = errors.New("smtp refused")

	err := dispatcher.Publish(context.Background(), escalatedEvent(1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), metrics.NotifyFailures())
}

func TestNoMailWithoutRecipients(t *testing.T) {
	sender, accounts, _, dispatcher := newNotificationFixture()
	accounts.accounts = nil

	require.NoError(t, dispatcher.Publish(context.Background(), escalatedEvent(1)))
	assert.Empty(t, sender.sent)
}
