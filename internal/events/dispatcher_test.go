package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var received []Event
	dispatcher.Subscribe(EventGrievanceCreated, func(_ context.Context, event Event) error {
		received = append(received, event)
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{ID: "evt-1", Type: EventGrievanceCreated, TicketID: "lnm/2026/03/0001"})
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "lnm/2026/03/0001", received[0].TicketID)
}

func TestDispatcherIgnoresOtherEventTypes(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	calls := 0
	dispatcher.Subscribe(EventGrievanceResolved, func(context.Context, Event) error {
		calls++
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventGrievanceCreated}))
	assert.Zero(t, calls)
}

func TestDispatcherHandlerErrorDoesNotStopOthers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	dispatcher.Subscribe(EventGrievanceEscalated, func(context.Context, Event) error {
		return errors.New("mailer down")
	})
	reached := false
	dispatcher.Subscribe(EventGrievanceEscalated, func(context.Context, Event) error {
		reached = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventGrievanceEscalated})
	assert.NoError(t, err)
	assert.True(t, reached)
}
