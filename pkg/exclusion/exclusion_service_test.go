package exclusion

import (
	"context"
	"testing"

	"github.com/centavo/centavo/internal/event_bus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_PublishesExclusionEvents(t *testing.T) {
	// given
	bus := event_bus.NewEventBus()
	var received []event_bus.ExclusionChanged
	event_bus.SubscribeTyped(bus, event_bus.ExclusionChangedEvent,
		func(ctx context.Context, data event_bus.ExclusionChanged) error {
			received = append(received, data)
			return nil
		})
	service := NewService(NewStubExclusionRepo(), bus)

	// when
	require.NoError(t, service.Exclude(context.Background(), "tx-1"))
	require.NoError(t, service.Include(context.Background(), "tx-1"))

	// then
	require.Len(t, received, 2)
	assert.Equal(t, event_bus.ExclusionChanged{TransactionID: "tx-1", Excluded: true}, received[0])
	assert.Equal(t, event_bus.ExclusionChanged{TransactionID: "tx-1", Excluded: false}, received[1])
}
