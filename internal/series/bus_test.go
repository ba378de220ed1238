package series

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	var order []string
	bus.Subscribe(func(Snapshot) { order = append(order, "first") })
	bus.Subscribe(func(Snapshot) { order = append(order, "second") })
	bus.Subscribe(func(Snapshot) { order = append(order, "third") })

	bus.Publish(Snapshot{})
	require.Equal(t, []string{"first", "second", "third"}, order)
}

func TestBusLateSubscriberMissesPastSnapshots(t *testing.T) {
	bus := NewBus()
	bus.Publish(Snapshot{MaxY: 1})

	var got []int64
	bus.Subscribe(func(s Snapshot) { got = append(got, s.MaxY) })
	require.Empty(t, got)

	bus.Publish(Snapshot{MaxY: 2})
	require.Equal(t, []int64{2}, got)
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()
	calls := 0
	sub := bus.Subscribe(func(Snapshot) { calls++ })
	require.NotEqual(t, uuid.Nil, sub.ID)
	require.Equal(t, 1, bus.Len())

	require.True(t, bus.Unsubscribe(sub.ID))
	require.False(t, bus.Unsubscribe(sub.ID))
	bus.Publish(Snapshot{})
	require.Zero(t, calls)
	require.Zero(t, bus.Len())
}

func TestBusSubscriberMayUnsubscribeItself(t *testing.T) {
	bus := NewBus()
	calls := 0
	var sub Subscription
	sub = bus.Subscribe(func(Snapshot) {
		calls++
		bus.Unsubscribe(sub.ID)
	})
	bus.Publish(Snapshot{})
	bus.Publish(Snapshot{})
	require.Equal(t, 1, calls)
}

func TestBusIgnoresNilCallbackAndNilBus(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(nil)
	require.Equal(t, uuid.Nil, sub.ID)
	require.Zero(t, bus.Len())

	var nilBus *Bus
	require.NotPanics(t, func() {
		nilBus.Publish(Snapshot{})
		nilBus.Subscribe(func(Snapshot) {})
	})
	require.Zero(t, nilBus.Len())
}

func TestBusGivesEachSubscriberItsOwnCopy(t *testing.T) {
	bus := NewBus()
	var second Snapshot
	bus.Subscribe(func(s Snapshot) { s.Data[0][0].Y = 999 })
	bus.Subscribe(func(s Snapshot) { second = s })

	bus.Publish(Snapshot{Data: []Series{layer("A", 1)}})
	require.Equal(t, int64(1), second.Data[0][0].Y)
}
