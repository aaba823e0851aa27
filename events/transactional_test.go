package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionalBus_FlushDelivers(t *testing.T) {
	bus := NewBus()
	delivered := make(chan Event, 2)
	bus.Subscribe(EventTypeRoundSettled, func(ctx context.Context, e Event) {
		delivered <- e
	})

	txBus := NewTransactionalBus(bus)
	txBus.Publish(RoundSettledEvent{RoundID: "a"})
	txBus.Publish(RoundSettledEvent{RoundID: "b"})

	// Nothing moves until flush
	select {
	case e := <-delivered:
		t.Fatalf("event delivered before flush: %v", e)
	case <-time.After(50 * time.Millisecond):
	}

	txBus.Flush()

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case e := <-delivered:
			settled, ok := e.(RoundSettledEvent)
			require.True(t, ok)
			seen[settled.RoundID] = true
		case <-time.After(2 * time.Second):
			t.Fatal("event not delivered after flush")
		}
	}
	assert.True(t, seen["a"])
	assert.True(t, seen["b"])
}

func TestTransactionalBus_DiscardDrops(t *testing.T) {
	bus := NewBus()
	delivered := make(chan Event, 1)
	bus.Subscribe(EventTypeRoundSettled, func(ctx context.Context, e Event) {
		delivered <- e
	})

	txBus := NewTransactionalBus(bus)
	txBus.Publish(RoundSettledEvent{RoundID: "dropped"})
	txBus.Discard()

	// A later flush must not resurrect discarded events
	txBus.Flush()

	select {
	case e := <-delivered:
		t.Fatalf("event delivered after discard: %v", e)
	case <-time.After(100 * time.Millisecond):
	}
}
