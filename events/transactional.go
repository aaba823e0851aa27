package events

import (
	"context"
)

// TransactionalBus stashes events raised during a unit of work and forwards
// them to the real bus only after the database transaction commits. Events
// raised in a rolled-back transaction are discarded.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits the pending events; called after a successful commit. Emission
// uses a background context so handlers outlive the transaction's deadline.
func (b *TransactionalBus) Flush() {
	eventCtx := context.Background()
	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
}

// Discard drops pending events; called after rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
