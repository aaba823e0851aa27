package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"pitboss/models"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeRoundSettled    EventType = "round_settled"
	EventTypeAccountCreated  EventType = "account_created"
	EventTypePaymentCredited EventType = "payment_credited"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// RoundSettledEvent fires after a wager round commits
type RoundSettledEvent struct {
	RoundID    string
	AccountID  int64
	Game       string
	Kind       models.OutcomeKind
	BetAmount  int64
	WinAmount  int64
	NewBalance int64
}

func (e RoundSettledEvent) Type() EventType {
	return EventTypeRoundSettled
}

// AccountCreatedEvent fires when an account is auto-provisioned
type AccountCreatedEvent struct {
	AccountID       int64
	AccountNumber   string
	StartingBalance int64
}

func (e AccountCreatedEvent) Type() EventType {
	return EventTypeAccountCreated
}

// PaymentCreditedEvent fires after a purchase credit commits
type PaymentCreditedEvent struct {
	AccountID         int64
	ConfirmationToken string
	Amount            int64
	NewBalance        int64
}

func (e PaymentCreditedEvent) Type() EventType {
	return EventTypePaymentCredited
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Handlers run asynchronously; settlement never waits on them. Any
	// presentation feedback hangs off these events rather than gating
	// balance correctness.
	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}
