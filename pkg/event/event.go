// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Game event types
const (
	SessionStarted      Type = "session_started"
	SessionReset        Type = "session_reset"
	DroneDestroyed      Type = "drone_destroyed"
	CheckpointCollected Type = "checkpoint_collected"
	AsteroidDestroyed   Type = "asteroid_destroyed"
	AircraftDamaged     Type = "aircraft_damaged"
	MissileFired        Type = "missile_fired"
	MissileExpired      Type = "missile_expired"
	GameOver            Type = "game_over"
)

// Cause names what brought about a destruction or damage event
type Cause string

const (
	CauseContact Cause = "contact"
	CauseMissile Cause = "missile"
	CauseCollect Cause = "collect"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler so it can be removed later
type Subscription uint64

type registration struct {
	id      Subscription
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]registration
	nextID   Subscription
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: b.nextID, handler: handler})
	return b.nextID
}

// Unsubscribe removes a previously registered handler
func (b *Bus) Unsubscribe(eventType Type, sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[eventType]
	for i, r := range regs {
		if r.id == sub {
			b.handlers[eventType] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, r := range regs {
		r.handler(event)
	}
}

// Specific event implementations

// EntityEvent reports something that happened to a single entity
type EntityEvent struct {
	BaseEvent
	EntityID uint64
	Cause    Cause
}

// NewEntityEvent creates a new entity event
func NewEntityEvent(eventType Type, source interface{}, entityID uint64, cause Cause) *EntityEvent {
	return &EntityEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		EntityID: entityID,
		Cause:    cause,
	}
}

// DamageEvent is published when the aircraft loses life
type DamageEvent struct {
	BaseEvent
	Amount        int
	LifeRemaining int
	Cause         Cause
}

// NewDamageEvent creates a new damage event
func NewDamageEvent(source interface{}, amount, lifeRemaining int, cause Cause) *DamageEvent {
	return &DamageEvent{
		BaseEvent: BaseEvent{
			EventType: AircraftDamaged,
			Source:    source,
		},
		Amount:        amount,
		LifeRemaining: lifeRemaining,
		Cause:         cause,
	}
}

// MissileEvent covers missile launch and expiry
type MissileEvent struct {
	BaseEvent
	MissileID uint64
	Owner     string
}

// NewMissileEvent creates a new missile event
func NewMissileEvent(eventType Type, source interface{}, missileID uint64, owner string) *MissileEvent {
	return &MissileEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		MissileID: missileID,
		Owner:     owner,
	}
}

// SessionEvent covers session start, reset and game over
type SessionEvent struct {
	BaseEvent
	SessionID string
	Outcome   string
	Tick      uint64
}

// NewSessionEvent creates a new session event
func NewSessionEvent(eventType Type, source interface{}, sessionID, outcome string, tick uint64) *SessionEvent {
	return &SessionEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		SessionID: sessionID,
		Outcome:   outcome,
		Tick:      tick,
	}
}
