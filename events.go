package narrowphase

import (
	"github.com/akmonengine/narrowphase/actor"
)

const (
	TRIGGER_ENTER EventType = iota
	COLLISION_ENTER
	TRIGGER_STAY
	COLLISION_STAY
	TRIGGER_EXIT
	COLLISION_EXIT
)

// pairKey identifies a pair of bodies; bodyA comes first in World.Bodies.
type pairKey struct {
	bodyA *actor.RigidBody
	bodyB *actor.RigidBody
}

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Trigger events
type TriggerEnterEvent struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

func (e TriggerEnterEvent) Type() EventType { return TRIGGER_ENTER }

type TriggerStayEvent struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

func (e TriggerStayEvent) Type() EventType { return TRIGGER_STAY }

type TriggerExitEvent struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

func (e TriggerExitEvent) Type() EventType { return TRIGGER_EXIT }

// Collision events
type CollisionEnterEvent struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

func (e CollisionEnterEvent) Type() EventType { return COLLISION_ENTER }

type CollisionStayEvent struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

func (e CollisionStayEvent) Type() EventType { return COLLISION_STAY }

type CollisionExitEvent struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

func (e CollisionExitEvent) Type() EventType { return COLLISION_EXIT }

// EventListener - callback for events
type EventListener func(event Event)

// Events dispatches the contact state changes of pairs. A pair is in contact during a
// step when its generator left at least one contact.
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Pairs in contact, for Enter/Stay/Exit detection. The order of first contact is
	// kept so events are sent in a stable order.
	previousActivePairs []pairKey
	currentActivePairs  []pairKey
	previousSet         map[pairKey]bool
	currentSet          map[pairKey]bool
}

func NewEvents() Events {
	e := Events{}
	e.init()
	return e
}

func (e *Events) init() {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]EventListener)
	}
	if e.previousSet == nil {
		e.previousSet = make(map[pairKey]bool)
		e.currentSet = make(map[pairKey]bool)
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.init()
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordContact marks the pair as in contact for the current step
func (e *Events) recordContact(pair pairKey) {
	if e.currentSet[pair] {
		return
	}
	e.currentSet[pair] = true
	e.currentActivePairs = append(e.currentActivePairs, pair)
}

// forget drops the body from contact tracking without an exit event
func (e *Events) forget(body *actor.RigidBody) {
	kept := e.previousActivePairs[:0]
	for _, pair := range e.previousActivePairs {
		if pair.bodyA == body || pair.bodyB == body {
			delete(e.previousSet, pair)
			continue
		}
		kept = append(kept, pair)
	}
	e.previousActivePairs = kept
}

// processCollisionEvents compares current and previous pairs to detect Enter/Stay/Exit
func (e *Events) processCollisionEvents() {
	for _, pair := range e.currentActivePairs {
		isTrigger := pair.bodyA.IsTrigger || pair.bodyB.IsTrigger

		switch {
		case e.previousSet[pair] && isTrigger:
			e.buffer = append(e.buffer, TriggerStayEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		case e.previousSet[pair]:
			e.buffer = append(e.buffer, CollisionStayEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		case isTrigger:
			e.buffer = append(e.buffer, TriggerEnterEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		default:
			e.buffer = append(e.buffer, CollisionEnterEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	for _, pair := range e.previousActivePairs {
		if e.currentSet[pair] {
			continue
		}
		if pair.bodyA.IsTrigger || pair.bodyB.IsTrigger {
			e.buffer = append(e.buffer, TriggerExitEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		} else {
			e.buffer = append(e.buffer, CollisionExitEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	// Swap for next step and clear current
	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs[:0]
	e.previousSet, e.currentSet = e.currentSet, e.previousSet
	clear(e.currentSet)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.init()
	e.processCollisionEvents()

	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}
	e.buffer = e.buffer[:0]
}
