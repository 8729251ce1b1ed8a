package rigid

import (
	"github.com/akmonengine/rigid/actor"
	"github.com/akmonengine/rigid/constraint"
	"github.com/google/uuid"
)

const (
	CONTACT_ENTER EventType = iota
	CONTACT_STAY
	CONTACT_EXIT
)

type contactKey struct {
	body  uuid.UUID
	plane *constraint.Plane
}

type EventType uint8

func (t EventType) String() string {
	switch t {
	case CONTACT_ENTER:
		return "contact_enter"
	case CONTACT_STAY:
		return "contact_stay"
	case CONTACT_EXIT:
		return "contact_exit"
	default:
		return "unknown"
	}
}

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// ContactEnterEvent is sent on the first step a body touches a plane
type ContactEnterEvent struct {
	Body  *actor.RigidBody
	Plane *constraint.Plane
}

func (e ContactEnterEvent) Type() EventType { return CONTACT_ENTER }

type ContactStayEvent struct {
	Body  *actor.RigidBody
	Plane *constraint.Plane
}

func (e ContactStayEvent) Type() EventType { return CONTACT_STAY }

type ContactExitEvent struct {
	Body  *actor.RigidBody
	Plane *constraint.Plane
}

func (e ContactExitEvent) Type() EventType { return CONTACT_EXIT }

// EventListener - callback for events
type EventListener func(event Event)

// Events dispatches contact transitions to listeners, once per step
type Events struct {
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Contacts of the previous and current step, in detection order
	previous      map[contactKey]*actor.RigidBody
	previousOrder []contactKey
	current       map[contactKey]*actor.RigidBody
	currentOrder  []contactKey
}

func NewEvents() Events {
	return Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 64),
		previous:  make(map[contactKey]*actor.RigidBody),
		current:   make(map[contactKey]*actor.RigidBody),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordContacts is called after each substep. A contact seen in any substep
// counts as active for the whole step.
func (e *Events) recordContacts(contacts []constraint.PlaneContact) {
	for _, c := range contacts {
		key := contactKey{body: c.Body.ID(), plane: c.Plane}
		if _, ok := e.current[key]; ok {
			continue
		}

		e.current[key] = c.Body
		e.currentOrder = append(e.currentOrder, key)
	}
}

// forget drops every tracked contact of a removed body, without an exit event
func (e *Events) forget(id uuid.UUID) {
	for key := range e.previous {
		if key.body == id {
			delete(e.previous, key)
		}
	}
	for key := range e.current {
		if key.body == id {
			delete(e.current, key)
		}
	}
	e.previousOrder = dropBody(e.previousOrder, id)
	e.currentOrder = dropBody(e.currentOrder, id)
}

func dropBody(keys []contactKey, id uuid.UUID) []contactKey {
	n := 0
	for _, key := range keys {
		if key.body != id {
			keys[n] = key
			n++
		}
	}

	return keys[:n]
}

// processContactEvents compares current and previous contacts to detect Enter/Stay/Exit
func (e *Events) processContactEvents() {
	for _, key := range e.currentOrder {
		body := e.current[key]

		if _, ok := e.previous[key]; ok {
			e.buffer = append(e.buffer, ContactStayEvent{Body: body, Plane: key.plane})
		} else {
			e.buffer = append(e.buffer, ContactEnterEvent{Body: body, Plane: key.plane})
		}
	}

	for _, key := range e.previousOrder {
		if _, ok := e.current[key]; !ok {
			e.buffer = append(e.buffer, ContactExitEvent{Body: e.previous[key], Plane: key.plane})
		}
	}

	// Swap for next step and clear current
	e.previous, e.current = e.current, e.previous
	e.previousOrder, e.currentOrder = e.currentOrder, e.previousOrder[:0]
	clear(e.current)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() int {
	e.processContactEvents()

	sent := len(e.buffer)
	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}
	e.buffer = e.buffer[:0]

	return sent
}
