package rigid

import (
	"github.com/akmonengine/rigid/actor"
	"github.com/akmonengine/rigid/constraint"
)

// Advance moves every body forward by dt, in place.
//
// Impulses queued since the last tick are folded in first, so that forces see
// the corrected state. Forces are evaluated against a snapshot taken before any
// body moves, so the result does not depend on the order of bodies. Plane
// contacts found after the move are resolved through the impulse accumulators
// and applied before returning; the contacts are returned for event tracking.
func Advance(bodies []*actor.RigidBody, planes []*constraint.Plane, dt float64) []constraint.PlaneContact {
	applyImpulses(bodies)

	// Phase 1: force accumulation, against a read-only view of every body
	states := snapshot(bodies)
	for _, body := range bodies {
		body.Accumulate(states)
	}

	// Phase 2: derivative and state advance
	for _, body := range bodies {
		body.Increment(body.Derive(dt))
	}

	// Phase 3: plane contacts, queued as impulses
	contacts := constraint.DetectAll(bodies, planes)
	constraint.ResolveAll(contacts)

	// Phase 4: impulses applied atomically, once every contact is queued
	applyImpulses(bodies)

	return contacts
}

func snapshot(bodies []*actor.RigidBody) []actor.State {
	states := make([]actor.State, len(bodies))
	for i, body := range bodies {
		states[i] = body.State()
	}

	return states
}

func applyImpulses(bodies []*actor.RigidBody) {
	for _, body := range bodies {
		if body.HasPendingImpulse() {
			body.ApplyImpulse()
		}
	}
}
