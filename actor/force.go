package actor

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// State is a read-only snapshot of a body, handed to forces during evaluation
type State struct {
	ID         uuid.UUID
	Shape      ShapeKind
	Mass       float64
	Dimensions mgl64.Vec3

	Origin          mgl64.Vec3
	Rotation        mgl64.Quat
	LinearMomentum  mgl64.Vec3
	AngularMomentum mgl64.Vec3

	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3
}

// Force is a source of force acting at a body's center of mass.
//
// Act returns the world-frame force contributed to body, evaluated from the
// snapshots alone. bodies holds every body of the simulation (body included)
// in a fixed order.
type Force interface {
	Act(body State, bodies []State) mgl64.Vec3
}

// Torquer is implemented by forces that also apply a torque
type Torquer interface {
	Torque(body State, bodies []State) mgl64.Vec3
}

// State returns a snapshot of the body
func (rb *RigidBody) State() State {
	return State{
		ID:              rb.id,
		Shape:           rb.shape,
		Mass:            rb.mass,
		Dimensions:      rb.dimensions,
		Origin:          rb.origin,
		Rotation:        rb.rotation,
		LinearMomentum:  rb.linearMomentum,
		AngularMomentum: rb.angularMomentum,
		Velocity:        rb.velocity,
		AngularVelocity: rb.angularVelocity,
	}
}

// Accumulate evaluates every force attached to the body and adds the result
// to the force and torque accumulators.
func (rb *RigidBody) Accumulate(bodies []State) {
	self := rb.State()

	for _, f := range rb.Forces {
		rb.force = rb.force.Add(f.Act(self, bodies))

		if t, ok := f.(Torquer); ok {
			rb.torque = rb.torque.Add(t.Torque(self, bodies))
		}
	}
}
