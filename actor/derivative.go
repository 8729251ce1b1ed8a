package actor

import (
	"github.com/akmonengine/rigid/algebra"
	"github.com/go-gl/mathgl/mgl64"
)

// Derivative is the change of a body's canonical state over one timestep
type Derivative struct {
	XDot mgl64.Vec3 // position
	QDot mgl64.Quat // orientation
	PDot mgl64.Vec3 // linear momentum
	LDot mgl64.Vec3 // angular momentum
}

// Derive computes the state change over dt from the current velocities and
// the accumulated force and torque, then clears the accumulators.
func (rb *RigidBody) Derive(dt float64) Derivative {
	// Q̇ = ½·(0, ω)·q
	spin := algebra.PureQuat(rb.angularVelocity).Mul(rb.rotation).Scale(0.5)

	d := Derivative{
		XDot: rb.velocity.Mul(dt),
		QDot: spin.Scale(dt),
		PDot: rb.force.Mul(dt),
		LDot: rb.torque.Mul(dt),
	}

	rb.ClearForces()

	return d
}
