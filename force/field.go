package force

import (
	"github.com/akmonengine/rigid/actor"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	_ actor.Force   = UniformField{}
	_ actor.Force   = LinearDrag{}
	_ actor.Force   = AngularDrag{}
	_ actor.Torquer = AngularDrag{}
)

// UniformField is a constant acceleration applied to every mass, such as
// surface gravity (0, -9.81, 0).
type UniformField struct {
	Acceleration mgl64.Vec3
}

func (u UniformField) Act(body actor.State, _ []actor.State) mgl64.Vec3 {
	return u.Acceleration.Mul(body.Mass)
}

// LinearDrag opposes the body's velocity: F = -k·v
type LinearDrag struct {
	Coefficient float64
}

func (d LinearDrag) Act(body actor.State, _ []actor.State) mgl64.Vec3 {
	return body.Velocity.Mul(-d.Coefficient)
}

// AngularDrag applies no force and a torque opposing the spin: τ = -k·ω
type AngularDrag struct {
	Coefficient float64
}

func (d AngularDrag) Act(actor.State, []actor.State) mgl64.Vec3 {
	return mgl64.Vec3{}
}

func (d AngularDrag) Torque(body actor.State, _ []actor.State) mgl64.Vec3 {
	return body.AngularVelocity.Mul(-d.Coefficient)
}
