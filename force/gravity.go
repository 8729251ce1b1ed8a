// Package force provides the force sources bodies can be attached to.
//
// Each force is evaluated from body snapshots only and keeps no memory between
// calls, so the same instance can be shared by many bodies.
package force

import (
	"github.com/akmonengine/rigid/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// G is the gravitational constant in N·m²/kg²
	G = 6.6743e-11
	// SofteningThreshold is the squared distance under which a pair is ignored
	SofteningThreshold = 0.01
)

var _ actor.Force = (*Gravity)(nil)

// Gravity is the pairwise Newtonian attraction of every other body
type Gravity struct {
	Constant  float64
	Softening float64
}

// NewGravity returns Newtonian gravity with the physical constant
func NewGravity() *Gravity {
	return &Gravity{
		Constant:  G,
		Softening: SofteningThreshold,
	}
}

// Act sums G·m1·m2/d² along the direction of each other body.
// Pairs closer than the softening threshold contribute nothing.
func (g *Gravity) Act(body actor.State, bodies []actor.State) mgl64.Vec3 {
	var sum mgl64.Vec3

	for _, other := range bodies {
		if other.ID == body.ID {
			continue
		}

		towards := other.Origin.Sub(body.Origin)
		len2 := towards.LenSqr()
		if len2 < g.Softening {
			continue
		}

		f := g.Constant * body.Mass * other.Mass / len2
		sum = sum.Add(towards.Normalize().Mul(f))
	}

	return sum
}
