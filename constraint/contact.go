package constraint

import (
	"math"

	"github.com/akmonengine/rigid/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// ContactSlop is how far apart a body and a plane may be and still count
	// as touching, so that resting contacts do not flicker.
	ContactSlop = 1e-6

	tangentEpsilon = 1e-9
)

// PlaneContact is a body touching or crossing a plane
type PlaneContact struct {
	Body        *actor.RigidBody
	Plane       *Plane
	Normal      mgl64.Vec3 // points from the plane towards the body
	Penetration float64    // > 0 when the body crosses the plane
}

// Detect tests the body's extent against the plane
func Detect(body *actor.RigidBody, plane *Plane) (PlaneContact, bool) {
	reach := body.SupportDistance(plane.Normal.Mul(-1))
	penetration := reach - plane.SignedDistance(body.Origin())

	if penetration <= -ContactSlop {
		return PlaneContact{}, false
	}

	return PlaneContact{
		Body:        body,
		Plane:       plane,
		Normal:      plane.Normal,
		Penetration: penetration,
	}, true
}

// DetectAll returns every body-plane contact, ordered by body then plane
func DetectAll(bodies []*actor.RigidBody, planes []*Plane) []PlaneContact {
	contacts := make([]PlaneContact, 0)

	for _, body := range bodies {
		for _, plane := range planes {
			if contact, ok := Detect(body, plane); ok {
				contacts = append(contacts, contact)
			}
		}
	}

	return contacts
}

// Resolve queues the correction for this contact on the body.
//
// The body is pushed out along the normal by the penetration depth. If it is
// moving into the plane, the normal velocity is reflected and scaled by the
// combined restitution, and friction removes tangential velocity in proportion
// to the normal impulse. Nothing is visible until the body applies its impulse.
func (c *PlaneContact) Resolve() {
	body := c.Body
	n := c.Normal

	correction := n.Mul(math.Max(c.Penetration, 0))

	var deltaV mgl64.Vec3
	velocity := body.Velocity()
	normalVel := velocity.Dot(n)

	if normalVel < 0 {
		restitution := ComputeRestitution(body.Material, c.Plane.Material)
		lambdaNormal := -(1 + restitution) * normalVel
		deltaV = n.Mul(lambdaNormal)

		// ========== TANGENTIAL (friction) ==========
		friction := ComputeFriction(body.Material, c.Plane.Material)
		tangentVel := velocity.Sub(n.Mul(normalVel))
		tangentSpeed := tangentVel.Len()

		if friction > 0 && tangentSpeed > tangentEpsilon {
			// Coulomb: |Δv_t| ≤ μ·|Δv_n|, never reversing the slide
			slip := math.Min(friction*lambdaNormal, tangentSpeed)
			deltaV = deltaV.Sub(tangentVel.Mul(slip / tangentSpeed))
		}
	}

	body.AddImpulse(correction, deltaV, mgl64.Vec3{})
}

// ResolveAll queues the correction of every contact
func ResolveAll(contacts []PlaneContact) {
	for i := range contacts {
		contacts[i].Resolve()
	}
}
