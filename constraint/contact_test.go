package constraint

import (
	"math"
	"testing"

	"github.com/akmonengine/rigid/actor"
	"github.com/akmonengine/rigid/algebra"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVec3InDelta(t *testing.T, want, got mgl64.Vec3, delta float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, "component %d: want %v, got %v", i, want, got)
	}
}

func newBall(t *testing.T, origin, momentum mgl64.Vec3) *actor.RigidBody {
	t.Helper()
	rb, err := actor.NewRigidBody(1, mgl64.Vec3{2, 2, 2}, actor.ShapeSphere,
		actor.Transform{Position: origin}, actor.Momentum{Linear: momentum})
	require.NoError(t, err)
	return rb
}

func newPlane(t *testing.T, point, normal mgl64.Vec3) *Plane {
	t.Helper()
	p, err := NewPlane(point, normal, actor.Material{Restitution: 0.5})
	require.NoError(t, err)
	return p
}

func TestNewPlane(t *testing.T) {
	p, err := NewPlane(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 5, 0}, actor.Material{})
	require.NoError(t, err)
	assertVec3InDelta(t, mgl64.Vec3{0, 1, 0}, p.Normal, 1e-15)

	assert.InDelta(t, 2.0, p.SignedDistance(mgl64.Vec3{7, 3, -2}), 1e-12)
	assert.InDelta(t, -1.0, p.SignedDistance(mgl64.Vec3{0, 0, 0}), 1e-12)

	_, err = NewPlane(mgl64.Vec3{}, mgl64.Vec3{}, actor.Material{})
	assert.ErrorIs(t, err, ErrDegenerateNormal)
}

func TestDetect(t *testing.T) {
	floor := newPlane(t, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})

	tests := []struct {
		name            string
		origin          mgl64.Vec3
		wantContact     bool
		wantPenetration float64
	}{
		{name: "crossing", origin: mgl64.Vec3{0, 0.5, 0}, wantContact: true, wantPenetration: 0.5},
		{name: "deep", origin: mgl64.Vec3{3, -2, 1}, wantContact: true, wantPenetration: 3},
		{name: "resting within slop", origin: mgl64.Vec3{0, 1 + ContactSlop/2, 0}, wantContact: true, wantPenetration: -ContactSlop / 2},
		{name: "above", origin: mgl64.Vec3{0, 3, 0}, wantContact: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := newBall(t, tt.origin, mgl64.Vec3{})

			contact, ok := Detect(body, floor)

			require.Equal(t, tt.wantContact, ok)
			if ok {
				assert.InDelta(t, tt.wantPenetration, contact.Penetration, 1e-12)
				assert.Same(t, body, contact.Body)
				assert.Same(t, floor, contact.Plane)
				assert.Equal(t, floor.Normal, contact.Normal)
			}
		})
	}
}

func TestDetect_RotatedCuboid(t *testing.T) {
	floor := newPlane(t, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	body, err := actor.NewRigidBody(1, mgl64.Vec3{2, 2, 2}, actor.ShapeCuboid, actor.Transform{
		Position: mgl64.Vec3{0, 1.2, 0},
		Rotation: algebra.RotationZ(math.Pi / 4),
	}, actor.Momentum{})
	require.NoError(t, err)

	contact, ok := Detect(body, floor)

	// standing on an edge, the cube reaches √2 below its center
	require.True(t, ok)
	assert.InDelta(t, math.Sqrt2-1.2, contact.Penetration, 1e-12)
}

func TestResolve_QueuesUntilApplied(t *testing.T) {
	floor := newPlane(t, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	body := newBall(t, mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{0, -2, 0})

	contact, ok := Detect(body, floor)
	require.True(t, ok)
	contact.Resolve()

	// nothing visible yet
	assertVec3InDelta(t, mgl64.Vec3{0, 0.5, 0}, body.Origin(), 1e-15)
	assertVec3InDelta(t, mgl64.Vec3{0, -2, 0}, body.Velocity(), 1e-15)

	position, velocity, angular := body.PendingImpulse()
	assertVec3InDelta(t, mgl64.Vec3{0, 0.5, 0}, position, 1e-12)
	// -(1+e)·vn with e = 0.5
	assertVec3InDelta(t, mgl64.Vec3{0, 3, 0}, velocity, 1e-12)
	assert.Equal(t, mgl64.Vec3{}, angular)

	body.ApplyImpulse()

	assertVec3InDelta(t, mgl64.Vec3{0, 1, 0}, body.Origin(), 1e-12)
	assertVec3InDelta(t, mgl64.Vec3{0, 1, 0}, body.Velocity(), 1e-12)
}

func TestResolve_SeparatingKeepsVelocity(t *testing.T) {
	floor := newPlane(t, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	body := newBall(t, mgl64.Vec3{0, 0.8, 0}, mgl64.Vec3{1, 2, 0})

	contact, ok := Detect(body, floor)
	require.True(t, ok)
	contact.Resolve()

	position, velocity, _ := body.PendingImpulse()
	assertVec3InDelta(t, mgl64.Vec3{0, 0.2, 0}, position, 1e-12)
	assert.Equal(t, mgl64.Vec3{}, velocity)
}

func TestResolve_RestingContactHasNoCorrection(t *testing.T) {
	floor := newPlane(t, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	body := newBall(t, mgl64.Vec3{0, 1 + ContactSlop/2, 0}, mgl64.Vec3{})

	contact, ok := Detect(body, floor)
	require.True(t, ok)
	contact.Resolve()

	assert.False(t, body.HasPendingImpulse())
}

func TestResolve_Friction(t *testing.T) {
	tests := []struct {
		name          string
		friction      float64
		wantDeltaV    mgl64.Vec3
		wantVelocityX float64
	}{
		// μ = 1, normal impulse 3 ≥ tangential speed 3: sliding stops
		{name: "sticks", friction: 1, wantDeltaV: mgl64.Vec3{-3, 3, 0}, wantVelocityX: 0},
		// μ = 0.25, slide reduced by 0.75
		{name: "slides", friction: 0.25, wantDeltaV: mgl64.Vec3{-0.75, 3, 0}, wantVelocityX: 2.25},
		{name: "frictionless", friction: 0, wantDeltaV: mgl64.Vec3{0, 3, 0}, wantVelocityX: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			floor, err := NewPlane(mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}, actor.Material{Restitution: 0.5, Friction: tt.friction})
			require.NoError(t, err)
			body := newBall(t, mgl64.Vec3{0, 0.9, 0}, mgl64.Vec3{3, -2, 0})
			body.Material.Friction = tt.friction

			contact, ok := Detect(body, floor)
			require.True(t, ok)
			contact.Resolve()

			_, velocity, _ := body.PendingImpulse()
			assertVec3InDelta(t, tt.wantDeltaV, velocity, 1e-12)

			body.ApplyImpulse()
			assert.InDelta(t, tt.wantVelocityX, body.Velocity().X(), 1e-12)
			assert.InDelta(t, 1.0, body.Velocity().Y(), 1e-12)
		})
	}
}

func TestResolveAll_CornerContactsAccumulate(t *testing.T) {
	floor := newPlane(t, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	wall := newPlane(t, mgl64.Vec3{}, mgl64.Vec3{1, 0, 0})
	ceiling := newPlane(t, mgl64.Vec3{0, 10, 0}, mgl64.Vec3{0, -1, 0})
	body := newBall(t, mgl64.Vec3{0.5, 0.5, 0}, mgl64.Vec3{-1, -1, 0})

	contacts := DetectAll([]*actor.RigidBody{body}, []*Plane{floor, wall, ceiling})
	require.Len(t, contacts, 2)
	assert.Same(t, floor, contacts[0].Plane)
	assert.Same(t, wall, contacts[1].Plane)

	ResolveAll(contacts)
	body.ApplyImpulse()

	// each plane pushed out by 0.5 and reflected its own component
	assertVec3InDelta(t, mgl64.Vec3{1, 1, 0}, body.Origin(), 1e-12)
	assertVec3InDelta(t, mgl64.Vec3{0.5, 0.5, 0}, body.Velocity(), 1e-12)
}

func TestDetectAll_Ordering(t *testing.T) {
	floor := newPlane(t, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	a := newBall(t, mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{})
	b := newBall(t, mgl64.Vec3{5, 5, 5}, mgl64.Vec3{})
	c := newBall(t, mgl64.Vec3{4, 0.1, 0}, mgl64.Vec3{})

	contacts := DetectAll([]*actor.RigidBody{a, b, c}, []*Plane{floor})

	require.Len(t, contacts, 2)
	assert.Same(t, a, contacts[0].Body)
	assert.Same(t, c, contacts[1].Body)
}
