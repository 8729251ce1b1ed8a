package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform represents a pose in 3D space.
// A zero Rotation is read as the identity.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
	}
}

// unitRotation returns the normalized rotation, or the identity for a
// quaternion too short to normalize.
func (t Transform) unitRotation() mgl64.Quat {
	if t.Rotation.Len() < quatEpsilon {
		return mgl64.QuatIdent()
	}
	return t.Rotation.Normalize()
}

// Momentum holds the initial linear and angular momentum of a body
type Momentum struct {
	Linear  mgl64.Vec3
	Angular mgl64.Vec3
}
