package constraint

import (
	"errors"
	"fmt"

	"github.com/akmonengine/rigid/actor"
	"github.com/go-gl/mathgl/mgl64"
)

var ErrDegenerateNormal = errors.New("plane normal must have a non-zero length")

const normalEpsilon = 1e-12

// Plane is a static boundary: the half-space behind it is solid.
// Normal is unit length and points out of the solid side.
type Plane struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Material actor.Material
}

// NewPlane creates a plane through point, normalizing normal
func NewPlane(point, normal mgl64.Vec3, material actor.Material) (*Plane, error) {
	if normal.Len() < normalEpsilon {
		return nil, fmt.Errorf("%w: got %v", ErrDegenerateNormal, normal)
	}

	return &Plane{
		Point:    point,
		Normal:   normal.Normalize(),
		Material: material,
	}, nil
}

// SignedDistance returns how far p lies in front of the plane
func (p *Plane) SignedDistance(point mgl64.Vec3) float64 {
	return point.Sub(p.Point).Dot(p.Normal)
}
