package actor

import (
	"fmt"
	"math"
	"strings"

	"github.com/akmonengine/rigid/algebra"
	"github.com/go-gl/mathgl/mgl64"
)

// ShapeKind represents the closed set of shapes a rigid body can take
type ShapeKind int

const (
	// ShapeCuboid is a box spanning Dimensions, centered on the origin
	ShapeCuboid ShapeKind = iota
	// ShapeSphere is the ellipsoid inscribed in the Dimensions bounding box
	ShapeSphere
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeCuboid:
		return "cuboid"
	case ShapeSphere:
		return "sphere"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// ParseShapeKind maps a name such as "cuboid" or "SPHERE" to its ShapeKind
func ParseShapeKind(name string) (ShapeKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "cuboid", "box":
		return ShapeCuboid, nil
	case "sphere":
		return ShapeSphere, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownShape, name)
	}
}

// bodyInertia builds the body-frame inertia tensor for the shape.
func bodyInertia(kind ShapeKind, mass float64, dimensions mgl64.Vec3) (mgl64.Mat4, error) {
	switch kind {
	case ShapeCuboid:
		xx := dimensions.X() * dimensions.X()
		yy := dimensions.Y() * dimensions.Y()
		zz := dimensions.Z() * dimensions.Z()

		// the homogeneous slot is pre-divided so that it reads 1 once scaled
		return algebra.Diagonal(yy+zz, xx+zz, xx+yy, 12/mass).Mul(mass / 12.0), nil
	case ShapeSphere:
		a := dimensions.X() / 2
		b := dimensions.Y() / 2
		c := dimensions.Z() / 2

		aa := a * a
		bb := b * b
		cc := c * c

		ia := 0.2 * mass * (bb + cc)
		ib := 0.2 * mass * (aa + cc)
		ic := 0.2 * mass * (aa + bb)

		return algebra.Diagonal(ia, ib, ic, 1), nil
	default:
		return mgl64.Mat4{}, fmt.Errorf("%w: %v", ErrUnknownShape, kind)
	}
}

// invertDiagonal inverts the three rotational entries of a diagonal tensor.
func invertDiagonal(tensor mgl64.Mat4) mgl64.Mat4 {
	return algebra.Diagonal(
		1.0/tensor.At(0, 0),
		1.0/tensor.At(1, 1),
		1.0/tensor.At(2, 2),
		1.0,
	)
}

// supportDistance returns how far the shape reaches along the unit direction,
// given in the body frame.
func supportDistance(kind ShapeKind, dimensions mgl64.Vec3, localDirection mgl64.Vec3) float64 {
	half := dimensions.Mul(0.5)

	switch kind {
	case ShapeSphere:
		// support of an ellipsoid with semi-axes half: |diag(half)·d|
		return mgl64.Vec3{
			half.X() * localDirection.X(),
			half.Y() * localDirection.Y(),
			half.Z() * localDirection.Z(),
		}.Len()
	default:
		return half.X()*math.Abs(localDirection.X()) +
			half.Y()*math.Abs(localDirection.Y()) +
			half.Z()*math.Abs(localDirection.Z())
	}
}
