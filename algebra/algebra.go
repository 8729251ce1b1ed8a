// Package algebra holds the vector, quaternion and matrix helpers the dynamics
// layer needs on top of mgl64.
//
// All values are mgl64 value types, so every function here is pure: inputs are
// copied and a new value is returned. Normalizing a zero-length vector or
// quaternion is left to the caller to guard against.
package algebra

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ClampLength caps the magnitude of v to limit while preserving its direction.
func ClampLength(v mgl64.Vec3, limit float64) mgl64.Vec3 {
	length := v.Len()
	if length <= limit {
		return v
	}

	return v.Mul(limit / length)
}

// PureQuat returns the quaternion (0, v).
func PureQuat(v mgl64.Vec3) mgl64.Quat {
	return mgl64.Quat{W: 0, V: v}
}

// RotationX returns the rotation of angle radians around the X axis.
func RotationX(angle float64) mgl64.Quat {
	return mgl64.Quat{W: math.Cos(angle / 2), V: mgl64.Vec3{math.Sin(angle / 2), 0, 0}}
}

// RotationY returns the rotation of angle radians around the Y axis.
func RotationY(angle float64) mgl64.Quat {
	return mgl64.Quat{W: math.Cos(angle / 2), V: mgl64.Vec3{0, math.Sin(angle / 2), 0}}
}

// RotationZ returns the rotation of angle radians around the Z axis.
func RotationZ(angle float64) mgl64.Quat {
	return mgl64.Quat{W: math.Cos(angle / 2), V: mgl64.Vec3{0, 0, math.Sin(angle / 2)}}
}

// RotationMatrix normalizes q and converts it to a rotation matrix.
//
// The 3x3 block is built from the ten pairwise products of the quaternion
// components, offset by 1/2 on the diagonal, and the whole matrix is scaled by
// two. The bottom-right slot starts at 1/2, so it ends up holding 1.
func RotationMatrix(q mgl64.Quat) mgl64.Mat4 {
	q = q.Normalize()
	w, x, y, z := q.W, q.V.X(), q.V.Y(), q.V.Z()

	q00 := w * w
	q01 := w * x
	q02 := w * y
	q03 := w * z

	q11 := x * x
	q12 := x * y
	q13 := x * z

	q22 := y * y
	q23 := y * z

	q33 := z * z

	return mgl64.Mat4FromRows(
		mgl64.Vec4{q00 + q11 - 0.5, q12 - q03, q02 + q13, 0},
		mgl64.Vec4{q03 + q12, q00 + q22 - 0.5, q23 - q01, 0},
		mgl64.Vec4{q13 - q02, q01 + q23, q00 + q33 - 0.5, 0},
		mgl64.Vec4{0, 0, 0, 0.5},
	).Mul(2)
}

// Diagonal returns the 4x4 matrix with a, b, c, d on its diagonal.
func Diagonal(a, b, c, d float64) mgl64.Mat4 {
	return mgl64.Diag4(mgl64.Vec4{a, b, c, d})
}

// MulVec3 applies the upper 3x3 block of m to v.
func MulVec3(m mgl64.Mat4, v mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(v.Vec4(0)).Vec3()
}

// Conjugate returns R·m·Rᵗ, moving a body-frame tensor into the frame of R.
func Conjugate(r, m mgl64.Mat4) mgl64.Mat4 {
	return r.Mul4(m).Mul4(r.Transpose())
}

// IsFiniteVec3 reports whether no component of v is NaN or infinite.
func IsFiniteVec3(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// IsFiniteQuat reports whether no component of q is NaN or infinite.
func IsFiniteQuat(q mgl64.Quat) bool {
	return IsFiniteVec3(q.V) && !math.IsNaN(q.W) && !math.IsInf(q.W, 0)
}
