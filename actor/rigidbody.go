package actor

import (
	"fmt"
	"math"
	"slices"

	"github.com/akmonengine/rigid/algebra"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

const (
	// LinearSpeedLimit caps the derived linear velocity (units/s)
	LinearSpeedLimit = 50.0
	// AngularSpeedLimit caps the derived angular velocity (rad/s)
	AngularSpeedLimit = 100.0

	// DefaultRestitution is the bounce factor given to new bodies
	DefaultRestitution = 0.5

	quatEpsilon = 1e-12
)

// Material holds the contact response coefficients of a body or plane
type Material struct {
	Restitution float64 // 0= no rebound, 1= perfect restitution
	Friction    float64 // Coulomb coefficient against planes
}

// RigidBody represents a rigid body in the physics simulation.
//
// Momentum and orientation are the source of truth: velocity, angular velocity
// and the world-frame inertia tensors are derived from them whenever they
// change. A body is owned by a single driver and updated in place.
type RigidBody struct {
	id uuid.UUID

	// Shape and mass, fixed at construction
	mass       float64
	dimensions mgl64.Vec3
	shape      ShapeKind
	iBody      mgl64.Mat4
	iBodyInv   mgl64.Mat4

	// State variables
	origin          mgl64.Vec3
	rotation        mgl64.Quat
	linearMomentum  mgl64.Vec3
	angularMomentum mgl64.Vec3

	// Derived quantities
	inertia         mgl64.Mat4
	inertiaInv      mgl64.Mat4
	velocity        mgl64.Vec3
	angularVelocity mgl64.Vec3

	// Per-tick accumulators
	force  mgl64.Vec3
	torque mgl64.Vec3

	// Pending impulse, folded in by ApplyImpulse
	impulsePosition        mgl64.Vec3
	impulseVelocity        mgl64.Vec3
	impulseAngularVelocity mgl64.Vec3

	Material Material
	// Forces acting on this body, evaluated in order
	Forces []Force
}

// NewRigidBody creates a body of the given mass.
// dimensions are the full extents of the shape along each body axis.
func NewRigidBody(mass float64, dimensions mgl64.Vec3, shape ShapeKind, transform Transform, momentum Momentum, forces ...Force) (*RigidBody, error) {
	if !(mass > 0) || math.IsInf(mass, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidMass, mass)
	}
	if err := validateDimensions(dimensions); err != nil {
		return nil, err
	}

	iBody, err := bodyInertia(shape, mass, dimensions)
	if err != nil {
		return nil, err
	}

	rb := &RigidBody{
		id:              uuid.New(),
		mass:            mass,
		dimensions:      dimensions,
		shape:           shape,
		iBody:           iBody,
		iBodyInv:        invertDiagonal(iBody),
		origin:          transform.Position,
		rotation:        transform.unitRotation(),
		linearMomentum:  momentum.Linear,
		angularMomentum: momentum.Angular,
		Material: Material{
			Restitution: DefaultRestitution,
		},
		Forces: forces,
	}
	rb.derive()

	return rb, nil
}

// NewRigidBodyFromDensity creates a body whose mass is derived from its
// density and dimensions.
func NewRigidBodyFromDensity(density float64, dimensions mgl64.Vec3, shape ShapeKind, transform Transform, momentum Momentum, forces ...Force) (*RigidBody, error) {
	if !(density > 0) || math.IsInf(density, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidDensity, density)
	}
	if err := validateDimensions(dimensions); err != nil {
		return nil, err
	}

	return NewRigidBody(DensityMass(density, dimensions), dimensions, shape, transform, momentum, forces...)
}

// DensityMass is the mass used by NewRigidBodyFromDensity: x·z·z·density.
// The Z extent is counted twice; the Y extent does not contribute.
func DensityMass(density float64, dimensions mgl64.Vec3) float64 {
	return dimensions.X() * dimensions.Z() * dimensions.Z() * density
}

func validateDimensions(dimensions mgl64.Vec3) error {
	for _, d := range dimensions {
		if !(d > 0) || math.IsInf(d, 0) {
			return fmt.Errorf("%w: got %v", ErrInvalidDimensions, dimensions)
		}
	}
	return nil
}

// derive recomputes every derived quantity from the canonical state
func (rb *RigidBody) derive() {
	r := algebra.RotationMatrix(rb.rotation)
	rb.inertia = algebra.Conjugate(r, rb.iBody)
	rb.inertiaInv = algebra.Conjugate(r, rb.iBodyInv)

	rb.deriveVelocity()
	rb.deriveAngularVelocity()
}

func (rb *RigidBody) deriveVelocity() {
	rb.velocity = algebra.ClampLength(rb.linearMomentum.Mul(1/rb.mass), LinearSpeedLimit)
}

func (rb *RigidBody) deriveAngularVelocity() {
	rb.angularVelocity = algebra.ClampLength(algebra.MulVec3(rb.inertiaInv, rb.angularMomentum), AngularSpeedLimit)
}

// Increment adds the derivative to the canonical state.
// The orientation is advanced by plain component addition and renormalized.
func (rb *RigidBody) Increment(d Derivative) {
	rb.origin = rb.origin.Add(d.XDot)

	rotation := rb.rotation.Add(d.QDot)
	if rotation.Len() >= quatEpsilon {
		rb.rotation = rotation.Normalize()
	}

	rb.linearMomentum = rb.linearMomentum.Add(d.PDot)
	rb.angularMomentum = rb.angularMomentum.Add(d.LDot)

	rb.derive()
}

// IncrementAndCopy returns a new body carrying the incremented state.
// The copy keeps the identity, shape, material and forces; accumulators and
// pending impulses start empty. rb is left untouched.
func (rb *RigidBody) IncrementAndCopy(d Derivative) *RigidBody {
	next := *rb
	next.Forces = slices.Clone(rb.Forces)
	next.force = mgl64.Vec3{}
	next.torque = mgl64.Vec3{}
	next.impulsePosition = mgl64.Vec3{}
	next.impulseVelocity = mgl64.Vec3{}
	next.impulseAngularVelocity = mgl64.Vec3{}

	next.Increment(d)

	return &next
}

// SetVelocity overrides the velocity and recomputes the linear momentum.
// The velocity is clamped to LinearSpeedLimit first.
func (rb *RigidBody) SetVelocity(velocity mgl64.Vec3) {
	rb.velocity = algebra.ClampLength(velocity, LinearSpeedLimit)
	rb.linearMomentum = rb.velocity.Mul(rb.mass)
}

// SetAngularVelocity overrides the angular velocity and recomputes the
// angular momentum. The angular velocity is clamped to AngularSpeedLimit first.
func (rb *RigidBody) SetAngularVelocity(angularVelocity mgl64.Vec3) {
	rb.angularVelocity = algebra.ClampLength(angularVelocity, AngularSpeedLimit)
	rb.angularMomentum = algebra.MulVec3(rb.inertia, rb.angularVelocity)
}

// SetMomenta overrides both momenta and re-derives the velocities
func (rb *RigidBody) SetMomenta(linear, angular mgl64.Vec3) {
	rb.linearMomentum = linear
	rb.angularMomentum = angular
	rb.deriveVelocity()
	rb.deriveAngularVelocity()
}

func (rb *RigidBody) ResetLinearMomentum() {
	rb.linearMomentum = mgl64.Vec3{}
	rb.deriveVelocity()
}

func (rb *RigidBody) ResetAngularMomentum() {
	rb.angularMomentum = mgl64.Vec3{}
	rb.deriveAngularVelocity()
}

// AddImpulse queues a correction of position, velocity and angular velocity.
// Nothing observable changes until ApplyImpulse.
func (rb *RigidBody) AddImpulse(position, velocity, angularVelocity mgl64.Vec3) {
	rb.impulsePosition = rb.impulsePosition.Add(position)
	rb.impulseVelocity = rb.impulseVelocity.Add(velocity)
	rb.impulseAngularVelocity = rb.impulseAngularVelocity.Add(angularVelocity)
}

// HasPendingImpulse reports whether ApplyImpulse would change anything
func (rb *RigidBody) HasPendingImpulse() bool {
	var zero mgl64.Vec3
	return rb.impulsePosition != zero || rb.impulseVelocity != zero || rb.impulseAngularVelocity != zero
}

// PendingImpulse returns the queued corrections
func (rb *RigidBody) PendingImpulse() (position, velocity, angularVelocity mgl64.Vec3) {
	return rb.impulsePosition, rb.impulseVelocity, rb.impulseAngularVelocity
}

// ApplyImpulse folds the queued corrections into the state and clears them
func (rb *RigidBody) ApplyImpulse() {
	var zero mgl64.Vec3

	rb.origin = rb.origin.Add(rb.impulsePosition)
	if rb.impulseVelocity != zero {
		rb.SetVelocity(rb.velocity.Add(rb.impulseVelocity))
	}
	if rb.impulseAngularVelocity != zero {
		rb.SetAngularVelocity(rb.angularVelocity.Add(rb.impulseAngularVelocity))
	}

	rb.impulsePosition = zero
	rb.impulseVelocity = zero
	rb.impulseAngularVelocity = zero
}

// SetForce overwrites the accumulated force for this tick
func (rb *RigidBody) SetForce(force mgl64.Vec3) {
	rb.force = force
}

// SetTorque overwrites the accumulated torque for this tick
func (rb *RigidBody) SetTorque(torque mgl64.Vec3) {
	rb.torque = torque
}

func (rb *RigidBody) AddForce(force mgl64.Vec3) {
	rb.force = rb.force.Add(force)
}

func (rb *RigidBody) AddTorque(torque mgl64.Vec3) {
	rb.torque = rb.torque.Add(torque)
}

func (rb *RigidBody) ClearForces() {
	rb.force = mgl64.Vec3{0, 0, 0}
	rb.torque = mgl64.Vec3{0, 0, 0}
}

// SupportDistance returns how far the body reaches from its origin along the
// world-space unit direction.
func (rb *RigidBody) SupportDistance(direction mgl64.Vec3) float64 {
	localDirection := rb.rotation.Conjugate().Rotate(direction)
	return supportDistance(rb.shape, rb.dimensions, localDirection)
}

// IsFinite reports whether the canonical state is free of NaN and Inf
func (rb *RigidBody) IsFinite() bool {
	return algebra.IsFiniteVec3(rb.origin) &&
		algebra.IsFiniteQuat(rb.rotation) &&
		algebra.IsFiniteVec3(rb.linearMomentum) &&
		algebra.IsFiniteVec3(rb.angularMomentum)
}

func (rb *RigidBody) ID() uuid.UUID          { return rb.id }
func (rb *RigidBody) Mass() float64          { return rb.mass }
func (rb *RigidBody) Dimensions() mgl64.Vec3 { return rb.dimensions }
func (rb *RigidBody) Shape() ShapeKind       { return rb.shape }

// IBody is the body-frame inertia tensor
func (rb *RigidBody) IBody() mgl64.Mat4 { return rb.iBody }

// IBodyInv is the inverse of the body-frame inertia tensor
func (rb *RigidBody) IBodyInv() mgl64.Mat4 { return rb.iBodyInv }

func (rb *RigidBody) Origin() mgl64.Vec3          { return rb.origin }
func (rb *RigidBody) Rotation() mgl64.Quat        { return rb.rotation }
func (rb *RigidBody) LinearMomentum() mgl64.Vec3  { return rb.linearMomentum }
func (rb *RigidBody) AngularMomentum() mgl64.Vec3 { return rb.angularMomentum }

// InertiaTensor is the world-frame inertia tensor R·IBody·Rᵗ
func (rb *RigidBody) InertiaTensor() mgl64.Mat4 { return rb.inertia }

// InverseInertiaTensor is the world-frame inverse tensor R·IBodyInv·Rᵗ
func (rb *RigidBody) InverseInertiaTensor() mgl64.Mat4 { return rb.inertiaInv }

func (rb *RigidBody) Velocity() mgl64.Vec3        { return rb.velocity }
func (rb *RigidBody) AngularVelocity() mgl64.Vec3 { return rb.angularVelocity }
func (rb *RigidBody) Force() mgl64.Vec3           { return rb.force }
func (rb *RigidBody) Torque() mgl64.Vec3          { return rb.torque }

// Transform returns the current pose
func (rb *RigidBody) Transform() Transform {
	return Transform{Position: rb.origin, Rotation: rb.rotation}
}
