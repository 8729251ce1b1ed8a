// Package rigid advances rigid bodies under forces and resolves their contacts
// against static planes.
//
// A World owns one mutable body per identifier. Bodies are updated in place on
// every Step; the driver reads them back through their accessors.
package rigid

import (
	"errors"
	"fmt"

	"github.com/akmonengine/rigid/actor"
	"github.com/akmonengine/rigid/config"
	"github.com/akmonengine/rigid/constraint"
	"github.com/akmonengine/rigid/force"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrBodyNotFound  = errors.New("body not found")
	ErrDuplicateBody = errors.New("body already in world")
)

type World struct {
	// Static boundaries, tested against every body on each substep
	Planes []*constraint.Plane
	// Config.Substeps sets how many substeps each Step is split into
	Config config.Config

	Events Events
	Logger *zap.Logger

	bodies map[uuid.UUID]*actor.RigidBody
	// insertion order, used for force evaluation, contacts and checksums
	order []*actor.RigidBody
	tick  uint64
}

// NewWorld creates an empty world. A nil logger discards everything.
func NewWorld(cfg config.Config, logger *zap.Logger) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("world config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &World{
		Config: cfg,
		Events: NewEvents(),
		Logger: logger,
		bodies: make(map[uuid.UUID]*actor.RigidBody),
	}, nil
}

// AddBody adds a rigid body to the world
func (w *World) AddBody(body *actor.RigidBody) error {
	if _, ok := w.bodies[body.ID()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateBody, body.ID())
	}

	w.bodies[body.ID()] = body
	w.order = append(w.order, body)

	return nil
}

// RemoveBody removes a rigid body from the world, reporting whether it was there.
// Its contacts are forgotten without exit events.
func (w *World) RemoveBody(id uuid.UUID) bool {
	body, ok := w.bodies[id]
	if !ok {
		return false
	}

	delete(w.bodies, id)
	for i, b := range w.order {
		if b == body {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	w.Events.forget(id)

	return true
}

func (w *World) Body(id uuid.UUID) (*actor.RigidBody, bool) {
	body, ok := w.bodies[id]
	return body, ok
}

// Bodies returns the bodies in insertion order
func (w *World) Bodies() []*actor.RigidBody {
	bodies := make([]*actor.RigidBody, len(w.order))
	copy(bodies, w.order)

	return bodies
}

// States returns a snapshot of every body, in insertion order
func (w *World) States() []actor.State {
	return snapshot(w.order)
}

// Tick is the number of steps taken so far
func (w *World) Tick() uint64 {
	return w.tick
}

// AddPlane adds a static plane carrying the configured contact material
func (w *World) AddPlane(point, normal mgl64.Vec3) (*constraint.Plane, error) {
	plane, err := constraint.NewPlane(point, normal, actor.Material{
		Restitution: w.Config.Contact.Restitution,
		Friction:    w.Config.Contact.Friction,
	})
	if err != nil {
		return nil, err
	}

	w.Planes = append(w.Planes, plane)

	return plane, nil
}

// NewGravity returns n-body gravity using the configured constant and softening
func (w *World) NewGravity() *force.Gravity {
	return &force.Gravity{
		Constant:  w.Config.Gravity.Constant,
		Softening: w.Config.Gravity.Softening,
	}
}

// AddImpulse queues a correction on the body; it lands at the start of the
// next Step, or on ApplyImpulses.
func (w *World) AddImpulse(id uuid.UUID, position, velocity, angularVelocity mgl64.Vec3) error {
	body, ok := w.bodies[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrBodyNotFound, id)
	}

	body.AddImpulse(position, velocity, angularVelocity)

	return nil
}

// ApplyImpulses folds every pending impulse into its body
func (w *World) ApplyImpulses() {
	applyImpulses(w.order)
}

// Step advances the world by dt seconds, split into Config.Substeps equal substeps.
// Contact events are dispatched once, after the last substep.
func (w *World) Step(dt float64) {
	if !(dt > 0) {
		w.Logger.Warn("ignoring non-positive timestep", zap.Float64("dt", dt))
		return
	}

	substeps := max(1, w.Config.Substeps)
	h := dt / float64(substeps)

	contacts := 0
	for range substeps {
		found := Advance(w.order, w.Planes, h)
		w.Events.recordContacts(found)
		contacts += len(found)
	}

	w.tick++
	w.checkFinite()
	events := w.Events.flush()

	w.Logger.Debug("step",
		zap.Uint64("tick", w.tick),
		zap.Float64("dt", dt),
		zap.Int("substeps", substeps),
		zap.Int("bodies", len(w.order)),
		zap.Int("contacts", contacts),
		zap.Int("events", events),
	)
}

// checkFinite reports bodies whose state degenerated; stepping goes on
func (w *World) checkFinite() {
	for _, body := range w.order {
		if !body.IsFinite() {
			w.Logger.Warn("non-finite body state",
				zap.Uint64("tick", w.tick),
				zap.Stringer("body", body.ID()),
				zap.Stringer("shape", body.Shape()),
			)
		}
	}
}
