package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/akmonengine/rigid"
	"github.com/akmonengine/rigid/actor"
	"github.com/akmonengine/rigid/config"
	"github.com/akmonengine/rigid/force"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// SetupScene creates a floor, a tumbling cube falling onto it, and two
// spheres pulling on each other far above.
func SetupScene(world *rigid.World) (*actor.RigidBody, error) {
	if _, err := world.AddPlane(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0}); err != nil {
		return nil, err
	}

	cube, err := actor.NewRigidBodyFromDensity(
		1.0,
		mgl64.Vec3{3, 3, 3},
		actor.ShapeCuboid,
		actor.Transform{
			Position: mgl64.Vec3{-5, 5, -5},
			Rotation: mgl64.QuatRotate(mgl64.DegToRad(70), mgl64.Vec3{0, 0, 1}),
		},
		actor.Momentum{Angular: mgl64.Vec3{0, 20, 0}},
		force.UniformField{Acceleration: mgl64.Vec3{0, -9.81, 0}},
		force.AngularDrag{Coefficient: 0.5},
	)
	if err != nil {
		return nil, err
	}
	cube.Material.Restitution = 0.8
	if err := world.AddBody(cube); err != nil {
		return nil, err
	}

	gravity := world.NewGravity()
	for _, x := range []float64{-2, 2} {
		sphere, err := actor.NewRigidBody(
			1e9,
			mgl64.Vec3{1, 1, 1},
			actor.ShapeSphere,
			actor.Transform{Position: mgl64.Vec3{x, 50, 0}},
			actor.Momentum{},
			gravity,
		)
		if err != nil {
			return nil, err
		}
		if err := world.AddBody(sphere); err != nil {
			return nil, err
		}
	}

	return cube, nil
}

func run(configPath string, steps int) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.LoadFile(configPath); err != nil {
			return err
		}
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	world, err := rigid.NewWorld(cfg, logger)
	if err != nil {
		return err
	}

	cube, err := SetupScene(world)
	if err != nil {
		return fmt.Errorf("setup scene: %w", err)
	}

	world.Events.Subscribe(rigid.CONTACT_ENTER, func(event rigid.Event) {
		e := event.(rigid.ContactEnterEvent)
		velocity := e.Body.Velocity()
		logger.Info("contact enter",
			zap.Uint64("tick", world.Tick()),
			zap.Stringer("body", e.Body.ID()),
			zap.Float64s("velocity", velocity[:]),
		)
	})
	world.Events.Subscribe(rigid.CONTACT_EXIT, func(event rigid.Event) {
		e := event.(rigid.ContactExitEvent)
		logger.Info("contact exit", zap.Uint64("tick", world.Tick()), zap.Stringer("body", e.Body.ID()))
	})

	const dt float64 = 1.0 / 60.0

	for range steps {
		world.Step(dt)
	}

	fmt.Printf("after %d steps:\n", world.Tick())
	for _, state := range world.States() {
		fmt.Printf("  %s %-7s origin=%v velocity=%v spin=%.3f\n",
			state.ID, state.Shape, state.Origin, state.Velocity, state.AngularVelocity.Len())
	}
	fmt.Printf("cube rotation: %v\n", cube.Rotation())
	fmt.Printf("checksum: %016x\n", world.Checksum())

	return nil
}

func main() {
	configPath := flag.String("config", "", "path to a YAML world configuration")
	steps := flag.Int("steps", 200, "number of 1/60 s steps to simulate")
	flag.Parse()

	if err := run(*configPath, *steps); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
