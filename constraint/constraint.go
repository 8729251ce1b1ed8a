package constraint

import (
	"math"

	"github.com/akmonengine/rigid/actor"
)

// ComputeRestitution combines the bounce factors of the two materials
func ComputeRestitution(matA, matB actor.Material) float64 {
	// Average (more realistic)
	return (matA.Restitution + matB.Restitution) / 2.0

	// Maximum (if one bounces, it bounces)
	//return math.Max(matA.Restitution, matB.Restitution)
}

// ComputeFriction combines the friction coefficients of the two materials
func ComputeFriction(matA, matB actor.Material) float64 {
	// geometric mean, standard in physics engines
	return math.Sqrt(matA.Friction * matB.Friction)
}
