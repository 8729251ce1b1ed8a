package constraint

import (
	"testing"

	"github.com/akmonengine/rigid/actor"
	"github.com/stretchr/testify/assert"
)

func TestComputeRestitution(t *testing.T) {
	tests := []struct {
		name     string
		matA     actor.Material
		matB     actor.Material
		expected float64
	}{
		{
			name:     "both zero restitution",
			matA:     actor.Material{Restitution: 0.0},
			matB:     actor.Material{Restitution: 0.0},
			expected: 0.0,
		},
		{
			name:     "one zero, one high restitution - returns average",
			matA:     actor.Material{Restitution: 0.0},
			matB:     actor.Material{Restitution: 0.8},
			expected: 0.4,
		},
		{
			name:     "both same restitution",
			matA:     actor.Material{Restitution: 0.5},
			matB:     actor.Material{Restitution: 0.5},
			expected: 0.5,
		},
		{
			name:     "both perfect restitution",
			matA:     actor.Material{Restitution: 1.0},
			matB:     actor.Material{Restitution: 1.0},
			expected: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ComputeRestitution(tt.matA, tt.matB), 1e-12)
		})
	}
}

func TestComputeFriction(t *testing.T) {
	tests := []struct {
		name     string
		matA     actor.Material
		matB     actor.Material
		expected float64
	}{
		{
			name:     "frictionless",
			matA:     actor.Material{},
			matB:     actor.Material{Friction: 0.9},
			expected: 0.0,
		},
		{
			name:     "geometric mean",
			matA:     actor.Material{Friction: 0.25},
			matB:     actor.Material{Friction: 1.0},
			expected: 0.5,
		},
		{
			name:     "identical",
			matA:     actor.Material{Friction: 0.6},
			matB:     actor.Material{Friction: 0.6},
			expected: 0.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ComputeFriction(tt.matA, tt.matB), 1e-12)
		})
	}
}
