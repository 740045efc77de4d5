package particle

import "math/rand"

// SystemBuilderOption is a functional option for configuring a System.
// Use the With* functions to create options.
type SystemBuilderOption func(s *System)

// WithRand sets the random source used for spawn positions, orientations and
// lifetimes. Useful for deterministic tests.
//
// Parameters:
//   - rng: the random source to use
//
// Returns:
//   - SystemBuilderOption: option function to apply
func WithRand(rng *rand.Rand) SystemBuilderOption {
	return func(s *System) {
		s.rng = rng
	}
}
