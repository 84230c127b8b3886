// Package noise provides the bounded random phase perturbation used by the
// decoder's channel simulation.
package noise

import (
	"math"
	"math/rand"
)

// PhaseJitter draws Gaussian phase kicks of a fixed sigma, clamped to
// [-pi, pi] so a single kick can never wrap the circle.
type PhaseJitter struct {
	sigma float64
	rng   *rand.Rand
}

func New(sigma float64, rng *rand.Rand) *PhaseJitter {
	return &PhaseJitter{sigma: sigma, rng: rng}
}

// Kick returns one phase perturbation in [-pi, pi].
func (j *PhaseJitter) Kick() float64 {
	if j.sigma <= 0 {
		return 0
	}
	k := j.rng.NormFloat64() * j.sigma
	if k > math.Pi {
		return math.Pi
	}
	if k < -math.Pi {
		return -math.Pi
	}
	return k
}
