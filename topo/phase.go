package topo

import "math"

// Phase is the two-amplitude representation |psi> = alpha|0> + beta|1>
// derived from a state's H7 index. It is recomputed on demand and never
// persisted independently.
type Phase struct {
	Phi   float64
	Alpha float64
	Beta  float64
}

// PhaseForIndex maps an H7 index onto the phase circle: phi = index/7 * 2pi.
func PhaseForIndex(index int) Phase {
	return PhaseAt(float64(index) / 7.0 * 2 * math.Pi)
}

// PhaseAt builds the normalized amplitude pair for an arbitrary phase angle.
func PhaseAt(phi float64) Phase {
	return Phase{Phi: phi, Alpha: math.Cos(phi / 2), Beta: math.Sin(phi / 2)}
}

// Norm is alpha^2+beta^2; 1 within floating tolerance for any Phase built by
// this package.
func (p Phase) Norm() float64 { return p.Alpha*p.Alpha + p.Beta*p.Beta }

// Overlap is the squared inner product with another phase, clamped to [0,1].
func (p Phase) Overlap(q Phase) float64 {
	ov := p.Alpha*q.Alpha + p.Beta*q.Beta
	f := ov * ov
	if f > 1 {
		return 1
	}
	if f < 0 {
		return 0
	}
	return f
}
