// Package topo defines the ternary topological state model: H7-conserving
// state indices, ternary weights, decay families and their fixed isotope
// signatures.
package topo

import "fmt"

// Weight is the fundamental ternary unit carried by every encoded character.
type Weight int8

const (
	WeightNegative Weight = -1
	WeightNeutral  Weight = 0
	WeightPositive Weight = 1
)

func (w Weight) Valid() bool { return w >= WeightNegative && w <= WeightPositive }

// DecayType tags the radioactive signature family of a state. It is in fixed
// bijection with Weight and is never constructed independently of one.
type DecayType uint8

const (
	Beta  DecayType = iota // weight -1
	Gamma                  // weight 0
	Alpha                  // weight +1
)

func (d DecayType) String() string {
	switch d {
	case Beta:
		return "BETA"
	case Gamma:
		return "GAMMA"
	case Alpha:
		return "ALPHA"
	default:
		return fmt.Sprintf("DecayType(%d)", uint8(d))
	}
}

// DecayForWeight returns the decay family of a ternary weight.
func DecayForWeight(w Weight) (DecayType, error) {
	switch w {
	case WeightNegative:
		return Beta, nil
	case WeightNeutral:
		return Gamma, nil
	case WeightPositive:
		return Alpha, nil
	default:
		return 0, fmt.Errorf("topo: weight %d outside {-1,0,+1}", w)
	}
}

// Weight returns the ternary weight of a decay family, inverting
// DecayForWeight.
func (d DecayType) Weight() Weight {
	switch d {
	case Beta:
		return WeightNegative
	case Alpha:
		return WeightPositive
	default:
		return WeightNeutral
	}
}

// State is one topological state. Index and Pair obey H7 conservation:
// Index+Pair == 7 for every constructible state. Immutable once built.
type State struct {
	Index  int
	Pair   int
	Weight Weight
}

// InvariantError reports a state that breaks H7 conservation. It indicates a
// corrupted or hand-crafted state, not a recoverable condition.
type InvariantError struct {
	Index int
	Pair  int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("topo: H7 conservation violated: index=%d pair=%d", e.Index, e.Pair)
}

// NewState derives the H7-conserving state for an index in [0,6].
func NewState(index int, w Weight) (State, error) {
	if index < 0 || index > 6 || !w.Valid() {
		return State{}, &InvariantError{Index: index, Pair: 7 - index}
	}
	return State{Index: index, Pair: 7 - index, Weight: w}, nil
}

// Validate re-checks H7 conservation after a transform.
func (s State) Validate() error {
	if s.Index < 0 || s.Index > 6 || s.Index+s.Pair != 7 || !s.Weight.Valid() {
		return &InvariantError{Index: s.Index, Pair: s.Pair}
	}
	return nil
}
