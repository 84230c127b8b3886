// Package codec implements the ternary topological message codec: character
// mapping, packet encoding and noise-resilient decoding with a fidelity
// report.
package codec

import (
	"github.com/jakobmina/smopsys-sv/internal/wire"
	"github.com/jakobmina/smopsys-sv/topo"
)

// The three ternary weights occupy the H7 indices {1, 3, 5}: reference
// phases spaced 4pi/7 apart, the widest uniform separation available, which
// gives the decoder's nearest-weight decision a 2pi/7 guard band.
var weightIndex = map[topo.Weight]int{
	topo.WeightNegative: 1,
	topo.WeightNeutral:  3,
	topo.WeightPositive: 5,
}

// IndexForWeight exposes the fixed weight-to-index injection the decoder
// inverts.
func IndexForWeight(w topo.Weight) (int, bool) {
	idx, ok := weightIndex[w]
	return idx, ok
}

// EncodedChar is the full derived record for one input character.
type EncodedChar struct {
	Char      rune
	State     topo.State
	Signature topo.Signature
	Phase     topo.Phase
	Word      wire.Word
}

// WeightForRune derives the ternary weight of a code point as the Euclidean
// remainder mod 3, shifted into {-1,0,+1}. Total and stable: every rune maps
// to exactly one weight, identically across processes.
func WeightForRune(r rune) topo.Weight {
	m := int32(r) % 3
	if m < 0 {
		m += 3
	}
	return topo.Weight(m - 1)
}

// MapChar derives the complete encoded record for one character. Pure
// function of its input; it has no error path because WeightForRune is total.
func MapChar(r rune) EncodedChar {
	w := WeightForRune(r)
	st, err := topo.NewState(weightIndex[w], w)
	if err != nil {
		// Unreachable: the injection only emits indices 1, 3 and 5.
		panic(err)
	}
	d, _ := topo.DecayForWeight(w)
	return EncodedChar{
		Char:      r,
		State:     st,
		Signature: topo.SignatureFor(d),
		Phase:     topo.PhaseForIndex(st.Index),
		Word:      wire.Pack(st),
	}
}
