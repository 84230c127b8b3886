package codec

import (
	"math"
	"testing"

	"github.com/jakobmina/smopsys-sv/topo"
)

func TestWeightForRuneTotalAndStable(t *testing.T) {
	samples := []rune{'A', 'z', '0', ' ', '\n', 'ñ', '中', '🜁', 0}
	for _, r := range samples {
		w := WeightForRune(r)
		if !w.Valid() {
			t.Fatalf("rune %q: weight %d", r, w)
		}
		if w != WeightForRune(r) {
			t.Fatalf("rune %q: unstable weight", r)
		}
		want := topo.Weight(int32(r)%3 - 1)
		if int32(r)%3 < 0 {
			want += 3
		}
		if w != want {
			t.Fatalf("rune %q: weight %d want %d", r, w, want)
		}
	}
}

func TestWeightIndexInjection(t *testing.T) {
	seen := map[int]bool{}
	for _, w := range []topo.Weight{topo.WeightNegative, topo.WeightNeutral, topo.WeightPositive} {
		idx, ok := IndexForWeight(w)
		if !ok {
			t.Fatalf("weight %d: no index", w)
		}
		if idx < 0 || idx > 6 {
			t.Fatalf("weight %d: index %d out of range", w, idx)
		}
		if seen[idx] {
			t.Fatalf("index %d mapped twice", idx)
		}
		seen[idx] = true
	}
}

func TestMapCharDerivedRecord(t *testing.T) {
	ec := MapChar('H') // 72 mod 3 == 0 -> weight -1 -> Beta -> Sr-90
	if ec.State.Weight != topo.WeightNegative {
		t.Fatalf("weight %d", ec.State.Weight)
	}
	if ec.State.Index != 1 || ec.State.Pair != 6 {
		t.Fatalf("state %+v", ec.State)
	}
	if ec.Signature.Isotope != "Sr-90" {
		t.Fatalf("isotope %s", ec.Signature.Isotope)
	}
	if math.Abs(ec.Phase.Norm()-1) > 1e-6 {
		t.Fatalf("norm %v", ec.Phase.Norm())
	}
	wantPhi := 1.0 / 7.0 * 2 * math.Pi
	if math.Abs(ec.Phase.Phi-wantPhi) > 1e-12 {
		t.Fatalf("phi %v want %v", ec.Phase.Phi, wantPhi)
	}
}

func TestMapCharNormalizationSweep(t *testing.T) {
	for r := rune(32); r < 512; r++ {
		ec := MapChar(r)
		if math.Abs(ec.Phase.Norm()-1) > 1e-6 {
			t.Fatalf("rune %q: norm %v", r, ec.Phase.Norm())
		}
		if err := ec.State.Validate(); err != nil {
			t.Fatalf("rune %q: %v", r, err)
		}
	}
}
