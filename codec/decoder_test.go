package codec

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/jakobmina/smopsys-sv/internal/wire"
)

func TestDecodeZeroNoiseIdentity(t *testing.T) {
	dec := NewDecoder(rand.New(rand.NewSource(1)))
	for _, msg := range []string{"HELLO", "x", "ternary topological codec", "mixed Case ñ 中"} {
		p, err := Encode(msg)
		if err != nil {
			t.Fatal(err)
		}
		res, err := dec.Decode(p, 0)
		if err != nil {
			t.Fatal(err)
		}
		if res.Decoded != msg {
			t.Fatalf("decoded %q want %q", res.Decoded, msg)
		}
		if res.AverageFidelity < 0.999 {
			t.Fatalf("avg fidelity %v", res.AverageFidelity)
		}
		// The constant readout bias makes the noiseless fidelity exact.
		if math.Abs(res.AverageFidelity-0.9998) > 1e-6 {
			t.Fatalf("avg fidelity %v want 0.9998", res.AverageFidelity)
		}
		if res.Quality != QualityExcellent {
			t.Fatalf("quality %s", res.Quality)
		}
	}
}

func TestDecodeCalibrationScenario(t *testing.T) {
	p, err := Encode("HELLO")
	if err != nil {
		t.Fatal(err)
	}
	dec := NewDecoder(rand.New(rand.NewSource(7)))

	res, err := dec.Decode(p, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Decoded != "HELLO" || math.Abs(res.AverageFidelity-0.9998) > 1e-6 {
		t.Fatalf("zero noise: %q fid %v", res.Decoded, res.AverageFidelity)
	}

	// At 10% noise the perturbation is calibrated to a mean fidelity of
	// 0.85; average over many decodes of the same packet.
	const trials = 400
	var sum float64
	for i := 0; i < trials; i++ {
		r, err := dec.Decode(p, 0.10)
		if err != nil {
			t.Fatal(err)
		}
		sum += r.AverageFidelity
	}
	mean := sum / trials
	if mean < 0.80 || mean > 0.90 {
		t.Fatalf("mean fidelity at 10%% noise: %v", mean)
	}
}

func TestDecodeCalibrationTight(t *testing.T) {
	msg := strings.Repeat("CALIBRATE-0123456789-abcdefghij ", 2) // 64 chars
	p, err := Encode(msg)
	if err != nil {
		t.Fatal(err)
	}
	dec := NewDecoder(rand.New(rand.NewSource(11)))
	const trials = 400
	var sum float64
	for i := 0; i < trials; i++ {
		r, err := dec.Decode(p, 0.10)
		if err != nil {
			t.Fatal(err)
		}
		sum += r.AverageFidelity
	}
	mean := sum / trials
	if mean < 0.83 || mean > 0.87 {
		t.Fatalf("mean fidelity at 10%% noise: %v", mean)
	}
}

func TestDecodeMonotonicity(t *testing.T) {
	msg := strings.Repeat("monotone", 8)
	p, err := Encode(msg)
	if err != nil {
		t.Fatal(err)
	}
	dec := NewDecoder(rand.New(rand.NewSource(13)))
	levels := []float64{0, 0.05, 0.10, 0.20, 0.40, 1.0}
	prev := math.Inf(1)
	for _, level := range levels {
		const trials = 250
		var sum float64
		for i := 0; i < trials; i++ {
			r, err := dec.Decode(p, level)
			if err != nil {
				t.Fatal(err)
			}
			sum += r.AverageFidelity
		}
		mean := sum / trials
		if mean > prev+0.01 {
			t.Fatalf("fidelity rose with noise: %v at level %v (prev %v)", mean, level, prev)
		}
		prev = mean
	}
}

func TestDecodeDegradesToQuestionMarks(t *testing.T) {
	p, err := Encode(strings.Repeat("degrade!", 8))
	if err != nil {
		t.Fatal(err)
	}
	dec := NewDecoder(rand.New(rand.NewSource(17)))
	res, err := dec.Decode(p, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.ContainsRune(res.Decoded, '?') {
		t.Fatalf("no degradation at max noise: %q", res.Decoded)
	}
	if len(res.Fidelities) != len(p.Chars) {
		t.Fatalf("fidelities %d", len(res.Fidelities))
	}
	for i, f := range res.Fidelities {
		if f < 0 || f > 1 {
			t.Fatalf("fidelity %d out of range: %v", i, f)
		}
	}
}

func TestDecodeMalformedWord(t *testing.T) {
	p, err := Encode("HELLO")
	if err != nil {
		t.Fatal(err)
	}
	p.Chars[2].Word |= 7 << 13 // reserved index
	dec := NewDecoder(rand.New(rand.NewSource(19)))
	_, err = dec.Decode(p, 0)
	var me *wire.MalformedError
	if !errors.As(err, &me) {
		t.Fatalf("want MalformedError, got %v", err)
	}
	if me.WordIndex != 2 {
		t.Fatalf("word index %d", me.WordIndex)
	}
}

func TestDecodeTamperedState(t *testing.T) {
	p, err := Encode("HELLO")
	if err != nil {
		t.Fatal(err)
	}
	p.Chars[1].State.Pair = 3
	dec := NewDecoder(nil)
	_, err = dec.Decode(p, 0)
	var me *wire.MalformedError
	if !errors.As(err, &me) || me.WordIndex != 1 {
		t.Fatalf("want MalformedError at word 1, got %v", err)
	}
}

func TestDecodeNoiseLevelRange(t *testing.T) {
	p, err := Encode("x")
	if err != nil {
		t.Fatal(err)
	}
	dec := NewDecoder(nil)
	for _, level := range []float64{-0.1, 1.1} {
		if _, err := dec.Decode(p, level); err == nil {
			t.Fatalf("level %v accepted", level)
		}
	}
}

func TestQualityThresholds(t *testing.T) {
	cases := []struct {
		avg  float64
		want Quality
	}{
		{0.999, QualityExcellent},
		{0.95, QualityExcellent},
		{0.949, QualityGood},
		{0.85, QualityGood},
		{0.849, QualityFair},
		{0.60, QualityFair},
		{0.599, QualityPoor},
		{0, QualityPoor},
	}
	for _, c := range cases {
		if got := qualityFor(c.avg); got != c.want {
			t.Fatalf("avg %v: %s want %s", c.avg, got, c.want)
		}
	}
}
