package codec

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/jakobmina/smopsys-sv/internal/codecmetrics"
	"github.com/jakobmina/smopsys-sv/internal/noise"
	"github.com/jakobmina/smopsys-sv/internal/wire"
	"github.com/jakobmina/smopsys-sv/topo"
)

// Calibration of the readout perturbation. The constant bias pins the mean
// fidelity of a noiseless channel at 0.9998; the jitter scale pins it at 0.85
// for noise level 0.10.
const (
	readoutBias = 0.02828521
	jitterScale = 8.44126607
)

// Quality buckets the aggregate fidelity of a decode.
type Quality string

const (
	QualityExcellent Quality = "EXCELLENT" // avg >= 0.95
	QualityGood      Quality = "GOOD"      // avg >= 0.85
	QualityFair      Quality = "FAIR"      // avg >= 0.60
	QualityPoor      Quality = "POOR"
)

func qualityFor(avg float64) Quality {
	switch {
	case avg >= 0.95:
		return QualityExcellent
	case avg >= 0.85:
		return QualityGood
	case avg >= 0.60:
		return QualityFair
	default:
		return QualityPoor
	}
}

// DecodeResult is the reconstruction and fidelity report for one decode call.
type DecodeResult struct {
	Original        string
	Decoded         string
	Fidelities      []float64
	AverageFidelity float64
	Quality         Quality
	NoiseLevel      float64
}

// Decoder reconstructs messages from packets under a simulated noisy readout.
// The random source is injectable for deterministic tests. Not safe for
// concurrent use of a single instance.
type Decoder struct {
	rng *rand.Rand
}

// NewDecoder returns a decoder drawing perturbations from rng; a nil rng gets
// a time-seeded source.
func NewDecoder(rng *rand.Rand) *Decoder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Decoder{rng: rng}
}

// Decode reconstructs a best-effort message from the packet under the given
// noise level in [0,1]. It never fails for a well-formed packet: characters
// whose perturbed state no longer resolves to the transmitted weight degrade
// to '?' and the fidelity report reflects the damage. A packet that violates
// the wire invariants fails with *wire.MalformedError.
func (d *Decoder) Decode(p *Packet, noiseLevel float64) (*DecodeResult, error) {
	if p == nil || len(p.Chars) == 0 {
		return nil, &wire.MalformedError{Reason: "empty packet"}
	}
	if noiseLevel < 0 || noiseLevel > 1 {
		return nil, fmt.Errorf("codec: noise level %v outside [0,1]", noiseLevel)
	}

	jitter := noise.New(jitterScale*noiseLevel, d.rng)
	res := &DecodeResult{
		Original:   p.Message(),
		Fidelities: make([]float64, 0, len(p.Chars)),
		NoiseLevel: noiseLevel,
	}

	decoded := make([]rune, 0, len(p.Chars))
	var sum float64
	for i := range p.Chars {
		ec := &p.Chars[i]
		if err := d.checkChar(ec, i); err != nil {
			codecmetrics.MalformedPackets.Inc()
			return nil, err
		}

		clean := topo.PhaseForIndex(ec.State.Index)
		noisy := topo.PhaseAt(clean.Phi + readoutBias + jitter.Kick())
		fid := clean.Overlap(noisy)

		if nearestWeight(noisy) == ec.State.Weight {
			decoded = append(decoded, ec.Char)
		} else {
			decoded = append(decoded, '?')
		}
		res.Fidelities = append(res.Fidelities, fid)
		sum += fid
	}

	res.Decoded = string(decoded)
	res.AverageFidelity = sum / float64(len(p.Chars))
	res.Quality = qualityFor(res.AverageFidelity)
	codecmetrics.DecodedMessages.Inc()
	codecmetrics.DecodeFidelity.Observe(res.AverageFidelity)
	return res, nil
}

// checkChar validates one payload entry against the wire invariants before
// any reconstruction is attempted.
func (d *Decoder) checkChar(ec *EncodedChar, i int) error {
	if err := ec.State.Validate(); err != nil {
		return &wire.MalformedError{WordIndex: i, Word: ec.Word, Reason: err.Error()}
	}
	if _, err := wire.Unpack(ec.Word); err != nil {
		var me *wire.MalformedError
		if errors.As(err, &me) {
			me.WordIndex = i
		}
		return err
	}
	return nil
}

// nearestWeight picks the valid weight whose reference phase is closest on
// the circle to the perturbed state. Exact ties prefer 0, then -1 over +1;
// the iteration order below encodes that preference.
func nearestWeight(p topo.Phase) topo.Weight {
	phi := 2 * math.Atan2(p.Beta, p.Alpha)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	best := topo.WeightNeutral
	bestDist := math.Inf(1)
	for _, w := range []topo.Weight{topo.WeightNeutral, topo.WeightNegative, topo.WeightPositive} {
		idx, _ := IndexForWeight(w)
		dist := math.Abs(phi - topo.PhaseForIndex(idx).Phi)
		if dist > math.Pi {
			dist = 2*math.Pi - dist
		}
		if dist < bestDist {
			bestDist = dist
			best = w
		}
	}
	return best
}
