// bimo_eval sweeps decode fidelity across noise levels and writes a report.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/jakobmina/smopsys-sv/codec"
)

type levelResult struct {
	Level        float64        `json:"noise_level"`
	Runs         int            `json:"runs"`
	MeanFidelity float64        `json:"mean_fidelity"`
	MinFidelity  float64        `json:"min_fidelity"`
	MaxFidelity  float64        `json:"max_fidelity"`
	Mismatches   int            `json:"mismatched_chars"`
	Quality      map[string]int `json:"quality"`
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func parseLevels(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		var f float64
		if _, err := fmt.Sscanf(p, "%f", &f); err != nil {
			return nil, fmt.Errorf("bad level %q: %w", p, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func main() {
	sc := defaultScenario()
	var (
		cfgPath   = flag.String("config", "", "optional TOML scenario file")
		levelsStr = flag.String("levels", "", "comma-separated noise levels (overrides scenario)")
		jsonOut   = flag.String("json", "", "optional JSON records path")
	)
	flag.StringVar(&sc.Message, "message", sc.Message, "message to encode")
	flag.IntVar(&sc.Runs, "runs", sc.Runs, "decodes per noise level")
	flag.Int64Var(&sc.Seed, "seed", sc.Seed, "base random seed")
	flag.StringVar(&sc.Out, "out", sc.Out, "markdown report path (empty = stdout)")
	flag.Parse()

	if *cfgPath != "" {
		loaded, err := loadScenario(*cfgPath, sc)
		if err != nil {
			fatalf("%v", err)
		}
		sc = loaded
	}
	if *levelsStr != "" {
		ls, err := parseLevels(*levelsStr)
		if err != nil {
			fatalf("%v", err)
		}
		sc.NoiseLevels = ls
	}
	if sc.Runs <= 0 {
		fatalf("runs must be positive")
	}
	for _, l := range sc.NoiseLevels {
		if l < 0 || l > 1 {
			fatalf("noise level %v outside [0,1]", l)
		}
	}

	pkt, err := codec.Encode(sc.Message)
	if err != nil {
		fatalf("encode: %v", err)
	}

	results := make([]levelResult, len(sc.NoiseLevels))
	var g errgroup.Group
	for i, level := range sc.NoiseLevels {
		i, level := i, level
		g.Go(func() error {
			dec := codec.NewDecoder(rand.New(rand.NewSource(sc.Seed + int64(i))))
			lr := levelResult{
				Level:       level,
				Runs:        sc.Runs,
				MinFidelity: math.Inf(1),
				MaxFidelity: math.Inf(-1),
				Quality:     make(map[string]int, 4),
			}
			var sum float64
			for run := 0; run < sc.Runs; run++ {
				res, err := dec.Decode(pkt, level)
				if err != nil {
					return fmt.Errorf("decode at level %v: %w", level, err)
				}
				sum += res.AverageFidelity
				lr.MinFidelity = math.Min(lr.MinFidelity, res.AverageFidelity)
				lr.MaxFidelity = math.Max(lr.MaxFidelity, res.AverageFidelity)
				lr.Mismatches += strings.Count(res.Decoded, "?")
				lr.Quality[string(res.Quality)]++
			}
			lr.MeanFidelity = sum / float64(sc.Runs)
			results[i] = lr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fatalf("%v", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Fidelity sweep\n\n")
	fmt.Fprintf(&b, "Message: %q (%d chars), %d runs per level, seed %d\n\n",
		sc.Message, pkt.Metadata.CharacterCount, sc.Runs, sc.Seed)
	fmt.Fprintf(&b, "| noise | mean fidelity | min | max | mismatched chars | EXCELLENT | GOOD | FAIR | POOR |\n")
	fmt.Fprintf(&b, "|---|---|---|---|---|---|---|---|---|\n")
	for _, lr := range results {
		fmt.Fprintf(&b, "| %.2f | %.4f | %.4f | %.4f | %d | %d | %d | %d | %d |\n",
			lr.Level, lr.MeanFidelity, lr.MinFidelity, lr.MaxFidelity, lr.Mismatches,
			lr.Quality["EXCELLENT"], lr.Quality["GOOD"], lr.Quality["FAIR"], lr.Quality["POOR"])
	}
	b.WriteString("\n")
	writeCounters(&b)

	if sc.Out == "" {
		fmt.Print(b.String())
	} else {
		if err := os.MkdirAll(filepath.Dir(sc.Out), 0o755); err != nil {
			fatalf("%v", err)
		}
		if err := os.WriteFile(sc.Out, []byte(b.String()), 0o644); err != nil {
			fatalf("%v", err)
		}
		fmt.Printf("report written to %s\n", sc.Out)
	}

	if *jsonOut != "" {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			fatalf("%v", err)
		}
		if err := os.WriteFile(*jsonOut, data, 0o644); err != nil {
			fatalf("%v", err)
		}
	}
}

// writeCounters appends the codec's Prometheus counters to the report.
func writeCounters(b *strings.Builder) {
	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return
	}
	for _, mf := range mfs {
		if !strings.HasPrefix(mf.GetName(), "bimotype_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				fmt.Fprintf(b, "- %s: %.0f\n", mf.GetName(), c.GetValue())
			}
		}
	}
}
