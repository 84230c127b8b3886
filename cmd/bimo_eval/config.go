package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// scenario is the sweep configuration. A TOML file overlays the defaults for
// whichever keys it defines.
type scenario struct {
	Message     string
	Runs        int
	Seed        int64
	NoiseLevels []float64
	Out         string
}

type fileScenario struct {
	Message     string    `toml:"message"`
	Runs        int       `toml:"runs"`
	Seed        int64     `toml:"seed"`
	NoiseLevels []float64 `toml:"noise_levels"`
	Out         string    `toml:"out"`
}

func defaultScenario() scenario {
	return scenario{
		Message:     "HELLO",
		Runs:        2000,
		Seed:        42,
		NoiseLevels: []float64{0, 0.05, 0.10, 0.20, 0.40},
	}
}

func loadScenario(path string, base scenario) (scenario, error) {
	var raw fileScenario
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return scenario{}, fmt.Errorf("load scenario: %w", err)
	}
	if meta.IsDefined("message") {
		base.Message = strings.TrimSpace(raw.Message)
	}
	if meta.IsDefined("runs") {
		base.Runs = raw.Runs
	}
	if meta.IsDefined("seed") {
		base.Seed = raw.Seed
	}
	if meta.IsDefined("noise_levels") {
		base.NoiseLevels = raw.NoiseLevels
	}
	if meta.IsDefined("out") {
		base.Out = strings.TrimSpace(raw.Out)
	}
	return base, nil
}
