package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/cloudlet-sim/sim"
)

// loadScenario parses a scenario YAML file on top of sim.DefaultSimConfig, so a file only
// needs the fields it changes. Uses strict field checking: typos must cause errors.
func loadScenario(path string) (sim.SimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return sim.SimConfig{}, fmt.Errorf("read scenario file: %w", err)
	}
	return parseScenario(data)
}

func parseScenario(data []byte) (sim.SimConfig, error) {
	cfg := sim.DefaultSimConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	// An empty document leaves the defaults untouched.
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return sim.SimConfig{}, fmt.Errorf("parse scenario YAML: %w", err)
	}
	return cfg, nil
}
