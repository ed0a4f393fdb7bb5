package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/FractionEstate/decentralized-did/pkg/fuzzyextractor"
	"github.com/FractionEstate/decentralized-did/pkg/metadata"
	"github.com/FractionEstate/decentralized-did/pkg/minutia"
)

// minutiaFixture is the JSON shape for one minutia.Minutia entry.
type minutiaFixture struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	ThetaDeg float64 `json:"theta_deg"`
}

// templateFixture is the JSON shape for one minutia.FingerTemplate.
type templateFixture struct {
	Finger   string           `json:"finger"`
	Quality  uint8            `json:"quality"`
	Minutiae []minutiaFixture `json:"minutiae"`
}

func loadTemplates(path string) ([]minutia.FingerTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	var fixtures []templateFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	out := make([]minutia.FingerTemplate, 0, len(fixtures))
	for _, f := range fixtures {
		t := minutia.FingerTemplate{Finger: minutia.FingerID(f.Finger), Quality: f.Quality}
		for _, m := range f.Minutiae {
			t.Minutiae = append(t.Minutiae, minutia.Minutia{X: m.X, Y: m.Y, ThetaDeg: m.ThetaDeg})
		}
		out = append(out, t)
	}
	return out, nil
}

func loadHelpers(path string) (map[minutia.FingerID]fuzzyextractor.Helper, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read helpers: %w", err)
	}
	var wire map[string]metadata.WireHelper
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("parse helpers: %w", err)
	}
	out := make(map[minutia.FingerID]fuzzyextractor.Helper, len(wire))
	for id, wh := range wire {
		h, err := wh.ToHelper()
		if err != nil {
			return nil, fmt.Errorf("decode helper %s: %w", id, err)
		}
		out[minutia.FingerID(id)] = h
	}
	return out, nil
}

func writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
