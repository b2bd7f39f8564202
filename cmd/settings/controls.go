package main

import (
	"fmt"
	"math"

	"github.com/milk9111/cursorpal/config"
	"github.com/milk9111/cursorpal/settings"
)

// tuning describes one slider. Sliders work in integers, so each value is
// stored in steps of unit.
type tuning struct {
	label  string
	rng    settings.Range
	unit   float64
	format string
	get    func(config.Patch) *float64
	set    func(*config.Patch, float64)
	def    float64
}

var tunings = []tuning{
	{
		label: "Scale", rng: settings.ScaleRange, unit: 0.05, format: "%.2fx",
		get: func(p config.Patch) *float64 { return p.Scale },
		set: func(p *config.Patch, v float64) { p.Scale = config.Float(v) },
		def: config.Default().Scale,
	},
	{
		label: "Offset", rng: settings.OffsetRange, unit: 1, format: "%.0f px",
		get: func(p config.Patch) *float64 { return p.Offset },
		set: func(p *config.Patch, v float64) { p.Offset = config.Float(v) },
		def: config.Default().Offset,
	},
	{
		label: "Follow", rng: settings.LerpRange, unit: 0.01, format: "%.2f",
		get: func(p config.Patch) *float64 { return p.LerpAlpha },
		set: func(p *config.Patch, v float64) { p.LerpAlpha = config.Float(v) },
		def: config.Default().LerpAlpha,
	},
}

func (t tuning) value(p config.Patch) float64 {
	if v := t.get(p); v != nil {
		return t.rng.Clamp(*v)
	}
	return t.def
}

func (t tuning) toSlider(v float64) int {
	return int(math.Round(t.rng.Clamp(v) / t.unit))
}

func (t tuning) fromSlider(i int) float64 {
	// round away float noise from the step multiplication
	v := math.Round(float64(i)*t.unit*1e6) / 1e6
	return t.rng.Clamp(v)
}

func (t tuning) sliderRange() (int, int) {
	return t.toSlider(t.rng.Min), t.toSlider(t.rng.Max)
}

func (t tuning) text(v float64) string {
	return fmt.Sprintf("%s: "+t.format, t.label, v)
}
