package config

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gopkg.in/yaml.v3"
)

// Patch is a partial update of the user-tunable fields. Nil fields are left
// alone.
type Patch struct {
	Scale     *float64 `yaml:"scale,omitempty"`
	Offset    *float64 `yaml:"offset,omitempty"`
	LerpAlpha *float64 `yaml:"lerp_alpha,omitempty"`
}

func (p Patch) IsZero() bool {
	return p.Scale == nil && p.Offset == nil && p.LerpAlpha == nil
}

// Merge returns p with every field set in o overriding it.
func (p Patch) Merge(o Patch) Patch {
	if o.Scale != nil {
		p.Scale = o.Scale
	}
	if o.Offset != nil {
		p.Offset = o.Offset
	}
	if o.LerpAlpha != nil {
		p.LerpAlpha = o.LerpAlpha
	}
	return p
}

func Float(v float64) *float64 {
	return &v
}

var patchKeys = map[string]string{
	"scale":      "scale",
	"offset":     "offset",
	"lerp_alpha": "lerp_alpha",
	"lerpAlpha":  "lerp_alpha",
	"lerp":       "lerp_alpha",
}

// ParsePatch builds a patch from loosely typed values, e.g. a decoded YAML or
// JSON object. Only finite numbers are taken; numeric strings, NaN and
// infinities are dropped with a *ValueError each. Unknown keys are ignored.
func ParsePatch(raw map[string]any) (Patch, []error) {
	var (
		p    Patch
		errs []error
	)
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		field, ok := patchKeys[k]
		if !ok {
			continue
		}
		v, ok := number(raw[k])
		if !ok {
			errs = append(errs, &ValueError{Field: k, Value: raw[k]})
			continue
		}
		switch field {
		case "scale":
			p.Scale = Float(v)
		case "offset":
			p.Offset = Float(v)
		case "lerp_alpha":
			p.LerpAlpha = Float(v)
		}
	}
	return p, errs
}

// DecodePatch parses a YAML or JSON object into a patch. The returned patch
// carries every valid field even when err reports dropped ones.
func DecodePatch(data []byte) (Patch, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Patch{}, fmt.Errorf("config: decode patch: %w", err)
	}
	p, errs := ParsePatch(raw)
	return p, errors.Join(errs...)
}

func number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
