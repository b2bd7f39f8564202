package settings

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/cursorpal/config"
)

const DefaultPack = "retro/000-sample"

// Settings are the user's choices: whether the sprite shows, which pack it
// uses, and the tuning they picked in the settings panel.
type Settings struct {
	Enabled bool         `yaml:"enabled"`
	Pack    string       `yaml:"pack"`
	Patch   config.Patch `yaml:",inline"`
}

func Default() Settings {
	return Settings{Enabled: true, Pack: DefaultPack}
}

// DefaultPath is settings.yaml under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("settings: config dir: %w", err)
	}
	return filepath.Join(dir, "cursorpal", "settings.yaml"), nil
}

// Load reads the settings file. A missing file yields the defaults.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("settings: load %s: %w", path, err)
	}
	s, errs := Parse(data)
	for _, err := range errs {
		log.Printf("settings: %s: %v", path, err)
	}
	return s, nil
}

// Parse decodes settings field by field over the defaults so one bad value
// does not discard the others. Every dropped field is reported.
func Parse(data []byte) (Settings, []error) {
	s := Default()
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return s, []error{fmt.Errorf("settings: unmarshal: %w", err)}
	}

	var errs []error
	if v, ok := raw["enabled"]; ok {
		if b, isBool := v.(bool); isBool {
			s.Enabled = b
		} else {
			errs = append(errs, fmt.Errorf("settings: enabled: expected a bool, got %v", v))
		}
	}
	if v, ok := raw["pack"]; ok {
		if id, isString := v.(string); isString && id != "" {
			s.Pack = id
		} else {
			errs = append(errs, fmt.Errorf("settings: pack: expected a pack id, got %v", v))
		}
	}
	patch, patchErrs := config.ParsePatch(raw)
	s.Patch = patch
	errs = append(errs, patchErrs...)
	return s, errs
}

func Marshal(s Settings) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("settings: marshal: %w", err)
	}
	return data, nil
}

// Save writes s to path through a temporary file, so a watcher never sees a
// half-written file.
func Save(path string, s Settings) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("settings: save %s: %w", path, err)
	}
	tmp, err := os.CreateTemp(dir, ".settings-*.yaml")
	if err != nil {
		return fmt.Errorf("settings: save %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("settings: save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("settings: save %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("settings: save %s: %w", path, err)
	}
	return nil
}

// Range is the span a settings panel control allows.
type Range struct {
	Min float64
	Max float64
}

func (r Range) Clamp(v float64) float64 {
	return min(max(v, r.Min), r.Max)
}

var (
	ScaleRange  = Range{Min: 0.5, Max: 3}
	OffsetRange = Range{Min: 0, Max: 120}
	LerpRange   = Range{Min: 0.05, Max: 1}
)

// Clamp limits the set fields of p to the panel ranges.
func Clamp(p config.Patch) config.Patch {
	if p.Scale != nil {
		p.Scale = config.Float(ScaleRange.Clamp(*p.Scale))
	}
	if p.Offset != nil {
		p.Offset = config.Float(OffsetRange.Clamp(*p.Offset))
	}
	if p.LerpAlpha != nil {
		p.LerpAlpha = config.Float(LerpRange.Clamp(*p.LerpAlpha))
	}
	return p
}
