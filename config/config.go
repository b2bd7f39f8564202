package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the engine's tuning values. Every tick reads a fresh copy, so
// changes apply without restarting anything.
type Config struct {
	Scale          float64       `yaml:"scale"`
	Offset         float64       `yaml:"offset"`
	LerpAlpha      float64       `yaml:"lerp_alpha"`
	MaxStep        float64       `yaml:"max_step"`
	SmoothingAlpha float64       `yaml:"smoothing_alpha"`
	WalkSpeed      float64       `yaml:"walk_speed"`
	IdleSpeed      float64       `yaml:"idle_speed"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	SleepTimeout   time.Duration `yaml:"sleep_timeout"`
	FacingDeadzone float64       `yaml:"facing_deadzone"`
	BobAmplitude   float64       `yaml:"bob_amplitude"`
	BobPeriod      time.Duration `yaml:"bob_period"`
}

func Default() Config {
	return Config{
		Scale:          1.25,
		Offset:         30,
		LerpAlpha:      0.2,
		MaxStep:        60,
		SmoothingAlpha: 0.25,
		WalkSpeed:      60,
		IdleSpeed:      40,
		IdleTimeout:    180 * time.Millisecond,
		SleepTimeout:   30 * time.Second,
		FacingDeadzone: 0.3,
		BobPeriod:      900 * time.Millisecond,
	}
}

// Load reads a YAML config file. Keys the file leaves out keep their
// defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("config: load %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML (or JSON) over Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate rejects values the engine cannot run with.
func (c Config) Validate() error {
	checks := []struct {
		field string
		value float64
		ok    bool
	}{
		{"scale", c.Scale, c.Scale > 0},
		{"offset", c.Offset, true},
		{"lerp_alpha", c.LerpAlpha, c.LerpAlpha >= 0 && c.LerpAlpha <= 1},
		{"max_step", c.MaxStep, c.MaxStep >= 0},
		{"smoothing_alpha", c.SmoothingAlpha, c.SmoothingAlpha > 0 && c.SmoothingAlpha <= 1},
		{"walk_speed", c.WalkSpeed, c.WalkSpeed >= 0},
		{"idle_speed", c.IdleSpeed, c.IdleSpeed >= 0},
		{"facing_deadzone", c.FacingDeadzone, c.FacingDeadzone >= 0},
		{"bob_amplitude", c.BobAmplitude, true},
	}
	for _, chk := range checks {
		if math.IsNaN(chk.value) || math.IsInf(chk.value, 0) || !chk.ok {
			return &ValueError{Field: chk.field, Value: chk.value}
		}
	}
	if c.IdleSpeed > c.WalkSpeed {
		return fmt.Errorf("config: idle_speed %v must not exceed walk_speed %v", c.IdleSpeed, c.WalkSpeed)
	}
	if c.IdleTimeout < 0 || c.SleepTimeout < 0 || c.BobPeriod < 0 {
		return fmt.Errorf("config: timeouts and bob_period must not be negative")
	}
	return nil
}

// Apply merges the finite fields of p into c.
func (c Config) Apply(p Patch) Config {
	if v, ok := finite(p.Scale); ok {
		c.Scale = v
	}
	if v, ok := finite(p.Offset); ok {
		c.Offset = v
	}
	if v, ok := finite(p.LerpAlpha); ok {
		c.LerpAlpha = v
	}
	return c
}

func finite(v *float64) (float64, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, false
	}
	return *v, true
}

// ValueError reports a config or patch field that is not a usable number.
type ValueError struct {
	Field string
	Value any
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("config: %s: invalid value %v", e.Field, e.Value)
}
