package focus

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every numeric parameter from spec.md §6's configuration
// surface. Defaults match the spec verbatim; all are overridable via
// environment variables, following api/pkg/config's envconfig convention.
type Config struct {
	MaxScreens int `envconfig:"FOCUS_MAX_SCREENS" default:"3"`

	SwitchThreshold float64 `envconfig:"FOCUS_SWITCH_THRESHOLD" default:"0.80"`
	StayThreshold   float64 `envconfig:"FOCUS_STAY_THRESHOLD" default:"0.50"`

	CooldownMs int64 `envconfig:"FOCUS_COOLDOWN_MS" default:"500"`
	IdleMs     int64 `envconfig:"FOCUS_IDLE_MS" default:"2000"`

	// IdleMotionPxPerS is carried from spec.md §6's configuration surface
	// for forward compatibility but is not consulted by the processing
	// pipeline: spec.md §4.3 step 2 defines "activity" as excluding
	// PointerMove and Hover outright, so no motion speed, however high,
	// ever revives lastActivityTs. See spec.md §9's related open question.
	IdleMotionPxPerS float64 `envconfig:"FOCUS_IDLE_MOTION_PX_PER_S" default:"5"`

	ClickDwellMs    int64 `envconfig:"FOCUS_CLICK_DWELL_MS" default:"300"`
	TypingDwellMs   int64 `envconfig:"FOCUS_TYPING_DWELL_MS" default:"300"`
	ScrollDwellMs   int64 `envconfig:"FOCUS_SCROLL_DWELL_MS" default:"300"`
	HoverDwellMs    int64 `envconfig:"FOCUS_HOVER_DWELL_MS" default:"500"`
	MovementDwellMs int64 `envconfig:"FOCUS_MOVEMENT_DWELL_MS" default:"800"`

	MovementSpeedHighPxPerS float64 `envconfig:"FOCUS_MOVEMENT_SPEED_HIGH_PX_PER_S" default:"1200"`
	HoverRadiusPx           float64 `envconfig:"FOCUS_HOVER_RADIUS_PX" default:"8"`
	ResumeGraceMs           int64   `envconfig:"FOCUS_RESUME_GRACE_MS" default:"300"`
}

// DefaultConfig returns the spec-mandated default configuration.
func DefaultConfig() Config {
	// The values mirror the struct `default` tags; the environment is not
	// read here (LoadConfig does that).
	return Config{
		MaxScreens:      3,
		SwitchThreshold: 0.80, StayThreshold: 0.50,
		CooldownMs: 500, IdleMs: 2000, IdleMotionPxPerS: 5,
		ClickDwellMs: 300, TypingDwellMs: 300, ScrollDwellMs: 300,
		HoverDwellMs: 500, MovementDwellMs: 800,
		MovementSpeedHighPxPerS: 1200, HoverRadiusPx: 8, ResumeGraceMs: 300,
	}
}

// LoadConfig loads Config from the environment, starting from the spec
// defaults and overlaying any FOCUS_* variables that are set.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load focus config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ConfigError reports an invalid configuration, surfaced to the caller at
// construction time per spec.md §7.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid focus config field %q: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Validate rejects configurations spec.md §7 calls out as invalid at
// construction: switchThreshold < stayThreshold, negative timings, and a
// non-positive screen budget.
func (c Config) Validate() error {
	if c.MaxScreens < 1 {
		return &ConfigError{Field: "MaxScreens", Err: fmt.Errorf("must be >= 1, got %d", c.MaxScreens)}
	}
	if c.SwitchThreshold < c.StayThreshold {
		return &ConfigError{Field: "SwitchThreshold", Err: fmt.Errorf("switchThreshold (%.2f) must be >= stayThreshold (%.2f)", c.SwitchThreshold, c.StayThreshold)}
	}
	if c.SwitchThreshold < 0 || c.SwitchThreshold > 1 {
		return &ConfigError{Field: "SwitchThreshold", Err: fmt.Errorf("must be in [0,1], got %.2f", c.SwitchThreshold)}
	}
	if c.StayThreshold < 0 || c.StayThreshold > 1 {
		return &ConfigError{Field: "StayThreshold", Err: fmt.Errorf("must be in [0,1], got %.2f", c.StayThreshold)}
	}
	for name, v := range map[string]int64{
		"CooldownMs":      c.CooldownMs,
		"IdleMs":          c.IdleMs,
		"ClickDwellMs":    c.ClickDwellMs,
		"TypingDwellMs":   c.TypingDwellMs,
		"ScrollDwellMs":   c.ScrollDwellMs,
		"HoverDwellMs":    c.HoverDwellMs,
		"MovementDwellMs": c.MovementDwellMs,
		"ResumeGraceMs":   c.ResumeGraceMs,
	} {
		if v < 0 {
			return &ConfigError{Field: name, Err: fmt.Errorf("must be >= 0, got %d", v)}
		}
	}
	if c.MovementSpeedHighPxPerS < 0 {
		return &ConfigError{Field: "MovementSpeedHighPxPerS", Err: fmt.Errorf("must be >= 0, got %.2f", c.MovementSpeedHighPxPerS)}
	}
	if c.HoverRadiusPx < 0 {
		return &ConfigError{Field: "HoverRadiusPx", Err: fmt.Errorf("must be >= 0, got %.2f", c.HoverRadiusPx)}
	}
	return nil
}
