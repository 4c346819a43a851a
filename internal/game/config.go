package game

import (
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/bullseye/internal/config"
)

// Arena defaults, in logical units.
const (
	DefaultArenaWidth  = 800
	DefaultArenaHeight = 600
)

// Session
const (
	DefaultRoundSeconds = 60
)

// Target
const (
	DefaultTargetSize    = 60.0
	DefaultTargetSpeed   = 4.0 // Units per target tick, per axis
	DefaultSizeStep      = 5.0
	DefaultMinTargetSize = 25.0
	DefaultSpeedStep     = 1.0
)

// Projectile
const (
	DefaultProjectileSpeed  = 10.0 // Units per projectile tick
	DefaultProjectileWidth  = 40.0
	DefaultProjectileHeight = 6.0
)

// Difficulty
const (
	DefaultMilestoneInterval = 3
)

// Tick periods
const (
	DefaultTargetTick     = 50 * time.Millisecond
	DefaultProjectileTick = 20 * time.Millisecond
	DefaultTimerTick      = time.Second
)

// DefaultTargetColor is the colour of the target at the start of a session.
var DefaultTargetColor = colorful.Color{R: 0.91, G: 0.30, B: 0.24}

// DefaultProjectileColor is the colour every projectile is drawn with.
var DefaultProjectileColor = colorful.Color{R: 0.95, G: 0.85, B: 0.55}

// Config holds the tunable parameters of a session.
type Config struct {
	ArenaWidth  float64
	ArenaHeight float64

	RoundSeconds int

	TargetSize    float64
	TargetSpeed   float64
	SizeStep      float64
	MinTargetSize float64
	SpeedStep     float64
	TargetColor   colorful.Color

	ProjectileSpeed  float64
	ProjectileWidth  float64
	ProjectileHeight float64

	MilestoneInterval int

	TargetTick     time.Duration
	ProjectileTick time.Duration
	TimerTick      time.Duration

	// Seed for the random source; 0 seeds from the clock.
	Seed int64
}

// DefaultConfig returns the standard game configuration.
func DefaultConfig() Config {
	return Config{
		ArenaWidth:        DefaultArenaWidth,
		ArenaHeight:       DefaultArenaHeight,
		RoundSeconds:      DefaultRoundSeconds,
		TargetSize:        DefaultTargetSize,
		TargetSpeed:       DefaultTargetSpeed,
		SizeStep:          DefaultSizeStep,
		MinTargetSize:     DefaultMinTargetSize,
		SpeedStep:         DefaultSpeedStep,
		TargetColor:       DefaultTargetColor,
		ProjectileSpeed:   DefaultProjectileSpeed,
		ProjectileWidth:   DefaultProjectileWidth,
		ProjectileHeight:  DefaultProjectileHeight,
		MilestoneInterval: DefaultMilestoneInterval,
		TargetTick:        DefaultTargetTick,
		ProjectileTick:    DefaultProjectileTick,
		TimerTick:         DefaultTimerTick,
	}
}

// ConfigFromEnv returns DefaultConfig with environment overrides applied.
//
//	GAME_ROUND_SECONDS       round length in seconds
//	GAME_ARENA_WIDTH         arena width in logical units
//	GAME_ARENA_HEIGHT        arena height in logical units
//	GAME_MILESTONE_INTERVAL  hits between difficulty steps
//	GAME_SEED                random seed (0 = time based)
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	var err error
	if cfg.RoundSeconds, err = config.GetEnvInt("GAME_ROUND_SECONDS", cfg.RoundSeconds); err != nil {
		return cfg, err
	}
	width, err := config.GetEnvInt("GAME_ARENA_WIDTH", int(cfg.ArenaWidth))
	if err != nil {
		return cfg, err
	}
	height, err := config.GetEnvInt("GAME_ARENA_HEIGHT", int(cfg.ArenaHeight))
	if err != nil {
		return cfg, err
	}
	cfg.ArenaWidth, cfg.ArenaHeight = float64(width), float64(height)
	if cfg.MilestoneInterval, err = config.GetEnvInt("GAME_MILESTONE_INTERVAL", cfg.MilestoneInterval); err != nil {
		return cfg, err
	}
	seed, err := config.GetEnvInt("GAME_SEED", 0)
	if err != nil {
		return cfg, err
	}
	cfg.Seed = int64(seed)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid game config: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration describes a playable session.
func (c Config) Validate() error {
	switch {
	case c.ArenaWidth <= 0 || c.ArenaHeight <= 0:
		return fmt.Errorf("arena must be positive, got %vx%v", c.ArenaWidth, c.ArenaHeight)
	case c.TargetSize <= 0 || c.TargetSize > c.ArenaWidth || c.TargetSize > c.ArenaHeight:
		return fmt.Errorf("target size %v does not fit arena %vx%v", c.TargetSize, c.ArenaWidth, c.ArenaHeight)
	case c.ProjectileHeight > c.ArenaHeight || c.ProjectileWidth > c.ArenaWidth:
		return fmt.Errorf("projectile %vx%v does not fit arena", c.ProjectileWidth, c.ProjectileHeight)
	case c.RoundSeconds <= 0:
		return fmt.Errorf("round length must be positive, got %d", c.RoundSeconds)
	case c.MilestoneInterval <= 0:
		return fmt.Errorf("milestone interval must be positive, got %d", c.MilestoneInterval)
	case c.TargetTick <= 0 || c.ProjectileTick <= 0 || c.TimerTick <= 0:
		return fmt.Errorf("tick periods must be positive")
	case c.MinTargetSize < 0 || c.SizeStep < 0 || c.SpeedStep < 0:
		return fmt.Errorf("difficulty steps must not be negative")
	}
	return nil
}
