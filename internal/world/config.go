package world

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the generation pipeline and the agent
// simulation. Loaded from YAML or built from DefaultConfig plus overrides.
type Config struct {
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Seed          string `yaml:"seed"`
	UseRandomSeed bool   `yaml:"use_random_seed"`

	FillPercent         float64 `yaml:"fill_percent"`
	LandThreshold       int     `yaml:"land_threshold"`
	WaterThreshold      int     `yaml:"water_threshold"`
	SmoothingIterations int     `yaml:"smoothing_iterations"`

	DensityFactor      float64 `yaml:"density_factor"`
	MinPerIsland       int     `yaml:"min_per_island"`
	MaxPerIsland       int     `yaml:"max_per_island"`
	CiviliansPerIsland int     `yaml:"civilians_per_island"`
	TreeSpawnChance    float64 `yaml:"tree_spawn_chance"`

	ChaseRange    float64 `yaml:"chase_range"`
	FleeDistance  float64 `yaml:"flee_distance"`
	ZombieSpeed   float64 `yaml:"zombie_speed"`
	CivilianSpeed float64 `yaml:"civilian_speed"`

	CellSize float64 `yaml:"cell_size"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:               64,
		Height:              64,
		Seed:                "archipelago",
		FillPercent:         50,
		LandThreshold:       10,
		WaterThreshold:      10,
		SmoothingIterations: 5,
		DensityFactor:       0.08,
		MinPerIsland:        1,
		MaxPerIsland:        8,
		CiviliansPerIsland:  3,
		TreeSpawnChance:     0.05,
		ChaseRange:          6,
		FleeDistance:        5,
		ZombieSpeed:         1.5,
		CivilianSpeed:       2.0,
		CellSize:            1.0,
	}
}

// LoadConfig reads a YAML config file, applying defaults for absent keys.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Configuration contract violations. Generation fails fast on these rather
// than corrupting state mid-pipeline.
var (
	ErrBadDimensions  = errors.New("world: width and height must be positive")
	ErrBadThreshold   = errors.New("world: region threshold exceeds grid area")
	ErrBadFillPercent = errors.New("world: fill percent must be in [0, 100]")
	ErrBadAgentBounds = errors.New("world: min per-island agent count exceeds max")
)

// Validate enforces the caller contract on the configuration.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return ErrBadDimensions
	}
	area := c.Width * c.Height
	if c.LandThreshold > area || c.WaterThreshold > area {
		return ErrBadThreshold
	}
	if c.FillPercent < 0 || c.FillPercent > 100 {
		return ErrBadFillPercent
	}
	if c.MinPerIsland > c.MaxPerIsland {
		return ErrBadAgentBounds
	}
	return nil
}
