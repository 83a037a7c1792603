package config

import (
	"errors"
	"fmt"
)

type WorldConfig struct {
	Lane       LaneConfig  `yaml:"lane"`
	Unit       BoxDef      `yaml:"unit"`
	Bases      BasesConfig `yaml:"bases"`
	Spawn      SpawnConfig `yaml:"spawn"`
	LevelScale StatDef     `yaml:"level_scale"`
	Sim        SimConfig   `yaml:"sim"`
}

type LaneConfig struct {
	MinX    float64 `yaml:"min_x"`
	MaxX    float64 `yaml:"max_x"`
	GroundY float64 `yaml:"ground_y"`
}

type BoxDef struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type BasesConfig struct {
	Player BaseDef `yaml:"player"`
	Enemy  BaseDef `yaml:"enemy"`
}

type BaseDef struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	MaxHP  int     `yaml:"max_hp"`
	CPU    bool    `yaml:"cpu"`
}

type SpawnConfig struct {
	PlacementCooldownMs   float64 `yaml:"placement_cooldown_ms"`
	UpgradeCooldownMs     float64 `yaml:"upgrade_cooldown_ms"`
	RetaliationCooldownMs float64 `yaml:"retaliation_cooldown_ms"`
	MaxUnits              int     `yaml:"max_units"`
	SpawnOffset           float64 `yaml:"spawn_offset"`
	QueueGap              float64 `yaml:"queue_gap"`
}

type SimConfig struct {
	TickMs        float64 `yaml:"tick_ms"`
	MaxDurationMs float64 `yaml:"max_duration_ms"`
	Seed          int64   `yaml:"seed"`
}

// DefaultWorld mirrors the prototype's hardcoded layout: a 2000px field with
// the player base on the left and the CPU base on the right.
func DefaultWorld() *WorldConfig {
	return &WorldConfig{
		Lane: LaneConfig{MinX: 100, MaxX: 1900, GroundY: 950},
		Unit: BoxDef{Width: 50, Height: 100},
		Bases: BasesConfig{
			Player: BaseDef{X: 0, Width: 200, Height: 300, MaxHP: 500},
			Enemy:  BaseDef{X: 1800, Width: 200, Height: 300, MaxHP: 500, CPU: true},
		},
		Spawn: SpawnConfig{
			PlacementCooldownMs:   2000,
			UpgradeCooldownMs:     10000,
			RetaliationCooldownMs: 1000,
			MaxUnits:              10,
			SpawnOffset:           25,
			QueueGap:              1,
		},
		LevelScale: StatDef{HP: 1, Damage: 1, Speed: 1, Defence: 1, AttackSpeed: 1, Range: 1},
		Sim:        SimConfig{TickMs: 16, MaxDurationMs: 10 * 60 * 1000, Seed: 12345},
	}
}

var ErrInvalidWorld = errors.New("invalid world config")

func (c *WorldConfig) Validate() error {
	if c.Lane.MinX >= c.Lane.MaxX {
		return fmt.Errorf("%w: lane min_x %.0f >= max_x %.0f", ErrInvalidWorld, c.Lane.MinX, c.Lane.MaxX)
	}
	if c.Lane.MaxX-c.Lane.MinX < c.Unit.Width {
		return fmt.Errorf("%w: lane narrower than a unit", ErrInvalidWorld)
	}
	if c.Bases.Player.X+c.Bases.Player.Width > c.Bases.Enemy.X {
		return fmt.Errorf("%w: bases overlap", ErrInvalidWorld)
	}
	if c.Bases.Player.MaxHP <= 0 || c.Bases.Enemy.MaxHP <= 0 {
		return fmt.Errorf("%w: base max_hp must be positive", ErrInvalidWorld)
	}
	if c.Spawn.MaxUnits < 0 {
		return fmt.Errorf("%w: negative max_units", ErrInvalidWorld)
	}
	if c.Spawn.QueueGap < 0 {
		return fmt.Errorf("%w: negative queue_gap", ErrInvalidWorld)
	}
	if c.Unit.Width <= 0 || c.Unit.Height <= 0 {
		return fmt.Errorf("%w: unit box must have a positive size", ErrInvalidWorld)
	}
	if c.Sim.TickMs <= 0 {
		return fmt.Errorf("%w: tick_ms must be positive", ErrInvalidWorld)
	}
	return nil
}
