package config

type UnitsConfig struct {
	Units []UnitDef `yaml:"units"`
}

type UnitDef struct {
	ID    string  `yaml:"id"`
	Stats StatDef `yaml:"stats"`
	Note  string  `yaml:"note"`
}

type StatDef struct {
	HP          float64 `yaml:"hp"`
	Damage      float64 `yaml:"damage"`
	Speed       float64 `yaml:"speed"`
	Defence     float64 `yaml:"defence"`
	AttackSpeed float64 `yaml:"attack_speed"`
	Range       float64 `yaml:"range"`
}

// DefaultUnits returns the five archetypes the game ships with.
func DefaultUnits() *UnitsConfig {
	return &UnitsConfig{Units: []UnitDef{
		{ID: "basic", Stats: StatDef{HP: 10, Damage: 2, Speed: 1, Defence: 1, AttackSpeed: 1, Range: 25}},
		{ID: "brute", Stats: StatDef{HP: 10, Damage: 2, Speed: 0.7, Defence: 3, AttackSpeed: 0.5, Range: 25}},
		{ID: "tank", Stats: StatDef{HP: 10, Damage: 2, Speed: 0.5, Defence: 5, AttackSpeed: 0.5, Range: 25}},
		{ID: "fast", Stats: StatDef{HP: 10, Damage: 2, Speed: 2, Defence: 0, AttackSpeed: 2, Range: 25}},
		{ID: "ranged", Stats: StatDef{HP: 10, Damage: 20, Speed: 1, Defence: 0, AttackSpeed: 2, Range: 250}},
	}}
}
