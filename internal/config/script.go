package config

// ScriptConfig is a timed list of player actions replayed by the match runner.
type ScriptConfig struct {
	Ops []ScriptOp `yaml:"ops"`
}

type ScriptOp struct {
	T    float64 `yaml:"t"` // ms since match start
	Op   string  `yaml:"op"`
	Side string  `yaml:"side"`
	Unit string  `yaml:"unit"`
	Attr string  `yaml:"attr"`
	X    float64 `yaml:"x"`
}

const (
	OpPlace   = "place"
	OpSpawn   = "spawn"
	OpUpgrade = "upgrade"
)
