package combat

import (
	"testing"

	"lanewar/internal/config"
)

// scriptedSource returns its picks in order, wrapping each into [0, n).
type scriptedSource struct {
	picks []int
	calls int
}

func (s *scriptedSource) Intn(n int) int {
	p := 0
	if len(s.picks) > 0 {
		p = s.picks[s.calls%len(s.picks)]
	}
	s.calls++
	return p % n
}

// quietWorld has both bases under manual control so tests decide every spawn.
func quietWorld(t *testing.T, mutate func(*config.WorldConfig)) *World {
	t.Helper()
	cfg := config.DefaultWorld()
	cfg.Bases.Enemy.CPU = false
	cfg.Bases.Player.CPU = false
	if mutate != nil {
		mutate(cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}
	return NewWorld(cfg, nil, Options{})
}

func mustPlaceAt(t *testing.T, w *World, s Side, sb StatBlock, x float64) *Unit {
	t.Helper()
	u, err := w.PlaceAt(s, sb, x)
	if err != nil {
		t.Fatalf("PlaceAt(%s, %.0f): %v", s, x, err)
	}
	return u
}

var basic = StatBlock{HP: 10, Damage: 2, Speed: 1, Defence: 1, AttackSpeed: 1, Range: 25}

// dummy never moves and never attacks.
var dummy = StatBlock{HP: 100, Damage: 0, Speed: 0, Defence: 0, AttackSpeed: 0, Range: 0}
