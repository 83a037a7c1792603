package combat

import (
	"strings"
	"testing"

	"lanewar/internal/config"
)

func TestRunMatchPlayerWins(t *testing.T) {
	cfg := config.DefaultWorld()
	cfg.Bases.Enemy.MaxHP = 20
	cfg.Sim.MaxDurationMs = 60000
	w := NewWorld(cfg, nil, Options{})

	res := RunMatch(w, RunOptions{
		Policy: &CappedPolicy{Inner: &RoundRobinPolicy{Deck: []string{"ranged"}, Interval: 500}, Max: 3},
		Record: true,
	})
	if res.Status != EnemyDefeated || res.Winner != "player" {
		t.Fatalf("expected the player to win, got %s (%q)", res.Status, res.Winner)
	}
	if res.Duration >= cfg.Sim.MaxDurationMs {
		t.Errorf("match should end before the time limit, took %vms", res.Duration)
	}
	if res.Final.Status != "enemyDefeated" {
		t.Errorf("final snapshot status %q", res.Final.Status)
	}
	if res.Player.Spawned == 0 || res.Player.BaseDamage < 20 {
		t.Errorf("unexpected player tally %+v", res.Player)
	}
	var gameOver int
	for _, ev := range res.Events {
		if ev.Type == EvGameOver {
			gameOver++
		}
	}
	if gameOver != 1 {
		t.Errorf("expected exactly one GameOver event, got %d", gameOver)
	}
	if len(res.OpErrors) != 0 {
		t.Errorf("unexpected op errors %v", res.OpErrors)
	}
}

func TestRunMatchScript(t *testing.T) {
	cfg := config.DefaultWorld()
	cfg.Bases.Enemy.CPU = false
	w := NewWorld(cfg, nil, Options{})

	script := &config.ScriptConfig{}
	for i := 0; i < MaxLevel; i++ {
		script.Ops = append(script.Ops, config.ScriptOp{T: 0, Op: config.OpUpgrade, Attr: "range"})
	}
	script.Ops = append(script.Ops,
		config.ScriptOp{T: 0, Op: "teleport"},
		config.ScriptOp{T: 16, Op: config.OpPlace, Unit: "dragon"},
		config.ScriptOp{T: 32, Op: config.OpPlace, Unit: "basic", X: 400},
		config.ScriptOp{T: 48, Op: config.OpSpawn},
	)

	var frames []Snapshot
	res := RunMatch(w, RunOptions{
		MaxDurationMs: 100,
		Script:        script,
		Record:        true,
		FrameEvery:    2,
		OnFrame: func(s Snapshot) error {
			frames = append(frames, s)
			return nil
		},
	})

	if res.Status != Ongoing || res.Winner != "" {
		t.Errorf("expected an undecided match, got %s", res.Status)
	}
	if len(res.OpErrors) != 3 {
		t.Fatalf("expected 3 op errors, got %v", res.OpErrors)
	}
	for i, frag := range []string{"max level", "teleport", "dragon"} {
		if !strings.Contains(res.OpErrors[i], frag) {
			t.Errorf("op error %d = %q, want it to mention %q", i, res.OpErrors[i], frag)
		}
	}
	if l := w.PlayerBase().Levels().Level(AttrRange); l != MaxLevel {
		t.Errorf("expected range level %d, got %d", MaxLevel, l)
	}
	if res.Player.Spawned != 2 {
		t.Errorf("expected 2 player units, got %d", res.Player.Spawned)
	}
	var lines int
	for _, ev := range res.Events {
		if ev.Type == EvLogLine {
			lines++
		}
	}
	if lines != 3 {
		t.Errorf("expected a log line per failed op, got %d", lines)
	}

	// 7 ticks of 16ms: frames after ticks 2, 4, 6 and the last one.
	if res.Ticks != 7 || len(frames) != 4 {
		t.Fatalf("ticks=%d frames=%d", res.Ticks, len(frames))
	}
	if frames[3].T != res.Duration {
		t.Errorf("last frame should match the end of the match, %v vs %v", frames[3].T, res.Duration)
	}
}

func TestRoundRobinPolicy(t *testing.T) {
	w := quietWorld(t, nil)
	p := &RoundRobinPolicy{Deck: []string{"basic", "tank"}, Interval: 100}

	var got []string
	for i := 0; i < 25; i++ {
		if name, ok := p.Next(w); ok {
			got = append(got, name)
		}
		w.Tick(20)
	}
	want := []string{"basic", "tank", "basic", "tank", "basic"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCappedPolicy(t *testing.T) {
	w := quietWorld(t, nil)
	p := &CappedPolicy{Inner: &RoundRobinPolicy{Deck: []string{"basic"}, Interval: 1}, Max: 2}
	for i := 0; i < 5; i++ {
		if name, ok := p.Next(w); ok {
			if _, err := w.Place(Player, name); err != nil {
				t.Fatal(err)
			}
		}
		w.Tick(16)
	}
	if n := w.LiveCount(Player); n != 2 {
		t.Errorf("expected the cap to hold at 2, got %d", n)
	}
}
