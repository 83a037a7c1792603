package combat

import (
	"testing"

	"lanewar/internal/config"
)

func TestNewUnitFromStatBlock(t *testing.T) {
	u := NewUnit("u1", Player, basic, Box{Width: 50, Height: 100}, 0)
	if u.Stats() != basic {
		t.Fatalf("Stats() = %+v, want %+v", u.Stats(), basic)
	}
	// floor((2*2+1)/3) == 1
	if u.Proficiency() != 1 {
		t.Errorf("expected proficiency 1, got %d", u.Proficiency())
	}
	if u.Health() != 11 || u.MaxHealth() != 10 {
		t.Errorf("expected hp 11/10, got %d/%d", u.Health(), u.MaxHealth())
	}
	if u.AtkDamage() != 3 || u.Defence() != 2 || u.Speed() != 1.5 || u.AtkSpeed() != 1.5 || u.Range() != 25 {
		t.Errorf("unexpected derived stats atk=%v def=%v spd=%v as=%v rng=%v",
			u.AtkDamage(), u.Defence(), u.Speed(), u.AtkSpeed(), u.Range())
	}
}

func TestDerivedStatsGrowWithProficiency(t *testing.T) {
	u := NewUnit("u1", Player, basic, Box{Width: 50, Height: 100}, 0)
	for i := 0; i < 20; i++ {
		atk, spd, as, def := u.AtkDamage(), u.Speed(), u.AtkSpeed(), u.Defence()
		u.EnemyKilled(1)
		if u.AtkDamage() < atk || u.Speed() < spd || u.AtkSpeed() < as || u.Defence() < def {
			t.Fatalf("derived stats shrank after kill %d", i)
		}
		if u.Range() != basic.Range {
			t.Fatalf("range should not depend on proficiency")
		}
	}
}

func TestEnemyKilledGainsAtLeastOne(t *testing.T) {
	u := NewUnit("u1", Player, basic, Box{}, 0)
	prof, hp := u.Proficiency(), u.Health()
	u.EnemyKilled(0)
	if u.Proficiency() != prof+1 || u.Health() != hp+1 {
		t.Errorf("EnemyKilled(0): prof %d->%d hp %d->%d", prof, u.Proficiency(), hp, u.Health())
	}
	u.EnemyKilled(4)
	if u.Proficiency() != prof+5 || u.Health() != hp+5 {
		t.Errorf("EnemyKilled(4): prof %d hp %d", u.Proficiency(), u.Health())
	}
}

func TestDamagedAppliesDefence(t *testing.T) {
	cases := []struct {
		name string
		raw  float64
		want int
	}{
		{"above defence", 5, 3},
		{"fractional floors", 4.9, 2},
		{"equal to defence", 2, 0},
		{"below defence", 1, 0},
		{"zero", 0, 0},
		{"negative", -10, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := NewUnit("u1", Enemy, basic, Box{}, 0) // defence 2
			before := u.Health()
			got := u.Damaged(tc.raw)
			if got != tc.want {
				t.Errorf("Damaged(%v) = %d, want %d", tc.raw, got, tc.want)
			}
			if u.Health() != before-tc.want {
				t.Errorf("health %d, want %d", u.Health(), before-tc.want)
			}
			if u.Dead() || u.MarkedForRemoval() {
				t.Error("unit should still be alive")
			}
		})
	}
}

func TestLethalDamageMarksForRemoval(t *testing.T) {
	u := NewUnit("u1", Enemy, basic, Box{}, 0)
	if got := u.Damaged(100); got != 98 {
		t.Fatalf("expected 98 dealt, got %d", got)
	}
	if !u.Dead() || !u.MarkedForRemoval() {
		t.Fatal("expected dead and marked")
	}
}

func TestPlayerStaysInLane(t *testing.T) {
	w := quietWorld(t, func(c *config.WorldConfig) {
		// Push the enemy base out of the lane so only the lane bound stops us.
		c.Bases.Enemy.X = 2000
	})
	fast := StatBlock{HP: 10, Damage: 0, Speed: 20, Defence: 0, AttackSpeed: 0, Range: 0}
	low := mustPlaceAt(t, w, Player, fast, -500)
	if low.Pos().X != 100 {
		t.Fatalf("placement should clamp to min_x, got %v", low.Pos().X)
	}
	for _, d := range []float64{0, 1, 16, 33, 1000, 1e6} {
		w.Tick(d)
		x := low.Pos().X
		if x < 100 || x > 1900-low.Width() {
			t.Fatalf("after delta %v: x=%v outside lane", d, x)
		}
	}
	if low.Pos().X != 1850 {
		t.Errorf("expected unit parked at 1850, got %v", low.Pos().X)
	}
	w.Tick(16)
	if low.IsMoving() {
		t.Error("parked unit should not report moving")
	}

	high := mustPlaceAt(t, w, Player, fast, 5000)
	if high.Pos().X != 1850 {
		t.Errorf("placement should clamp to max_x-width, got %v", high.Pos().X)
	}
}

func TestPlayerStopsAtEnemyBase(t *testing.T) {
	w := quietWorld(t, nil)
	walker := StatBlock{HP: 10, Damage: 0, Speed: 20, Defence: 0, AttackSpeed: 0, Range: 0}
	u := mustPlaceAt(t, w, Player, walker, 100)
	w.Tick(1e6)
	if got, want := u.Box().Right(), w.EnemyBase().Box().Left(); got != want {
		t.Errorf("expected unit flush with enemy base (%v), got %v", want, got)
	}
}

func TestEnemyQueuesBehindAlly(t *testing.T) {
	w := quietWorld(t, nil)
	front := mustPlaceAt(t, w, Enemy, dummy, 600)
	runner := StatBlock{HP: 10, Damage: 0, Speed: 10, Defence: 0, AttackSpeed: 0, Range: 0}
	back := mustPlaceAt(t, w, Enemy, runner, 900)

	gap := w.Config().Spawn.QueueGap
	for i := 0; i < 100; i++ {
		w.Tick(16)
		if back.Box().OverlapsX(front.Box()) || back.Box().Left() < front.Box().Right()+gap {
			t.Fatalf("tick %d: queued unit overlaps ally (%v < %v)", i, back.Box().Left(), front.Box().Right()+gap)
		}
	}
	if back.Pos().X != 651 {
		t.Errorf("expected queued unit at 651, got %v", back.Pos().X)
	}
	if front.Pos().X != 600 {
		t.Errorf("front unit moved to %v", front.Pos().X)
	}
}

func TestEnemyNeverEntersPlayerBase(t *testing.T) {
	w := quietWorld(t, nil)
	runner := StatBlock{HP: 10, Damage: 0, Speed: 10, Defence: 0, AttackSpeed: 0, Range: 0}
	u := mustPlaceAt(t, w, Enemy, runner, 400)
	edge := w.PlayerBase().Box().Right()
	for _, d := range []float64{16, 16, 500, 1e6, 16} {
		w.Tick(d)
		if u.Box().OverlapsX(w.PlayerBase().Box()) || u.Box().Left() < edge {
			t.Fatalf("enemy at %v overlaps player base edge %v", u.Box().Left(), edge)
		}
	}
	if u.Pos().X != edge {
		t.Errorf("expected enemy parked at %v, got %v", edge, u.Pos().X)
	}
}

func TestStepDistanceHasFrameFloor(t *testing.T) {
	if got := stepDistance(1.5, 4); got != 1.5 {
		t.Errorf("sub-frame delta should move one frame, got %v", got)
	}
	if got := stepDistance(1.5, 32); got != 3 {
		t.Errorf("two frames should move 3px, got %v", got)
	}
}
