package combat

import "math"

// Unit is a mobile combatant. Only base stats and proficiency are stored;
// the effective combat numbers are derived on every read.
type Unit struct {
	id        string
	archetype string
	side      Side
	body      Box
	stats     StatBlock

	hitPoints    int
	maxHitPoints int
	proficiency  int
	kills        int

	lastAttackTime float64
	lastDamagedBy  *Unit
	removed        bool

	moving    bool
	attacking bool
}

// NewUnit builds a unit whose cooldown clock starts at now. Proficiency is
// seeded from the block's damage and speed and also pads the starting hit
// points.
func NewUnit(id string, side Side, sb StatBlock, body Box, now float64) *Unit {
	prof := int(math.Floor((2*sb.Damage + sb.Speed) / 3))
	if prof < 0 {
		prof = 0
	}
	return &Unit{
		id:             id,
		side:           side,
		body:           body,
		stats:          sb,
		hitPoints:      int(sb.HP) + prof,
		maxHitPoints:   int(sb.HP),
		proficiency:    prof,
		lastAttackTime: now,
	}
}

func (u *Unit) ID() string        { return u.id }
func (u *Unit) Archetype() string { return u.archetype }
func (u *Unit) Side() Side        { return u.side }
func (u *Unit) IsEnemy() bool     { return u.side == Enemy }
func (u *Unit) Pos() Vec2         { return u.body.Pos }
func (u *Unit) Box() Box          { return u.body }
func (u *Unit) Width() float64    { return u.body.Width }
func (u *Unit) Height() float64   { return u.body.Height }
func (u *Unit) Health() int       { return u.hitPoints }
func (u *Unit) MaxHealth() int    { return u.maxHitPoints }
func (u *Unit) Stats() StatBlock  { return u.stats }
func (u *Unit) Proficiency() int  { return u.proficiency }
func (u *Unit) Kills() int        { return u.kills }
func (u *Unit) IsMoving() bool    { return u.moving }
func (u *Unit) IsAttacking() bool { return u.attacking }

func (u *Unit) LastAttackTime() float64 { return u.lastAttackTime }
func (u *Unit) LastDamagedBy() *Unit    { return u.lastDamagedBy }

// Dead reports hp <= 0. A dead unit stays in the roster until the sweep.
func (u *Unit) Dead() bool { return u.hitPoints <= 0 }

func (u *Unit) MarkedForRemoval() bool { return u.removed }

func (u *Unit) AtkDamage() float64 { return u.stats.Damage + float64(u.proficiency) }
func (u *Unit) Speed() float64     { return u.stats.Speed + float64(u.proficiency)*0.5 }
func (u *Unit) AtkSpeed() float64  { return u.stats.AttackSpeed + float64(u.proficiency)*0.5 }
func (u *Unit) Defence() float64   { return u.stats.Defence + float64(u.proficiency) }
func (u *Unit) Range() float64     { return u.stats.Range }

// Damaged applies raw damage through defence and returns the hit points lost.
func (u *Unit) Damaged(raw float64) int {
	eff := raw - u.Defence()
	if eff <= 0 || math.IsNaN(eff) {
		return 0
	}
	dmg := int(math.Floor(eff))
	u.hitPoints -= dmg
	if u.hitPoints <= 0 {
		u.removed = true
	}
	return dmg
}

func (u *Unit) EnemyKilled(profGain int) {
	if profGain < 1 {
		profGain = 1
	}
	u.proficiency += profGain
	u.hitPoints += profGain
}

// stepDistance converts a px-per-16ms speed into a displacement for delta ms.
// Anything below one nominal frame still moves a full frame.
func stepDistance(speed, deltaMs float64) float64 {
	return speed / 16 * math.Max(16, deltaMs)
}

// Update runs one tick of behaviour. Reads of other entities go through w;
// the only writes to them are strikes.
func (u *Unit) Update(w *World, deltaMs float64) {
	u.moving = false
	u.attacking = false
	if u.Dead() {
		return
	}
	if u.engage(w) {
		return
	}
	if u.side == Enemy {
		u.advanceEnemy(w, deltaMs)
	} else {
		u.advancePlayer(w, deltaMs)
	}
}

// engage strikes whatever is in reach and reports whether the unit must hold.
func (u *Unit) engage(w *World) bool {
	now := w.Now()
	target := w.FrontUnit(u.side.Opponent())
	if target != nil {
		if !inReach(u, target.Box()) {
			return false
		}
		u.attacking = true
		strikeUnit(w, u, target, now)
		return true
	}
	base := w.Base(u.side.Opponent())
	if inReach(u, base.Box()) {
		u.attacking = true
		strikeBase(w, u, base, now)
		return true
	}
	return false
}

func (u *Unit) advancePlayer(w *World, deltaMs float64) {
	lane := w.cfg.Lane
	x := u.body.Pos.X
	nx := x + stepDistance(u.Speed(), deltaMs)
	if limit := w.enemy.Box().Left() - u.Width(); nx > limit {
		nx = math.Max(limit, x)
	}
	nx = clamp(nx, lane.MinX, lane.MaxX-u.Width())
	u.moving = nx > x
	u.body.Pos.X = nx
}

// advanceEnemy walks left but never into the player base or the ally queued
// ahead of it in roster order.
func (u *Unit) advanceEnemy(w *World, deltaMs float64) {
	x := u.body.Pos.X
	nx := x - stepDistance(u.Speed(), deltaMs)
	limit := w.player.Box().Right()
	if ally := w.allyAhead(u); ally != nil {
		limit = math.Max(limit, ally.Box().Right()+w.cfg.Spawn.QueueGap)
	}
	if nx < limit {
		nx = limit
	}
	if nx >= x {
		return
	}
	u.moving = true
	u.body.Pos.X = nx
}
