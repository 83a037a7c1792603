package combat

import (
	"math"

	"go.uber.org/zap"
)

// inReach measures the gap from u's leading edge to the near edge of box in
// u's direction of travel. A target that has slipped behind u is always in
// reach.
func inReach(u *Unit, box Box) bool {
	var gap float64
	if u.side == Enemy {
		gap = u.body.Left() - box.Right()
	} else {
		gap = box.Left() - u.body.Right()
	}
	return gap <= u.Range()
}

// attackInterval is the minimum ms between two strikes.
func attackInterval(u *Unit) float64 {
	as := u.AtkSpeed()
	if as <= 0 {
		return math.Inf(1)
	}
	return 1000 / as
}

func cooldownReady(u *Unit, now float64) bool {
	return now-u.lastAttackTime >= attackInterval(u)
}

// strikeUnit is the single path by which a unit hurts another unit.
func strikeUnit(w *World, u, target *Unit, now float64) bool {
	if target.Dead() || target.side == u.side || !cooldownReady(u, now) {
		return false
	}
	u.lastAttackTime = now
	target.lastDamagedBy = u
	dealt := target.Damaged(u.AtkDamage())

	w.emitEvent(Event{T: now, Type: EvHit, Payload: map[string]any{
		"caster": u.id, "target": target.id, "raw": u.AtkDamage(), "dmg": dealt, "hp": target.hitPoints,
	}})
	w.log.Debug("strike",
		zap.String("attacker", u.id),
		zap.String("target", target.id),
		zap.Int("dealt", dealt),
		zap.Int("target_hp", target.hitPoints))
	return true
}

func strikeBase(w *World, u *Unit, b *Base, now float64) bool {
	if b.side == u.side || b.Destroyed() || !cooldownReady(u, now) {
		return false
	}
	u.lastAttackTime = now
	dealt := b.Damaged(u.AtkDamage())
	w.tally[u.side].BaseDamage += dealt

	w.emitEvent(Event{T: now, Type: EvBaseHit, Payload: map[string]any{
		"caster": u.id, "base": b.id, "dmg": dealt, "hp": b.hitPoints,
	}})
	w.log.Debug("base strike",
		zap.String("attacker", u.id),
		zap.String("base", b.id),
		zap.Int("dealt", dealt),
		zap.Int("base_hp", b.hitPoints))

	if b.Destroyed() {
		w.finish(b.side)
		return true
	}
	b.retaliate(w, now)
	return true
}
