package combat

import (
	"math"

	"go.uber.org/zap"

	"lanewar/internal/config"
)

// Base is a stationary objective. It is never removed from the world; a
// destroyed base ends the match.
type Base struct {
	id   string
	side Side
	body Box
	cpu  bool

	hitPoints    int
	maxHitPoints int
	levels       *UnitLevels

	lastUnitPlacedTime float64
	lastUpgradeTime    float64
}

func NewBase(id string, side Side, def config.BaseDef, groundY float64, levels *UnitLevels, now float64) *Base {
	return &Base{
		id:   id,
		side: side,
		body: Box{
			Pos:    Vec2{X: def.X, Y: groundY - def.Height},
			Width:  def.Width,
			Height: def.Height,
		},
		cpu:                def.CPU,
		hitPoints:          def.MaxHP,
		maxHitPoints:       def.MaxHP,
		levels:             levels,
		lastUnitPlacedTime: now,
		lastUpgradeTime:    now,
	}
}

func (b *Base) ID() string              { return b.id }
func (b *Base) Side() Side              { return b.side }
func (b *Base) IsEnemy() bool           { return b.side == Enemy }
func (b *Base) IsCPU() bool             { return b.cpu }
func (b *Base) Pos() Vec2               { return b.body.Pos }
func (b *Base) Box() Box                { return b.body }
func (b *Base) Width() float64          { return b.body.Width }
func (b *Base) Height() float64         { return b.body.Height }
func (b *Base) Health() int             { return b.hitPoints }
func (b *Base) MaxHealth() int          { return b.maxHitPoints }
func (b *Base) Levels() *UnitLevels     { return b.levels }
func (b *Base) Destroyed() bool         { return b.hitPoints <= 0 }
func (b *Base) LastUnitPlaced() float64 { return b.lastUnitPlacedTime }
func (b *Base) LastUpgrade() float64    { return b.lastUpgradeTime }

// Damaged subtracts raw damage; bases have no defence.
func (b *Base) Damaged(amount float64) int {
	if amount <= 0 || math.IsNaN(amount) {
		return 0
	}
	dmg := int(math.Floor(amount))
	b.hitPoints -= dmg
	return dmg
}

// Update runs the autonomous upgrade and spawn policy. Player-controlled
// bases do nothing here.
func (b *Base) Update(w *World, now float64) {
	if !b.cpu || b.Destroyed() {
		return
	}
	sp := w.cfg.Spawn

	if now-b.lastUpgradeTime >= sp.UpgradeCooldownMs && !b.levels.IsMax() {
		if attr, ok := b.levels.UpgradeRandom(); ok {
			b.lastUpgradeTime = now
			w.upgrades++
			w.emitEvent(Event{T: now, Type: EvUpgrade, Payload: map[string]any{
				"base": b.id, "attr": attr.String(), "level": b.levels.Level(attr),
			}})
			w.log.Info("base upgraded",
				zap.String("base", b.id),
				zap.Stringer("attr", attr),
				zap.Int("level", b.levels.Level(attr)))
		}
	}

	if now-b.lastUnitPlacedTime >= sp.PlacementCooldownMs && w.canSpawn(b.side) {
		w.addUnit(w.newUnit(b.side, "", b.levels.StatBlock(), w.spawnX(b.side)))
		b.lastUnitPlacedTime = now
	}
}

// retaliate queues an extra defender when a CPU base is hit, at most once per
// retaliation cooldown. The unit joins the roster at the end of the tick.
func (b *Base) retaliate(w *World, now float64) {
	if !b.cpu || now-b.lastUnitPlacedTime < w.cfg.Spawn.RetaliationCooldownMs {
		return
	}
	if !w.canSpawn(b.side) {
		return
	}
	b.lastUnitPlacedTime = now
	w.pending = append(w.pending, w.newUnit(b.side, "", b.levels.StatBlock(), w.spawnX(b.side)))
	w.log.Debug("retaliation queued", zap.String("base", b.id))
}
