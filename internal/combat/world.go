package combat

import (
	"fmt"
	"io"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lanewar/internal/config"
	"lanewar/internal/util"
)

// Tally counts what one side did over a match.
type Tally struct {
	Spawned    int `json:"spawned" msgpack:"spawned"`
	Kills      int `json:"kills" msgpack:"kills"`
	Lost       int `json:"lost" msgpack:"lost"`
	BaseDamage int `json:"base_damage" msgpack:"base_damage"`
}

type Options struct {
	// Rng drives random upgrade picks. Defaults to a stream derived from cfg.Sim.Seed.
	Rng Source
	// IDs is the entropy behind unit IDs. Defaults to a second derived stream.
	IDs    io.Reader
	Logger *zap.Logger
	Emit   func(Event)
}

// World owns the roster and both bases. All mutation of the roster happens
// inside Tick or through the placement methods, never while units update.
type World struct {
	cfg    *config.WorldConfig
	armory *Armory

	player *Base
	enemy  *Base
	units  []*Unit
	// pending holds units requested mid-tick; they join at the sweep.
	pending []*Unit

	now    float64
	status Status

	ids      io.Reader
	seq      int
	log      *zap.Logger
	emit     func(Event)
	tally    [2]Tally
	upgrades int
}

func NewWorld(cfg *config.WorldConfig, armory *Armory, opts Options) *World {
	if cfg == nil {
		cfg = config.DefaultWorld()
	}
	if armory == nil {
		armory = NewArmory(nil)
	}
	rng := opts.Rng
	if rng == nil {
		rng = util.Derive(cfg.Sim.Seed, "levels")
	}
	ids := opts.IDs
	if ids == nil {
		ids = util.Derive(cfg.Sim.Seed, "ids")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	w := &World{
		cfg:    cfg,
		armory: armory,
		ids:    ids,
		log:    log,
		emit:   opts.Emit,
	}
	scale := StatBlockFrom(cfg.LevelScale)

	pl := NewUnitLevels(rng)
	pl.SetScale(scale)
	el := NewUnitLevels(rng)
	el.SetScale(scale)
	w.player = NewBase("player-base", Player, cfg.Bases.Player, cfg.Lane.GroundY, pl, 0)
	w.enemy = NewBase("enemy-base", Enemy, cfg.Bases.Enemy, cfg.Lane.GroundY, el, 0)
	return w
}

func (w *World) Config() *config.WorldConfig { return w.cfg }
func (w *World) Armory() *Armory             { return w.armory }
func (w *World) Now() float64                { return w.now }
func (w *World) Status() Status              { return w.status }
func (w *World) PlayerBase() *Base           { return w.player }
func (w *World) EnemyBase() *Base            { return w.enemy }
func (w *World) Tally(s Side) Tally          { return w.tally[s] }
func (w *World) Upgrades() int               { return w.upgrades }

func (w *World) Base(s Side) *Base {
	if s == Enemy {
		return w.enemy
	}
	return w.player
}

// Units returns the roster in insertion order.
func (w *World) Units() []*Unit {
	out := make([]*Unit, len(w.units))
	copy(out, w.units)
	return out
}

func (w *World) LiveUnits(s Side) []*Unit {
	var out []*Unit
	for _, u := range w.units {
		if u.side == s && !u.Dead() {
			out = append(out, u)
		}
	}
	return out
}

func (w *World) LiveCount(s Side) int {
	n := 0
	for _, u := range w.units {
		if u.side == s && !u.Dead() {
			n++
		}
	}
	return n
}

// FrontUnit is the living unit of side s furthest along its direction of
// travel: max x for the player, min x for the enemy. Ties go to the earliest
// in roster order.
func (w *World) FrontUnit(s Side) *Unit {
	var best *Unit
	for _, u := range w.units {
		if u.side != s || u.Dead() {
			continue
		}
		if best == nil {
			best = u
			continue
		}
		if s == Player && u.body.Pos.X > best.body.Pos.X {
			best = u
		}
		if s == Enemy && u.body.Pos.X < best.body.Pos.X {
			best = u
		}
	}
	return best
}

// allyAhead is the closest earlier living unit of the same side in roster order.
func (w *World) allyAhead(u *Unit) *Unit {
	var ahead *Unit
	for _, o := range w.units {
		if o == u {
			return ahead
		}
		if o.side == u.side && !o.Dead() {
			ahead = o
		}
	}
	return ahead
}

// Tick advances the simulation by deltaMs. Negative or NaN deltas count as 0.
// Once the match is decided Tick does nothing.
func (w *World) Tick(deltaMs float64) {
	if w.status != Ongoing {
		return
	}
	if deltaMs < 0 || math.IsNaN(deltaMs) {
		deltaMs = 0
	}
	w.now += deltaMs

	w.player.Update(w, w.now)
	w.enemy.Update(w, w.now)

	for i := 0; i < len(w.units) && w.status == Ongoing; i++ {
		u := w.units[i]
		if u.Dead() {
			continue
		}
		u.Update(w, deltaMs)
	}
	w.sweep()
}

// TickAt advances to an absolute clock reading. Readings behind the world
// clock are ignored.
func (w *World) TickAt(now float64) {
	if now < w.now {
		return
	}
	w.Tick(now - w.now)
}

func (w *World) sweep() {
	var removed []*Unit
	alive := w.units[:0]
	for _, u := range w.units {
		if u.removed || u.Dead() {
			u.removed = true
			removed = append(removed, u)
			continue
		}
		alive = append(alive, u)
	}
	for i := len(alive); i < len(w.units); i++ {
		w.units[i] = nil
	}
	w.units = alive

	for _, r := range removed {
		w.tally[r.side].Lost++
		killer := r.lastDamagedBy
		if killer == nil || killer.removed {
			continue
		}
		killer.EnemyKilled(r.proficiency)
		killer.kills++
		w.tally[killer.side].Kills++
		w.emitEvent(Event{T: w.now, Type: EvKill, Payload: map[string]any{
			"killer": killer.id, "victim": r.id, "proficiency": killer.proficiency,
		}})
		w.log.Debug("kill",
			zap.String("killer", killer.id),
			zap.String("victim", r.id),
			zap.Int("proficiency", killer.proficiency))
	}

	if w.status != Ongoing {
		w.pending = nil
		return
	}
	for _, u := range w.pending {
		if w.spawnBlocked(u.side) {
			continue
		}
		w.addUnit(u)
	}
	w.pending = w.pending[:0]
}

func (w *World) finish(fallen Side) {
	if w.status != Ongoing {
		return
	}
	if fallen == Player {
		w.status = PlayerDefeated
	} else {
		w.status = EnemyDefeated
	}
	w.emitEvent(Event{T: w.now, Type: EvGameOver, Payload: map[string]any{
		"status": w.status.String(), "winner": fallen.Opponent().String(),
	}})
	w.log.Info("game over",
		zap.Stringer("status", w.status),
		zap.Float64("t_ms", w.now))
}

// Place puts a preset archetype at its side's spawn point.
func (w *World) Place(s Side, archetype string) (*Unit, error) {
	sb, err := w.armory.Lookup(archetype)
	if err != nil {
		return nil, err
	}
	return w.place(s, archetype, sb, w.spawnX(s))
}

// PlaceAt puts a unit with an explicit StatBlock at x, fitted into the open
// lane. Enemies join behind the tail of their queue.
func (w *World) PlaceAt(s Side, sb StatBlock, x float64) (*Unit, error) {
	return w.place(s, "", sb, x)
}

func (w *World) place(s Side, archetype string, sb StatBlock, x float64) (*Unit, error) {
	if w.status != Ongoing {
		return nil, ErrGameOver
	}
	x, err := w.placementX(s, x)
	if err != nil {
		return nil, err
	}
	u := w.newUnit(s, archetype, sb, x)
	w.addUnit(u)
	return u, nil
}

// SpawnFromLevels places a unit built from the side's current base levels.
func (w *World) SpawnFromLevels(s Side) (*Unit, error) {
	return w.PlaceAt(s, w.Base(s).levels.StatBlock(), w.spawnX(s))
}

// Upgrade raises one attribute of the side's base levels.
func (w *World) Upgrade(s Side, attr Attribute) error {
	if w.status != Ongoing {
		return ErrGameOver
	}
	b := w.Base(s)
	if err := b.levels.Upgrade(attr); err != nil {
		return fmt.Errorf("%s: %w", b.id, err)
	}
	w.upgrades++
	w.emitEvent(Event{T: w.now, Type: EvUpgrade, Payload: map[string]any{
		"base": b.id, "attr": attr.String(), "level": b.levels.Level(attr),
	}})
	return nil
}

// placementX fits a requested x into the open lane between the two bases.
// Enemies also go behind the tail of their queue so roster order stays
// queue order.
func (w *World) placementX(s Side, x float64) (float64, error) {
	width := w.cfg.Unit.Width
	lo := math.Max(w.cfg.Lane.MinX, w.player.Box().Right())
	hi := w.cfg.Lane.MaxX - width
	if s == Player {
		lo = w.cfg.Lane.MinX
		hi = math.Min(w.cfg.Lane.MaxX, w.enemy.Box().Left()) - width
	}
	x = clamp(x, lo, hi)
	if s == Enemy {
		if tail := w.tail(Enemy); tail != nil {
			x = math.Max(x, tail.Box().Right()+w.cfg.Spawn.QueueGap)
		}
		if x > hi {
			return 0, fmt.Errorf("%s unit at %.0f: %w", s, x, ErrLaneFull)
		}
	}
	return x, nil
}

// tail is the newest living unit of side s.
func (w *World) tail(s Side) *Unit {
	var tail *Unit
	for _, u := range w.units {
		if u.side == s && !u.Dead() {
			tail = u
		}
	}
	return tail
}

func (w *World) spawnX(s Side) float64 {
	off := w.cfg.Spawn.SpawnOffset
	if s == Enemy {
		return w.enemy.Box().Left() - off - w.cfg.Unit.Width
	}
	return w.player.Box().Right() + off
}

// spawnBlocked reports whether a new unit at the side's spawn point would
// land on the newest unit of that side.
func (w *World) spawnBlocked(s Side) bool {
	tail := w.tail(s)
	if tail == nil {
		return false
	}
	gap := w.cfg.Spawn.QueueGap
	if s == Enemy {
		return tail.Box().Right()+gap > w.spawnX(Enemy)
	}
	return tail.Box().Left()-gap < w.spawnX(Player)+w.cfg.Unit.Width
}

func (w *World) canSpawn(s Side) bool {
	if w.status != Ongoing {
		return false
	}
	n := w.LiveCount(s)
	for _, u := range w.pending {
		if u.side == s {
			n++
		}
	}
	return n < w.cfg.Spawn.MaxUnits && !w.spawnBlocked(s)
}

func (w *World) newUnit(s Side, archetype string, sb StatBlock, x float64) *Unit {
	box := Box{
		Pos:    Vec2{X: x, Y: w.cfg.Lane.GroundY - w.cfg.Unit.Height},
		Width:  w.cfg.Unit.Width,
		Height: w.cfg.Unit.Height,
	}
	u := NewUnit(w.nextID(), s, sb, box, w.now)
	u.archetype = archetype
	return u
}

func (w *World) addUnit(u *Unit) {
	w.units = append(w.units, u)
	w.tally[u.side].Spawned++
	w.emitEvent(Event{T: w.now, Type: EvSpawn, Payload: map[string]any{
		"id": u.id, "side": u.side.String(), "x": u.body.Pos.X, "y": u.body.Pos.Y,
		"hp": u.hitPoints, "max_hp": u.maxHitPoints, "archetype": u.archetype,
	}})
	w.log.Info("unit spawned",
		zap.String("id", u.id),
		zap.Stringer("side", u.side),
		zap.Float64("x", u.body.Pos.X),
		zap.Int("hp", u.hitPoints))
}

func (w *World) nextID() string {
	w.seq++
	id, err := uuid.NewRandomFromReader(w.ids)
	if err != nil {
		return fmt.Sprintf("u-%d", w.seq)
	}
	return id.String()
}

func (w *World) emitEvent(ev Event) {
	if w.emit != nil {
		w.emit(ev)
	}
}
