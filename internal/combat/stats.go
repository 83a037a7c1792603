package combat

import (
	"fmt"
	"math"
	"strings"

	"lanewar/internal/config"
)

const MaxLevel = 10

// StatBlock holds the level-1 numbers of a unit archetype. It is a value
// type; upgrades produce a new one.
type StatBlock struct {
	HP          float64 `json:"hp" msgpack:"hp"`
	Damage      float64 `json:"damage" msgpack:"damage"`
	Speed       float64 `json:"speed" msgpack:"speed"`
	Defence     float64 `json:"defence" msgpack:"defence"`
	AttackSpeed float64 `json:"attack_speed" msgpack:"attack_speed"`
	Range       float64 `json:"range" msgpack:"range"`
}

func StatBlockFrom(d config.StatDef) StatBlock {
	return StatBlock{
		HP: d.HP, Damage: d.Damage, Speed: d.Speed,
		Defence: d.Defence, AttackSpeed: d.AttackSpeed, Range: d.Range,
	}
}

func (s StatBlock) get(a Attribute) float64 {
	switch a {
	case AttrHP:
		return s.HP
	case AttrDamage:
		return s.Damage
	case AttrSpeed:
		return s.Speed
	case AttrDefence:
		return s.Defence
	case AttrAttackSpeed:
		return s.AttackSpeed
	case AttrRange:
		return s.Range
	}
	return 0
}

// Mul scales each stat by the matching field of k.
func (s StatBlock) Mul(k StatBlock) StatBlock {
	return StatBlock{
		HP: s.HP * k.HP, Damage: s.Damage * k.Damage, Speed: s.Speed * k.Speed,
		Defence: s.Defence * k.Defence, AttackSpeed: s.AttackSpeed * k.AttackSpeed, Range: s.Range * k.Range,
	}
}

type Attribute int

const (
	AttrHP Attribute = iota
	AttrDamage
	AttrSpeed
	AttrDefence
	AttrAttackSpeed
	AttrRange
	numAttributes
)

var attrNames = [numAttributes]string{"hp", "damage", "speed", "defence", "attack_speed", "range"}

func (a Attribute) String() string {
	if a < 0 || a >= numAttributes {
		return fmt.Sprintf("attribute(%d)", int(a))
	}
	return attrNames[a]
}

func (a Attribute) valid() bool { return a >= 0 && a < numAttributes }

func ParseAttribute(s string) (Attribute, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range attrNames {
		if n == s {
			return Attribute(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAttribute, s)
}

// Source is the slice of *rand.Rand the upgrade roll needs.
type Source interface {
	Intn(n int) int
}

// UnitLevels is the upgrade state a base spawns its units with.
type UnitLevels struct {
	levels [numAttributes]int
	scale  StatBlock
	rng    Source
}

func NewUnitLevels(rng Source) *UnitLevels {
	ul := &UnitLevels{rng: rng, scale: StatBlock{1, 1, 1, 1, 1, 1}}
	for i := range ul.levels {
		ul.levels[i] = 1
	}
	return ul
}

// UnitLevelsFrom interprets sb as a level vector, clamping every entry to
// [1, MaxLevel].
func UnitLevelsFrom(sb StatBlock, rng Source) *UnitLevels {
	ul := NewUnitLevels(rng)
	for a := Attribute(0); a < numAttributes; a++ {
		ul.levels[a] = int(clamp(math.Floor(sb.get(a)), 1, MaxLevel))
	}
	return ul
}

// SetScale sets the per-attribute multiplier applied by StatBlock.
func (ul *UnitLevels) SetScale(k StatBlock) { ul.scale = k }

func (ul *UnitLevels) Level(a Attribute) int {
	if !a.valid() {
		return 0
	}
	return ul.levels[a]
}

func (ul *UnitLevels) IsMax() bool {
	for _, l := range ul.levels {
		if l < MaxLevel {
			return false
		}
	}
	return true
}

func (ul *UnitLevels) Upgrade(a Attribute) error {
	if !a.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownAttribute, int(a))
	}
	if ul.levels[a] >= MaxLevel {
		return fmt.Errorf("upgrade %s: %w", a, ErrInvalidUpgrade)
	}
	ul.levels[a]++
	return nil
}

// UpgradeRandom raises one attribute chosen uniformly among those still
// below MaxLevel. It reports false and changes nothing once IsMax holds.
func (ul *UnitLevels) UpgradeRandom() (Attribute, bool) {
	var eligible []Attribute
	for a := Attribute(0); a < numAttributes; a++ {
		if ul.levels[a] < MaxLevel {
			eligible = append(eligible, a)
		}
	}
	if len(eligible) == 0 {
		return 0, false
	}
	pick := 0
	if ul.rng != nil && len(eligible) > 1 {
		pick = ul.rng.Intn(len(eligible))
	}
	a := eligible[pick]
	ul.levels[a]++
	return a, true
}

func (ul *UnitLevels) StatBlock() StatBlock {
	sb := StatBlock{
		HP:          float64(ul.levels[AttrHP]),
		Damage:      float64(ul.levels[AttrDamage]),
		Speed:       float64(ul.levels[AttrSpeed]),
		Defence:     float64(ul.levels[AttrDefence]),
		AttackSpeed: float64(ul.levels[AttrAttackSpeed]),
		Range:       float64(ul.levels[AttrRange]),
	}
	return sb.Mul(ul.scale)
}

// Levels returns a copy keyed by attribute name, for snapshots and logs.
func (ul *UnitLevels) Levels() map[string]int {
	out := make(map[string]int, numAttributes)
	for a := Attribute(0); a < numAttributes; a++ {
		out[a.String()] = ul.levels[a]
	}
	return out
}
