package combat

import (
	"fmt"
	"sort"

	"lanewar/internal/config"
)

// Armory resolves archetype names to their StatBlocks.
type Armory struct {
	byName map[string]StatBlock
	notes  map[string]string
}

func NewArmory(cfg *config.UnitsConfig) *Armory {
	if cfg == nil {
		cfg = config.DefaultUnits()
	}
	a := &Armory{
		byName: map[string]StatBlock{},
		notes:  map[string]string{},
	}
	for _, u := range cfg.Units {
		a.byName[u.ID] = StatBlockFrom(u.Stats)
		if u.Note != "" {
			a.notes[u.ID] = u.Note
		}
	}
	return a
}

func (a *Armory) Lookup(name string) (StatBlock, error) {
	sb, ok := a.byName[name]
	if !ok {
		return StatBlock{}, fmt.Errorf("%w: %q", ErrUnknownArchetype, name)
	}
	return sb, nil
}

func (a *Armory) Note(name string) string { return a.notes[name] }

func (a *Armory) Names() []string {
	out := make([]string, 0, len(a.byName))
	for n := range a.byName {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
