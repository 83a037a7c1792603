package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return nil
}

// LoadAll reads world.yaml and units.yaml from dir. A missing file falls back
// to the built-in defaults; a malformed one is an error. world.yaml is decoded
// over DefaultWorld, so keys it leaves out keep their defaults and explicit
// zeros stay zero.
func LoadAll(dir string) (*WorldConfig, *UnitsConfig, error) {
	wc := DefaultWorld()
	if err := loadYAML(filepath.Join(dir, "world.yaml"), wc); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, err
		}
		wc = DefaultWorld()
	}
	if err := wc.Validate(); err != nil {
		return nil, nil, err
	}

	uc := &UnitsConfig{}
	if err := loadYAML(filepath.Join(dir, "units.yaml"), uc); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, err
		}
		uc = DefaultUnits()
	}
	if err := uc.Validate(); err != nil {
		return nil, nil, err
	}
	return wc, uc, nil
}

func LoadScript(path string) (*ScriptConfig, error) {
	var sc ScriptConfig
	if err := loadYAML(path, &sc); err != nil {
		return nil, err
	}
	sort.SliceStable(sc.Ops, func(i, j int) bool { return sc.Ops[i].T < sc.Ops[j].T })
	return &sc, nil
}

func (c *UnitsConfig) Validate() error {
	seen := map[string]bool{}
	for _, u := range c.Units {
		if u.ID == "" {
			return errors.New("units.yaml: unit without id")
		}
		if seen[u.ID] {
			return fmt.Errorf("units.yaml: duplicate unit %q", u.ID)
		}
		seen[u.ID] = true
		s := u.Stats
		if s.HP < 0 || s.Damage < 0 || s.Speed < 0 || s.Defence < 0 || s.AttackSpeed < 0 || s.Range < 0 {
			return fmt.Errorf("units.yaml: unit %q has negative stats", u.ID)
		}
	}
	return nil
}
