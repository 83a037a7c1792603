package combat

import (
	"encoding/json"
	"fmt"

	"lanewar/internal/config"
)

type RunOptions struct {
	TickMs        float64
	MaxDurationMs float64
	Script        *config.ScriptConfig
	Policy        PlacementPolicy
	Record        bool
	// OnFrame receives a snapshot every FrameEvery ticks (and the last one).
	OnFrame    func(Snapshot) error
	FrameEvery int
}

type MatchResult struct {
	Status     Status   `json:"status"`
	Winner     string   `json:"winner,omitempty"`
	Duration   float64  `json:"duration_ms"`
	Ticks      int      `json:"ticks"`
	Player     Tally    `json:"player"`
	Enemy      Tally    `json:"enemy"`
	Upgrades   int      `json:"upgrades"`
	OpErrors   []string `json:"op_errors,omitempty"`
	FrameError string   `json:"frame_error,omitempty"`
	Events     []Event  `json:"events,omitempty"`
	Final      Snapshot `json:"final"`
}

// RunMatch drives w with a fixed timestep until one base falls or the time
// limit is reached. Zero fields in opts fall back to the world's sim config.
func RunMatch(w *World, opts RunOptions) MatchResult {
	var events []Event
	if opts.Record {
		prev := w.emit
		w.emit = func(ev Event) {
			events = append(events, ev)
			if prev != nil {
				prev(ev)
			}
		}
		defer func() { w.emit = prev }()
	}

	logLine := func(format string, args ...any) {
		w.emitEvent(Event{T: w.now, Type: EvLogLine, Payload: map[string]any{
			"text": fmt.Sprintf(format, args...),
		}})
	}

	tick := opts.TickMs
	if tick <= 0 {
		tick = w.cfg.Sim.TickMs
	}
	limit := opts.MaxDurationMs
	if limit <= 0 {
		limit = w.cfg.Sim.MaxDurationMs
	}
	every := opts.FrameEvery
	if every <= 0 {
		every = 1
	}

	var ops []config.ScriptOp
	if opts.Script != nil {
		ops = opts.Script.Ops
	}
	res := MatchResult{}
	frame := func() {
		if opts.OnFrame == nil || res.FrameError != "" {
			return
		}
		if err := opts.OnFrame(w.Snapshot()); err != nil {
			res.FrameError = err.Error()
		}
	}

	for w.status == Ongoing && w.now < limit {
		for len(ops) > 0 && ops[0].T <= w.now {
			if err := applyOp(w, ops[0]); err != nil {
				res.OpErrors = append(res.OpErrors, err.Error())
				logLine("op %s at %.0fms failed: %v", ops[0].Op, ops[0].T, err)
			}
			ops = ops[1:]
		}
		if opts.Policy != nil {
			if name, ok := opts.Policy.Next(w); ok {
				if _, err := w.Place(Player, name); err != nil {
					res.OpErrors = append(res.OpErrors, err.Error())
				}
			}
		}

		w.Tick(tick)
		res.Ticks++
		if res.Ticks%every == 0 {
			frame()
		}
	}
	if res.Ticks%every != 0 {
		frame()
	}

	res.Status = w.status
	switch w.status {
	case PlayerDefeated:
		res.Winner = Enemy.String()
	case EnemyDefeated:
		res.Winner = Player.String()
	}
	res.Duration = w.now
	res.Player = w.tally[Player]
	res.Enemy = w.tally[Enemy]
	res.Upgrades = w.upgrades
	res.Final = w.Snapshot()
	if opts.Record {
		res.Events = events
	}
	return res
}

func applyOp(w *World, op config.ScriptOp) error {
	side, err := ParseSide(op.Side)
	if err != nil {
		return err
	}
	switch op.Op {
	case config.OpPlace:
		if op.X != 0 {
			sb, err := w.armory.Lookup(op.Unit)
			if err != nil {
				return err
			}
			_, err = w.place(side, op.Unit, sb, op.X)
			return err
		}
		_, err := w.Place(side, op.Unit)
		return err
	case config.OpSpawn:
		_, err := w.SpawnFromLevels(side)
		return err
	case config.OpUpgrade:
		attr, err := ParseAttribute(op.Attr)
		if err != nil {
			return err
		}
		return w.Upgrade(side, attr)
	}
	return fmt.Errorf("unknown op %q", op.Op)
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
