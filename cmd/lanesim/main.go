package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"lanewar/internal/combat"
	"lanewar/internal/config"
	"lanewar/internal/logging"
)

func main() {
	var cfgDir, out, scriptPath, deck, framesPath, logFile string
	var seed int64
	var n, every, frameEvery, maxPlayer int
	var saveLog, verbose, list bool
	flag.StringVar(&cfgDir, "config", "assets", "config dir (world.yaml, units.yaml)")
	flag.StringVar(&out, "out", "out.json", "output file (single) or summary file (batch)")
	flag.StringVar(&scriptPath, "script", "", "yaml script of timed player ops")
	flag.StringVar(&deck, "deck", "basic,fast,tank,ranged", "comma separated archetypes the player cycles through")
	flag.IntVar(&every, "every", 2500, "ms between automatic player placements (0 disables)")
	flag.IntVar(&maxPlayer, "max-player", 10, "cap on living player units for automatic placement")
	flag.Int64Var(&seed, "seed", 0, "seed (0 keeps the config seed)")
	flag.IntVar(&n, "n", 1, "number of simulations")
	flag.BoolVar(&saveLog, "log", true, "save full event log when n==1")
	flag.StringVar(&framesPath, "frames", "", "write a msgpack snapshot stream here when n==1")
	flag.IntVar(&frameEvery, "frame-every", 4, "ticks between snapshots in the frame stream")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.StringVar(&logFile, "logfile", "", "log to this file instead of stderr")
	flag.BoolVar(&list, "list", false, "print the unit archetypes and exit")
	flag.Parse()

	level := "info"
	if verbose {
		level = "debug"
	}
	outputs := []string{"stderr"}
	if logFile != "" {
		outputs = []string{logFile}
	}
	log, err := logging.New(level, "console", outputs)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	worldCfg, unitsCfg, err := config.LoadAll(cfgDir)
	if err != nil {
		log.Fatal("load config", zap.String("dir", cfgDir), zap.Error(err))
	}
	if seed != 0 {
		worldCfg.Sim.Seed = seed
	}
	var script *config.ScriptConfig
	if scriptPath != "" {
		if script, err = config.LoadScript(scriptPath); err != nil {
			log.Fatal("load script", zap.String("path", scriptPath), zap.Error(err))
		}
	}
	armory := combat.NewArmory(unitsCfg)
	if list {
		for _, name := range armory.Names() {
			sb, _ := armory.Lookup(name)
			fmt.Printf("%-8s hp=%g dmg=%g spd=%g def=%g as=%g rng=%g  %s\n",
				name, sb.HP, sb.Damage, sb.Speed, sb.Defence, sb.AttackSpeed, sb.Range, armory.Note(name))
		}
		return
	}
	cards := splitDeck(deck)
	for _, c := range cards {
		if _, err := armory.Lookup(c); err != nil {
			log.Fatal("bad deck", zap.Error(err))
		}
	}
	newPolicy := func() combat.PlacementPolicy {
		if every <= 0 || len(cards) == 0 {
			return nil
		}
		return &combat.CappedPolicy{
			Inner: &combat.RoundRobinPolicy{Deck: cards, Interval: float64(every)},
			Max:   maxPlayer,
		}
	}

	if n <= 1 {
		w := combat.NewWorld(worldCfg, armory, combat.Options{Logger: log})
		opts := combat.RunOptions{Script: script, Policy: newPolicy(), Record: saveLog}

		var frames *combat.FrameWriter
		if framesPath != "" {
			f, err := os.Create(framesPath)
			if err != nil {
				log.Fatal("create frames file", zap.Error(err))
			}
			defer f.Close()
			frames = combat.NewFrameWriter(f)
			opts.OnFrame = frames.Write
			opts.FrameEvery = frameEvery
		}

		res := combat.RunMatch(w, opts)
		if err := os.WriteFile(out, combat.MarshalPretty(res), 0644); err != nil {
			log.Fatal("write result", zap.Error(err))
		}
		if frames != nil {
			log.Info("frames written", zap.String("path", framesPath), zap.Int("frames", frames.Frames()))
		}
		fmt.Printf("Single lanesim finished. Status=%s, T=%.1fs, kills %d/%d -> %s\n",
			res.Status, res.Duration/1000, res.Player.Kills, res.Enemy.Kills, out)
		return
	}

	type stat struct {
		PlayerWins int
		EnemyWins  int
		Draws      int
		SumT       float64
		SumKills   [2]int
	}
	var st stat
	var mu sync.Mutex
	wg := sync.WaitGroup{}
	workers := 8
	jobs := make(chan int, n)
	quiet := zap.NewNop()
	for k := 0; k < workers; k++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				cfg := *worldCfg
				cfg.Sim.Seed = worldCfg.Sim.Seed + int64(i)*7919
				w := combat.NewWorld(&cfg, armory, combat.Options{Logger: quiet})
				res := combat.RunMatch(w, combat.RunOptions{Script: script, Policy: newPolicy()})

				mu.Lock()
				switch res.Status {
				case combat.EnemyDefeated:
					st.PlayerWins++
				case combat.PlayerDefeated:
					st.EnemyWins++
				default:
					st.Draws++
				}
				st.SumT += res.Duration
				st.SumKills[combat.Player] += res.Player.Kills
				st.SumKills[combat.Enemy] += res.Enemy.Kills
				mu.Unlock()
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	summary := map[string]any{
		"runs":             n,
		"player_win_rate":  float64(st.PlayerWins) / float64(n),
		"enemy_win_rate":   float64(st.EnemyWins) / float64(n),
		"draw_rate":        float64(st.Draws) / float64(n),
		"avg_time_ms":      st.SumT / float64(n),
		"avg_player_kills": float64(st.SumKills[combat.Player]) / float64(n),
		"avg_enemy_kills":  float64(st.SumKills[combat.Enemy]) / float64(n),
	}
	if err := os.WriteFile(out, combat.MarshalPretty(summary), 0644); err != nil {
		log.Fatal("write summary", zap.Error(err))
	}
	fmt.Printf("Batch %d done -> %s\n", n, filepath.Base(out))
}

func splitDeck(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
