// Package main runs one arena match between the personalities named in the
// configuration's roster.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/siomorehead/Fighter-Robot/internal/arena"
	"github.com/siomorehead/Fighter-Robot/internal/config"
	"github.com/siomorehead/Fighter-Robot/internal/game/ai"
	"github.com/siomorehead/Fighter-Robot/internal/game/dice"
	"github.com/siomorehead/Fighter-Robot/internal/lifecycle"
	"github.com/siomorehead/Fighter-Robot/internal/observability"
	"github.com/siomorehead/Fighter-Robot/internal/scripting"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	seed := flag.Int64("seed", 0, "overrides arena.seed when non-zero")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *seed != 0 {
		cfg.Arena.Seed = *seed
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	variants, err := ai.LoadVariants(cfg.Content.VariantsDir)
	if err != nil {
		logger.Fatal("loading variants", zap.Error(err))
	}
	registry := ai.NewRegistry()
	for _, v := range variants {
		if err := registry.Register(v); err != nil {
			logger.Fatal("registering variant", zap.Error(err))
		}
	}
	logger.Info("loaded variants", zap.Strings("ids", registry.IDs()))

	roster := make([]*ai.Variant, 0, len(cfg.Match.Roster))
	for _, id := range cfg.Match.Roster {
		v, ok := registry.VariantFor(id)
		if !ok {
			logger.Fatal("roster references unknown variant", zap.String("variant", id))
		}
		roster = append(roster, v)
	}

	var src dice.Source
	if cfg.Arena.Seed != 0 {
		src = dice.NewSeededSource(cfg.Arena.Seed)
	} else {
		src = dice.NewCryptoSource()
	}
	roller := dice.NewLoggedRoller(src, logger)

	var scripts ai.ScriptCaller
	var scriptMgr *scripting.Manager
	if cfg.Content.ScriptsDir != "" {
		scriptMgr = loadScripts(cfg.Content, roster, roller, logger)
		defer scriptMgr.Close()
		scripts = scriptMgr
	}

	match, err := arena.New(cfg.Arena, roster, roller, scripts, logger)
	if err != nil {
		logger.Fatal("creating arena", zap.Error(err))
	}
	if scriptMgr != nil {
		scriptMgr.GetRobot = match.RobotInfo
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var result arena.Result
	finished := make(chan struct{})
	lc := lifecycle.New(logger)
	lc.Add("match", &lifecycle.FuncService{
		StartFn: func() error {
			defer close(finished)
			res, err := match.Run(ctx)
			result = res
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
		StopFn: cancel,
	})

	logger.Info("arena initialized",
		zap.String("match", match.ID().String()),
		zap.Int("robots", len(roster)),
		zap.Bool("seeded", cfg.Arena.Seed != 0),
		zap.Duration("startup", time.Since(start)),
	)

	if err := lc.Run(context.Background()); err != nil {
		logger.Fatal("match error", zap.Error(err))
	}

	<-finished
	logger.Info("final standings",
		zap.Int("turns", result.Turns),
		zap.Int("winner", result.Winner),
	)
	for place, s := range result.Standings {
		logger.Info("standing",
			zap.Int("place", place+1),
			zap.Int("robot", s.ID),
			zap.String("variant", s.Variant),
			zap.Int("energy", s.Energy),
			zap.String("label", s.Label),
		)
	}
}

// loadScripts builds the Lua manager: shared hooks from the scripts root, and
// per-variant overrides from a subdirectory named after the variant id.
func loadScripts(cc config.ContentConfig, roster []*ai.Variant, roller *dice.Roller, logger *zap.Logger) *scripting.Manager {
	mgr := scripting.NewManager(roller, logger)
	if err := mgr.LoadGlobal(cc.ScriptsDir, cc.ScriptInstructionLimit); err != nil {
		logger.Fatal("loading global scripts", zap.Error(err))
	}
	seen := make(map[string]bool, len(roster))
	for _, v := range roster {
		if seen[v.ID] {
			continue
		}
		seen[v.ID] = true
		dir := filepath.Join(cc.ScriptsDir, v.ID)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if err := mgr.LoadScope(v.ID, dir, cc.ScriptInstructionLimit); err != nil {
			logger.Fatal("loading variant scripts", zap.String("variant", v.ID), zap.Error(err))
		}
	}
	logger.Info("loaded scripts", zap.Strings("scopes", mgr.Scopes()))
	return mgr
}
