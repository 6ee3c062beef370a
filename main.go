package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger(level string, debug bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	config := zap.NewProductionConfig()
	if debug {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.DisableCaller = true
	return config.Build()
}

func main() {
	debug := flag.Bool("debug", false, "draw navigation paths, facing arrows and the state report")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	difficulty := flag.Int("difficulty", 0, "extra mutants and ammo added by the level script")
	seed := flag.Int64("seed", 1, "random seed for patrols, decals and muzzle flashes")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	logger, err := newLogger(*logLevel, *debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("mutantfps")

	game, err := NewGame(logger, Options{Debug: *debug, Difficulty: *difficulty, Seed: *seed})
	if err != nil {
		logger.Fatal("game setup failed", zap.Error(err))
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("game exited", zap.Error(err))
	}
}
