package main

import (
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.design/x/clipboard"

	"github.com/milk9111/mutantfps/assets"
	"github.com/milk9111/mutantfps/input"
	"github.com/milk9111/mutantfps/prefabs"
	"github.com/milk9111/mutantfps/scene"
	"github.com/milk9111/mutantfps/sfx"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Options struct {
	Debug      bool
	Difficulty int
	Seed       int64
}

type Game struct {
	logger *zap.Logger
	opts   Options

	inv     *assets.Inventory
	specs   scene.Specs
	watcher *prefabs.Watcher
	voice   sfx.Voice

	source *input.EbitenSource
	in     *input.State
	scene  *scene.Scene

	menu      *ebitenui.UI
	inMenu    bool
	status    string
	quit      bool
	clipboard bool
}

func NewGame(logger *zap.Logger, opts Options) (*Game, error) {
	inv, err := assets.Load()
	if err != nil {
		return nil, errors.Wrap(err, "load assets")
	}
	specs, err := scene.LoadSpecs()
	if err != nil {
		return nil, errors.Wrap(err, "load prefabs")
	}

	g := &Game{
		logger: logger,
		opts:   opts,
		inv:    inv,
		specs:  specs,
		source: input.NewEbitenSource(),
		in:     input.NewState(),
		inMenu: true,
		status: "Click to look around, WASD to move, R to reload",
	}

	pcm, err := inv.Sound(assets.Ak47Shot)
	if err != nil {
		return nil, err
	}
	g.voice = sfx.NewVoice(audio.NewContext(assets.SampleRate), pcm)

	// prefab edits on disk are picked up on the next start
	if g.watcher, err = prefabs.NewWatcher(logger, "prefabs", "prefabs/scripts"); err != nil {
		logger.Warn("prefab hot reload disabled", zap.Error(err))
	}
	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable", zap.Error(err))
	} else {
		g.clipboard = true
	}

	g.menu = NewMenuUI(g)
	return g, nil
}

func (g *Game) Close() {
	if err := g.watcher.Close(); err != nil {
		g.logger.Warn("close prefab watcher", zap.Error(err))
	}
}

func (g *Game) reloadSpecs() {
	changed := g.watcher.Drain()
	if len(changed) == 0 {
		return
	}
	specs, err := scene.LoadSpecs()
	if err != nil {
		g.logger.Error("reload prefabs", zap.Strings("files", changed), zap.Error(err))
		return
	}
	g.specs = specs
	g.logger.Info("prefabs reloaded", zap.Strings("files", changed))
}

// StartGame throws away any running scene and builds a fresh one.
func (g *Game) StartGame() {
	g.reloadSpecs()
	s, err := scene.New(g.specs, g.inv, scene.Options{
		Logger:     g.logger,
		Input:      g.in,
		Difficulty: g.opts.Difficulty,
		Seed:       g.opts.Seed,
		ShotVoice:  g.voice,
	})
	if err != nil {
		g.logger.Error("scene setup failed", zap.Error(err))
		g.status = "Failed to start: " + err.Error()
		return
	}
	g.scene = s
	g.inMenu = false
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
}

func (g *Game) backToMenu(status string) {
	g.inMenu = true
	g.status = status
	g.menu = NewMenuUI(g)
	ebiten.SetCursorMode(ebiten.CursorModeVisible)
}

func (g *Game) copyReport() {
	report := g.scene.Report()
	if !g.clipboard {
		g.logger.Info("debug report", zap.String("report", report))
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(report))
	g.logger.Info("debug report copied to clipboard")
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if g.inMenu {
		g.menu.Update()
		return nil
	}

	g.source.Poll(g.in)
	if g.in.Pressed(input.KeyEscape) {
		g.backToMenu("Paused")
		return nil
	}
	if !g.in.Locked && g.in.MousePressed() {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	}
	if g.in.Pressed(input.KeyF9) {
		g.copyReport()
	}

	g.scene.Step(1.0 / float64(ebiten.TPS()))

	if g.scene.GameOver() {
		g.logger.Info("player died", zap.Float64("time", g.scene.Elapsed()))
		g.scene = nil
		g.backToMenu("You died")
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.scene != nil {
		drawScene(screen, g.scene, g.opts.Debug)
	}
	if g.inMenu {
		g.menu.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
