package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/milk9111/tilepath/levels"
	"github.com/milk9111/tilepath/prefabs"
	"github.com/milk9111/tilepath/sim"
)

type Options struct {
	Level     string
	ShowGraph bool
	Watch     bool
	Logger    *slog.Logger
}

type Game struct {
	opts    Options
	logger  *slog.Logger
	sim     *sim.Sim
	watcher *prefabs.Watcher
	input   Input

	showGraph   bool
	showPhysics bool
	hunting   bool
	paused    bool
	status    string
}

func NewGame(opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	lvl, err := levels.Open(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", opts.Level, err)
	}
	s, err := sim.New(lvl, sim.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	g := &Game{opts: opts, logger: logger, sim: s, showGraph: opts.ShowGraph}
	if nav, err := prefabs.LoadNavigationSpec(); err == nil && nav.DebugGraph {
		g.showGraph = true
	}
	if opts.Watch {
		g.watcher = startWatcher(logger)
	}
	return g, nil
}

// startWatcher watches whichever of the prefab and level directories exist
// next to the working directory. A nil watcher disables hot reload.
func startWatcher(logger *slog.Logger) *prefabs.Watcher {
	var dirs []string
	for _, dir := range []string{prefabs.Dir, "levels"} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return nil
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		logger.Warn("hot reload disabled", "err", err)
		return nil
	}
	logger.Info("watching for changes", "dirs", dirs)
	return w
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

// Size is the level size in pixels.
func (g *Game) Size() (int, int) {
	w, h := g.sim.Grid().Size()
	ts := g.sim.Grid().TileSize()
	return int(float64(w) * ts), int(float64(h) * ts)
}

func (g *Game) Update() error {
	g.input.Update()
	if g.input.Quit {
		return ebiten.Termination
	}
	g.pollWatcher()

	if g.input.ToggleGraph {
		g.showGraph = !g.showGraph
	}
	if g.input.TogglePhysics {
		g.showPhysics = !g.showPhysics
	}
	if g.input.TogglePause {
		g.paused = !g.paused
	}
	if g.input.Reload {
		g.reload("manual")
	}
	if g.input.ToggleHunt {
		g.hunting = g.sim.ToggleHunt()
		g.logger.Info("hunt toggled", "active", g.hunting)
	}
	if g.input.Click {
		g.sim.Click(g.input.Cursor)
	}

	if !g.paused || g.input.StepOnce {
		g.sim.Step()
	}
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Info("file changed", "path", path)
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				g.logger.Warn("watch error", "err", err)
			}
			return
		default:
			return
		}
	}
}

// reload rebuilds the simulation from the current level and prefab files.
// A broken file keeps the running simulation and is reported on screen.
func (g *Game) reload(reason string) {
	lvl, err := levels.Open(g.opts.Level)
	if err == nil {
		err = g.sim.Reload(lvl)
	}
	if err != nil {
		g.status = "reload failed: " + err.Error()
		if errors.Is(err, levels.ErrInvalidLevel) || errors.Is(err, prefabs.ErrInvalidSpec) {
			g.logger.Warn("reload rejected", "reason", reason, "err", err)
		} else {
			g.logger.Error("reload failed", "reason", reason, "err", err)
		}
		return
	}
	g.status = ""
	g.hunting = false
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawLevel(screen, g.sim.Level(), g.sim.Grid())
	if g.showGraph {
		drawGraph(screen, g.sim.Snapshot())
	}
	for _, a := range g.sim.Agents() {
		drawAgent(screen, a, g.showGraph)
	}
	if g.showPhysics {
		drawPhysicsDebug(screen, g.sim.Physics().Space())
	}

	hunt := "off"
	if g.hunting {
		hunt = "on"
	}
	stats := g.sim.Stats()
	text := fmt.Sprintf("tick %d  fps %.1f  points %d  edges %d  hunt %s\nclick: move  enter: hunt  g: graph  f3: bodies  p: pause  .: step  r: reload",
		g.sim.Ticks(), ebiten.ActualFPS(), stats.Points, stats.Edges, hunt)
	if g.status != "" {
		text += "\n" + g.status
	}
	ebitenutil.DebugPrint(screen, text)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.Size()
}
