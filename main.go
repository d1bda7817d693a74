package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/tilepath/common"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	levelName := flag.String("level", "demo", "level file, or name of an embedded level (.json optional)")
	graph := flag.Bool("graph", false, "start with the navigation graph overlay shown")
	watch := flag.Bool("watch", true, "reload when prefab or level files change on disk")
	scale := flag.Float64("scale", 1, "window scale")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	game, err := NewGame(Options{
		Level:     *levelName,
		ShowGraph: *graph,
		Watch:     *watch,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("start viewer", "err", err)
		os.Exit(1)
	}
	defer game.Close()

	w, h := game.Size()
	ebiten.SetWindowSize(int(float64(w)*(*scale)), int(float64(h)*(*scale)))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("tilepath")
	ebiten.SetTPS(common.TickRate)

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("run viewer", "err", err)
		os.Exit(1)
	}
}
