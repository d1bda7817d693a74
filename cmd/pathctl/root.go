package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/milk9111/tilepath/common"
	"github.com/milk9111/tilepath/levels"
	"github.com/milk9111/tilepath/navgraph"
	"github.com/milk9111/tilepath/pathfind"
	"github.com/milk9111/tilepath/prefabs"
	"github.com/milk9111/tilepath/tilemap"
)

type rootOptions struct {
	debug        bool
	level        string
	jumpDistance int
	jumpHeight   int

	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "pathctl",
		Short:        "Inspect tile levels and their navigation graphs",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if opts.debug {
				level = slog.LevelDebug
			}
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log at debug level")
	cmd.PersistentFlags().StringVarP(&opts.level, "level", "l", "demo", "level file or embedded level name")
	cmd.PersistentFlags().IntVar(&opts.jumpDistance, "jump-distance", 0, "override navigation.yaml jump_distance")
	cmd.PersistentFlags().IntVar(&opts.jumpHeight, "jump-height", 0, "override navigation.yaml jump_height")

	cmd.AddCommand(
		newGraphCmd(opts),
		newPathCmd(opts),
		newRenderCmd(opts),
		newSimCmd(opts),
		newCheckCmd(opts),
	)
	return cmd
}

func (o *rootOptions) config() (pathfind.Config, error) {
	spec, err := prefabs.LoadNavigationSpec()
	if err != nil {
		return pathfind.Config{}, err
	}
	cfg := spec.Config()
	if o.jumpDistance > 0 {
		cfg.JumpDistance = o.jumpDistance
	}
	if o.jumpHeight > 0 {
		cfg.JumpHeight = o.jumpHeight
	}
	return cfg, nil
}

type loaded struct {
	level  *levels.Level
	grid   *tilemap.TileMap
	finder *pathfind.PathFinder
	stats  pathfind.Stats
}

func (o *rootOptions) load(name string) (*loaded, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	lvl, err := levels.Open(name)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}
	grid := tilemap.FromLevel(lvl)
	finder := pathfind.New(grid, navgraph.New(), cfg, pathfind.WithLogger(o.logger))
	stats, err := finder.BuildGraph()
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}
	return &loaded{level: lvl, grid: grid, finder: finder, stats: stats}, nil
}

// parseVec reads "X,Y".
func parseVec(s string) (common.Vec, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return common.Vec{}, fmt.Errorf("want X,Y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return common.Vec{}, fmt.Errorf("bad x in %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return common.Vec{}, fmt.Errorf("bad y in %q: %w", s, err)
	}
	return common.Vec{X: x, Y: y}, nil
}

// resolvePoint parses a position, treating it as a cell when cells is set.
func resolvePoint(grid *tilemap.TileMap, s string, cells bool) (common.Vec, error) {
	v, err := parseVec(s)
	if err != nil {
		return common.Vec{}, err
	}
	if !cells {
		return v, nil
	}
	return grid.MapToLocal(common.Cell{X: int(v.X), Y: int(v.Y)}), nil
}
