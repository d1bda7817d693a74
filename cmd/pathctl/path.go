package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/milk9111/tilepath/movement"
	"github.com/milk9111/tilepath/pathfind"
	"github.com/milk9111/tilepath/prefabs"
)

type pathOptions struct {
	from   string
	to     string
	cells  bool
	prefab string
}

func newPathCmd(opts *rootOptions) *cobra.Command {
	po := &pathOptions{}
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Query a path and show the jump taken before each waypoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.load(opts.level)
			if err != nil {
				return err
			}
			tuning, err := prefabTuning(po.prefab)
			if err != nil {
				return err
			}
			waypoints, err := queryPath(l, po)
			if err != nil {
				return err
			}
			if len(waypoints) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no path")
				return nil
			}
			return printPath(cmd, waypoints, tuning)
		},
	}
	cmd.Flags().StringVar(&po.from, "from", "", "start position X,Y")
	cmd.Flags().StringVar(&po.to, "to", "", "goal position X,Y")
	cmd.Flags().BoolVar(&po.cells, "cells", false, "read --from and --to as tile cells")
	cmd.Flags().StringVar(&po.prefab, "prefab", "player", "agent prefab whose movement tuning decides jumps")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func queryPath(l *loaded, po *pathOptions) ([]pathfind.Point, error) {
	start, err := resolvePoint(l.grid, po.from, po.cells)
	if err != nil {
		return nil, fmt.Errorf("--from: %w", err)
	}
	goal, err := resolvePoint(l.grid, po.to, po.cells)
	if err != nil {
		return nil, fmt.Errorf("--to: %w", err)
	}
	path, err := l.finder.RequestPath(start, goal)
	if err != nil {
		return nil, err
	}
	return path.Points(), nil
}

// prefabTuning reads the movement block of an agent prefab.
func prefabTuning(name string) (movement.Tuning, error) {
	spec, err := prefabs.LoadEntityBuildSpec(name)
	if err != nil {
		return movement.Tuning{}, err
	}
	raw, ok := spec.Components["movement"]
	if !ok {
		return movement.Tuning{}, fmt.Errorf("prefab %s has no movement component", name)
	}
	ms, err := prefabs.DecodeComponentSpec[prefabs.MovementComponentSpec](raw)
	if err != nil {
		return movement.Tuning{}, fmt.Errorf("prefab %s: %w", name, err)
	}
	return ms.Tuning(), nil
}

// jumps gives, per waypoint, the jump the executor makes when it leaves the
// previous waypoint for this one.
func jumps(waypoints []pathfind.Point, tuning movement.Tuning) []movement.JumpTier {
	out := make([]movement.JumpTier, len(waypoints))
	for i := 1; i < len(waypoints); i++ {
		out[i] = movement.DecideJump(movement.At(waypoints[i-1]), movement.At(waypoints[i]), tuning.JumpHeightThreshold)
	}
	return out
}

func printPath(cmd *cobra.Command, waypoints []pathfind.Point, tuning movement.Tuning) error {
	tiers := jumps(waypoints, tuning)
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "#\tCELL\tPOSITION\tFLAGS\tJUMP\n")
	for i, p := range waypoints {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i, p.Cell, p.Position, p.Flags, tiers[i])
	}
	return tw.Flush()
}
