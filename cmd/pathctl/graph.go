package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/milk9111/tilepath/pathfind"
)

type graphPoint struct {
	ID    int64   `json:"id"`
	X     int     `json:"x"`
	Y     int     `json:"y"`
	PosX  float64 `json:"pos_x"`
	PosY  float64 `json:"pos_y"`
	Flags string  `json:"flags"`
}

type graphEdge struct {
	From          int64  `json:"from"`
	To            int64  `json:"to"`
	Kind          string `json:"kind"`
	Bidirectional bool   `json:"bidirectional"`
}

type graphDump struct {
	Level  string         `json:"level"`
	Points []graphPoint   `json:"points"`
	Edges  []graphEdge    `json:"edges"`
	ByKind map[string]int `json:"by_kind"`
}

func newGraphCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "List the points and edges of a level's navigation graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.load(opts.level)
			if err != nil {
				return err
			}
			dump := dumpGraph(opts.level, l.finder.Snapshot(), l.stats)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(dump)
			}
			return printGraph(cmd, dump)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func dumpGraph(level string, snap pathfind.Snapshot, stats pathfind.Stats) graphDump {
	dump := graphDump{
		Level:  level,
		Points: make([]graphPoint, 0, len(snap.Points)),
		Edges:  make([]graphEdge, 0, len(snap.Edges)),
		ByKind: make(map[string]int, len(stats.ByKind)),
	}
	for _, p := range snap.Points {
		dump.Points = append(dump.Points, graphPoint{
			ID:    p.ID,
			X:     p.Cell.X,
			Y:     p.Cell.Y,
			PosX:  p.Position.X,
			PosY:  p.Position.Y,
			Flags: p.Flags.String(),
		})
	}
	for _, e := range snap.Edges {
		dump.Edges = append(dump.Edges, graphEdge{
			From:          e.From,
			To:            e.To,
			Kind:          e.Kind.String(),
			Bidirectional: e.Bidirectional,
		})
	}
	for kind, n := range stats.ByKind {
		dump.ByKind[kind.String()] = n
	}
	return dump
}

func printGraph(cmd *cobra.Command, dump graphDump) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tCELL\tFLAGS\n")
	for _, p := range dump.Points {
		fmt.Fprintf(tw, "%d\t(%d, %d)\t%s\n", p.ID, p.X, p.Y, p.Flags)
	}
	fmt.Fprintf(tw, "\nFROM\tTO\tKIND\tDIRECTION\n")
	for _, e := range dump.Edges {
		dir := "one-way"
		if e.Bidirectional {
			dir = "both"
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", e.From, e.To, e.Kind, dir)
	}
	fmt.Fprintf(tw, "\n%d points, %d edges\n", len(dump.Points), len(dump.Edges))
	return tw.Flush()
}
