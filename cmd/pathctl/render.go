package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/milk9111/tilepath/common"
	"github.com/milk9111/tilepath/pathfind"
	"github.com/milk9111/tilepath/tilemap"
)

// Map glyphs. Points use the first letter of their marker category.
const (
	glyphSolid = '#'
	glyphEmpty = '.'
	glyphPath  = '*'
	glyphStart = 'S'
	glyphGoal  = 'G'
)

var markerGlyphs = map[string]rune{
	"both-edges": 'B',
	"left-edge":  'L',
	"right-edge": 'R',
	"wall":       'W',
	"fall":       'F',
}

type palette struct {
	solid, empty, point, path, ends lipgloss.Style
}

func newPalette(color bool) palette {
	if !color {
		plain := lipgloss.NewStyle()
		return palette{solid: plain, empty: plain, point: plain, path: plain, ends: plain}
	}
	return palette{
		solid: lipgloss.NewStyle().Foreground(lipgloss.Color("#3c78ff")),
		empty: lipgloss.NewStyle().Foreground(lipgloss.Color("#444444")),
		point: lipgloss.NewStyle().Foreground(lipgloss.Color("#ffb000")).Bold(true),
		path:  lipgloss.NewStyle().Foreground(lipgloss.Color("#38b764")).Bold(true),
		ends:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4f4f")).Bold(true),
	}
}

// useColor is true only for a terminal on stdout.
func useColor(w io.Writer, disabled bool) bool {
	if disabled {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newRenderCmd(opts *rootOptions) *cobra.Command {
	po := &pathOptions{}
	var noColor bool
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the level with its graph points and an optional path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.load(opts.level)
			if err != nil {
				return err
			}
			var waypoints []pathfind.Point
			if po.from != "" && po.to != "" {
				if waypoints, err = queryPath(l, po); err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			_, err = io.WriteString(out, renderMap(l.grid, l.finder.Snapshot(), waypoints, newPalette(useColor(out, noColor))))
			return err
		},
	}
	cmd.Flags().StringVar(&po.from, "from", "", "start position X,Y")
	cmd.Flags().StringVar(&po.to, "to", "", "goal position X,Y")
	cmd.Flags().BoolVar(&po.cells, "cells", false, "read --from and --to as tile cells")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "never colour the output")
	return cmd
}

func renderMap(grid *tilemap.TileMap, snap pathfind.Snapshot, waypoints []pathfind.Point, pal palette) string {
	width, height := grid.Size()
	glyphs := make([][]rune, height)
	for y := range glyphs {
		glyphs[y] = make([]rune, width)
		for x := range glyphs[y] {
			glyphs[y][x] = glyphEmpty
			if grid.Occupied(common.Cell{X: x, Y: y}) {
				glyphs[y][x] = glyphSolid
			}
		}
	}
	set := func(c common.Cell, g rune) {
		if c.Y >= 0 && c.Y < height && c.X >= 0 && c.X < width {
			glyphs[c.Y][c.X] = g
		}
	}
	for _, p := range snap.Points {
		if g, ok := markerGlyphs[pathfind.Marker(p)]; ok {
			set(p.Cell, g)
		}
	}
	for i, p := range waypoints {
		switch i {
		case 0:
			set(p.Cell, glyphStart)
		case len(waypoints) - 1:
			set(p.Cell, glyphGoal)
		default:
			set(p.Cell, glyphPath)
		}
	}

	var b strings.Builder
	for _, row := range glyphs {
		for _, g := range row {
			b.WriteString(pal.style(g).Render(string(g)))
		}
		b.WriteByte('\n')
	}
	if len(waypoints) > 0 {
		fmt.Fprintf(&b, "%d waypoints\n", len(waypoints))
	}
	return b.String()
}

func (p palette) style(g rune) lipgloss.Style {
	switch g {
	case glyphSolid:
		return p.solid
	case glyphEmpty:
		return p.empty
	case glyphPath:
		return p.path
	case glyphStart, glyphGoal:
		return p.ends
	default:
		return p.point
	}
}
