package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/tilepath/common"
	"github.com/milk9111/tilepath/levels"
	"github.com/milk9111/tilepath/pathfind"
	"github.com/milk9111/tilepath/prefabs"
	"github.com/milk9111/tilepath/sim"
	"github.com/milk9111/tilepath/tilemap"
)

const markerSize = 8

var markerColors = map[string]color.Color{
	"position":   colornames.White,
	"both-edges": colornames.Orange,
	"left-edge":  colornames.Red,
	"right-edge": colornames.Green,
	"wall":       colornames.Gray,
	"fall":       colornames.Yellow,
}

var edgeColors = map[pathfind.EdgeKind]color.Color{
	pathfind.EdgeWalk:         colornames.Lightgray,
	pathfind.EdgePlatformJump: colornames.Deepskyblue,
	pathfind.EdgeDiagonalJump: colornames.Violet,
	pathfind.EdgeFall:         colornames.Gold,
}

func drawLevel(screen *ebiten.Image, lvl *levels.Level, grid *tilemap.TileMap) {
	screen.Fill(colornames.Midnightblue)
	if lvl == nil || grid == nil {
		return
	}
	ts := float32(grid.TileSize())
	for i, layer := range lvl.Layers {
		fill := color.Color(colornames.Slategray)
		if i < len(lvl.LayerMeta) && lvl.LayerMeta[i].Color != "" {
			if c, err := prefabs.ParseColor(lvl.LayerMeta[i].Color); err == nil {
				fill = c
			}
		}
		for idx, tile := range layer {
			if tile == 0 {
				continue
			}
			x, y := idx%lvl.Width, idx/lvl.Width
			vector.DrawFilledRect(screen, float32(x)*ts, float32(y)*ts, ts, ts, fill, false)
		}
	}
}

func drawGraph(screen *ebiten.Image, snap pathfind.Snapshot) {
	byID := make(map[int64]common.Vec, len(snap.Points))
	for _, p := range snap.Points {
		byID[p.ID] = p.Position
	}
	for _, e := range snap.Edges {
		a, aok := byID[e.From]
		b, bok := byID[e.To]
		if !aok || !bok {
			continue
		}
		width := float32(1)
		if !e.Bidirectional {
			width = 2
		}
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, edgeColors[e.Kind], true)
	}
	for _, p := range snap.Points {
		c, ok := markerColors[pathfind.Marker(p)]
		if !ok {
			continue
		}
		half := float32(markerSize) / 2
		vector.DrawFilledRect(screen, float32(p.Position.X)-half, float32(p.Position.Y)-half, markerSize, markerSize, c, false)
	}
}

func drawAgent(screen *ebiten.Image, a sim.Agent, showPath bool) {
	body := a.Color
	if body == nil {
		body = colornames.Magenta
	}
	x := float32(a.Position.X - a.Width/2)
	y := float32(a.Position.Y - a.Height/2)
	vector.DrawFilledRect(screen, x, y, float32(a.Width), float32(a.Height), body, false)
	if !a.Grounded {
		vector.StrokeRect(screen, x, y, float32(a.Width), float32(a.Height), 1, colornames.White, false)
	}

	if !showPath {
		return
	}
	target, ok := a.Target.Point()
	if !ok {
		return
	}
	drawPath(screen, a.Position, target, a.Path)
}

// drawPath draws the agent's remaining route: body to target, then along the
// waypoints still queued.
func drawPath(screen *ebiten.Image, from common.Vec, target pathfind.Point, rest []pathfind.Point) {
	prev := from
	for _, p := range append([]pathfind.Point{target}, rest...) {
		vector.StrokeLine(screen, float32(prev.X), float32(prev.Y), float32(p.Position.X), float32(p.Position.Y), 2, colornames.Cyan, true)
		prev = p.Position
	}
	last := prev
	vector.StrokeCircle(screen, float32(last.X), float32(last.Y), 5, 2, colornames.Cyan, true)
}
