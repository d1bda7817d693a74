// Package tilemap holds the solid-tile collision layer of a level and the
// conversions between grid cells and world positions.
package tilemap

import (
	"math"
	"sort"

	"github.com/milk9111/tilepath/common"
	"github.com/milk9111/tilepath/levels"
)

// TileMap is a static set of solid cells. Cells outside the map are empty.
type TileMap struct {
	width    int
	height   int
	tileSize float64
	solid    map[common.Cell]struct{}
	used     []common.Cell
}

// New builds a map from an explicit list of solid cells.
func New(width, height int, tileSize float64, cells []common.Cell) *TileMap {
	if tileSize <= 0 {
		tileSize = common.TileSize
	}
	m := &TileMap{
		width:    width,
		height:   height,
		tileSize: tileSize,
		solid:    make(map[common.Cell]struct{}, len(cells)),
	}
	for _, c := range cells {
		if _, dup := m.solid[c]; dup {
			continue
		}
		m.solid[c] = struct{}{}
		m.used = append(m.used, c)
	}
	sort.Slice(m.used, func(i, j int) bool {
		if m.used[i].Y != m.used[j].Y {
			return m.used[i].Y < m.used[j].Y
		}
		return m.used[i].X < m.used[j].X
	})
	return m
}

// FromLevel collects every tile on the level's physics layers.
func FromLevel(l *levels.Level) *TileMap {
	if l == nil {
		return New(0, 0, common.TileSize, nil)
	}
	cells := make([]common.Cell, 0, l.Width)
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if l.Solid(x, y) {
				cells = append(cells, common.Cell{X: x, Y: y})
			}
		}
	}
	return New(l.Width, l.Height, common.TileSize, cells)
}

// FromRows parses an ASCII map where '#' marks a solid tile.
func FromRows(rows ...string) *TileMap {
	width := 0
	var cells []common.Cell
	for y, row := range rows {
		if len(row) > width {
			width = len(row)
		}
		for x, ch := range row {
			if ch == '#' {
				cells = append(cells, common.Cell{X: x, Y: y})
			}
		}
	}
	return New(width, len(rows), common.TileSize, cells)
}

func (m *TileMap) Occupied(c common.Cell) bool {
	if m == nil {
		return false
	}
	_, ok := m.solid[c]
	return ok
}

// MapToLocal returns the world position of the centre of a cell.
func (m *TileMap) MapToLocal(c common.Cell) common.Vec {
	return common.Vec{
		X: (float64(c.X) + 0.5) * m.tileSize,
		Y: (float64(c.Y) + 0.5) * m.tileSize,
	}
}

// LocalToMap returns the cell containing a world position.
func (m *TileMap) LocalToMap(v common.Vec) common.Cell {
	return common.Cell{
		X: int(math.Floor(v.X / m.tileSize)),
		Y: int(math.Floor(v.Y / m.tileSize)),
	}
}

// UsedCells returns the solid cells in row-major order.
func (m *TileMap) UsedCells() []common.Cell {
	if m == nil {
		return nil
	}
	out := make([]common.Cell, len(m.used))
	copy(out, m.used)
	return out
}

func (m *TileMap) Size() (int, int) {
	return m.width, m.height
}

func (m *TileMap) TileSize() float64 {
	return m.tileSize
}
