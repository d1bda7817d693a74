package tilemap

import (
	"testing"

	"github.com/milk9111/tilepath/common"
	"github.com/milk9111/tilepath/levels"
)

func TestFromRows(t *testing.T) {
	m := FromRows(
		"..#",
		"###",
	)
	w, h := m.Size()
	if w != 3 || h != 2 {
		t.Fatalf("expected 3x2, got %dx%d", w, h)
	}
	used := m.UsedCells()
	want := []common.Cell{{X: 2, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}
	if len(used) != len(want) {
		t.Fatalf("expected %d used cells, got %d", len(want), len(used))
	}
	for i := range want {
		if used[i] != want[i] {
			t.Fatalf("used[%d] = %v, want %v", i, used[i], want[i])
		}
	}
	if !m.Occupied(common.Cell{X: 2, Y: 0}) || m.Occupied(common.Cell{X: 0, Y: 0}) {
		t.Fatalf("unexpected occupancy")
	}
	if m.Occupied(common.Cell{X: -1, Y: 1}) {
		t.Fatalf("cells outside the map must be empty")
	}
}

func TestCoordinateConversion(t *testing.T) {
	m := FromRows("#")
	cases := []struct {
		name string
		cell common.Cell
		pos  common.Vec
	}{
		{"origin", common.Cell{X: 0, Y: 0}, common.Vec{X: 16, Y: 16}},
		{"positive", common.Cell{X: 3, Y: 2}, common.Vec{X: 112, Y: 80}},
		{"negative", common.Cell{X: -1, Y: -2}, common.Vec{X: -16, Y: -48}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := m.MapToLocal(c.cell); got != c.pos {
				t.Fatalf("MapToLocal(%v) = %v, want %v", c.cell, got, c.pos)
			}
			if got := m.LocalToMap(c.pos); got != c.cell {
				t.Fatalf("LocalToMap(%v) = %v, want %v", c.pos, got, c.cell)
			}
		})
	}
	if got := m.LocalToMap(common.Vec{X: 31.9, Y: 0}); got != (common.Cell{X: 0, Y: 0}) {
		t.Fatalf("expected cell 0,0 for x=31.9, got %v", got)
	}
}

func TestFromLevel(t *testing.T) {
	lvl, err := levels.LoadLevelFromFS("flat")
	if err != nil {
		t.Fatalf("load flat: %v", err)
	}
	m := FromLevel(lvl)
	if got := len(m.UsedCells()); got != 12 {
		t.Fatalf("expected 12 solid cells, got %d", got)
	}
	if !m.Occupied(common.Cell{X: 0, Y: 3}) {
		t.Fatalf("expected ground at 0,3")
	}
}
