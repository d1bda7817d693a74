package levels

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamesListsEmbeddedLevels(t *testing.T) {
	assert.Equal(t, []string{"demo.json", "flat.json", "gaps.json"}, Names())
}

func TestLoadEmbedded(t *testing.T) {
	for _, name := range []string{"flat", "flat.json", "levels/flat.json"} {
		lvl, err := LoadLevelFromFS(name)
		require.NoError(t, err, name)
		assert.Equal(t, 12, lvl.Width)
		assert.Equal(t, 4, lvl.Height)
	}
}

func TestSolidHonoursPhysicsLayers(t *testing.T) {
	lvl, err := Parse([]byte(`{
		"width": 2, "height": 2,
		"layers": [[1,0,0,0],[0,1,0,0]],
		"layer_meta": [{"has_physics": true}, {"has_physics": false}]
	}`))
	require.NoError(t, err)

	assert.True(t, lvl.Solid(0, 0))
	assert.False(t, lvl.Solid(1, 0), "decor layer must not collide")
	assert.False(t, lvl.Solid(-1, 0))
	assert.False(t, lvl.Solid(0, 5))
}

func TestSpawn(t *testing.T) {
	lvl, err := LoadLevelFromFS("flat")
	require.NoError(t, err)

	p, ok := lvl.Spawn("Player")
	require.True(t, ok)
	assert.Equal(t, 1, p.X)
	assert.Equal(t, 2, p.Y)

	_, ok = lvl.Spawn("dragon")
	assert.False(t, ok)
}

func TestParseRejectsInvalidLevels(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "missing layers", data: `{"width": 2, "height": 2}`},
		{name: "zero width", data: `{"width": 0, "height": 2, "layers": [[]]}`},
		{name: "short layer", data: `{"width": 2, "height": 2, "layers": [[0,0,0]]}`},
		{name: "bad colour", data: `{"width": 1, "height": 1, "layers": [[0]], "layer_meta": [{"has_physics": true, "color": "red"}]}`},
		{name: "negative marker", data: `{"width": 1, "height": 1, "layers": [[0]], "entities": [{"type": "player", "x": -1, "y": 0}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidLevel)
		})
	}

	_, err := Parse([]byte(`{not json`))
	assert.Error(t, err)
}

func TestOpenPrefersDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"width": 1, "height": 1, "layers": [[1]]}`), 0o644))

	lvl, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 1, lvl.Width)
	assert.True(t, lvl.Solid(0, 0))

	lvl, err = Open("gaps")
	require.NoError(t, err)
	assert.Equal(t, 20, lvl.Width)
}
