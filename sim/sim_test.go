package sim

import (
	"math"
	"testing"

	"github.com/milk9111/tilepath/common"
	"github.com/milk9111/tilepath/levels"
	"github.com/milk9111/tilepath/metrics"
	"github.com/milk9111/tilepath/pathfind"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, name string, opts ...Option) (*Sim, *metrics.Metrics) {
	t.Helper()
	lvl, err := levels.LoadLevelFromFS(name)
	require.NoError(t, err)
	m := metrics.New(prometheus.NewRegistry())
	s, err := New(lvl, append([]Option{WithMetrics(m)}, opts...)...)
	require.NoError(t, err)
	return s, m
}

func TestNewBuildsGraphAndAgents(t *testing.T) {
	s, m := load(t, "flat")

	assert.True(t, s.PathFinder().Built())
	assert.Equal(t, pathfind.DefaultConfig(), s.PathFinder().Config())
	assert.Positive(t, s.Stats().Points)
	assert.Len(t, s.Snapshot().Points, s.Stats().Points)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GraphBuilds))

	player, ok := s.Agent("player")
	require.True(t, ok)
	assert.Equal(t, common.Vec{X: 48, Y: 80}, player.Position)
	assert.NotNil(t, player.Color)
	_, ok = s.Agent("skeleton")
	assert.True(t, ok)
}

func TestClickWalksPlayer(t *testing.T) {
	s, m := load(t, "flat")
	s.Run(60)

	require.True(t, s.Click(common.Vec{X: 304, Y: 80}))
	s.Run(120)

	player, _ := s.Agent("player")
	assert.InDelta(t, 304, player.Position.X, 6)
	assert.True(t, player.Grounded)
	assert.False(t, player.Target.IsSet())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Repaths.WithLabelValues("player")))
	assert.Equal(t, 180.0, testutil.ToFloat64(m.Ticks))
	assert.Equal(t, 180, s.Ticks())
}

func TestHuntClosesDistance(t *testing.T) {
	s, m := load(t, "flat")
	s.Run(30)

	require.True(t, s.ToggleHunt())
	s.Run(240)

	player, _ := s.Agent("player")
	skeleton, _ := s.Agent("skeleton")
	assert.Less(t, math.Abs(player.Position.X-skeleton.Position.X), float64(common.TileSize))
	assert.GreaterOrEqual(t, testutil.ToFloat64(m.Repaths.WithLabelValues("skeleton")), 2.0)

	require.False(t, s.ToggleHunt())
	skeleton, _ = s.Agent("skeleton")
	assert.False(t, skeleton.Target.IsSet())
}

func TestGapsPlayerJumps(t *testing.T) {
	s, m := load(t, "gaps", WithConfig(pathfind.Config{JumpDistance: 5, JumpHeight: 4}))
	s.Run(60)

	require.True(t, s.Click(s.Grid().MapToLocal(common.Cell{X: 11, Y: 3})))
	s.Run(240)

	player, _ := s.Agent("player")
	assert.Equal(t, common.Cell{X: 11, Y: 3}, s.Grid().LocalToMap(player.Position))
	jumps := 0.0
	for _, tier := range []string{"tiny", "small", "full"} {
		jumps += testutil.ToFloat64(m.Jumps.WithLabelValues("player", tier))
	}
	assert.Positive(t, jumps)
}

func TestReloadResetsState(t *testing.T) {
	s, _ := load(t, "flat")
	s.Run(10)

	gaps, err := levels.LoadLevelFromFS("gaps")
	require.NoError(t, err)
	require.NoError(t, s.Reload(gaps))
	assert.Zero(t, s.Ticks())
	assert.Same(t, gaps, s.Level())

	width, _ := s.Grid().Size()
	assert.Equal(t, 20, width)

	require.Error(t, s.Reload(nil))
	assert.Same(t, gaps, s.Level())
}
