package prefabs

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEmbeddedSpecsValidate(t *testing.T) {
	nav, err := LoadNavigationSpec()
	require.NoError(t, err)
	cfg := nav.Config()
	require.Equal(t, 5, cfg.JumpDistance)
	require.Equal(t, 4, cfg.JumpHeight)
	require.Equal(t, 500, cfg.MaxFallScanDepth)

	for _, name := range []string{"player", "skeleton.yaml", "prefabs/player.yaml"} {
		spec, err := LoadEntityBuildSpec(name)
		require.NoError(t, err, name)
		require.Contains(t, spec.Components, "agent_tag")

		mv, err := DecodeComponentSpec[MovementComponentSpec](spec.Components["movement"])
		require.NoError(t, err)
		require.Equal(t, 300.0, mv.Tuning().Speed)
	}
	require.ElementsMatch(t, []string{"navigation.yaml", "player.yaml", "skeleton.yaml"}, Names())
}

func TestParseSpecRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"zero jump distance", "jump_distance: 0\njump_height: 4\n"},
		{"negative fall depth", "jump_distance: 5\njump_height: 4\nmax_fall_scan_depth: -1\n"},
		{"bad yaml", "jump_distance: [\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSpec[NavigationSpec]([]byte(tc.yaml))
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidSpec))
		})
	}

	_, err := DecodeComponentSpec[MovementComponentSpec](map[string]any{
		"speed": 300, "jump_velocity": 450, "small_jump_velocity": -1, "tiny_jump_velocity": -1, "arrive_tolerance": 5,
	})
	require.ErrorIs(t, err, ErrInvalidSpec)

	_, err = DecodeComponentSpec[AgentTagComponentSpec](map[string]any{"kind": "bat"})
	require.ErrorIs(t, err, ErrInvalidSpec)
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.NRGBA
	}{
		{"#38b764", color.NRGBA{R: 0x38, G: 0xb7, B: 0x64, A: 0xff}},
		{"ff000080", color.NRGBA{R: 0xff, A: 0x80}},
	}
	for _, tc := range cases {
		got, err := ParseColor(tc.in)
		require.NoError(t, err)
		require.Equal(t, tc.want, got)
	}

	named, err := ParseColor("Ivory")
	require.NoError(t, err)
	r, g, b, _ := named.RGBA()
	require.Equal(t, uint32(0xffff), r)
	require.Equal(t, uint32(0xffff), g)
	require.Less(t, b, uint32(0xffff))

	_, err = ParseColor("#12345")
	require.Error(t, err)
}

func TestLoadPrefersDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, Dir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, Dir, "navigation.yaml"), []byte("jump_distance: 7\njump_height: 2\n"), 0o644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	nav, err := LoadNavigationSpec()
	require.NoError(t, err)
	require.Equal(t, 7, nav.JumpDistance)
	require.Equal(t, 0, nav.MaxFallScanDepth)

	_, ok := ModTime("navigation.yaml")
	require.True(t, ok)
	_, ok = ModTime("player.yaml")
	require.False(t, ok)
}

func TestWatcherReportsSpecAndLevelFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	spec := filepath.Join(dir, "player.yaml")
	require.NoError(t, os.WriteFile(spec, []byte("name: p\n"), 0o644))

	select {
	case got := <-w.Events:
		require.Equal(t, spec, got)
	case <-time.After(3 * time.Second):
		t.Fatal("no event for yaml file")
	}

	level := filepath.Join(dir, "demo.json")
	require.NoError(t, os.WriteFile(level, []byte("{}"), 0o644))
	for {
		select {
		case got := <-w.Events:
			if got == spec {
				continue
			}
			require.Equal(t, level, got)
			require.True(t, IsLevelFile(got))
			return
		case <-time.After(3 * time.Second):
			t.Fatal("no event for level file")
		}
	}
}
