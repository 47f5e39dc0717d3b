package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbortabs/arbor/internal/export"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand("test")
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

const treeScenario = `
name: tree
steps:
  - open: {tab: a, title: Alpha, url: "https://a.example.com"}
  - open: {tab: b, title: Beta, opener: a}
  - open: {tab: p, title: Pinboard, pinned: true}
`

func TestReplayCommand(t *testing.T) {
	t.Run("prints the tab tree as text", func(t *testing.T) {
		path := writeScenario(t, treeScenario)
		out, err := execute(t, "replay", path)
		require.NoError(t, err)

		assert.Contains(t, out, "Pinned")
		assert.Contains(t, out, "- Pinboard")
		assert.Contains(t, out, "+ Alpha (https://a.example.com)")
		assert.Contains(t, out, "    - Beta")
	})

	t.Run("json format produces a snapshot", func(t *testing.T) {
		path := writeScenario(t, treeScenario)
		out, err := execute(t, "replay", path, "--format", "json")
		require.NoError(t, err)

		var snap export.Snapshot
		require.NoError(t, json.Unmarshal([]byte(out), &snap))
		require.Len(t, snap.Pinned, 1)
		require.Len(t, snap.Roots, 1)
		assert.Equal(t, "Alpha", snap.Roots[0].Anchor.Title)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := execute(t, "replay", filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid scenario fails", func(t *testing.T) {
		path := writeScenario(t, "steps:\n  - {}\n")
		_, err := execute(t, "replay", path)
		assert.Error(t, err)
	})

	t.Run("failing step reports its position", func(t *testing.T) {
		path := writeScenario(t, "steps:\n  - open: {tab: a, opener: ghost}\n")
		_, err := execute(t, "replay", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "step 1")
	})

	t.Run("unknown format fails", func(t *testing.T) {
		path := writeScenario(t, treeScenario)
		_, err := execute(t, "replay", path, "--format", "har")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown format")
	})
}
