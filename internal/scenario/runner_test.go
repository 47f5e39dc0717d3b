package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbortabs/arbor/internal/tabs"
)

func flatTitles(c *tabs.Collection) []string {
	out := make([]string, 0, c.TotalTabCount())
	for i := 0; i < c.TotalTabCount(); i++ {
		out = append(out, c.TabAt(i).Title())
	}
	return out
}

func TestParse(t *testing.T) {
	t.Run("valid scenario", func(t *testing.T) {
		sc, err := Parse([]byte(`
name: basic
steps:
  - open: {tab: a, title: Alpha, url: "https://a.example.com"}
  - open: {tab: b, opener: a}
  - close: {tab: a}
`))
		require.NoError(t, err)
		assert.Equal(t, "basic", sc.Name)
		assert.Len(t, sc.Steps, 3)
		assert.Equal(t, "Alpha", sc.Steps[0].Open.Title)
	})

	t.Run("rejects step with no action", func(t *testing.T) {
		_, err := Parse([]byte("steps:\n  - {}\n"))
		assert.ErrorIs(t, err, ErrInvalidScenario)
	})

	t.Run("rejects step with two actions", func(t *testing.T) {
		_, err := Parse([]byte(`
steps:
  - open: {tab: a}
    close: {tab: a}
`))
		assert.ErrorIs(t, err, ErrInvalidScenario)
	})

	t.Run("rejects duplicate handles", func(t *testing.T) {
		_, err := Parse([]byte(`
steps:
  - open: {tab: a}
  - open: {tab: a}
`))
		assert.ErrorIs(t, err, ErrInvalidScenario)
	})

	t.Run("rejects open without a handle", func(t *testing.T) {
		_, err := Parse([]byte("steps:\n  - open: {title: x}\n"))
		assert.ErrorIs(t, err, ErrInvalidScenario)
	})

	t.Run("rejects close with neither handle nor index", func(t *testing.T) {
		_, err := Parse([]byte("steps:\n  - close: {}\n"))
		assert.ErrorIs(t, err, ErrInvalidScenario)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("steps: ["))
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	t.Run("loads a scenario file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "s.yaml")
		require.NoError(t, os.WriteFile(path, []byte("name: f\nsteps:\n  - open: {tab: a}\n"), 0644))

		sc, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "f", sc.Name)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestRunner_Run(t *testing.T) {
	t.Run("builds trees from opener references", func(t *testing.T) {
		sc, err := Parse([]byte(`
name: tree
steps:
  - open: {tab: a, title: Alpha}
  - open: {tab: b, title: Beta, opener: a}
  - open: {tab: c, title: Gamma, opener: a}
`))
		require.NoError(t, err)

		r := NewRunner(nil)
		require.NoError(t, r.Run(sc))

		c := r.Collection()
		assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, flatTitles(c))
		es := c.Children(c.Root())
		require.Len(t, es, 1)
		node := es[0].(*tabs.TreeNode)
		assert.Equal(t, "Alpha", node.Anchor().Title())
		assert.Len(t, node.Children(), 2)
	})

	t.Run("close by handle dissolves nodes", func(t *testing.T) {
		sc, err := Parse([]byte(`
steps:
  - open: {tab: a}
  - open: {tab: b, opener: a}
  - close: {tab: a}
`))
		require.NoError(t, err)

		r := NewRunner(nil)
		require.NoError(t, r.Run(sc))
		assert.Equal(t, []string{"b"}, flatTitles(r.Collection()))
	})

	t.Run("close by index", func(t *testing.T) {
		sc, err := Parse([]byte(`
steps:
  - open: {tab: a}
  - open: {tab: b}
  - close: {index: 0}
`))
		require.NoError(t, err)

		r := NewRunner(nil)
		require.NoError(t, r.Run(sc))
		assert.Equal(t, []string{"b"}, flatTitles(r.Collection()))
	})

	t.Run("pin and unpin", func(t *testing.T) {
		sc, err := Parse([]byte(`
steps:
  - open: {tab: a}
  - open: {tab: b}
  - pin: {tab: b}
  - unpin: {tab: b}
`))
		require.NoError(t, err)

		r := NewRunner(nil)
		require.NoError(t, r.Run(sc))

		c := r.Collection()
		assert.Equal(t, 0, c.PinnedCount())
		assert.Equal(t, []string{"b", "a"}, flatTitles(c))
	})

	t.Run("pinned open defaults to end of pinned region", func(t *testing.T) {
		sc, err := Parse([]byte(`
steps:
  - open: {tab: a}
  - open: {tab: p, pinned: true}
`))
		require.NoError(t, err)

		r := NewRunner(nil)
		require.NoError(t, r.Run(sc))
		assert.Equal(t, []string{"p", "a"}, flatTitles(r.Collection()))
		assert.Equal(t, 1, r.Collection().PinnedCount())
	})

	t.Run("handle defaults the title", func(t *testing.T) {
		sc, err := Parse([]byte("steps:\n  - open: {tab: a}\n"))
		require.NoError(t, err)

		r := NewRunner(nil)
		require.NoError(t, r.Run(sc))
		assert.Equal(t, "a", r.Collection().TabAt(0).Title())
	})

	t.Run("unknown opener fails with step position", func(t *testing.T) {
		sc, err := Parse([]byte("steps:\n  - open: {tab: a, opener: ghost}\n"))
		require.NoError(t, err)

		err = NewRunner(nil).Run(sc)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownTab)
		assert.Contains(t, err.Error(), "step 1")
	})

	t.Run("out-of-range index is an error, not a panic", func(t *testing.T) {
		sc, err := Parse([]byte("steps:\n  - open: {tab: a, index: 5}\n"))
		require.NoError(t, err)

		err = NewRunner(nil).Run(sc)
		assert.ErrorIs(t, err, ErrInvalidScenario)
	})

	t.Run("move surfaces the unimplemented contract", func(t *testing.T) {
		sc, err := Parse([]byte(`
steps:
  - open: {tab: a}
  - open: {tab: b}
  - move: {indices: [1], destination: 0}
`))
		require.NoError(t, err)

		err = NewRunner(nil).Run(sc)
		assert.ErrorIs(t, err, tabs.ErrNotImplemented)
	})

	t.Run("closed handle cannot be reused", func(t *testing.T) {
		sc, err := Parse([]byte(`
steps:
  - open: {tab: a}
  - close: {tab: a}
  - pin: {tab: a}
`))
		require.NoError(t, err)

		err = NewRunner(nil).Run(sc)
		assert.ErrorIs(t, err, ErrUnknownTab)
		assert.Contains(t, err.Error(), "step 3")
	})
}
