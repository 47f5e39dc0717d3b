package script

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbortabs/arbor/internal/tabs"
)

func run(t *testing.T, s *StripScope, src string) interface{} {
	t.Helper()
	result, err := s.Execute(context.Background(), src)
	require.NoError(t, err)
	return result
}

func TestStripScope_OpenAndTrees(t *testing.T) {
	s := NewStripScope(nil)

	result := run(t, s, `
		var a = strip.open("Alpha", {url: "https://a.example.com"});
		var b = strip.open("Beta", {opener: a});
		var c = strip.open("Gamma", {opener: a});
		strip.titles();
	`)
	assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, result)

	c := s.Collection()
	es := c.Children(c.Root())
	require.Len(t, es, 1)
	node := es[0].(*tabs.TreeNode)
	assert.Equal(t, "Alpha", node.Anchor().Title())
	assert.Len(t, node.Children(), 2)
}

func TestStripScope_CloseDissolvesNodes(t *testing.T) {
	s := NewStripScope(nil)

	result := run(t, s, `
		var a = strip.open("Alpha", {});
		var b = strip.open("Beta", {opener: a});
		strip.close(a);
		strip.titles();
	`)
	assert.Equal(t, []string{"Beta"}, result)
}

func TestStripScope_CloseAt(t *testing.T) {
	s := NewStripScope(nil)

	result := run(t, s, `
		var a = strip.open("Alpha", {});
		strip.open("Beta", {});
		strip.closeAt(0) === a;
	`)
	assert.Equal(t, true, result)
	assert.Equal(t, 1, s.Collection().TotalTabCount())
}

func TestStripScope_PinUnpin(t *testing.T) {
	s := NewStripScope(nil)

	result := run(t, s, `
		var a = strip.open("Alpha", {});
		var b = strip.open("Beta", {});
		strip.pin(b);
		[strip.pinnedCount(), strip.indexOf(b)];
	`)
	assert.Equal(t, []interface{}{int64(1), int64(0)}, result)

	result = run(t, s, `
		strip.unpin(b);
		strip.pinnedCount();
	`)
	assert.Equal(t, int64(0), result)
}

func TestStripScope_Render(t *testing.T) {
	s := NewStripScope(nil)

	result := run(t, s, `
		var a = strip.open("Alpha", {});
		strip.open("Beta", {opener: a});
		strip.render();
	`)
	text, ok := result.(string)
	require.True(t, ok)
	assert.Contains(t, text, "+ Alpha")
	assert.Contains(t, text, "- Beta")
}

func TestStripScope_Snapshot(t *testing.T) {
	s := NewStripScope(nil)

	result := run(t, s, `
		var a = strip.open("Alpha", {});
		strip.open("Beta", {opener: a});
		strip.snapshot().roots[0].anchor.title;
	`)
	assert.Equal(t, "Alpha", result)
}

func TestStripScope_Teardown(t *testing.T) {
	s := NewStripScope(nil)

	result := run(t, s, `
		var a = strip.open("Alpha", {});
		strip.open("Beta", {opener: a});
		strip.teardown();
		strip.titles();
	`)
	assert.Equal(t, []string{"Alpha", "Beta"}, result)
	for _, e := range s.Collection().Children(s.Collection().Root()) {
		_, isTab := e.(*tabs.Tab)
		assert.True(t, isTab)
	}
}

func TestStripScope_Errors(t *testing.T) {
	t.Run("unknown opener throws", func(t *testing.T) {
		s := NewStripScope(nil)
		_, err := s.Execute(context.Background(), `strip.open("x", {opener: "ghost"})`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown opener")
	})

	t.Run("out-of-range index throws", func(t *testing.T) {
		s := NewStripScope(nil)
		_, err := s.Execute(context.Background(), `strip.open("x", {index: 9})`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "out of range")
	})

	t.Run("unknown tab throws", func(t *testing.T) {
		s := NewStripScope(nil)
		_, err := s.Execute(context.Background(), `strip.close("nope")`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown tab")
	})

	t.Run("thrown errors can be caught in script", func(t *testing.T) {
		s := NewStripScope(nil)
		result := run(t, s, `
			var caught = false;
			try { strip.close("nope"); } catch (e) { caught = true; }
			caught;
		`)
		assert.Equal(t, true, result)
	})
}
