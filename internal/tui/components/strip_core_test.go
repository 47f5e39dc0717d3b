package components

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arbortabs/arbor/internal/tabs"
)

func TestMoveCursor(t *testing.T) {
	assert.Equal(t, 0, MoveCursor(0, -1, 5))
	assert.Equal(t, 1, MoveCursor(0, 1, 5))
	assert.Equal(t, 4, MoveCursor(4, 1, 5))
	assert.Equal(t, 4, MoveCursor(2, 10, 5))
	assert.Equal(t, 0, MoveCursor(3, 1, 0))
}

func TestAdjustOffset(t *testing.T) {
	assert.Equal(t, 0, AdjustOffset(2, 0, 5))
	assert.Equal(t, 2, AdjustOffset(2, 4, 5), "scrolls up to the cursor")
	assert.Equal(t, 3, AdjustOffset(7, 0, 5), "scrolls down to keep cursor visible")
	assert.Equal(t, 7, AdjustOffset(7, 3, 0), "zero height clamps to one line")
}

func buildSample(t *testing.T) (*tabs.Collection, *tabs.TreeNode) {
	t.Helper()
	c := tabs.NewCollection()
	c.InsertTab(c.Pinned(), 0, tabs.NewTab("pin", ""))

	node := c.NewNodeWithAnchor(tabs.NewTab("anchor", ""))
	c.InsertNode(c.Root(), 0, node)
	c.InsertTab(node, 0, tabs.NewTab("child", ""))
	inner := c.NewNodeWithAnchor(tabs.NewTab("inner", ""))
	c.InsertNode(node, 1, inner)

	c.InsertTab(c.Root(), 1, tabs.NewTab("lone", ""))
	return c, node
}

func TestBuildRows(t *testing.T) {
	t.Run("expanded shows every tab with flat indices", func(t *testing.T) {
		c, _ := buildSample(t)
		rows := BuildRows(c, nil)

		titles := make([]string, len(rows))
		indices := make([]int, len(rows))
		for i, r := range rows {
			titles[i] = r.Tab.Title()
			indices[i] = r.FlatIndex
		}
		assert.Equal(t, []string{"pin", "anchor", "child", "inner", "lone"}, titles)
		assert.Equal(t, []int{0, 1, 2, 3, 4}, indices)

		assert.True(t, rows[0].Pinned)
		assert.True(t, rows[1].IsAnchor)
		assert.True(t, rows[1].HasKids)
		assert.Equal(t, 0, rows[1].Depth)
		assert.Equal(t, 1, rows[2].Depth)
		assert.True(t, rows[3].IsAnchor)
		assert.False(t, rows[3].HasKids)
	})

	t.Run("collapsed node hides its subtree but keeps indices", func(t *testing.T) {
		c, node := buildSample(t)
		rows := BuildRows(c, map[string]bool{node.ID(): true})

		titles := make([]string, len(rows))
		for i, r := range rows {
			titles[i] = r.Tab.Title()
		}
		assert.Equal(t, []string{"pin", "anchor", "lone"}, titles)
		assert.True(t, rows[1].Collapsed)
		// lone still sits at flat index 4 behind the hidden subtree.
		assert.Equal(t, 4, rows[2].FlatIndex)
	})

	t.Run("empty collection yields no rows", func(t *testing.T) {
		assert.Empty(t, BuildRows(tabs.NewCollection(), nil))
	})
}
