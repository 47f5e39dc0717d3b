package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_Lifecycle(t *testing.T) {
	m := NewMemory()

	m.NodeCreated("n1")
	m.NodeCreated("n2")
	assert.True(t, m.IsLive("n1"))
	assert.True(t, m.IsLive("n2"))
	assert.Equal(t, 2, m.Len())

	m.NodeDestroyed("n1")
	assert.False(t, m.IsLive("n1"))
	assert.Equal(t, 1, m.Len())

	// Destroying an unknown node is a no-op.
	m.NodeDestroyed("ghost")
	assert.Equal(t, 1, m.Len())
}

func TestMemory_EmptyIDIgnored(t *testing.T) {
	m := NewMemory()
	m.NodeCreated("")
	assert.Equal(t, 0, m.Len())
}

func TestMemory_Collapse(t *testing.T) {
	m := NewMemory()
	m.NodeCreated("n1")

	assert.False(t, m.Collapsed("n1"))
	require.NoError(t, m.SetCollapsed("n1", true))
	assert.True(t, m.Collapsed("n1"))
	require.NoError(t, m.SetCollapsed("n1", false))
	assert.False(t, m.Collapsed("n1"))

	assert.ErrorIs(t, m.SetCollapsed("ghost", true), ErrNotFound)
	assert.False(t, m.Collapsed("ghost"))
}

func TestMemory_Labels(t *testing.T) {
	m := NewMemory()
	m.NodeCreated("n1")

	require.NoError(t, m.SetLabel("n1", "research"))
	recs := m.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, "research", recs[0].Label)

	assert.ErrorIs(t, m.SetLabel("ghost", "x"), ErrNotFound)
}

func TestMemory_RecordsOrderedByCreation(t *testing.T) {
	m := NewMemory()
	m.NodeCreated("b")
	time.Sleep(time.Millisecond)
	m.NodeCreated("a")

	recs := m.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, "b", recs[0].NodeID)
	assert.Equal(t, "a", recs[1].NodeID)
}
