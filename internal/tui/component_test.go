package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestBaseComponent(t *testing.T) {
	t.Run("focus and blur", func(t *testing.T) {
		c := NewBaseComponent("Test")
		assert.False(t, c.Focused())

		c.Focus()
		assert.True(t, c.Focused())

		c.Blur()
		assert.False(t, c.Focused())
	})

	t.Run("focus messages", func(t *testing.T) {
		c := NewBaseComponent("Test")
		c.Update(FocusMsg{})
		assert.True(t, c.Focused())

		c.Update(BlurMsg{})
		assert.False(t, c.Focused())
	})

	t.Run("window size", func(t *testing.T) {
		c := NewBaseComponent("Test")
		c.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
		assert.Equal(t, 80, c.Width())
		assert.Equal(t, 24, c.Height())
	})

	t.Run("set size", func(t *testing.T) {
		c := NewBaseComponent("Test")
		c.SetSize(40, 10)
		assert.Equal(t, 40, c.Width())
		assert.Equal(t, 10, c.Height())
	})

	t.Run("title", func(t *testing.T) {
		c := NewBaseComponent("Test")
		assert.Equal(t, "Test", c.Title())
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", Truncate("hello", 0))
	assert.Equal(t, "hel", Truncate("hello", 3))
	assert.Equal(t, "hello", Truncate("hello", 5))
	assert.Equal(t, "hello...", Truncate("hello world", 8))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "ab", PadRight("abcd", 2))
}

func TestModel(t *testing.T) {
	t.Run("focuses the component", func(t *testing.T) {
		c := NewBaseComponent("Test")
		NewModel(c)
		assert.True(t, c.Focused())
	})

	t.Run("q quits", func(t *testing.T) {
		m := NewModel(NewBaseComponent("Test"))
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		assert.NotNil(t, cmd)
	})

	t.Run("window size reaches the component", func(t *testing.T) {
		c := NewBaseComponent("Test")
		m := NewModel(c)
		m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
		assert.Equal(t, 100, c.Width())
	})
}
