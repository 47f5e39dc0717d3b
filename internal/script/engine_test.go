package script

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Execute(t *testing.T) {
	t.Run("evaluates expressions", func(t *testing.T) {
		e := NewEngine()
		result, err := e.Execute(context.Background(), "1 + 2")
		require.NoError(t, err)
		assert.Equal(t, int64(3), result)
	})

	t.Run("returns strings", func(t *testing.T) {
		e := NewEngine()
		result, err := e.Execute(context.Background(), `"hello " + "world"`)
		require.NoError(t, err)
		assert.Equal(t, "hello world", result)
	})

	t.Run("undefined results are nil", func(t *testing.T) {
		e := NewEngine()
		result, err := e.Execute(context.Background(), "var x = 1;")
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("syntax errors are reported", func(t *testing.T) {
		e := NewEngine()
		_, err := e.Execute(context.Background(), "function {")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "syntax error")
	})

	t.Run("runtime errors are reported", func(t *testing.T) {
		e := NewEngine()
		_, err := e.Execute(context.Background(), "undefinedFunction()")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "runtime error")
	})

	t.Run("cancelled context stops execution", func(t *testing.T) {
		e := NewEngine()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := e.Execute(ctx, "1 + 1")
		assert.Error(t, err)
	})

	t.Run("timeout interrupts infinite loops", func(t *testing.T) {
		e := NewEngine()
		_, err := e.ExecuteWithTimeout("while (true) {}", 100*time.Millisecond)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "interrupted")
	})
}

func TestEngine_Globals(t *testing.T) {
	t.Run("globals are visible to scripts", func(t *testing.T) {
		e := NewEngine()
		e.SetGlobal("answer", 42)

		result, err := e.Execute(context.Background(), "answer")
		require.NoError(t, err)
		assert.Equal(t, int64(42), result)
	})

	t.Run("GetGlobal reads script-set values", func(t *testing.T) {
		e := NewEngine()
		_, err := e.Execute(context.Background(), "var flag = true;")
		require.NoError(t, err)
		assert.Equal(t, true, e.GetGlobal("flag"))
	})

	t.Run("missing globals are nil", func(t *testing.T) {
		e := NewEngine()
		assert.Nil(t, e.GetGlobal("nothing"))
	})

	t.Run("Reset clears globals", func(t *testing.T) {
		e := NewEngine()
		e.SetGlobal("answer", 42)
		e.Reset()
		assert.Nil(t, e.GetGlobal("answer"))
	})
}

func TestEngine_Console(t *testing.T) {
	e := NewEngine()
	var level, message string
	e.SetConsoleHandler(func(l, m string) {
		level, message = l, m
	})

	_, err := e.Execute(context.Background(), `console.warn("tabs:", 3)`)
	require.NoError(t, err)
	assert.Equal(t, "warn", level)
	assert.Equal(t, "tabs: 3", message)
}
