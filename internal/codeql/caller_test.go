package codeql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallerFunction(t *testing.T) {
	t.Parallel()
	_, treeFile := writeFixtureDB(t)
	lookup := newTestLookup()

	mustFunction := func(t *testing.T, file string, line int) FunctionRow {
		t.Helper()
		fn, err := lookup.FunctionByLine(treeFile, file, line)
		require.NoError(t, err)
		require.NotNil(t, fn)
		return *fn
	}

	t.Run("caller_id referencing a function id", func(t *testing.T) {
		beta := mustFunction(t, "net.c", 12)
		res, err := lookup.CallerFunction(treeFile, beta)
		require.NoError(t, err)
		require.True(t, res.Found())
		assert.Equal(t, `"alpha"`, res.Record().Name)
	})

	t.Run("caller_id encoded as file and line", func(t *testing.T) {
		// gamma's caller_id is "/src/net.c:7"; line 7 of net.c is alpha.
		gamma := mustFunction(t, "main.c", 25)
		res, err := lookup.CallerFunction(treeFile, gamma)
		require.NoError(t, err)
		require.True(t, res.Found())
		assert.Equal(t, `"alpha"`, res.Record().Name)
	})

	t.Run("unresolvable caller_id", func(t *testing.T) {
		delta := mustFunction(t, "main.c", 55)
		res, err := lookup.CallerFunction(treeFile, delta)
		require.NoError(t, err)
		require.False(t, res.Found())
		assert.Equal(t, "Caller function was not found. Make sure you are using the correct tool with the correct args.", res.Message())
	})
}

func TestDecodeCallerLocation(t *testing.T) {
	t.Parallel()

	t.Run("valid encoded location", func(t *testing.T) {
		file, line, ok := decodeCallerLocation("/src/net.c:42")
		require.True(t, ok)
		assert.Equal(t, "src/net.c", file)
		assert.Equal(t, 42, line)
	})

	t.Run("plain id has no colon", func(t *testing.T) {
		_, _, ok := decodeCallerLocation("f-100")
		assert.False(t, ok)
	})

	t.Run("too many colons", func(t *testing.T) {
		_, _, ok := decodeCallerLocation("C:/src/net.c:42")
		assert.False(t, ok)
	})

	t.Run("non-numeric line", func(t *testing.T) {
		_, _, ok := decodeCallerLocation("/src/net.c:forty")
		assert.False(t, ok)
	})

	t.Run("empty file part", func(t *testing.T) {
		_, _, ok := decodeCallerLocation(":42")
		assert.False(t, ok)
	})
}
