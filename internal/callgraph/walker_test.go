package callgraph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrylabs/quarry/internal/codeql"
)

// graphRows models a chain beta -> alpha -> gamma, a file:line-encoded
// caller on gamma, a second callee of alpha, and a two-node cycle.
func graphRows() []codeql.FunctionRow {
	return []codeql.FunctionRow{
		{Name: `"alpha"`, FunctionID: `"f-100"`, CallerID: `"f-300"`},
		{Name: `"beta"`, FunctionID: `"f-200"`, CallerID: `"f-100"`},
		{Name: `"gamma"`, FunctionID: `"f-300"`, CallerID: `"/src/net.c:7"`},
		{Name: `"ping"`, FunctionID: `"f-500"`, CallerID: `"f-600"`},
		{Name: `"pong"`, FunctionID: `"f-600"`, CallerID: `"f-500"`},
		{Name: `"omega"`, FunctionID: `"f-700"`, CallerID: `"f-100"`},
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	w, err := Build(graphRows())
	require.NoError(t, err)
	assert.Equal(t, 6, w.Size())

	t.Run("knows functions by quoted or bare id", func(t *testing.T) {
		row, ok := w.Function(`"f-100"`)
		require.True(t, ok)
		assert.Equal(t, `"alpha"`, row.Name)

		row, ok = w.Function("f-100")
		require.True(t, ok)
		assert.Equal(t, `"alpha"`, row.Name)

		_, ok = w.Function("f-999")
		assert.False(t, ok)
	})

	t.Run("duplicate ids keep the first row", func(t *testing.T) {
		rows := append(graphRows(), codeql.FunctionRow{Name: `"alpha_dup"`, FunctionID: `"f-100"`})
		dup, err := Build(rows)
		require.NoError(t, err)
		row, ok := dup.Function("f-100")
		require.True(t, ok)
		assert.Equal(t, `"alpha"`, row.Name)
	})
}

func TestChain(t *testing.T) {
	t.Parallel()

	w, err := Build(graphRows())
	require.NoError(t, err)

	t.Run("walks callers upward", func(t *testing.T) {
		chain, err := w.Chain("f-200", 2, nil)
		require.NoError(t, err)
		require.Len(t, chain, 2)
		assert.Equal(t, `"alpha"`, chain[0].Name)
		assert.Equal(t, `"gamma"`, chain[1].Name)
	})

	t.Run("depth limits the walk", func(t *testing.T) {
		chain, err := w.Chain("f-200", 1, nil)
		require.NoError(t, err)
		require.Len(t, chain, 1)
		assert.Equal(t, `"alpha"`, chain[0].Name)
	})

	t.Run("without a resolver, encoded callers end the walk", func(t *testing.T) {
		chain, err := w.Chain("f-300", 5, nil)
		require.NoError(t, err)
		assert.Empty(t, chain)
	})

	t.Run("resolver bridges encoded callers", func(t *testing.T) {
		// gamma's caller is "/src/net.c:7", which the graph has no edge
		// for; the resolver stands in for the decode fallback. alpha's
		// own caller is gamma again, so the walk ends on the cycle.
		resolved := codeql.FunctionRow{Name: `"alpha"`, FunctionID: `"f-100"`, CallerID: `"f-300"`}
		chain, err := w.Chain("f-300", 5, func(fn codeql.FunctionRow) (*codeql.FunctionRow, error) {
			assert.Equal(t, `"gamma"`, fn.Name)
			return &resolved, nil
		})
		require.NoError(t, err)
		require.Len(t, chain, 2)
		assert.Equal(t, `"alpha"`, chain[0].Name)
		assert.Equal(t, `"gamma"`, chain[1].Name)
	})

	t.Run("a deeper walk never yields less than one hop", func(t *testing.T) {
		resolved := codeql.FunctionRow{Name: `"alpha"`, FunctionID: `"f-100"`, CallerID: `"f-300"`}
		resolve := func(fn codeql.FunctionRow) (*codeql.FunctionRow, error) {
			return &resolved, nil
		}

		shallow, err := w.Chain("f-300", 1, resolve)
		require.NoError(t, err)
		deep, err := w.Chain("f-300", 2, resolve)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(deep), len(shallow))
		require.NotEmpty(t, shallow)
		assert.Equal(t, `"alpha"`, shallow[0].Name)
	})

	t.Run("resolver returning nil ends the walk", func(t *testing.T) {
		chain, err := w.Chain("f-300", 5, func(codeql.FunctionRow) (*codeql.FunctionRow, error) {
			return nil, nil
		})
		require.NoError(t, err)
		assert.Empty(t, chain)
	})

	t.Run("resolver errors propagate", func(t *testing.T) {
		_, err := w.Chain("f-300", 5, func(codeql.FunctionRow) (*codeql.FunctionRow, error) {
			return nil, errors.New("table went away")
		})
		require.Error(t, err)
	})

	t.Run("cycles terminate", func(t *testing.T) {
		chain, err := w.Chain("f-500", 10, nil)
		require.NoError(t, err)
		require.Len(t, chain, 2)
		assert.Equal(t, `"pong"`, chain[0].Name)
		assert.Equal(t, `"ping"`, chain[1].Name)
	})

	t.Run("unknown id walks nowhere", func(t *testing.T) {
		chain, err := w.Chain("f-999", 5, nil)
		require.NoError(t, err)
		assert.Empty(t, chain)
	})
}

func TestCallees(t *testing.T) {
	t.Parallel()

	w, err := Build(graphRows())
	require.NoError(t, err)

	t.Run("ordered by table occurrence", func(t *testing.T) {
		// beta and omega both name alpha as their caller; beta's row
		// comes first in the table.
		callees, err := w.Callees("f-100")
		require.NoError(t, err)
		assert.Equal(t, []string{"f-200", "f-700"}, callees)
	})

	t.Run("leaf function has none", func(t *testing.T) {
		callees, err := w.Callees("f-200")
		require.NoError(t, err)
		assert.Empty(t, callees)
	})
}
