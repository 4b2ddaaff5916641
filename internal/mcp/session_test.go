package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrylabs/quarry/internal/callgraph"
	"github.com/quarrylabs/quarry/internal/codeql"
)

func TestSessionRemember(t *testing.T) {
	t.Parallel()
	s := newSession()

	alpha := codeql.FunctionRow{Name: `"alpha"`, FunctionID: `"f-100"`}
	beta := codeql.FunctionRow{Name: `"beta"`, FunctionID: `"f-200"`}

	s.remember(alpha)
	s.remember(beta)
	s.remember(alpha) // duplicate id, ignored

	known := s.knownFunctions()
	require.Len(t, known, 2)
	assert.Equal(t, `"alpha"`, known[0].Name)
	assert.Equal(t, `"beta"`, known[1].Name)
}

func TestSessionReturnsCopy(t *testing.T) {
	t.Parallel()
	s := newSession()
	s.remember(codeql.FunctionRow{Name: `"alpha"`, FunctionID: `"f-100"`})

	known := s.knownFunctions()
	known[0].Name = `"mutated"`

	assert.Equal(t, `"alpha"`, s.knownFunctions()[0].Name)
}

func TestWalkerRefSwap(t *testing.T) {
	t.Parallel()

	first, err := callgraph.Build([]codeql.FunctionRow{{Name: `"alpha"`, FunctionID: `"f-100"`}})
	require.NoError(t, err)
	second, err := callgraph.Build(nil)
	require.NoError(t, err)

	ref := &walkerRef{walker: first}
	assert.Equal(t, 1, ref.get().Size())

	ref.set(second)
	assert.Equal(t, 0, ref.get().Size())
}
