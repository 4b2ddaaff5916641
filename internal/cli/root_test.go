package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandRegistration(t *testing.T) {
	t.Parallel()

	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{
		"function", "macro", "global", "class",
		"caller", "callees", "snippet", "search", "check", "mcp", "version",
	} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestRootPersistentFlags(t *testing.T) {
	t.Parallel()

	require.NotNil(t, rootCmd.PersistentFlags().Lookup("db"))
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
}
