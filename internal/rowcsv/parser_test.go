package rowcsv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	keys := []string{"name", "file", "line"}

	t.Run("fields keep their quotes", func(t *testing.T) {
		fields, ok := Parse(`"alpha","/src/net.c","10"`+"\n", keys)
		require.True(t, ok)
		assert.Equal(t, `"alpha"`, fields["name"])
		assert.Equal(t, `"/src/net.c"`, fields["file"])
		assert.Equal(t, `"10"`, fields["line"])
	})

	t.Run("commas inside quotes do not split", func(t *testing.T) {
		fields, ok := Parse(`"operator,()","/src/ops.cpp","7"`, keys)
		require.True(t, ok)
		assert.Equal(t, `"operator,()"`, fields["name"])
	})

	t.Run("carriage returns are trimmed", func(t *testing.T) {
		fields, ok := Parse(`"a","b","c"`+"\r\n", keys)
		require.True(t, ok)
		assert.Equal(t, `"c"`, fields["line"])
	})

	t.Run("too few fields", func(t *testing.T) {
		_, ok := Parse(`"alpha","/src/net.c"`, keys)
		assert.False(t, ok)
	})

	t.Run("too many fields", func(t *testing.T) {
		_, ok := Parse(`"a","b","c","d"`, keys)
		assert.False(t, ok)
	})

	t.Run("unquoted fields pass through", func(t *testing.T) {
		fields, ok := Parse("a,b,c", keys)
		require.True(t, ok)
		assert.Equal(t, "a", fields["name"])
	})

	t.Run("empty line is malformed for multi-key tables", func(t *testing.T) {
		_, ok := Parse("\n", keys)
		assert.False(t, ok)
	})
}
