package codeql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctionRowLineRange(t *testing.T) {
	t.Parallel()

	t.Run("quoted numbers parse", func(t *testing.T) {
		row := FunctionRow{StartLine: `"5"`, EndLine: `"15"`}
		start, end, err := row.LineRange()
		require.NoError(t, err)
		assert.Equal(t, 5, start)
		assert.Equal(t, 15, end)
	})

	t.Run("non-numeric start", func(t *testing.T) {
		row := FunctionRow{StartLine: `"not-a-number"`, EndLine: `"15"`}
		_, _, err := row.LineRange()
		assert.Error(t, err)
	})

	t.Run("empty end", func(t *testing.T) {
		row := FunctionRow{StartLine: `"5"`, EndLine: `""`}
		_, _, err := row.LineRange()
		assert.Error(t, err)
	})
}

func TestRowConstructors(t *testing.T) {
	t.Parallel()

	fn := functionFromFields(map[string]string{
		"function_name": `"alpha"`,
		"file":          `"/src/net.c"`,
		"start_line":    `"1"`,
		"function_id":   `"f-100"`,
		"end_line":      `"10"`,
		"caller_id":     `"f-300"`,
	})
	assert.Equal(t, `"alpha"`, fn.Name)
	assert.Equal(t, `"f-300"`, fn.CallerID)

	class := classFromFields(map[string]string{
		"type":        `"class"`,
		"class_name":  `"net::Socket"`,
		"file":        `"/src/socket.h"`,
		"start_line":  `"3"`,
		"end_line":    `"40"`,
		"simple_name": `"Socket"`,
	})
	assert.Equal(t, `"net::Socket"`, class.Name)
	assert.Equal(t, `"Socket"`, class.SimpleName)
}
