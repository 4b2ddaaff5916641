package codeql

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quarrylabs/quarry/internal/rowcsv"
)

// newTestLookup returns a Lookup wired with the standard row parser.
func newTestLookup() *Lookup {
	return NewLookup(rowcsv.Parse)
}

// writeTable writes one table file into dir and returns its path.
func writeTable(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// functionTreeFixture is the function table used across lookup tests.
//
// alpha and beta overlap in net.c; gamma's caller_id is the encoded
// file:line form; delta has an unresolvable caller and a malformed twin.
const functionTreeFixture = `"alpha","/src/net.c","1","f-100","10","f-300"
"beta","/src/net.c","5","f-200","15","f-100"
not,a,valid,row
"gamma","/src/main.c","20","f-300","40","/src/net.c:7"
"delta","/src/main.c","50","f-400","60","f-999"
"delta_helper","/src/main.c","not-a-number","f-500","70","f-400"
`

// writeFixtureDB lays out a full database directory: all four tables.
func writeFixtureDB(t *testing.T) (Database, string) {
	t.Helper()
	dir := t.TempDir()

	treeFile := writeTable(t, dir, "FunctionTree.csv", functionTreeFixture)
	writeTable(t, dir, "Macros.csv", `"MAX_BUFFER_LEN","2048"
"MAX_BUF","1024"
"MIN_BUF","16"
`)
	writeTable(t, dir, "GlobalVars.csv", `"listen_backlog","/src/net.c","3","3"
"debug_level","/src/main.c","4","4"
`)
	writeTable(t, dir, "Classes.csv", `"class","net::Socket","/src/socket.h","3","40","Socket"
"struct","buf_pool","/src/pool.h","1","25","buf_pool"
`)

	return NewDatabase(dir), treeFile
}
