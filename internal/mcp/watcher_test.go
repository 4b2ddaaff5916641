package mcp

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingReloadable records how many reloads the watcher triggered.
type countingReloadable struct {
	count atomic.Int64
}

func (c *countingReloadable) Reload(ctx context.Context) error {
	c.count.Add(1)
	return nil
}

func TestTableWatcherReloadsOnTableWrite(t *testing.T) {
	dir := t.TempDir()
	target := &countingReloadable{}

	tw, err := newTableWatcher(target, dir, 50*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tw.Start(ctx)
	defer tw.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "FunctionTree.csv"), []byte("row\n"), 0o644))

	require.Eventually(t, func() bool {
		return target.count.Load() >= 1
	}, 5*time.Second, 20*time.Millisecond, "watcher never triggered a reload")
}

func TestTableWatcherIgnoresNonTableFiles(t *testing.T) {
	dir := t.TempDir()
	target := &countingReloadable{}

	tw, err := newTableWatcher(target, dir, 50*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tw.Start(ctx)
	defer tw.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x\n"), 0o644))

	time.Sleep(300 * time.Millisecond)
	assert.Zero(t, target.count.Load())
}

func TestTableWatcherStopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	tw, err := newTableWatcher(&countingReloadable{}, dir, 50*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tw.Start(ctx)

	tw.Stop()
	tw.Stop()
}

func TestIsTableFile(t *testing.T) {
	t.Parallel()

	assert.True(t, isTableFile("/db/FunctionTree.csv"))
	assert.True(t, isTableFile("/db/Macros.CSV"))
	assert.False(t, isTableFile("/db/src.zip"))
	assert.False(t, isTableFile("/db/notes.txt"))
}
