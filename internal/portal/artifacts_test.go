// File: internal/portal/artifacts_test.go
package portal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitReady(t *testing.T) {
	ctx := context.Background()

	t.Run("ready immediately", func(t *testing.T) {
		probe := func(context.Context) (bool, error) { return true, nil }
		assert.NoError(t, waitReady(ctx, probe, time.Millisecond, 50*time.Millisecond))
	})

	t.Run("ready after a few polls", func(t *testing.T) {
		calls := 0
		probe := func(context.Context) (bool, error) {
			calls++
			return calls >= 3, nil
		}
		require.NoError(t, waitReady(ctx, probe, time.Millisecond, time.Second))
		assert.Equal(t, 3, calls)
	})

	t.Run("never ready exhausts the budget", func(t *testing.T) {
		probe := func(context.Context) (bool, error) { return false, nil }
		err := waitReady(ctx, probe, time.Millisecond, 20*time.Millisecond)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not ready")
	})

	t.Run("probe error is terminal", func(t *testing.T) {
		boom := errors.New("boom")
		probe := func(context.Context) (bool, error) { return false, boom }
		assert.ErrorIs(t, waitReady(ctx, probe, time.Millisecond, time.Second), boom)
	})

	t.Run("context cancellation stops the poll", func(t *testing.T) {
		cancelCtx, cancel := context.WithCancel(ctx)
		cancel()
		probe := func(context.Context) (bool, error) { return false, nil }
		err := waitReady(cancelCtx, probe, 10*time.Millisecond, time.Minute)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDownloadDir(t *testing.T) {
	t.Run("configured directory wins", func(t *testing.T) {
		dir, err := downloadDir("/srv/downloads")
		require.NoError(t, err)
		assert.Equal(t, "/srv/downloads", dir)
	})

	t.Run("defaults to the home downloads folder", func(t *testing.T) {
		dir, err := downloadDir("")
		require.NoError(t, err)
		assert.Equal(t, "Downloads", filepath.Base(dir))
	})
}

func TestMoveFile(t *testing.T) {
	t.Run("moves content and removes the source", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "report.pdf")
		dst := filepath.Join(dir, "out", "report.pdf")
		require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0o755))
		require.NoError(t, os.WriteFile(src, []byte("pdf-bytes"), 0o644))

		require.NoError(t, moveFile(src, dst))

		got, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, []byte("pdf-bytes"), got)
		_, err = os.Stat(src)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("missing source fails", func(t *testing.T) {
		dir := t.TempDir()
		err := moveFile(filepath.Join(dir, "absent.pdf"), filepath.Join(dir, "out.pdf"))
		assert.Error(t, err)
	})
}
