// File: internal/driver/output_test.go
package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"warwalk/internal/config"
	"warwalk/internal/portal"
	"warwalk/internal/review"
)

// scriptedPrompter returns canned answers for the setup prompts.
type scriptedPrompter struct {
	line    string
	secret  string
	confirm bool
}

func (s *scriptedPrompter) Line(string) (string, error)   { return s.line, nil }
func (s *scriptedPrompter) Secret(string) (string, error) { return s.secret, nil }
func (s *scriptedPrompter) Confirm(string) (bool, error)  { return s.confirm, nil }

func testDriver(t *testing.T, outputDir string, pr *scriptedPrompter) *Driver {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cfg.Run.OutputDir = outputDir
	return New(cfg, pr, zap.NewNop())
}

func testReview(outDir string) *review.Review {
	return &review.Review{
		OutDir:   outDir,
		Workload: review.Workload{Name: "demo-workload"},
	}
}

func TestResolveOutputDir(t *testing.T) {
	t.Run("flag directory wins over the input file", func(t *testing.T) {
		flagDir := t.TempDir()
		fileDir := t.TempDir()

		d := testDriver(t, flagDir, &scriptedPrompter{line: "acme"})
		got, err := d.resolveOutputDir(testReview(fileDir))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(flagDir, "acme"), got)
		assert.DirExists(t, got)
	})

	t.Run("falls back to the input file directory", func(t *testing.T) {
		fileDir := t.TempDir()

		d := testDriver(t, "", &scriptedPrompter{line: "acme"})
		got, err := d.resolveOutputDir(testReview(fileDir))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(fileDir, "acme"), got)
	})

	t.Run("empty customer name uses the base directory", func(t *testing.T) {
		dir := t.TempDir()

		d := testDriver(t, dir, &scriptedPrompter{})
		got, err := d.resolveOutputDir(testReview(""))
		require.NoError(t, err)
		assert.Equal(t, dir, got)
	})

	t.Run("declined overwrite is a normal stop", func(t *testing.T) {
		dir := t.TempDir()
		outDir := filepath.Join(dir, "acme")
		require.NoError(t, os.MkdirAll(outDir, 0o755))
		existing := filepath.Join(outDir, "demo-workload.pdf")
		require.NoError(t, os.WriteFile(existing, []byte("old"), 0o644))

		d := testDriver(t, dir, &scriptedPrompter{line: "acme", confirm: false})
		_, err := d.resolveOutputDir(testReview(""))
		require.Error(t, err)
		assert.ErrorIs(t, err, portal.ErrDeclined)
		assert.FileExists(t, existing, "declining must leave the report alone")
	})

	t.Run("accepted overwrite removes the old report", func(t *testing.T) {
		dir := t.TempDir()
		outDir := filepath.Join(dir, "acme")
		require.NoError(t, os.MkdirAll(outDir, 0o755))
		existing := filepath.Join(outDir, "demo-workload.pdf")
		require.NoError(t, os.WriteFile(existing, []byte("old"), 0o644))

		d := testDriver(t, dir, &scriptedPrompter{line: "acme", confirm: true})
		got, err := d.resolveOutputDir(testReview(""))
		require.NoError(t, err)
		assert.Equal(t, outDir, got)
		_, statErr := os.Stat(existing)
		assert.True(t, os.IsNotExist(statErr))
	})
}
