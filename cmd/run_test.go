// File: cmd/run_test.go
package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunCmd(t *testing.T) {
	cmd := newRunCmd()

	t.Run("registers the replay flags", func(t *testing.T) {
		for _, name := range []string{"input", "output", "non-gui", "debug", "slow"} {
			assert.NotNilf(t, cmd.Flags().Lookup(name), "flag %q should exist", name)
		}
	})

	t.Run("short flags match", func(t *testing.T) {
		assert.Equal(t, "i", cmd.Flags().Lookup("input").Shorthand)
		assert.Equal(t, "o", cmd.Flags().Lookup("output").Shorthand)
		assert.Equal(t, "n", cmd.Flags().Lookup("non-gui").Shorthand)
		assert.Equal(t, "d", cmd.Flags().Lookup("debug").Shorthand)
		assert.Equal(t, "s", cmd.Flags().Lookup("slow").Shorthand)
	})

	t.Run("input flag is required", func(t *testing.T) {
		flag := cmd.Flags().Lookup("input")
		require.NotNil(t, flag)
		assert.Contains(t, flag.Annotations, "cobra_annotation_bash_completion_one_required_flag")
	})
}
