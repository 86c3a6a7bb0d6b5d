// File: cmd/run.go
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"warwalk/internal/browser"
	"warwalk/internal/config"
	"warwalk/internal/driver"
	"warwalk/internal/observability"
	"warwalk/internal/prompt"
)

// newRunCmd creates and configures the `run` command.
func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Replays the review described by the input file",
		// Flags override config-file values; binding them here keeps the
		// precedence order (flag > env > file > default) intact.
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := viper.BindPFlag("browser.headless", cmd.Flags().Lookup("non-gui")); err != nil {
				return err
			}
			if err := viper.BindPFlag("browser.humanize", cmd.Flags().Lookup("slow")); err != nil {
				return err
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Context passed from Execute, signal-aware.
			ctx := cmd.Context()
			logger := observability.GetLogger()

			cfg, err := config.NewConfigFromViper(viper.GetViper())
			if err != nil {
				return err
			}

			inputFile, _ := cmd.Flags().GetString("input")
			outputDir, _ := cmd.Flags().GetString("output")
			debug, _ := cmd.Flags().GetBool("debug")

			if _, err := os.Stat(inputFile); err != nil {
				return fmt.Errorf("%w: input file is missing: %s", browser.ErrSetup, inputFile)
			}

			cfg.Run = config.RunConfig{
				InputFile: inputFile,
				OutputDir: outputDir,
				Debug:     debug,
			}

			logger.Info("Starting replay run.",
				zap.String("input", inputFile),
				zap.Bool("headless", cfg.Browser.Headless))

			d := driver.New(cfg, prompt.NewTerminal(), logger)
			return d.Run(ctx)
		},
	}

	runCmd.Flags().StringP("input", "i", "", "path to the questionnaire input file")
	runCmd.Flags().StringP("output", "o", "", "directory to place the report and ARN file into")
	runCmd.Flags().BoolP("non-gui", "n", false, "run the browser headless")
	runCmd.Flags().BoolP("debug", "d", false, "verbose logging")
	runCmd.Flags().BoolP("slow", "s", false, "humanized pacing between interactions")
	_ = runCmd.MarkFlagRequired("input")

	return runCmd
}
