// File: cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"warwalk/internal/config"
	"warwalk/internal/driver"
	"warwalk/internal/observability"
)

var (
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "warwalk",
	Short: "warwalk replays a scripted Well-Architected review through a browser.",
	Long: `warwalk drives the AWS Well-Architected Tool console through a real
browser session: it signs in, creates a workload, answers every review
question from a sectioned input file, then records a milestone and collects
the generated report and workload ARN.`,
	// Version is dynamically set at build time. See cmd/version.go.
	Version: Version,
	// Errors are printed once in Execute with their exit code mapping.
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Runs before any command, setting up config and logging.
		if err := initializeConfig(); err != nil {
			return err
		}

		var cfg config.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			// Fall back to a default logger if unmarshaling fails so the
			// error itself gets reported somewhere.
			observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "warwalk"})
			return fmt.Errorf("failed to unmarshal config: %w", err)
		}

		// Flags are parsed by now, so --debug can win before the first
		// logger init.
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			cfg.Logger.Level = "debug"
		}

		observability.InitializeLogger(cfg.Logger)
		observability.GetLogger().Debug("Starting warwalk", zap.String("version", Version))
		return nil
	},
}

// Execute runs the root command under a signal-aware context and exits the
// process with the code mapped from the run's outcome.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	observability.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(driver.ExitCodeFor(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	rootCmd.AddCommand(newRunCmd())
}

// initializeConfig reads in the config file and environment variables if set.
func initializeConfig() error {
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("WARWALK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults and env vars.
	}
	return nil
}
