// File: internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration. The questionnaire input
// file is deliberately not part of this struct; it is domain data loaded by
// the review package, while Config covers the ambient concerns (logging,
// browser launch, portal timing).
type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	Browser BrowserConfig `mapstructure:"browser" yaml:"browser"`
	Portal  PortalConfig  `mapstructure:"portal" yaml:"portal"`

	// Run gets its marching orders from CLI flags, not the config file.
	Run RunConfig `mapstructure:"-" yaml:"-"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// BrowserConfig holds settings for the Chrome instance driven over CDP.
type BrowserConfig struct {
	Headless bool     `mapstructure:"headless" yaml:"headless"`
	ExecPath string   `mapstructure:"exec_path" yaml:"exec_path"`
	Args     []string `mapstructure:"args" yaml:"args"`

	// Humanize enables randomized pacing between keystrokes and wizard
	// sections. It mimics an operator working by hand and has no bearing on
	// correctness.
	Humanize bool `mapstructure:"humanize" yaml:"humanize"`
	// HumanizeMaxDelay bounds each randomized pause.
	HumanizeMaxDelay time.Duration `mapstructure:"humanize_max_delay" yaml:"humanize_max_delay"`
}

// PortalConfig tunes the bounded waits used while driving the portal. Every
// wait in the driver is a blocking poll against one of these budgets; a
// budget running out is terminal for the run.
type PortalConfig struct {
	// ElementWait bounds a single element lookup.
	ElementWait time.Duration `mapstructure:"element_wait" yaml:"element_wait"`
	// LoginPoll is the interval between page-title checks during sign-in.
	LoginPoll time.Duration `mapstructure:"login_poll" yaml:"login_poll"`
	// CaptionStall bounds how long a question caption may stay unchanged
	// after advancing before the walk is declared stalled.
	CaptionStall time.Duration `mapstructure:"caption_stall" yaml:"caption_stall"`
	// CaptionPoll is the re-check interval while waiting on a caption change.
	CaptionPoll time.Duration `mapstructure:"caption_poll" yaml:"caption_poll"`
	// DownloadWait bounds the wait for the generated document to appear in
	// the browser's download directory.
	DownloadWait time.Duration `mapstructure:"download_wait" yaml:"download_wait"`
	// GeneratePoll is the interval between checks of the generation control
	// while a document export is in flight.
	GeneratePoll time.Duration `mapstructure:"generate_poll" yaml:"generate_poll"`
	// GenerateBudget bounds the overall document generation wait.
	GenerateBudget time.Duration `mapstructure:"generate_budget" yaml:"generate_budget"`
	// DownloadDir overrides the default <home>/Downloads location.
	DownloadDir string `mapstructure:"download_dir" yaml:"download_dir"`
}

// RunConfig holds settings populated from CLI flags for a single replay run.
// It is immutable once the driver starts.
type RunConfig struct {
	InputFile string
	OutputDir string
	Debug     bool
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "warwalk")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 20)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", true)

	// -- Browser --
	v.SetDefault("browser.headless", false)
	v.SetDefault("browser.humanize", false)
	v.SetDefault("browser.humanize_max_delay", "1s")

	// -- Portal --
	v.SetDefault("portal.element_wait", "20s")
	v.SetDefault("portal.login_poll", "2s")
	v.SetDefault("portal.caption_stall", "60s")
	v.SetDefault("portal.caption_poll", "1500ms")
	v.SetDefault("portal.download_wait", "15s")
	v.SetDefault("portal.generate_poll", "1s")
	v.SetDefault("portal.generate_budget", "5m")
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if c.Portal.ElementWait <= 0 {
		return fmt.Errorf("portal.element_wait must be a positive duration")
	}
	if c.Portal.CaptionStall <= 0 {
		return fmt.Errorf("portal.caption_stall must be a positive duration")
	}
	if c.Portal.CaptionPoll <= 0 || c.Portal.CaptionPoll > c.Portal.CaptionStall {
		return fmt.Errorf("portal.caption_poll must be positive and no larger than portal.caption_stall")
	}
	if c.Portal.DownloadWait <= 0 {
		return fmt.Errorf("portal.download_wait must be a positive duration")
	}
	if c.Portal.GeneratePoll <= 0 {
		return fmt.Errorf("portal.generate_poll must be a positive duration")
	}
	if c.Browser.Humanize && c.Browser.HumanizeMaxDelay <= 0 {
		return fmt.Errorf("browser.humanize_max_delay must be positive when humanize is enabled")
	}
	return nil
}
