package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for swpro.

Shows the configuration file location, whether it exists, and all current
settings. Values are merged from the config file with sensible defaults.

Settings:
  theme              TUI color theme name (default: dracula)
  voice_language     Secondary voice command language (default: no)
  countdown_seconds  Countdown before a delayed start, 0-60 (default: 0)
  hourly_wage        Default hourly wage for saved sessions (default: 0)

Examples:
  swpro config                         Show all current settings
  swpro config set theme nord          Change the TUI theme
  swpro config set countdown_seconds 3 Start after a 3 second countdown
  swpro config path                    Print the config file location`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showConfig()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a configuration setting",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		setConfig(args[0], args[1])
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printConfigPath()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
}

// showConfig displays the current effective configuration
func showConfig() {
	configPath, err := deps.ConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config file location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that your home directory is accessible")
		deps.Exit(1)
		return
	}

	fileExists := false
	if _, err := os.Stat(configPath); err == nil {
		fileExists = true
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load configuration")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check that your config file is valid TOML format: %s\n", configPath)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration for swpro")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintf(deps.Stdout, "Config file:       %s\n", configPath)
	if fileExists {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:            File exists (using custom configuration)")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:            No config file (using defaults)")
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintln(deps.Stdout, "Current Settings:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "Theme:             %s\n", cfg.Theme)
	_, _ = fmt.Fprintf(deps.Stdout, "Voice Language:    %s\n", cfg.VoiceLanguage)
	if cfg.CountdownSeconds == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "Countdown:         (disabled)")
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Countdown:         %d seconds\n", cfg.CountdownSeconds)
	}
	if cfg.HourlyWage == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "Hourly Wage:       (not set)")
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Hourly Wage:       %s\n", formatEarnings(cfg.HourlyWage))
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	if !fileExists {
		_, _ = fmt.Fprintln(deps.Stdout, "Tip: Change settings with 'swpro config set <key> <value>'.")
		_, _ = fmt.Fprintln(deps.Stdout)
	}
}

// setConfig updates one setting and writes the config file.
func setConfig(key, value string) {
	configPath, err := deps.ConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config file location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load configuration")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	switch key {
	case "theme":
		cfg.Theme = value
	case "voice_language":
		cfg.VoiceLanguage = value
	case "countdown_seconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid value '%s' for countdown_seconds\n", value)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use a whole number of seconds between 0 and 60")
			deps.Exit(1)
			return
		}
		cfg.CountdownSeconds = n
	case "hourly_wage":
		w, err := strconv.ParseFloat(value, 64)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid value '%s' for hourly_wage\n", value)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use a non-negative number, e.g. 120 or 99.50")
			deps.Exit(1)
			return
		}
		cfg.HourlyWage = w
	default:
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Unknown setting '%s'\n", key)
		_, _ = fmt.Fprintln(deps.Stderr, "Valid settings: theme, voice_language, countdown_seconds, hourly_wage")
		deps.Exit(1)
		return
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid configuration\n")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	if err := config.Save(configPath, cfg); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to save configuration")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check that the config directory is writable: %s\n", configPath)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Set %s = %s\n", key, value)
}

func printConfigPath() {
	configPath, err := deps.ConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config file location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, configPath)
}
