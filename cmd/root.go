package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"javaboot/config"
	"javaboot/logging"
)

// Global config variable
var cfg *config.Config

// Global flags
var configFile string

// Root command
var rootCmd = &cobra.Command{
	Use:   "javaboot",
	Short: "javaboot - Java runtime bootstrapper",
	Long: `javaboot finds the Java runtime a JVM bridge should load, downloading the
pinned JRE (and, on 64-bit Windows, JDK) archive into your home directory when
none is installed, and reports the java home, the javac/jar tools and the JVM library.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration with optional config file override
		var err error
		cfg, err = config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		if err := config.EnsureDirectoriesExist(cfg); err != nil {
			return fmt.Errorf("error ensuring directories: %w", err)
		}

		// Initialize logger with JSON format if requested
		if err := logging.InitLogger(cfg.General.LogPath, cfg.General.LogLevel, jsonOutput || jsonLogs); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Close()
	},
}

func init() {
	// Pre-log important startup messages before logger is initialized
	logging.PreLog("DEBUG", "Initializing javaboot...")

	rootCmd.AddCommand(locateCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(jvmCmd)
	rootCmd.AddCommand(toolCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(removeCmd)

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to configuration file (default: JAVABOOT_CONFIG_PATH or ./javaboot.toml)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Output logs in JSON format")
}

// Execute runs the root command. An interrupt cancels a running download.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		ExitWithError(err)
	}
}
