package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jamesainslie/metachk/pkg/metachk/config"
	"github.com/jamesainslie/metachk/pkg/metachk/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "metachk <manifest>",
		Short: "Audit a package manifest for metadata inconsistencies",
		Long: `Metachk audits a METALOG-style package manifest recorded during system
installation. It summarizes each declared package (file count, total size,
setuid/setgid content) and reports filenames that appear more than once
with conflicting metadata.

With --inodes it also resolves each filename's inode and reports hard-link
sets whose manifest entries disagree.

Inconsistency findings are printed as report lines on standard output and
never affect the exit status; only usage and file errors do.

Examples:
  metachk METALOG            # Audit a manifest
  metachk -f json METALOG    # Machine-readable report
  metachk --inodes -r /dest METALOG
                             # Include hard-link checks against /dest
  metachk version            # Show version information`,
		Args: cobra.ExactArgs(1),
		RunE: runCheck,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/metachk/config.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", "", "output format (plain, pretty, json, yaml)")
	rootCmd.PersistentFlags().StringP("root", "r", "", "directory inode lookups resolve against")
	rootCmd.PersistentFlags().Bool("inodes", false, "enable the hard-link consistency report")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress diagnostics, report only")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output")
	rootCmd.PersistentFlags().String("log-file", "", "also write diagnostics to a log file (bare flag uses the XDG state path)")
	// A bare --log-file selects the default location under the XDG state dir.
	rootCmd.PersistentFlags().Lookup("log-file").NoOptDefVal = logging.DefaultLogPath()

	// Bind flags to viper
	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	_ = viper.BindPFlag("inode_report.enabled", rootCmd.PersistentFlags().Lookup("inodes"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("logging.path", rootCmd.PersistentFlags().Lookup("log-file"))
}

// initConfig reads in config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Set config name and type
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		// Add config paths in order of precedence
		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			viper.AddConfigPath(filepath.Join(xdgConfigHome, "metachk"))
		}

		homeDir, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(homeDir, ".config", "metachk"))
		}
	}

	// Set environment variable prefix and enable auto env binding
	viper.SetEnvPrefix("METACHK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// Set defaults from config package
	config.SetDefaults(viper.GetViper())

	// Read config file (ignore if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// getVerbose returns true if verbose mode is enabled.
func getVerbose() bool {
	return viper.GetBool("verbose")
}

// getQuiet returns true if quiet mode is enabled.
func getQuiet() bool {
	return viper.GetBool("quiet")
}

// logLevel maps the quiet/verbose flags onto the configured log level.
func logLevel() string {
	switch {
	case getQuiet():
		return "error"
	case getVerbose():
		return "debug"
	default:
		return viper.GetString("logging.level")
	}
}
