// Root command for the backstage CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/allmyfriends/backstage/internal/paths"
)

// Version is the backstage CLI version.
const Version = "0.1.0"

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
	flagVerbose   bool
)

// Values loaded from config.yaml by PersistentPreRunE so all subcommands
// can use them.
var (
	configDataDir  string
	configMaxConns int
	configMinIdle  int
)

var rootCmd = &cobra.Command{
	Use:     "backstage",
	Short:   "Backstage manages artists, projects, invoices, and a music library",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		configMaxConns = cfg.GetInt(cfgKeyMaxConns)
		configMinIdle = cfg.GetInt(cfgKeyMinIdleConns)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "log store activity to stderr")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(artistCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(invoiceCmd)
	rootCmd.AddCommand(musicArtistCmd)
	rootCmd.AddCommand(albumCmd)
	rootCmd.AddCommand(songCmd)
	rootCmd.AddCommand(playlistCmd)
}

// resolveDataDir follows the precedence chain:
// --data-dir flag > config.yaml data_dir > BACKSTAGE_DATA_DIR env > platform default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveConfigDir follows the precedence chain:
// --config-dir flag > BACKSTAGE_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
