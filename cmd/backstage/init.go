// Init command for the backstage CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allmyfriends/backstage/internal/artwork"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize backstage storage",
	Long: `Init creates the configuration directory with a default config.yaml,
creates the data directory with the database file, applies schema
migrations, and lays out the artwork tree.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		if err := ensureConfigDir(configDir); err != nil {
			return err
		}
		if err := ensureDefaultConfigFile(configDir); err != nil {
			return err
		}

		// Opening the store creates the data directory and the database
		// file, and applies pending migrations.
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		dataDir, err := resolveDataDir()
		if err != nil {
			return err
		}
		if err := artwork.NewWriter(dataDir).EnsureLayout(); err != nil {
			return err
		}

		fmt.Println("Backstage initialized successfully")
		fmt.Println("  config:", configDir)
		fmt.Println("  data:  ", dataDir)
		return nil
	},
}
