package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yatube/yatube/internal/db"
	"github.com/yatube/yatube/pkg/config"
	"github.com/yatube/yatube/pkg/logging"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "yatube-admin [command] [flags]",
	Short:         "Administrative tasks for a Yatube database",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if cfg.Database.Driver == config.DriverMemory {
			return fmt.Errorf("database_driver %q has nothing to administer", cfg.Database.Driver)
		}
		if err := logging.InitLogger(&cfg.Logging); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		appConfig = cfg
		return nil
	},
}

var appConfig *config.Config

// openDB connects to the configured database
func openDB() (*db.DB, error) {
	return db.New(&appConfig.Database, appConfig.Logging.Level)
}

func main() {
	defer logging.GetLogger().Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
