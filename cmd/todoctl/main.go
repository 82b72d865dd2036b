package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pinkcat015/todolist/pkg/config"
	"github.com/pinkcat015/todolist/pkg/logger"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "todoctl",
	Short: "Operations CLI for the todolist API",
	Long: `todoctl runs database and storage maintenance for the todolist API.
It reads the same environment variables (and .env file) as the API server.

Examples:
  todoctl migrate
  todoctl seed users
  todoctl seed data --todos 50 --logs 150
  todoctl reset --yes
  todoctl bucket`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return err
		}
		logCfg := logger.DefaultConfig()
		logCfg.Level = cfg.Log.Level
		logCfg.Format = "text"
		return logger.Init(logCfg)
	},
}

func main() {
	rootCmd.AddCommand(newMigrateCmd(), newSeedCmd(), newResetCmd(), newBucketCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
