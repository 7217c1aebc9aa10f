package cmd

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bfflix/bfflix/config"
	"github.com/bfflix/bfflix/db"
)

// cfg holds the configuration loaded at startup, shared by all commands.
var cfg *config.Config

func Execute() {
	loadConfiguration()
	rootCmd := createRootCmd()
	initializeDatabase()
	defer closeDatabase()

	rootCmd.PersistentFlags().BoolP("help", "h", false, "Show help for a command")

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command execution failed.")
		os.Exit(1)
	}
}

func createRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bfflix",
		Short: "A companion CLI for the BFFLIX watch-tracking app",
	}

	rootCmd.AddCommand(
		loginCmd(),
		logoutCmd(),
		signupCmd(),
		whoamiCmd(),
		watchlistCmd(),
		favoritesCmd(),
		postsCmd(),
		circlesCmd(),
		versionCmd(),
	)

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.SetHelpCommand(&cobra.Command{
		Use:    "no-help",
		Hidden: true,
	})

	return rootCmd
}

func loadConfiguration() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}
	db.Path = cfg.DatabasePath
}

func initializeDatabase() {
	if err := db.InitDB(); err != nil {
		log.Error().Err(err).Msg("Failed to initialize database")
		os.Exit(1)
	}
}

func closeDatabase() {
	if err := db.CloseDB(); err != nil {
		log.Error().Err(err).Msg("Failed to close the database.")
		os.Exit(1)
	}
}
