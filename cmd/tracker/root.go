package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracker",
		Short: "Personal income and expense tracker",
		Long: `tracker records income and expenses, keeps budget goals per category and
derives weekly and monthly statistics from them.

Data lives in a SQLite file (TRACKER_DB_PATH) or in memory (TRACKER_BACKEND=memory).
A .env file in the working directory is loaded first.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("backend", "", "storage backend (sqlite, memory); overrides TRACKER_BACKEND")
	cmd.PersistentFlags().String("db", "", "SQLite database path; overrides TRACKER_DB_PATH")
	cmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error); overrides LOG_LEVEL")

	cmd.AddCommand(
		addCmd(),
		editCmd(),
		listCmd(),
		deleteCmd(),
		importCmd(),
		exportCmd(),
		statsCmd(),
		trendCmd(),
		goalsCmd(),
		settingsCmd(),
		categoriesCmd(),
	)
	return cmd
}
