package commands

import (
	"log/slog"

	"classfinder-backend/lib/serviceutil"
	"classfinder-backend/services/catalog"

	"github.com/spf13/cobra"
)

var pingDb *string

func init() {
	pingDb = pingCmd.Flags().String("db", "classes.db", "The database to check.")
	rootCmd.AddCommand(pingCmd)
}

var pingCmd = &cobra.Command{
	Use:   "ping [--db <path>]",
	Short: "Checks that the database is reachable.",
	Run: func(cmd *cobra.Command, args []string) {
		database, err := catalog.OpenDatabase(*pingDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()

		svc := catalog.NewService(database)
		if err := svc.Ping(cmd.Context()); err != nil {
			serviceutil.Fatal("ping failed", err)
		}
		slog.Info("database reachable", "db", *pingDb)
	},
}
