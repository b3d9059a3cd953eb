package commands

import (
	"log/slog"
	"os"

	"classfinder-backend/lib/serviceutil"
	"classfinder-backend/services/catalog"

	"github.com/spf13/cobra"
)

var loadBuildingsDb *string

func init() {
	loadBuildingsDb = loadBuildingsCmd.Flags().String("db", "classes.db", "The database to load building data into.")
	rootCmd.AddCommand(loadBuildingsCmd)
}

var loadBuildingsCmd = &cobra.Command{
	Use:   "load-buildings <csv> [--db <path>]",
	Short: "Loads building name/place-id csv rows into the database.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(args[0])
		if err != nil {
			serviceutil.Fatal("failed to open csv", err)
		}
		defer f.Close()

		database, err := catalog.OpenDatabase(*loadBuildingsDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()

		svc := catalog.NewService(database)
		count, err := svc.LoadBuildings(cmd.Context(), f)
		if err != nil {
			serviceutil.Fatal("failed to load buildings", err)
		}
		slog.Info("load complete", "buildings", count)
	},
}
