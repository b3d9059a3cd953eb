package commands

import (
	"log/slog"
	"os"

	"classfinder-backend/lib/serviceutil"
	"classfinder-backend/services/catalog"

	"github.com/spf13/cobra"
)

var loadDb *string
var loadTerm *string

func init() {
	loadDb = loadCmd.Flags().String("db", "classes.db", "The database to load class data into.")
	loadTerm = loadCmd.Flags().String("term", "", "The term label the document was scraped for.")
	loadCmd.MarkFlagRequired("term")
	rootCmd.AddCommand(loadCmd)
}

var loadCmd = &cobra.Command{
	Use:   "load <file> --term <label> [--db <path>]",
	Short: "Loads a scraped class document into the database.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(args[0])
		if err != nil {
			serviceutil.Fatal("failed to open document", err)
		}
		defer f.Close()

		database, err := catalog.OpenDatabase(*loadDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()

		svc := catalog.NewService(database)
		count, err := svc.LoadDocument(cmd.Context(), *loadTerm, f)
		if err != nil {
			serviceutil.Fatal("failed to load document", err)
		}
		slog.Info("load complete", "term", *loadTerm, "rows", count)
	},
}
