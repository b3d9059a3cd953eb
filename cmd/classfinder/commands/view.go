package commands

import (
	"os"

	"classfinder-backend/lib/serviceutil"
	"classfinder-backend/services/catalog"

	"github.com/spf13/cobra"
)

var viewDb *string
var viewTerm *string

func init() {
	viewDb = viewCmd.Flags().String("db", "classes.db", "The database to read class data from.")
	viewTerm = viewCmd.Flags().String("term", "", "The term label to view.")
	viewCmd.MarkFlagRequired("term")
	rootCmd.AddCommand(viewCmd)
}

var viewCmd = &cobra.Command{
	Use:   "view --term <label> [--db <path>]",
	Short: "Prints stored class data as a table.",
	Run: func(cmd *cobra.Command, args []string) {
		database, err := catalog.OpenDatabase(*viewDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()

		svc := catalog.NewService(database)
		rows, err := svc.Classes(cmd.Context(), *viewTerm)
		if err != nil {
			serviceutil.Fatal("failed to list classes", err)
		}
		catalog.RenderClasses(os.Stdout, rows)
	},
}
