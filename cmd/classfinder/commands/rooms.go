package commands

import (
	"log/slog"
	"os"

	"classfinder-backend/lib/roomdata"
	"classfinder-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(roomsCmd)
}

var roomsCmd = &cobra.Command{
	Use:   "rooms <raw.txt> <out.csv>",
	Short: "Converts class listings pasted from the enrollment portal into loader csv rows.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		in, err := os.Open(args[0])
		if err != nil {
			serviceutil.Fatal("failed to open raw paste", err)
		}
		defer in.Close()

		rows, err := roomdata.ParsePaste(in)
		if err != nil {
			serviceutil.Fatal("failed to parse paste", err)
		}

		out, err := os.Create(args[1])
		if err != nil {
			serviceutil.Fatal("failed to create csv", err)
		}
		defer out.Close()

		if err := roomdata.WriteCSV(out, rows); err != nil {
			serviceutil.Fatal("failed to write csv", err)
		}
		slog.Info("wrote rows", "classes", len(rows), "file", args[1])
	},
}
