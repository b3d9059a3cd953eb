package commands

import (
	"log/slog"
	"os"
	"time"

	"classfinder-backend/lib/scrapers/classsearch"
	"classfinder-backend/lib/serviceutil"
	"classfinder-backend/lib/telemetry"
	"classfinder-backend/lib/terms"

	"github.com/spf13/cobra"
)

var scrapeVerbose *bool
var scrapeMaxPages *int

func init() {
	scrapeVerbose = scrapeCmd.Flags().Bool("verbose", false, "Log per-page scrape progress.")
	scrapeMaxPages = scrapeCmd.Flags().Int("max-pages", 0, "Abort if the feed takes more pages than this (0 = default budget).")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <file> <term>",
	Short: "Scrapes class data for a term into a JSON document.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*scrapeVerbose)

		file := args[0]
		code, err := terms.Resolve(args[1])
		if err != nil {
			serviceutil.Fatal("unsupported term", err)
		}

		out, err := os.Create(file)
		if err != nil {
			serviceutil.Fatal("failed to create output file", err)
		}
		defer out.Close()

		ctx := serviceutil.SignalContext()
		telemetry.InstrumentPerfStats(ctx)

		client := classsearch.NewClient(classsearch.ClientOptions{
			MaxPages: *scrapeMaxPages,
		})

		slog.Info("scraping term", "term", args[1], "code", code, "file", file)
		t1 := time.Now()
		count, err := client.Scrape(ctx, code, out)
		if err != nil {
			serviceutil.Fatal("scrape failed", err)
		}

		slog.Info(
			"scrape complete",
			"classes", count,
			"seconds", time.Since(t1).Seconds(),
		)
	},
}
