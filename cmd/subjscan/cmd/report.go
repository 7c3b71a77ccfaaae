package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/subjscan/subjscan/internal/report"
	"github.com/subjscan/subjscan/internal/store"
)

var (
	reportFrom     string
	reportTo       string
	reportMaxCount int64
	reportOutput   string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the subject-length chart",
	Long: `Render a chart of per-day average subject length with a trend line,
plus a scaled per-day message volume series.

The filters only shape the chart; the stored table is never modified.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(cfg.DatabasePath())
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		aggs, err := st.DailyAggregates()
		if err != nil {
			return err
		}

		aggs = report.Filter(aggs, report.Options{
			From:     reportFrom,
			To:       reportTo,
			MaxCount: reportMaxCount,
		})

		if err := report.Render(aggs, reportOutput); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d days)\n", reportOutput, len(aggs))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportFrom, "from", "", "inclusive lower date bound for the chart (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "inclusive upper date bound for the chart (YYYY-MM-DD)")
	reportCmd.Flags().Int64Var(&reportMaxCount, "max-count", 0, "drop days with more messages than this (0 = keep all)")
	reportCmd.Flags().StringVar(&reportOutput, "output", "result.png", "output image path")
}
