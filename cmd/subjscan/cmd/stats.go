package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/subjscan/subjscan/internal/store"
)

var statsCmd = &cobra.Command{
	Use:          "stats",
	Short:        "Show database statistics",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(cfg.DatabasePath())
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		stats, err := st.GetStats()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "  Database:   %s\n", cfg.DatabasePath())
		fmt.Fprintf(out, "  Rows:       %d\n", stats.Rows)
		if stats.Earliest != "" {
			fmt.Fprintf(out, "  Date range: %s..%s\n", stats.Earliest, stats.Latest)
		}
		fmt.Fprintf(out, "  Size:       %.2f MB\n", float64(stats.DatabaseSize)/(1024*1024))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
