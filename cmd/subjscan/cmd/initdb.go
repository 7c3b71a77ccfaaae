package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/subjscan/subjscan/internal/store"
)

var initDBCmd = &cobra.Command{
	Use:          "init-db",
	Short:        "Create the stats database and schema",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := cfg.DatabasePath()
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		if err := st.InitSchema(); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Database ready: %s\n", dbPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initDBCmd)
}
