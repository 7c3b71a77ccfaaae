package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/subjscan/subjscan/internal/store"
)

var anonymizeYes bool

var anonymizeCmd = &cobra.Command{
	Use:   "anonymize",
	Short: "Replace stored message-ids with sequential surrogate keys",
	Long: `Replace stored message-ids with sequential surrogate keys.

Message-ids can reveal the sender's or recipient's hostname, timezone,
OS, or mail client. This rewrites the id column to a plain row number
and vacuums the database so the original identifiers are gone for good.

The rewrite is irreversible, and running it twice renumbers the rows.
Run it at most once per dataset if you need stable surrogate keys.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(cfg.DatabasePath())
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		stats, err := st.GetStats()
		if err != nil {
			return fmt.Errorf("read stats: %w", err)
		}

		if !anonymizeYes {
			fmt.Fprintf(cmd.OutOrStdout(),
				"This will irreversibly strip the message-ids from %d rows in %s.\nRe-run with --yes to proceed.\n",
				stats.Rows, cfg.DatabasePath())
			return nil
		}

		if err := st.Anonymize(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Anonymized %d rows.\n", stats.Rows)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(anonymizeCmd)

	anonymizeCmd.Flags().BoolVar(&anonymizeYes, "yes", false, "actually perform the irreversible rewrite")
}
