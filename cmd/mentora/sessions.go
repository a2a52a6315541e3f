package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mentora-ai/mentora/pkg/store"
)

func newSessionsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List recorded assistant sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			records, err := store.New(cfg.SessionsPath).List()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No sessions recorded.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tMODE\tSTARTED\tENDED\tMESSAGES\tTOKENS\tCOST")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t$%.4f\n",
					shortID(r.ID), r.Mode,
					r.StartTime.Format("2006-01-02 15:04"),
					r.EndTime.Format("2006-01-02 15:04"),
					r.MessageCount, r.Usage.TotalTokens, r.Usage.TotalCost)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
