package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newModelsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List known models and their prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			table, err := cfg.PriceTable()
			if err != nil {
				return err
			}

			entries := table.Models()
			sort.Slice(entries, func(i, j int) bool { return entries[i].Model < entries[j].Model })

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MODEL\tINPUT $/M\tOUTPUT $/M")
			for _, e := range entries {
				name := e.Model
				if name == table.DefaultModel() {
					name += " (default)"
				}
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\n", name, e.InputPerMillion, e.OutputPerMillion)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	return cmd
}
