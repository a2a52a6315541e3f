package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mentora-ai/mentora/pkg/budget"
	"github.com/mentora-ai/mentora/pkg/models"
	"github.com/mentora-ai/mentora/pkg/store"
)

func newBudgetCmd() *cobra.Command {
	var (
		configPath string
		allTime    bool
	)

	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Show today's spend against the daily budget",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			cutoff := startOfDay()
			if allTime {
				cutoff = time.Time{}
			}

			usage, count, err := store.New(cfg.SessionsPath).Totals(cutoff)
			if err != nil {
				return err
			}

			rep, err := budget.ReportFor(cfg.DailyBudget, usage)
			if err != nil {
				return err
			}

			printReport(rep)
			fmt.Printf("Sessions:      %d\n", count)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	cmd.Flags().BoolVar(&allTime, "all", false, "include all recorded sessions, not just today's")
	return cmd
}

func printReport(rep models.BudgetReport) {
	fmt.Printf("Budget:        $%.2f\n", rep.Budget)
	fmt.Printf("Spent:         $%.4f (%.1f%%)\n", rep.CurrentCost, rep.Percentage)
	fmt.Printf("Remaining:     $%.4f\n", rep.Remaining)
	fmt.Printf("Tokens:        %d in / %d out\n", rep.Usage.InputTokens, rep.Usage.OutputTokens)
	fmt.Printf("Status:        %s\n", rep.Status)
}

func startOfDay() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
