package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mentora-ai/mentora/pkg/config"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "mentora",
		Short:   "Mentora — budget-aware AI tutoring assistant",
		Version: version,
	}

	root.AddCommand(
		newChatCmd(),
		newBudgetCmd(),
		newSessionsCmd(),
		newModelsCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig returns defaults when no config file is given.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
