package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mentora-ai/mentora/pkg/budget"
	"github.com/mentora-ai/mentora/pkg/client"
	"github.com/mentora-ai/mentora/pkg/feature"
	"github.com/mentora-ai/mentora/pkg/history"
	"github.com/mentora-ai/mentora/pkg/models"
	"github.com/mentora-ai/mentora/pkg/pricing"
	"github.com/mentora-ai/mentora/pkg/store"
)

func newChatCmd() *cobra.Command {
	var (
		configPath string
		mode       string
		model      string
	)

	cmd := &cobra.Command{
		Use:   "chat [question]",
		Short: "Start an assistant session (interactive, or one-shot with a question)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			f, err := feature.Lookup(feature.Kind(mode))
			if err != nil {
				return err
			}

			table, err := cfg.PriceTable()
			if err != nil {
				return err
			}
			tracker, err := budget.New(pricing.NewCalculator(table), cfg.DailyBudget)
			if err != nil {
				return err
			}

			if model == "" {
				model = cfg.DefaultModel
			}

			sess := feature.NewSession(
				f,
				history.New(cfg.MaxHistoryTokens),
				tracker,
				client.New(cfg.Provider.URL, cfg.Provider.APIKey, cfg.Retry.MaxAttempts, cfg.Retry.Backoff),
				model,
			)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			defer func() {
				rec := sess.Record()
				if rec.MessageCount == 0 {
					return
				}
				if err := store.New(cfg.SessionsPath).Append(rec); err != nil {
					log.Printf("record session: %v", err)
				}
			}()

			if len(args) > 0 {
				return askOnce(ctx, sess, strings.Join(args, " "))
			}
			return runInteractive(ctx, sess, string(f.Kind()))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	cmd.Flags().StringVarP(&mode, "mode", "m", string(feature.KindTutor), "assistant mode (tutor, explainer, teacher, generator)")
	cmd.Flags().StringVar(&model, "model", "", "model to use (default from config)")
	return cmd
}

func askOnce(ctx context.Context, sess *feature.Session, question string) error {
	res, err := sess.Ask(ctx, question)
	if err != nil {
		return err
	}
	fmt.Println(res.Response)
	printBudgetWarning(res.Budget)
	return nil
}

func runInteractive(ctx context.Context, sess *feature.Session, mode string) error {
	fmt.Printf("mentora %s mode — /exit to finish, /help for commands\n", mode)

	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			done, err := runCommand(sess, line)
			if err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
			}
			if done {
				return nil
			}
			continue
		}

		res, err := sess.Ask(ctx, line)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		fmt.Println(res.Response)
		printBudgetWarning(res.Budget)
	}
}

// runCommand handles slash commands; it returns true when the session
// should end.
func runCommand(sess *feature.Session, line string) (bool, error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/exit", "/quit":
		return true, nil
	case "/help":
		fmt.Println("/exit  end the session\n/clear empty the transcript\n/export [text|markdown|json]\n/budget show spend for this session")
		return false, nil
	case "/clear":
		sess.History().Clear()
		fmt.Println("transcript cleared")
		return false, nil
	case "/export":
		format := history.FormatText
		if len(fields) > 1 {
			format = history.Format(fields[1])
		}
		out, err := sess.History().Export(format)
		if err != nil {
			return false, err
		}
		fmt.Println(out)
		return false, nil
	case "/budget":
		printReport(sess.Tracker().Report())
		return false, nil
	default:
		return false, fmt.Errorf("unknown command %s", fields[0])
	}
}

func printBudgetWarning(st models.BudgetStatus) {
	switch {
	case st.IsExceeded:
		fmt.Printf("!! budget exceeded: $%.4f spent, $%.4f over\n", st.CurrentCost, -st.Remaining)
	case st.IsNearLimit:
		fmt.Printf("!! near budget limit: $%.4f spent, $%.4f remaining\n", st.CurrentCost, st.Remaining)
	case st.ShouldWarn:
		fmt.Printf("note: $%.4f spent, $%.4f remaining\n", st.CurrentCost, st.Remaining)
	}
}
