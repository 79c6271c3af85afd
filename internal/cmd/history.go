package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dosanma1/vncard-cli/internal/history"
	"github.com/dosanma1/vncard-cli/internal/ui"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the history log",
	Long: `Prints how many distinct names were emitted so far. With --last it also
lists the most recent entries.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyLast int

func init() {
	historyCmd.Flags().IntVar(&historyLast, "last", 0, "Show the last N entries")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	store := history.New(cfg.History)

	n, err := store.Count()
	if err != nil {
		ui.Warnf(out, "%v", err)
	}
	fmt.Fprintf(out, "%s: %d name(s)\n", store.Path(), n)

	if historyLast <= 0 {
		return nil
	}
	recent, err := store.Recent(historyLast)
	if err != nil {
		return err
	}
	for _, name := range recent {
		fmt.Fprintln(out, name)
	}
	return nil
}
