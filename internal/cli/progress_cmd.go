package cli

import (
	"fmt"

	"github.com/alexanderramin/haven/internal/cli/formatter"
	"github.com/alexanderramin/haven/internal/domain"
	"github.com/spf13/cobra"
)

func newProgressCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Review recorded practice time",
	}

	cmd.AddCommand(
		newProgressListCmd(app),
		newProgressStatsCmd(app),
		newProgressJournalCmd(app),
	)

	return cmd
}

func newProgressListCmd(app *App) *cobra.Command {
	var category categoryFlag

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List progress synced to your account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Progress.List(cmd.Context(), category.value)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProgressList(entries))
			return nil
		},
	}

	cmd.Flags().VarP(&category, "category", "c", "only show one category")
	_ = cmd.RegisterFlagCompletionFunc("category", completeCategories)

	return cmd
}

func newProgressStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:               "stats CATEGORY",
		Short:             "Show totals for one category",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeCategories,
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := domain.ParseCategory(args[0])
			if err != nil {
				return err
			}
			stats, err := app.Progress.CategoryStats(cmd.Context(), category)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCategoryStats(stats))
			return nil
		},
	}
}

func newProgressJournalCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show sessions recorded on this device",
		Long: `Show the local practice journal. Every finished session is written here,
including ones the server did not accept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logs, err := app.Progress.LocalJournal(cmd.Context(), days)
			if err != nil {
				return err
			}
			summary, err := app.Progress.LocalSummary(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatJournal(logs, days))
			if len(summary) > 0 {
				fmt.Fprintln(out, formatter.FormatJournalSummary(summary))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 7, "how many days back to show")

	return cmd
}
