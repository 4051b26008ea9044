package cli

import (
	"fmt"

	"github.com/alexanderramin/haven/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newMoodCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mood",
		Short: "Log and review your mood",
	}

	cmd.AddCommand(
		newMoodLogCmd(app),
		newMoodHistoryCmd(app),
		newMoodInsightsCmd(app),
	)

	return cmd
}

func newMoodLogCmd(app *App) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:       "log [MOOD]",
		Short:     "Log how you feel right now",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: moodChoices,
		RunE: func(cmd *cobra.Command, args []string) error {
			mood := ""
			if len(args) == 1 {
				mood = args[0]
			}
			if mood == "" && app.interactive() {
				if err := runForm(cmd.Context(), moodForm(&mood, &note)); err != nil {
					return err
				}
			}

			if _, err := app.Mood.Log(cmd.Context(), mood, note); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Logged %q.", mood)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&note, "note", "n", "", "optional note")

	return cmd
}

func newMoodHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show logged moods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Mood.History(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatMoodHistory(entries))
			return nil
		},
	}
}

func newMoodInsightsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Show mood statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			insights, err := app.Mood.Insights(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatMoodInsights(insights))
			return nil
		},
	}
}
