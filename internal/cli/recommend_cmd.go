package cli

import (
	"fmt"

	"github.com/alexanderramin/haven/internal/cli/formatter"
	"github.com/spf13/cobra"
)

// resourceWidth is the wrap width for resource bodies.
const resourceWidth = 80

func newRecommendCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "recommend",
		Short: "Show personalized suggestions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := app.Content.Recommendations(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRecommendations(recs))
			return nil
		},
	}
}

func newResourceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resource ID",
		Short: "Read a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Content.Resource(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatResource(res, resourceWidth, !app.interactive()))
			return nil
		},
	}
}
