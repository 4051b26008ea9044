package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/alexanderramin/haven/internal/cli/formatter"
	"github.com/alexanderramin/haven/internal/domain"
	"github.com/alexanderramin/haven/internal/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newPracticeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "practice",
		Aliases: []string{"p"},
		Short:   "Run guided practices",
	}

	cmd.AddCommand(
		newPracticeListCmd(app),
		newPracticeStartCmd(app),
	)

	return cmd
}

func newPracticeListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available practices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPracticeList(app.practices()))
			return nil
		},
	}
}

func newPracticeStartCmd(app *App) *cobra.Command {
	var (
		category categoryFlag
		minutes  int
		noTUI    bool
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a practice timer",
		Long: `Start a guided practice countdown.

In the timer view: space starts or pauses, r resets, s stops early and saves
the elapsed time, q quits without saving. With --no-tui the countdown runs in
line mode and Ctrl-C stops early and saves.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			practices := app.practices()

			selected := string(category.value)
			if selected == "" && app.interactive() {
				if err := runForm(ctx, categoryForm(practices, &selected)); err != nil {
					return err
				}
			}
			if selected == "" {
				selected = string(domain.CategoryMeditation)
			}
			p, ok := timer.Lookup(practices, domain.Category(selected))
			if !ok {
				return fmt.Errorf("no practice configured for %q", selected)
			}

			if !cmd.Flags().Changed("minutes") {
				minutes = p.DefaultMinutes
				if app.interactive() && !noTUI && len(p.PresetMinutes) > 0 {
					choice := ""
					if err := runForm(ctx, durationForm(p, &choice)); err != nil {
						return err
					}
					if v, err := strconv.Atoi(choice); err == nil {
						minutes = v
					}
				}
			}
			if minutes <= 0 {
				return fmt.Errorf("--minutes must be positive")
			}

			if noTUI || !app.interactive() {
				res, err := runHeadless(ctx, app, p, minutes, cmd.OutOrStdout())
				if err != nil {
					return err
				}
				if res.Completed {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCompletion(p))
				}
				fmt.Fprintln(cmd.OutOrStdout(), recordStatus(res.Outcome))
				return nil
			}

			view, err := newPracticeView(ctx, app, p, minutes)
			if err != nil {
				return err
			}
			return runPracticeView(ctx, view, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().VarP(&category, "category", "c", "practice category (meditation, anxiety, sleep, self-care, stress)")
	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "session length in minutes")
	cmd.Flags().BoolVar(&noTUI, "no-tui", false, "run in line mode without the timer view")
	_ = cmd.RegisterFlagCompletionFunc("category", completeCategories)

	return cmd
}

// runPracticeView runs the timer view until the user quits or ctx ends. The
// controller is closed on every exit path.
func runPracticeView(ctx context.Context, view *practiceView, in io.Reader, out io.Writer) error {
	defer view.ctrl.Close()
	prog := tea.NewProgram(view,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("running practice view: %w", err)
	}
	return nil
}
