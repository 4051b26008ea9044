package cli

import (
	"github.com/alexanderramin/haven/internal/service"
	"github.com/alexanderramin/haven/internal/timer"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Auth     service.AuthService
	Mood     service.MoodService
	Chat     service.ChatService
	Progress service.ProgressService
	Practice service.PracticeService
	Content  ContentAPI

	// Practices is the configured practice set; nil means the built-in presets.
	Practices []timer.Practice
	Notifier  timer.Notifier

	// Scheduler drives practice countdowns. Nil uses wall-clock ticks.
	Scheduler timer.Scheduler

	// IsInteractive reports whether stdin is a terminal. Forms, spinners and
	// the practice view are only used when it returns true.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "haven" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "haven",
		Short:         "Guided practices, mood tracking and support chat",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCmd(app),
		newSignupCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newChatCmd(app),
		newMoodCmd(app),
		newPracticeCmd(app),
		newProgressCmd(app),
		newRecommendCmd(app),
		newResourceCmd(app),
	)

	return root
}
