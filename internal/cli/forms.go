package cli

import (
	"context"
	"fmt"
	"net/mail"
	"strconv"

	"github.com/alexanderramin/haven/internal/cli/formatter"
	"github.com/alexanderramin/haven/internal/domain"
	"github.com/alexanderramin/haven/internal/timer"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// moodChoices are offered by the mood form; --mood accepts any label.
var moodChoices = []string{"happy", "calm", "okay", "tired", "anxious", "sad", "angry"}

// havenHuhTheme returns a custom huh theme using the formatter palette.
func havenHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: aqua accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorAqua).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorAqua)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorAqua).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorAqua)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorAqua)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// credentials is the shared input of the login and signup forms.
type credentials struct {
	Email      string
	Password   string
	UserType   string
	Name       string
	LastName   string
	ChildEmail string
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(havenHuhTheme()).WithShowHelp(false)
}

func userTypeSelect(result *string) *huh.Select[string] {
	if *result == "" {
		*result = string(domain.UserTeen)
	}
	return huh.NewSelect[string]().
		Title("I am a").
		Options(
			huh.NewOption("Teen", string(domain.UserTeen)),
			huh.NewOption("Parent", string(domain.UserParent)),
		).
		Value(result)
}

// loginForm prompts for the fields of c still missing.
func loginForm(c *credentials) *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&c.Email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&c.Password).
				Validate(validateRequired("Password")),
			userTypeSelect(&c.UserType),
		),
	)
}

// signupForm collects a new account. Child email is only asked of parents.
func signupForm(c *credentials) *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("First name").
				Value(&c.Name).
				Validate(validateRequired("First name")),
			huh.NewInput().
				Title("Last name").
				Value(&c.LastName),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&c.Email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&c.Password).
				Validate(validatePassword),
			userTypeSelect(&c.UserType),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Your teen's email").
				Description("Optional. Links your account to theirs.").
				Value(&c.ChildEmail).
				Validate(validateOptionalEmail),
		).WithHideFunc(func() bool {
			return c.UserType != string(domain.UserParent)
		}),
	)
}

// moodForm picks a mood and an optional note.
func moodForm(mood, note *string) *huh.Form {
	options := make([]huh.Option[string], 0, len(moodChoices))
	for _, m := range moodChoices {
		options = append(options, huh.NewOption(m, m))
	}
	if *mood == "" {
		*mood = moodChoices[0]
	}
	return newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("How are you feeling?").
				Options(options...).
				Value(mood),
			huh.NewText().
				Title("Note").
				Description("Optional").
				CharLimit(500).
				Value(note),
		),
	)
}

// durationForm picks one of the practice's preset lengths.
func durationForm(p timer.Practice, minutes *string) *huh.Form {
	options := make([]huh.Option[string], 0, len(p.PresetMinutes))
	for _, m := range p.PresetMinutes {
		v := strconv.Itoa(m)
		options = append(options, huh.NewOption(formatter.FormatMinutes(m), v))
	}
	if *minutes == "" {
		*minutes = strconv.Itoa(p.DefaultMinutes)
	}
	return newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(p.Title + " length").
				Options(options...).
				Value(minutes).
				Validate(validatePositiveInt),
		),
	)
}

func runForm(ctx context.Context, form *huh.Form) error {
	if err := form.RunWithContext(ctx); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateEmail(s string) error {
	if s == "" {
		return fmt.Errorf("email is required")
	}
	if _, err := mail.ParseAddress(s); err != nil {
		return fmt.Errorf("enter a valid email address")
	}
	return nil
}

func validateOptionalEmail(s string) error {
	if s == "" {
		return nil
	}
	return validateEmail(s)
}

func validatePassword(s string) error {
	if len(s) < 8 {
		return fmt.Errorf("use at least 8 characters")
	}
	return nil
}

// validatePositiveInt accepts empty or a positive integer.
func validatePositiveInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

// categoryForm picks one of the configured practices.
func categoryForm(practices []timer.Practice, result *string) *huh.Form {
	options := make([]huh.Option[string], 0, len(practices))
	for _, p := range practices {
		options = append(options, huh.NewOption(p.Title, string(p.Category)))
	}
	if *result == "" && len(practices) > 0 {
		*result = string(practices[0].Category)
	}
	return newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Practice").
				Options(options...).
				Value(result),
		),
	)
}
