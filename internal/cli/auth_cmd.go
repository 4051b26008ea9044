package cli

import (
	"fmt"

	"github.com/alexanderramin/haven/internal/cli/formatter"
	"github.com/alexanderramin/haven/internal/domain"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var (
		c        credentials
		userType userTypeFlag
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to your account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.UserType = string(userType.value)
			if app.interactive() && (c.Email == "" || c.Password == "" || c.UserType == "") {
				if err := runForm(cmd.Context(), loginForm(&c)); err != nil {
					return err
				}
			}

			stop := formatter.StartSpinner(cmd.ErrOrStderr(), app.interactive(), "Signing in...")
			user, err := app.Auth.Login(cmd.Context(), c.Email, c.Password, domain.UserType(c.UserType))
			stop()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Signed in as "+user.DisplayName()+"."))
			return nil
		},
	}

	cmd.Flags().StringVarP(&c.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&c.Password, "password", "p", "", "account password")
	cmd.Flags().VarP(&userType, "type", "t", "account type (teen|parent)")
	_ = cmd.RegisterFlagCompletionFunc("type", completeUserTypes)

	return cmd
}

func newSignupCmd(app *App) *cobra.Command {
	var (
		c        credentials
		userType userTypeFlag
	)

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.UserType = string(userType.value)
			if app.interactive() && (c.Email == "" || c.Password == "" || c.Name == "" || c.UserType == "") {
				if err := runForm(cmd.Context(), signupForm(&c)); err != nil {
					return err
				}
			}

			stop := formatter.StartSpinner(cmd.ErrOrStderr(), app.interactive(), "Creating your account...")
			user, err := app.Auth.Signup(cmd.Context(), domain.SignupRequest{
				Email:      c.Email,
				Password:   c.Password,
				Name:       c.Name,
				LastName:   c.LastName,
				UserType:   domain.UserType(c.UserType),
				ChildEmail: c.ChildEmail,
			})
			stop()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Welcome, "+user.DisplayName()+"!"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&c.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&c.Password, "password", "p", "", "account password")
	cmd.Flags().StringVar(&c.Name, "name", "", "first name")
	cmd.Flags().StringVar(&c.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&c.ChildEmail, "child-email", "", "your teen's account email (parents only)")
	cmd.Flags().VarP(&userType, "type", "t", "account type (teen|parent)")
	_ = cmd.RegisterFlagCompletionFunc("type", completeUserTypes)

	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget stored credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Signed out."))
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.Auth.Current(cmd.Context())
			if err != nil {
				return err
			}
			if user == nil {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Not signed in. Run: haven login"))
				return nil
			}
			if remote {
				if user, err = app.Auth.Me(cmd.Context()); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUser(user))
			return nil
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "fetch the profile from the server")

	return cmd
}
