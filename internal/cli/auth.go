package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"quizdeck-client/internal/app"
)

// NewLoginCmd authenticates with email and password and persists the session.
func NewLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Log in to the quiz platform",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := newEnv(ctx)
			if err != nil {
				return err
			}

			env.session.BeginAuth()
			user, token, err := env.gateway.Login(ctx, args[0], args[1])
			if err != nil {
				message := app.ErrorMessage(err, "Login failed")
				env.session.FailAuth(message)
				return errors.New(message)
			}
			env.session.CompleteAuth(ctx, user, token)
			cmd.Printf("Logged in as %s (%s)\n", user.Username, user.Email)
			return nil
		},
	}
}

// NewSignupCmd registers a new account and persists the issued session.
func NewSignupCmd() *cobra.Command {
	var admin bool
	cmd := &cobra.Command{
		Use:   "signup <username> <email> <password>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := newEnv(ctx)
			if err != nil {
				return err
			}

			env.session.BeginAuth()
			user, token, err := env.gateway.Signup(ctx, args[0], args[1], args[2], admin)
			if err != nil {
				message := app.ErrorMessage(err, "Signup failed")
				env.session.FailAuth(message)
				return errors.New(message)
			}
			env.session.CompleteAuth(ctx, user, token)
			cmd.Printf("Account created. Logged in as %s (%s)\n", user.Username, user.Email)
			return nil
		},
	}
	cmd.Flags().BoolVar(&admin, "admin", false, "register as an administrator")
	return cmd
}

// NewLogoutCmd ends the session and clears the persisted entries.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := newEnv(ctx)
			if err != nil {
				return err
			}
			env.session.EndSession(ctx)
			cmd.Println("Logged out.")
			return nil
		},
	}
}

// NewWhoamiCmd prints the restored session identity.
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(cmd.Context())
			if err != nil {
				return err
			}

			state := env.session.Snapshot()
			if !state.IsAuthenticated {
				cmd.Println("Not logged in.")
				return nil
			}
			if state.User == nil {
				cmd.Println("Logged in (user details unavailable).")
				return nil
			}
			role := "user"
			if state.User.Admin {
				role = "admin"
			}
			cmd.Printf("%s (%s) [%s]\n", state.User.Username, state.User.Email, role)
			return nil
		},
	}
}
