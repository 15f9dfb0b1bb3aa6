package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/aussiebroadwan/copilot/pkg/copilotsdk"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

const envPassword = "COPILOT_PASSWORD"

func newLoginCommand(cfg *cliConfig) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session for later commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := cfg.client(cmd)
			if client.Session.RedirectIfLoggedIn() {
				return nil
			}

			pw, err := resolvePassword(cmd, password)
			if err != nil {
				return err
			}

			user, err := client.Login(cmd.Context(), email, pw)
			if err != nil {
				return err
			}

			asJSON, err := cfg.jsonOutput()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), user)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", displayName(user))
			return err
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (default $"+envPassword+" or first line of stdin)")
	return cmd
}

func newSignupCommand(cfg *cliConfig) *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := cfg.client(cmd)
			if client.Session.RedirectIfLoggedIn() {
				return nil
			}

			pw, err := resolvePassword(cmd, password)
			if err != nil {
				return err
			}

			user, err := client.Signup(cmd.Context(), copilotsdk.SignupRequest{
				Email:    email,
				Password: pw,
				Name:     name,
			})
			if err != nil {
				return err
			}

			asJSON, err := cfg.jsonOutput()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), user)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created account %d for %s. Run `copilotctl login` to sign in.\n", user.ID, user.Email)
			return err
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (default $"+envPassword+" or first line of stdin)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	return cmd
}

func newLogoutCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.client(cmd).Logout()
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return err
		},
	}
}

// statusView is the json shape of the status command.
type statusView struct {
	State        string           `json:"state"`
	User         *copilotsdk.User `json:"user,omitempty"`
	LastActivity time.Time        `json:"last_activity,omitzero"`
	ExpiresAt    time.Time        `json:"expires_at,omitzero"`
}

func newStatusCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a session is active",
		RunE: func(cmd *cobra.Command, args []string) error {
			session := cfg.session(cmd)

			view := statusView{State: session.State().String()}
			if view.State != copilotsdk.LoggedOut.String() {
				view.User = session.User()
				view.LastActivity = session.LastActivity()
				if !view.LastActivity.IsZero() {
					view.ExpiresAt = view.LastActivity.Add(cfg.v.GetDuration(idleTimeoutKey))
				}
			}

			asJSON, err := cfg.jsonOutput()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), view)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "State:\t%s\n", view.State)
			fmt.Fprintf(tw, "Server:\t%s\n", cfg.v.GetString(serverKey))
			if view.User != nil {
				fmt.Fprintf(tw, "User:\t%s\n", displayName(view.User))
			}
			if !view.LastActivity.IsZero() {
				fmt.Fprintf(tw, "Last activity:\t%s\n", humanize.Time(view.LastActivity))
				fmt.Fprintf(tw, "Expires:\t%s\n", humanize.Time(view.ExpiresAt))
			}
			return tw.Flush()
		},
	}
}

// resolvePassword prefers the flag, then the environment, then stdin.
func resolvePassword(cmd *cobra.Command, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if pw := os.Getenv(envPassword); pw != "" {
		return pw, nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if line == "" && err != nil {
		return "", fmt.Errorf("password required (use --password, $%s or stdin)", envPassword)
	}
	return line, nil
}

func displayName(u *copilotsdk.User) string {
	if u.Name == "" {
		return u.Email
	}
	return fmt.Sprintf("%s <%s>", u.Name, u.Email)
}
