package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aussiebroadwan/copilot/pkg/copilotsdk"
	"github.com/aussiebroadwan/copilot/pkg/slogx"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	serverKey      = "server"
	sessionFileKey = "session_file"
	idleTimeoutKey = "idle_timeout"
	logLevelKey    = "log_level"
	outputKey      = "output"

	defaultServer = "http://localhost:3000"
)

// cliConfig resolves settings from flags and COPILOT_* variables.
type cliConfig struct {
	v      *viper.Viper
	logger *slog.Logger
}

func newRootCommand(v *viper.Viper) *cobra.Command {
	cfg := &cliConfig{v: v}

	cmd := &cobra.Command{
		Use:           "copilotctl",
		Short:         "Manage copilot clients and their services from the terminal",
		SilenceErrors: true,
		SilenceUsage:  true,
		Example: `
  # Create an account and sign in
  copilotctl signup --email a@example.com --name "A Person"
  copilotctl login --email a@example.com

  # Register a client and a service for it
  copilotctl clients create --name Acme --gstin 29ABCDE1234F1Z5
  copilotctl services add 1736000000000 --name "GST filing" --status pending

  # Point at another server
  COPILOT_SERVER=https://copilot.internal copilotctl clients list
`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg.logger = slogx.New(slogx.Config{
				Service: "copilotctl",
				Version: version,
				Env:     "cli",
				Level:   v.GetString(logLevelKey),
				Format:  "text",
				Writer:  cmd.ErrOrStderr(),
			})
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("server", defaultServer, "copilot server base URL")
	flags.String("session-file", defaultSessionFile(), "file holding the login session")
	flags.Duration("idle-timeout", copilotsdk.DefaultIdleTimeout, "log out after this long without activity")
	flags.String("log-level", "warn", "client log level (debug|info|warn|error)")
	flags.StringP("output", "o", "text", "output format (text|json)")

	v.SetEnvPrefix("COPILOT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	mustBindFlag(v, serverKey, flags.Lookup("server"))
	mustBindFlag(v, sessionFileKey, flags.Lookup("session-file"))
	mustBindFlag(v, idleTimeoutKey, flags.Lookup("idle-timeout"))
	mustBindFlag(v, logLevelKey, flags.Lookup("log-level"))
	mustBindFlag(v, outputKey, flags.Lookup("output"))

	cmd.AddCommand(
		newLoginCommand(cfg),
		newSignupCommand(cfg),
		newLogoutCommand(cfg),
		newStatusCommand(cfg),
		newClientsCommand(cfg),
		newServicesCommand(cfg),
		newVersionCommand(),
	)

	return cmd
}

func mustBindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if flag == nil {
		panic(fmt.Sprintf("flag for key %s not found", key))
	}
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".copilot-session.json"
	}
	return filepath.Join(dir, "copilot", "session.json")
}

// session opens the file backed session. Redirects become hints on stderr
// since there are no pages to navigate to.
func (c *cliConfig) session(cmd *cobra.Command) *copilotsdk.Session {
	out := cmd.ErrOrStderr()

	logger := c.logger
	if logger == nil {
		logger = slogx.Discard()
	}

	return copilotsdk.NewSession(copilotsdk.SessionOptions{
		Storage:     copilotsdk.NewFileStorage(c.v.GetString(sessionFileKey)),
		IdleTimeout: c.v.GetDuration(idleTimeoutKey),
		Navigator: copilotsdk.NavigatorFunc(func(to string) {
			switch to {
			case copilotsdk.SignInPath:
				fmt.Fprintln(out, "Not signed in. Run `copilotctl login` to sign in.")
			case copilotsdk.LandingPath:
				fmt.Fprintln(out, "Already logged in. Run `copilotctl logout` to switch accounts.")
			}
		}),
		Notifier: copilotsdk.NotifierFunc(func(message string) {
			fmt.Fprintln(out, message)
		}),
		Logger: logger,
	})
}

func (c *cliConfig) client(cmd *cobra.Command) *copilotsdk.SDKClient {
	return copilotsdk.NewSDKClient(c.v.GetString(serverKey), c.session(cmd))
}

func (c *cliConfig) jsonOutput() (bool, error) {
	switch strings.ToLower(strings.TrimSpace(c.v.GetString(outputKey))) {
	case "", "text":
		return false, nil
	case "json":
		return true, nil
	default:
		return false, fmt.Errorf("unknown output format %q (want text or json)", c.v.GetString(outputKey))
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the copilotctl version",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "copilotctl %s\n", version)
			return err
		},
	}
}
