package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/naveenspark/sportex/internal/config"
	"github.com/naveenspark/sportex/internal/keystore"
	"github.com/naveenspark/sportex/internal/logger"
	"github.com/naveenspark/sportex/internal/session"
	"github.com/naveenspark/sportex/internal/tui"
	"github.com/naveenspark/sportex/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, session.ErrNotAuthenticated) {
			fmt.Fprintln(os.Stderr, "Run 'sportex login' first.")
		}
		os.Exit(1)
	}
}

// cli holds what every command needs. It is filled in by setup before any
// command runs.
type cli struct {
	cfg      *config.Config
	log      *zap.Logger
	api      *client.Client // unauthenticated; used by the session for login and /me
	authed   *client.Client // carries the session token
	sessions *session.Manager
	out      *printer
	asJSON   bool
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "sportex",
		Short: "Sportex in your terminal",
		Long: `sportex browses athletes and events, registers you for events and shows
your dashboard and notifications. Run it without arguments for the interactive UI.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd, !cmd.HasParent())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.log != nil {
				_ = c.log.Sync() //nolint:errcheck // best-effort flush
			}
		},
		RunE: func(*cobra.Command, []string) error {
			return c.runTUI()
		},
	}
	root.PersistentFlags().BoolVar(&c.asJSON, "json", false, "Print raw JSON instead of formatted output")

	root.AddCommand(
		c.loginCmd(),
		c.registerCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.athletesCmd(),
		c.eventsCmd(),
		c.eventCmd(),
		c.notificationsCmd(),
		c.dashboardCmd(),
		c.versionCmd(),
	)
	return root
}

// setup loads config and wires the client, token slot and session manager.
// The interactive UI resolves identity in the background and restores the
// token itself; one-shot commands restore here and resolve only on demand.
func (c *cli) setup(cmd *cobra.Command, interactive bool) error {
	c.out = newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.cfg = cfg

	log, err := logger.New(logger.Config{
		Env:     cfg.Log.Env,
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Version: version,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	c.log = log

	c.api = client.New(cfg.API.URL,
		client.WithTimeout(cfg.API.RequestTimeout()),
		client.WithLogger(log),
	)

	slot := keystore.Scope(keystore.NewFileStore(cfg.Token.Dir), cfg.Token.Key)
	opts := []session.Option{session.WithLogger(log)}
	if !interactive {
		opts = append(opts, session.WithScheduler(func(func()) {}))
	}
	c.sessions = session.New(c.api, slot, opts...)
	c.authed = c.api.WithTokenSource(c.sessions)

	if interactive {
		return nil
	}
	if err := c.sessions.Restore(cfg.Token.Value); err != nil {
		return fmt.Errorf("load token: %w", err)
	}
	return nil
}

func (c *cli) runTUI() error {
	app := tui.NewApp(c.authed, c.sessions, tui.Config{
		WebURL: c.cfg.Web.URL,
		Logger: c.log,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	stop := tui.Watch(c.sessions, p)
	defer stop()

	// Restore after Watch so the restored token and its identity reach the UI.
	// Program.Send blocks until the program runs, hence the goroutine.
	go func() {
		if err := c.sessions.Restore(c.cfg.Token.Value); err != nil {
			c.log.Warn("restore session", zap.Error(err))
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
