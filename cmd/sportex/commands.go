package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/naveenspark/sportex/internal/session"
	"github.com/naveenspark/sportex/pkg/client"
	"github.com/naveenspark/sportex/pkg/domain"
)

const commandTimeout = 30 * time.Second

func (c *cli) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), commandTimeout)
}

// requireSession fails before any request is made when there is no token.
func (c *cli) requireSession() error {
	if c.sessions.Token() == "" {
		return session.ErrNotAuthenticated
	}
	return nil
}

// describe turns transport failures into something a user can act on.
func (c *cli) describe(op string, err error) error {
	if client.IsNetwork(err) {
		return fmt.Errorf("%s: could not reach %s: %w", op, c.cfg.API.URL, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func readPassword(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *cli) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Long: `Sign in and store the session token under the token directory.
If --password is omitted it is read from the first line of stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				pw, err := readPassword(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = pw
			}
			ctx, cancel := c.ctx()
			defer cancel()

			if _, err := c.sessions.Login(ctx, email, password); err != nil {
				return err
			}
			c.printSignedIn(c.sessions.ResolveIdentity(ctx))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (c *cli) registerCmd() *cobra.Command {
	var name, email, password, role string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := domain.ParseRole(role)
			if err != nil {
				return err
			}
			if password == "" {
				pw, err := readPassword(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = pw
			}
			ctx, cancel := c.ctx()
			defer cancel()

			if _, err := c.sessions.Register(ctx, name, email, password, r); err != nil {
				return err
			}
			c.printSignedIn(c.sessions.ResolveIdentity(ctx))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleAthlete), "athlete, coach or organizer")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (c *cli) printSignedIn(s session.Session) {
	if s.Identity == nil {
		c.out.Success("Signed in")
		c.out.Warning("Could not confirm your profile yet; try 'sportex whoami'.")
		return
	}
	c.out.Success(fmt.Sprintf("Signed in as %s • %s", s.Identity.Name, s.Identity.Role))
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			wasSignedIn := c.sessions.Token() != ""
			c.sessions.Logout()
			if wasSignedIn {
				c.out.Success("Signed out.")
			} else {
				c.out.Println("Already signed out.")
			}
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			token := c.sessions.Token()
			if token == "" {
				printGreeting(c.out)
				return session.ErrNotAuthenticated
			}
			ctx, cancel := c.ctx()
			defer cancel()

			s := c.sessions.ResolveIdentity(ctx)
			info := inspectToken(token)
			if c.asJSON {
				return c.out.JSON(struct {
					Identity  *domain.Identity `json:"identity"`
					Subject   string           `json:"subject,omitempty"`
					ExpiresAt *time.Time       `json:"expires_at,omitempty"`
				}{s.Identity, info.Subject, info.expiresPtr()})
			}

			if s.Identity == nil {
				c.out.Warning("Signed out: the stored token was not accepted.")
				if info.Expired(time.Now()) {
					c.out.KeyValue("Token expired", info.ExpiresAt.Local().Format(time.RFC1123))
				}
				return session.ErrNotAuthenticated
			}
			c.out.Success("Signed in")
			c.out.KeyValue("Name", s.Identity.Name)
			c.out.KeyValue("Role", s.Identity.Role.Label())
			if s.Identity.Email != "" {
				c.out.KeyValue("Email", s.Identity.Email)
			}
			if !info.ExpiresAt.IsZero() {
				c.out.KeyValue("Token expires", info.ExpiresAt.Local().Format(time.RFC1123))
			}
			return nil
		},
	}
}

func (c *cli) athletesCmd() *cobra.Command {
	var f domain.AthleteFilter
	cmd := &cobra.Command{
		Use:   "athletes",
		Short: "Search athlete profiles",
		Long: `Search athlete profiles. --stat and --min filter on a minimum stat value
and are only sent when both are given.`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			ctx, cancel := c.ctx()
			defer cancel()

			res, err := c.authed.SearchAthletes(ctx, f)
			if err != nil {
				return c.describe("search athletes", err)
			}
			if c.asJSON {
				return c.out.JSON(res)
			}
			if res.Len() == 0 {
				c.out.Subtle("No athletes match this search.")
				return nil
			}
			t := c.out.NewTable("POSITION", "SPORT", "LOCATION", "PPG", "APG")
			for _, a := range res.Results {
				t.AddRow(a.Title(), a.Sport, a.Location, stat(a, "ppg"), stat(a, "apg"))
			}
			t.Render()
			c.out.Subtle(fmt.Sprintf("%d of %d", res.Len(), res.Total))
			return nil
		},
	}
	cmd.Flags().StringVar(&f.Sport, "sport", "", "Sport")
	cmd.Flags().StringVar(&f.Position, "position", "", "Position")
	cmd.Flags().StringVar(&f.Location, "location", "", "Location")
	cmd.Flags().StringVar(&f.StatKey, "stat", "", "Stat key for the minimum, e.g. ppg")
	cmd.Flags().StringVar(&f.StatValue, "min", "", "Minimum value for --stat")
	return cmd
}

func stat(a domain.Athlete, key string) string {
	v, ok := a.Stat(key)
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%g", v)
}

func formatStart(ts domain.Timestamp) string {
	if ts.IsZero() {
		return "TBA"
	}
	return ts.Local().Format("Mon Jan 2 2006, 15:04")
}

func (c *cli) eventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "List events",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			ctx, cancel := c.ctx()
			defer cancel()

			events, err := c.authed.ListEvents(ctx)
			if err != nil {
				return c.describe("list events", err)
			}
			if c.asJSON {
				return c.out.JSON(events)
			}
			if len(events) == 0 {
				c.out.Subtle("No upcoming events.")
				return nil
			}
			t := c.out.NewTable("ID", "SPORT", "TITLE", "STARTS", "LOCATION")
			for _, e := range events {
				t.AddRow(e.ID.String(), e.Sport, e.Title, formatStart(e.StartsAt), e.Location)
			}
			t.Render()
			return nil
		},
	}
}

func (c *cli) eventCmd() *cobra.Command {
	var register bool
	cmd := &cobra.Command{
		Use:   "event <id>",
		Short: "Show an event, optionally registering for it",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id := args[0]
			if register {
				if err := c.requireSession(); err != nil {
					return err
				}
			}
			ctx, cancel := c.ctx()
			defer cancel()

			evt, err := c.authed.GetEvent(ctx, id)
			if err != nil {
				return c.describe("get event", err)
			}
			if c.asJSON && !register {
				return c.out.JSON(evt)
			}
			if !c.asJSON {
				c.out.Header(evt.Title)
				c.out.KeyValue("Sport", evt.Sport)
				c.out.KeyValue("Starts", formatStart(evt.StartsAt))
				c.out.KeyValue("Location", evt.Location)
				if evt.Description != "" {
					c.out.Println("")
					c.out.Println(evt.Description)
				}
				c.out.KeyValue("Link", c.cfg.Web.EventURL(evt.ID.String()))
			}
			if !register {
				return nil
			}

			status, err := c.authed.RegisterForEvent(ctx, id)
			if err != nil {
				return c.describe("register", err)
			}
			if c.asJSON {
				return c.out.JSON(status)
			}
			c.out.Println("")
			c.out.Success(status.Confirmation())
			return nil
		},
	}
	cmd.Flags().BoolVar(&register, "register", false, "Register the signed-in account for the event")
	return cmd
}

func (c *cli) notificationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"inbox"},
		Short:   "List your notifications, newest first",
		Args:    cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}
			ctx, cancel := c.ctx()
			defer cancel()

			items, err := c.authed.ListNotifications(ctx)
			if err != nil {
				return c.describe("list notifications", err)
			}
			if c.asJSON {
				return c.out.JSON(items)
			}
			if len(items) == 0 {
				c.out.Subtle("Nothing new.")
				return nil
			}
			for _, n := range items {
				c.out.Println(n.Title + " – " + n.Body)
			}
			return nil
		},
	}
}

func (c *cli) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the coach dashboard",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}
			ctx, cancel := c.ctx()
			defer cancel()

			d, err := c.authed.CoachDashboard(ctx)
			if err != nil {
				return c.describe("load dashboard", err)
			}
			if c.asJSON {
				return c.out.JSON(d)
			}
			c.out.Header("Teams")
			for _, t := range d.Teams {
				c.out.ListItem(t.Name)
			}
			c.out.Header("Events")
			for _, e := range d.Events {
				c.out.ListItem(e.Title)
			}
			c.out.Header("Registrations")
			for _, r := range d.Registrations {
				c.out.ListItem(r.EventID.String() + " • " + r.UserID.String())
			}
			return nil
		},
	}
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			c.out.Println("sportex " + version)
		},
	}
}
