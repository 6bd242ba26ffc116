package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/naveenspark/sportex/internal/browser"
	"github.com/naveenspark/sportex/internal/session"
)

type view int

const (
	viewLanding view = iota
	viewAthletes
	viewEvents
	viewDashboard
	viewNotifications
	viewEvent
	viewAuth
)

// Config carries the settings the TUI needs beyond its dependencies.
type Config struct {
	WebURL string
	Logger *zap.Logger
}

// App is the root Bubbletea model.
type App struct {
	sessions      Sessions
	webURL        string
	view          view
	auth          authModel
	athletes      athletesModel
	events        eventsModel
	event         eventModel
	dashboard     dashboardModel
	notifications notificationsModel
	sess          session.Session
	helpOpen      bool
	helpCursor    int
	width         int
	height        int
	frame         int // logo shimmer animation frame
}

// NewApp creates the TUI. Views read through api; sessions is the single
// owner of the token.
func NewApp(api API, sessions Sessions, cfg Config) App {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return App{
		sessions:      sessions,
		webURL:        cfg.WebURL,
		auth:          newAuthModel(sessions),
		athletes:      newAthletesModel(api, log),
		events:        newEventsModel(api, log),
		event:         newEventModel(api, sessions, cfg.WebURL, log),
		dashboard:     newDashboardModel(api, sessions, log),
		notifications: newNotificationsModel(api, sessions, log),
		sess:          sessions.Snapshot(),
	}
}

func (a App) Init() tea.Cmd {
	return shimmerTickCmd()
}

// mount binds the data of the current view.
func (a App) mount() tea.Cmd {
	switch a.view {
	case viewAthletes:
		return a.athletes.mount()
	case viewEvents:
		return a.events.mount()
	case viewDashboard:
		return a.dashboard.mount(a.sessions.Token())
	case viewNotifications:
		return a.notifications.mount(a.sessions.Token())
	}
	return nil
}

// unmount abandons the current view's requests. Answers still in flight are
// ignored when they arrive.
func (a App) unmount() {
	switch a.view {
	case viewAthletes:
		a.athletes.unmount()
	case viewEvents:
		a.events.unmount()
	case viewEvent:
		a.event.unmount()
	case viewDashboard:
		a.dashboard.unmount()
	case viewNotifications:
		a.notifications.unmount()
	}
}

func (a App) switchTo(v view) (App, tea.Cmd) {
	if v == a.view {
		return a, nil
	}
	a.unmount()
	a.view = v
	if v == viewAuth {
		a.auth = a.auth.reset(modeLogin)
	}
	return a, a.mount()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + status(1) + help(1) = 5 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 5}
		a.athletes, _ = a.athletes.Update(bodyMsg)
		a.events, _ = a.events.Update(bodyMsg)
		a.event, _ = a.event.Update(bodyMsg)
		a.dashboard, _ = a.dashboard.Update(bodyMsg)
		a.notifications, _ = a.notifications.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case sessionChangedMsg:
		a.sess = a.sessions.Snapshot()
		// Views keyed on the token rebind; Bind is a no-op when only the
		// identity changed.
		return a, a.mount()

	case loggedOutMsg:
		a.sess = a.sessions.Snapshot()
		return a, a.mount()

	case authDoneMsg:
		a.auth, _ = a.auth.Update(msg)
		if msg.err != nil {
			return a, nil
		}
		a.sess = a.sessions.Snapshot()
		if a.view != viewAuth {
			return a, a.mount()
		}
		return a.switchTo(viewLanding)

	case openEventMsg:
		a.unmount()
		a.view = viewEvent
		var cmd tea.Cmd
		a.event, cmd = a.event.open(msg.id)
		return a, cmd

	case closeEventMsg:
		if a.view != viewEvent {
			return a, nil
		}
		a.unmount()
		a.view = viewEvents
		return a, a.mount()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.helpOpen {
			return a.updateHelp(msg)
		}
		if !a.isEditing() {
			if next, cmd, ok := a.globalKey(msg); ok {
				return next, cmd
			}
		} else if msg.String() == "esc" && a.view == viewAuth {
			return a.switchTo(viewLanding)
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewAuth:
		a.auth, cmd = a.auth.Update(msg)
	case viewAthletes:
		a.athletes, cmd = a.athletes.Update(msg)
	case viewEvents:
		a.events, cmd = a.events.Update(msg)
	case viewEvent:
		a.event, cmd = a.event.Update(msg)
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case viewNotifications:
		a.notifications, cmd = a.notifications.Update(msg)
	}
	return a, cmd
}

func (a App) globalKey(msg tea.KeyMsg) (App, tea.Cmd, bool) {
	switch msg.String() {
	case "q":
		return a, tea.Quit, true
	case "h":
		a.helpOpen = true
		a.helpCursor = 0
		return a, nil, true
	case "1":
		next, cmd := a.switchTo(viewLanding)
		return next, cmd, true
	case "2":
		next, cmd := a.switchTo(viewAthletes)
		return next, cmd, true
	case "3":
		next, cmd := a.switchTo(viewEvents)
		return next, cmd, true
	case "4":
		next, cmd := a.switchTo(viewDashboard)
		return next, cmd, true
	case "5":
		next, cmd := a.switchTo(viewNotifications)
		return next, cmd, true
	case "a":
		next, cmd := a.switchTo(viewAuth)
		return next, cmd, true
	case "x":
		if a.sessions.Token() == "" {
			return a, nil, true
		}
		return a, logout(a.sessions), true
	}
	return a, nil, false
}

func (a App) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := helpItems(a.webURL)
	switch msg.String() {
	case "h", "esc":
		a.helpOpen = false
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.helpCursor < len(items)-1 {
			a.helpCursor++
		}
	case "k", "up":
		if a.helpCursor > 0 {
			a.helpCursor--
		}
	case "enter":
		if url := items[a.helpCursor].url; url != "" {
			browser.Open(url) //nolint:errcheck // best-effort browser open
		}
	}
	return a, nil
}

func (a App) isEditing() bool {
	switch a.view {
	case viewAuth:
		return true
	case viewAthletes:
		return a.athletes.editing
	}
	return false
}

// identityLine is "name • role" for a confirmed identity. A token whose
// identity could not be confirmed reads as signed out, but can still be
// cleared with logout.
func (a App) identityLine() string {
	id := a.sess.Identity
	if id == nil {
		line := dimStyle.Render("not signed in") + "  " + helpEntry("a", "sign in")
		if a.sess.Token != "" {
			line += "  " + helpEntry("x", "logout")
		}
		return line
	}
	return selectedStyle.Render(id.Name) + metaStyle.Render(" • ") +
		RoleStyle(string(id.Role)).Render(string(id.Role)) + "  " + helpEntry("x", "logout")
}

func center(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}

func (a App) View() string {
	header := center(renderShimmerLogo(a.frame), a.width) + "\n" + center(a.identityLine(), a.width)

	type tabEntry struct {
		key  string
		name string
		v    view
	}
	tabs := []tabEntry{
		{"1", "Home", viewLanding},
		{"2", "Athletes", viewAthletes},
		{"3", "Events", viewEvents},
		{"4", "Dashboard", viewDashboard},
		{"5", "Inbox", viewNotifications},
	}
	colWidth := a.width / len(tabs)
	var tabBar strings.Builder
	for _, t := range tabs {
		active := t.v == a.view || (t.v == viewEvents && a.view == viewEvent)
		var label string
		if active {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		w := lipgloss.Width(label)
		left := max((colWidth-w)/2, 0)
		right := max(colWidth-w-left, 0)
		tabBar.WriteString(strings.Repeat(" ", left) + label + strings.Repeat(" ", right))
	}

	var body, help string
	switch a.view {
	case viewLanding:
		body = landingView(a.width)
		help = " " + helpEntry("1-5", "tabs") + "  " + helpEntry("a", "sign in") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
	case viewAuth:
		body = a.auth.View()
		help = " " + helpEntry("tab", "next") + "  " + helpEntry("enter", "submit") + "  " + helpEntry("ctrl+t", "toggle") + "  " + helpEntry("esc", "cancel")
	case viewAthletes:
		body = a.athletes.View()
		if a.athletes.editing {
			help = " " + helpEntry("tab", "next") + "  " + helpEntry("enter", "search") + "  " + helpEntry("esc", "done")
		} else {
			help = " " + helpEntry("1-5", "tabs") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("/", "filter") + "  " + helpEntry("r", "refresh") + "  " + helpEntry("q", "quit")
		}
	case viewEvents:
		body = a.events.View()
		help = " " + helpEntry("1-5", "tabs") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "view") + "  " + helpEntry("r", "refresh") + "  " + helpEntry("q", "quit")
	case viewEvent:
		body = a.event.View()
		help = " " + helpEntry("r", "register") + "  " + helpEntry("c", "copy link") + "  " + helpEntry("o", "open") + "  " + helpEntry("esc", "back")
	case viewDashboard:
		body = a.dashboard.View()
		help = " " + helpEntry("1-5", "tabs") + "  " + helpEntry("r", "refresh") + "  " + helpEntry("q", "quit")
	case viewNotifications:
		body = a.notifications.View()
		help = " " + helpEntry("1-5", "tabs") + "  " + helpEntry("r", "refresh") + "  " + helpEntry("q", "quit")
	}

	if a.helpOpen {
		body = helpView(helpItems(a.webURL), a.helpCursor)
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("esc", "close")
	}

	body = strings.TrimRight(truncateToHeight(body, a.height-5), "\n")
	return header + "\n" + tabBar.String() + "\n" + body + "\n\n" + help
}
