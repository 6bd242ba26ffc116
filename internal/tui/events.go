package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/naveenspark/sportex/internal/binder"
	"github.com/naveenspark/sportex/internal/browser"
	"github.com/naveenspark/sportex/pkg/domain"
)

// openEventMsg asks the app to show the detail view for an event.
type openEventMsg struct {
	id string
}

// closeEventMsg returns from the detail view to the list.
type closeEventMsg struct{}

// linkCopiedMsg carries the result of a clipboard write.
type linkCopiedMsg struct {
	err error
}

type eventsModel struct {
	list   *binder.Binding[struct{}, []domain.Event]
	cursor int
	width  int
}

func newEventsModel(api API, log *zap.Logger) eventsModel {
	fetch := func(ctx context.Context, _ struct{}) ([]domain.Event, error) {
		return api.ListEvents(ctx)
	}
	return eventsModel{list: binder.New("events", fetch, binder.WithLogger(log))}
}

func (m eventsModel) mount() tea.Cmd { return m.list.Bind(struct{}{}) }
func (m eventsModel) unmount()       { m.list.Unbind() }

func (m eventsModel) Update(msg tea.Msg) (eventsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case binder.Result[[]domain.Event]:
		if m.list.Apply(msg) {
			m.cursor = min(m.cursor, max(len(m.list.Data())-1, 0))
		}

	case tea.KeyMsg:
		events := m.list.Data()
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(events)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "r":
			return m, m.list.Refresh()
		case "enter":
			if m.cursor < len(events) && events[m.cursor].ID != "" {
				id := events[m.cursor].ID.String()
				return m, func() tea.Msg { return openEventMsg{id: id} }
			}
		}
	}
	return m, nil
}

func (m eventsModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + sectionHeader("Events") + "\n\n")

	events := m.list.Data()
	switch m.list.State() {
	case binder.Loading:
		if events == nil {
			return b.String() + " " + dimStyle.Render("loading...") + "\n"
		}
	case binder.Failed:
		if events == nil {
			return b.String() + errorLine("could not load events", m.list.Err()) + "\n"
		}
	}
	if len(events) == 0 {
		if m.list.State() == binder.Ready {
			b.WriteString(" " + dimStyle.Render("No upcoming events.") + "\n")
		}
		return b.String()
	}

	for i, e := range events {
		prefix := "   "
		title := normalStyle.Render(e.Title)
		if i == m.cursor {
			prefix = " " + accentStyle.Render("▸") + " "
			title = selectedStyle.Render(e.Title)
		}
		b.WriteString(prefix + sportStyle.Render(e.Sport) + "\n")
		b.WriteString(prefix + title + "\n")
		b.WriteString("   " + metaStyle.Render(joinMeta(formatStart(e.StartsAt), e.Location)) + "\n\n")
	}
	return b.String()
}

type registerResult = *domain.RegistrationStatus

type eventModel struct {
	detail   *binder.Binding[string, *domain.Event]
	register *binder.Action[string, registerResult]
	webURL   string
	notice   string
	failed   bool
	pending  bool
	width    int
}

func newEventModel(api API, tokens binder.TokenSource, webURL string, log *zap.Logger) eventModel {
	fetch := func(ctx context.Context, id string) (*domain.Event, error) {
		return api.GetEvent(ctx, id)
	}
	run := func(ctx context.Context, id string) (registerResult, error) {
		return api.RegisterForEvent(ctx, id)
	}
	return eventModel{
		detail:   binder.New("event", fetch, binder.WithLogger(log)),
		register: binder.NewAction("event.register", run, binder.RequireAuth(tokens), binder.WithLogger(log)),
		webURL:   webURL,
	}
}

// open shows the event with the given id, dropping any answer still pending
// for the previous one.
func (m eventModel) open(id string) (eventModel, tea.Cmd) {
	m.register.Reset()
	m.notice = ""
	m.failed = false
	m.pending = false
	return m, m.detail.Bind(id)
}

func (m eventModel) unmount() {
	m.detail.Unbind()
	m.register.Reset()
}

func (m eventModel) link() string {
	if m.webURL == "" {
		return ""
	}
	return strings.TrimRight(m.webURL, "/") + "/event/" + m.detail.Deps()
}

func (m eventModel) Update(msg tea.Msg) (eventModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case binder.Result[*domain.Event]:
		m.detail.Apply(msg)

	case binder.Result[registerResult]:
		r, ok := m.register.Accept(msg)
		if !ok {
			return m, nil
		}
		m.pending = false
		if r.Err != nil {
			m.failed = true
			m.notice = "Registration failed: " + r.Err.Error()
			return m, nil
		}
		m.failed = false
		status := domain.RegistrationStatus{}
		if r.Data != nil {
			status = *r.Data
		}
		m.notice = status.Confirmation()

	case linkCopiedMsg:
		if msg.err != nil {
			m.failed = true
			m.notice = "copy failed: " + msg.err.Error()
		} else {
			m.failed = false
			m.notice = "link copied"
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace":
			return m, func() tea.Msg { return closeEventMsg{} }
		case "r":
			if m.detail.Data() == nil || m.pending {
				return m, nil
			}
			cmd, err := m.register.Do(m.detail.Deps())
			if errors.Is(err, binder.ErrNoSession) {
				m.failed = true
				m.notice = "Sign in to register for this event."
				return m, nil
			}
			m.pending = true
			m.notice = ""
			return m, cmd
		case "c":
			link := m.link()
			if link == "" {
				return m, nil
			}
			return m, func() tea.Msg {
				return linkCopiedMsg{err: clipboard.WriteAll(link)}
			}
		case "o":
			if link := m.link(); link != "" {
				browser.Open(link) //nolint:errcheck // best-effort browser open
			}
		}
	}
	return m, nil
}

func (m eventModel) View() string {
	evt := m.detail.Data()
	switch m.detail.State() {
	case binder.Loading:
		if evt == nil {
			return "\n " + dimStyle.Render("loading...")
		}
	case binder.Failed:
		return "\n" + errorLine("could not load event", m.detail.Err())
	}
	if evt == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(sportStyle.Render(evt.Sport) + "\n")
	sb.WriteString(titleStyle.Render(evt.Title) + "\n")
	sb.WriteString(metaStyle.Render(joinMeta(formatStart(evt.StartsAt), evt.Location)) + "\n")
	if evt.Description != "" {
		sb.WriteString("\n" + normalStyle.Render(evt.Description) + "\n")
	}

	sb.WriteString("\n")
	switch {
	case m.pending:
		sb.WriteString(dimStyle.Render("registering..."))
	case m.notice != "" && m.failed:
		sb.WriteString(errorStyle.Render(m.notice))
	case m.notice != "":
		sb.WriteString(successStyle.Render(m.notice))
	default:
		sb.WriteString(helpKeyStyle.Render("r") + " " + helpLabelStyle.Render("register"))
	}

	return "\n" + cardStyle(m.width).Render(sb.String())
}
