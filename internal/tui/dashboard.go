package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/naveenspark/sportex/internal/binder"
	"github.com/naveenspark/sportex/pkg/domain"
)

// dashboardModel shows the coach dashboard. It is keyed on the session token,
// so signing in, out or as someone else refetches it.
type dashboardModel struct {
	data  *binder.Binding[string, *domain.CoachDashboard]
	width int
}

func newDashboardModel(api API, tokens binder.TokenSource, log *zap.Logger) dashboardModel {
	fetch := func(ctx context.Context, _ string) (*domain.CoachDashboard, error) {
		return api.CoachDashboard(ctx)
	}
	return dashboardModel{
		data: binder.New("dashboard", fetch, binder.RequireAuth(tokens), binder.WithLogger(log)),
	}
}

func (m dashboardModel) mount(token string) tea.Cmd { return m.data.Bind(token) }
func (m dashboardModel) unmount()                   { m.data.Unbind() }

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case binder.Result[*domain.CoachDashboard]:
		m.data.Apply(msg)
	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, m.data.Refresh()
		}
	}
	return m, nil
}

func (m dashboardModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + sectionHeader("Dashboard") + "\n\n")

	switch m.data.State() {
	case binder.NoSession:
		return b.String() + " " + dimStyle.Render("Sign in to view your dashboard.") + "\n"
	case binder.Loading:
		if m.data.Data() == nil {
			return b.String() + " " + dimStyle.Render("loading...") + "\n"
		}
	case binder.Failed:
		if m.data.Data() == nil {
			return b.String() + " " + dimStyle.Render("Dashboard unavailable.") + "\n"
		}
	}
	d := m.data.Data()
	if d == nil {
		return b.String()
	}

	b.WriteString(" " + titleStyle.Render("Teams") + "\n")
	for _, t := range d.Teams {
		b.WriteString("   " + normalStyle.Render(t.Name) + "\n")
	}
	b.WriteString("\n " + titleStyle.Render("Events") + "\n")
	for _, e := range d.Events {
		b.WriteString("   " + normalStyle.Render(e.Title) + "\n")
	}
	b.WriteString("\n " + titleStyle.Render("Registrations") + "\n")
	for _, r := range d.Registrations {
		b.WriteString("   " + dimStyle.Render(r.EventID.String()+" • "+r.UserID.String()) + "\n")
	}
	return b.String()
}
