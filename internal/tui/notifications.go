package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/naveenspark/sportex/internal/binder"
	"github.com/naveenspark/sportex/pkg/domain"
)

type notificationsModel struct {
	list  *binder.Binding[string, []domain.Notification]
	width int
}

func newNotificationsModel(api API, tokens binder.TokenSource, log *zap.Logger) notificationsModel {
	fetch := func(ctx context.Context, _ string) ([]domain.Notification, error) {
		return api.ListNotifications(ctx)
	}
	return notificationsModel{
		list: binder.New("notifications", fetch, binder.RequireAuth(tokens), binder.WithLogger(log)),
	}
}

func (m notificationsModel) mount(token string) tea.Cmd { return m.list.Bind(token) }
func (m notificationsModel) unmount()                   { m.list.Unbind() }

func (m notificationsModel) Update(msg tea.Msg) (notificationsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case binder.Result[[]domain.Notification]:
		m.list.Apply(msg)
	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, m.list.Refresh()
		}
	}
	return m, nil
}

func (m notificationsModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + sectionHeader("Notifications") + "\n\n")

	switch m.list.State() {
	case binder.NoSession:
		return b.String() + " " + dimStyle.Render("Sign in to see your notifications.") + "\n"
	case binder.Loading:
		if m.list.Data() == nil {
			return b.String() + " " + dimStyle.Render("loading...") + "\n"
		}
	}

	items := m.list.Data()
	if len(items) == 0 {
		if m.list.State() == binder.Ready {
			b.WriteString(" " + dimStyle.Render("Nothing new.") + "\n")
		}
		return b.String()
	}
	width := max(m.width-4, 20)
	for _, n := range items {
		b.WriteString(" " + truncStr(n.Title+" – "+n.Body, width) + "\n")
	}
	return b.String()
}
