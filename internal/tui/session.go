package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/sportex/internal/session"
	"github.com/naveenspark/sportex/pkg/domain"
)

// Sessions is the session manager as seen by the TUI.
type Sessions interface {
	Token() string
	Snapshot() session.Session
	Login(ctx context.Context, email, password string) (session.Session, error)
	Register(ctx context.Context, name, email, password string, role domain.Role) (session.Session, error)
	Logout()
}

var _ Sessions = (*session.Manager)(nil)

// sessionChangedMsg is delivered whenever the token or identity changes. It
// carries no payload: deliveries from different goroutines can arrive out of
// order, so the App reads the current snapshot when it handles one.
type sessionChangedMsg struct{}

// loggedOutMsg follows a logout issued from the TUI.
type loggedOutMsg struct{}

// Watch forwards session changes into p until the returned function is called.
func Watch(m *session.Manager, p *tea.Program) (stop func()) {
	return m.Subscribe(func(session.Session) {
		p.Send(sessionChangedMsg{})
	})
}

// logout runs in a command: Logout notifies subscribers, and Watch's
// subscriber calls Program.Send, which must not happen inside Update.
func logout(s Sessions) tea.Cmd {
	return func() tea.Msg {
		s.Logout()
		return loggedOutMsg{}
	}
}
