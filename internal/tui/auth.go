package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/sportex/internal/session"
	"github.com/naveenspark/sportex/pkg/domain"
)

type authMode int

const (
	modeLogin authMode = iota
	modeRegister
)

type authField int

const (
	authName authField = iota
	authEmail
	authPassword
	authRole
)

// authDoneMsg carries the outcome of a login or registration.
type authDoneMsg struct {
	session session.Session
	err     error
}

type authModel struct {
	sessions   Sessions
	mode       authMode
	name       string
	email      string
	password   string
	role       int // index into domain.Roles
	focus      authField
	err        string
	submitting bool
}

func newAuthModel(s Sessions) authModel {
	return authModel{sessions: s, focus: authEmail}
}

// reset clears the form and switches to mode.
func (m authModel) reset(mode authMode) authModel {
	m = newAuthModel(m.sessions)
	m.mode = mode
	m.focus = m.fields()[0]
	return m
}

func (m authModel) fields() []authField {
	if m.mode == modeRegister {
		return []authField{authName, authEmail, authPassword, authRole}
	}
	return []authField{authEmail, authPassword}
}

func (m authModel) move(delta int) authModel {
	fields := m.fields()
	idx := 0
	for i, f := range fields {
		if f == m.focus {
			idx = i
			break
		}
	}
	m.focus = fields[(idx+delta+len(fields))%len(fields)]
	return m
}

func (m authModel) lastField() bool {
	fields := m.fields()
	return m.focus == fields[len(fields)-1]
}

func (m authModel) Update(msg tea.Msg) (authModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.password = ""
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m authModel) updateKeys(msg tea.KeyMsg) (authModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		return m.submit()
	case "ctrl+t":
		next := modeRegister
		if m.mode == modeRegister {
			next = modeLogin
		}
		email := m.email
		m = m.reset(next)
		m.email = email
		return m, nil
	case "tab", "down":
		return m.move(1), nil
	case "shift+tab", "up":
		return m.move(-1), nil
	case "enter":
		if m.lastField() {
			return m.submit()
		}
		return m.move(1), nil
	}

	key := msg.String()
	switch m.focus {
	case authRole:
		switch key {
		case "l", "right", " ", "space":
			m.role = (m.role + 1) % len(domain.Roles)
		case "h", "left":
			m.role = (m.role - 1 + len(domain.Roles)) % len(domain.Roles)
		}
	case authName:
		m.name = editRune(m.name, key)
	case authEmail:
		m.email = editRune(m.email, key)
	case authPassword:
		m.password = editRune(m.password, key)
	}
	return m, nil
}

func (m authModel) submit() (authModel, tea.Cmd) {
	name := strings.TrimSpace(m.name)
	email := strings.TrimSpace(m.email)
	if email == "" || m.password == "" || (m.mode == modeRegister && name == "") {
		m.err = "please fill in every field"
		return m, nil
	}
	m.err = ""
	m.submitting = true

	s, password := m.sessions, m.password
	if m.mode == modeRegister {
		role := domain.Roles[m.role]
		return m, func() tea.Msg {
			sess, err := s.Register(context.Background(), name, email, password, role)
			return authDoneMsg{session: sess, err: err}
		}
	}
	return m, func() tea.Msg {
		sess, err := s.Login(context.Background(), email, password)
		return authDoneMsg{session: sess, err: err}
	}
}

func (m authModel) View() string {
	title := "Sign in"
	toggle := "Need an account? Register"
	if m.mode == modeRegister {
		title = "Create account"
		toggle = "Have an account? Sign in"
	}

	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render(title) + "\n\n")
	for _, f := range m.fields() {
		focused := f == m.focus
		switch f {
		case authName:
			b.WriteString(renderField("Full name", m.name, "Jordan Lee", focused, false) + "\n")
		case authEmail:
			b.WriteString(renderField("Email", m.email, "you@example.com", focused, false) + "\n")
		case authPassword:
			b.WriteString(renderField("Password", m.password, "", focused, true) + "\n")
		case authRole:
			label := domain.Roles[m.role].Label()
			role := dimStyle.Render("‹ " + label + " ›")
			prefix := "   "
			if focused {
				role = selectedStyle.Render("‹ " + label + " ›")
				prefix = " " + inputPromptStyle.Render(">") + " "
			}
			b.WriteString(prefix + metaStyle.Render("Role: ") + role + "\n")
		}
	}

	b.WriteString("\n")
	if m.submitting {
		b.WriteString(" " + dimStyle.Render("working...") + "\n")
	}
	if m.err != "" {
		b.WriteString(" " + errorStyle.Render(m.err) + "\n")
	}
	b.WriteString(" " + helpEntry("ctrl+t", toggle) + "\n")
	return b.String()
}
