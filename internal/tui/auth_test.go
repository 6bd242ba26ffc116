package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/sportex/pkg/domain"
)

func typeAuth(m authModel, s string) authModel {
	for _, r := range s {
		m, _ = m.Update(keyRunes(string(r)))
	}
	return m
}

func TestAuthEmptySubmitIsRejectedLocally(t *testing.T) {
	s := &fakeSessions{}
	m := newAuthModel(s)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Error("expected no command for an empty form")
	}
	if !strings.Contains(m.View(), "please fill in every field") {
		t.Errorf("expected validation message, got:\n%s", m.View())
	}
	if s.logins != 0 {
		t.Errorf("expected no login attempt, got %d", s.logins)
	}
}

func TestAuthLoginSuccess(t *testing.T) {
	s := &fakeSessions{}
	m := newAuthModel(s)
	m = typeAuth(m, "jo@example.com")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeAuth(m, "secret")
	if strings.Contains(m.View(), "secret") {
		t.Error("password must be masked")
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.submitting {
		t.Error("expected submitting after enter on the last field")
	}
	msg := run(cmd)
	done, ok := msg.(authDoneMsg)
	if !ok || done.err != nil {
		t.Fatalf("expected successful authDoneMsg, got %#v", msg)
	}
	m, _ = m.Update(done)
	if m.password != "" {
		t.Error("expected password cleared after success")
	}
	if s.token != "tok-jo@example.com" {
		t.Errorf("unexpected token %q", s.token)
	}
}

func TestAuthLoginFailureShowsError(t *testing.T) {
	s := &fakeSessions{loginErr: errors.New("HTTP 401: Incorrect email or password")}
	m := newAuthModel(s)
	m = typeAuth(m, "jo@example.com")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeAuth(m, "nope")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m, _ = m.Update(run(cmd))

	view := m.View()
	if !strings.Contains(view, "login failed") || !strings.Contains(view, "Incorrect email or password") {
		t.Errorf("expected inline error, got:\n%s", view)
	}
	if m.email != "jo@example.com" {
		t.Error("expected form to be kept after failure")
	}
}

func TestAuthToggleToRegisterAndPickRole(t *testing.T) {
	s := &fakeSessions{}
	m := newAuthModel(s)
	m = typeAuth(m, "pat@example.com")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})

	if m.mode != modeRegister {
		t.Fatal("expected register mode after ctrl+t")
	}
	if m.email != "pat@example.com" {
		t.Error("expected email carried over on toggle")
	}
	if !strings.Contains(m.View(), "Create account") || !strings.Contains(m.View(), "Athlete") {
		t.Errorf("expected register form with default role, got:\n%s", m.View())
	}

	m = typeAuth(m, "Pat")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeAuth(m, "pw")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(keyRunes("l"))
	if !strings.Contains(m.View(), "Coach/Manager") {
		t.Errorf("expected coach role selected, got:\n%s", m.View())
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := run(cmd).(authDoneMsg); !ok {
		t.Fatal("expected authDoneMsg")
	}
	if s.role != domain.RoleCoach {
		t.Errorf("expected coach role sent, got %q", s.role)
	}
}
