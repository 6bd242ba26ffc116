package tui

import (
	"strings"
	"testing"
)

func TestDashboardSignedOut(t *testing.T) {
	api := newFakeAPI()
	m := newDashboardModel(api, &fakeSessions{}, nil)

	if cmd := m.mount(""); cmd != nil {
		t.Error("expected no request without a session")
	}
	if api.dashCalls != 0 {
		t.Errorf("expected no dashboard call, got %d", api.dashCalls)
	}
	if !strings.Contains(m.View(), "Sign in to view your dashboard.") {
		t.Errorf("expected sign-in prompt, got:\n%s", m.View())
	}
}

func TestDashboardSignedIn(t *testing.T) {
	s := signedIn()
	m := newDashboardModel(newFakeAPI(), s, nil)
	m, _ = m.Update(run(m.mount(s.token)))

	view := m.View()
	for _, want := range []string{"Teams", "Hawks", "Summer Tryouts", "e1 • u1"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in dashboard, got:\n%s", want, view)
		}
	}
}

func TestDashboardRefetchesOnTokenChange(t *testing.T) {
	api := newFakeAPI()
	s := signedIn()
	m := newDashboardModel(api, s, nil)
	m, _ = m.Update(run(m.mount(s.token)))

	if m.mount(s.token) != nil {
		t.Error("expected no refetch for the same token")
	}
	s.token = "tok-sam"
	if m.mount(s.token) == nil {
		t.Error("expected refetch for a new token")
	}
}

func TestDashboardLogoutWhileLoadingDropsAnswer(t *testing.T) {
	s := signedIn()
	m := newDashboardModel(newFakeAPI(), s, nil)
	pending := m.mount(s.token)

	s.Logout()
	m.mount(s.token)
	m, _ = m.Update(run(pending))

	if m.data.Data() != nil {
		t.Error("expected data fetched for the old session to be dropped")
	}
	if !strings.Contains(m.View(), "Sign in to view your dashboard.") {
		t.Errorf("expected sign-in prompt, got:\n%s", m.View())
	}
}

func TestNotificationsList(t *testing.T) {
	s := signedIn()
	m := newNotificationsModel(newFakeAPI(), s, nil)
	m.width = 80
	m, _ = m.Update(run(m.mount(s.token)))

	view := m.View()
	if !strings.Contains(view, "Welcome – Finish your profile") {
		t.Errorf("expected notification line, got:\n%s", view)
	}
	if strings.Index(view, "Welcome") > strings.Index(view, "Reminder") {
		t.Error("expected backend order to be kept")
	}
}

func TestNotificationsSignedOut(t *testing.T) {
	api := newFakeAPI()
	m := newNotificationsModel(api, &fakeSessions{}, nil)
	m.mount("")
	if api.notifCalls != 0 {
		t.Errorf("expected no request, got %d", api.notifCalls)
	}
	if !strings.Contains(m.View(), "Sign in") {
		t.Errorf("expected sign-in hint, got:\n%s", m.View())
	}
}
