package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/sportex/internal/session"
	"github.com/naveenspark/sportex/pkg/domain"
)

// fakeAPI answers from canned data and counts calls.
type fakeAPI struct {
	mu            sync.Mutex
	athleteCalls  []domain.AthleteFilter
	eventCalls    int
	getCalls      []string
	registerCalls []string
	dashCalls     int
	notifCalls    int

	athletes      map[string][]domain.Athlete // keyed by sport filter
	events        []domain.Event
	registerState string
	registerErr   error
	dashboard     *domain.CoachDashboard
	notifications []domain.Notification
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		athletes: map[string][]domain.Athlete{
			"": {
				{ID: "a1", Sport: "basketball", Position: "Point Guard", Stats: map[string]float64{"ppg": 21.5}},
				{ID: "a2", Sport: "soccer"},
			},
			"basketball": {
				{ID: "a1", Sport: "basketball", Position: "Point Guard", Stats: map[string]float64{"ppg": 21.5}},
			},
			"tennis": {},
		},
		events: []domain.Event{
			{ID: "e1", Sport: "basketball", Title: "Summer Tryouts", Location: "Austin", Description: "Open run for U18."},
			{ID: "e2", Sport: "soccer", Title: "Fall Cup", Location: "Denver"},
		},
		registerState: "confirmed",
		dashboard: &domain.CoachDashboard{
			Teams:         []domain.Team{{ID: "t1", Name: "Hawks"}},
			Events:        []domain.Event{{ID: "e1", Title: "Summer Tryouts"}},
			Registrations: []domain.Registration{{EventID: "e1", UserID: "u1"}},
		},
		notifications: []domain.Notification{
			{Title: "Welcome", Body: "Finish your profile"},
			{Title: "Reminder", Body: "Tryouts on Saturday"},
		},
	}
}

func (f *fakeAPI) SearchAthletes(_ context.Context, filter domain.AthleteFilter) (*domain.SearchResult[domain.Athlete], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.athleteCalls = append(f.athleteCalls, filter)
	res := f.athletes[filter.Sport]
	return &domain.SearchResult[domain.Athlete]{Results: res, Total: len(res)}, nil
}

func (f *fakeAPI) ListEvents(context.Context) ([]domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.eventCalls++
	return f.events, nil
}

func (f *fakeAPI) GetEvent(_ context.Context, id string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls = append(f.getCalls, id)
	for _, e := range f.events {
		if e.ID.String() == id {
			e := e
			return &e, nil
		}
	}
	return nil, context.DeadlineExceeded
}

func (f *fakeAPI) RegisterForEvent(_ context.Context, id string) (*domain.RegistrationStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registerCalls = append(f.registerCalls, id)
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &domain.RegistrationStatus{Status: f.registerState}, nil
}

func (f *fakeAPI) CoachDashboard(context.Context) (*domain.CoachDashboard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dashCalls++
	return f.dashboard, nil
}

func (f *fakeAPI) ListNotifications(context.Context) ([]domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifCalls++
	return f.notifications, nil
}

// fakeSessions is an in-memory session owner.
type fakeSessions struct {
	token    string
	identity *domain.Identity
	loginErr error
	logins   int
	logouts  int
	role     domain.Role
}

func (f *fakeSessions) Token() string { return f.token }

func (f *fakeSessions) Snapshot() session.Session {
	return session.Session{Token: f.token, Identity: f.identity}
}

func (f *fakeSessions) Login(_ context.Context, email, _ string) (session.Session, error) {
	f.logins++
	if f.loginErr != nil {
		return f.Snapshot(), &session.AuthError{Op: "login", Err: f.loginErr}
	}
	f.token = "tok-" + email
	return f.Snapshot(), nil
}

func (f *fakeSessions) Register(_ context.Context, name, email, _ string, role domain.Role) (session.Session, error) {
	f.role = role
	f.token = "tok-" + email
	f.identity = &domain.Identity{Name: name, Role: role}
	return f.Snapshot(), nil
}

func (f *fakeSessions) Logout() {
	f.logouts++
	f.token = ""
	f.identity = nil
}

func signedIn() *fakeSessions {
	return &fakeSessions{
		token:    "tok-jo",
		identity: &domain.Identity{ID: "u1", Name: "Jo", Role: domain.RoleCoach},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes cmd and returns its message, or nil for a nil command.
func run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
