// Package session owns the authentication session: the token, its durable
// copy, and the identity resolved from it.
package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/naveenspark/sportex/pkg/client"
	"github.com/naveenspark/sportex/pkg/domain"
)

// DefaultResolveTimeout bounds a single /me lookup.
const DefaultResolveTimeout = 10 * time.Second

// Backend is the subset of the API the session layer talks to.
type Backend interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, r client.RegisterRequest) (string, error)
	Me(ctx context.Context, token string) (*domain.Identity, error)
}

// TokenSlot is the durable home of the token.
type TokenSlot interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Session is a snapshot of the current actor. Identity is nil whenever it has
// not been confirmed for Token, including while a lookup is in flight.
type Session struct {
	Token    string
	Identity *domain.Identity
}

// SignedIn reports whether the session has a confirmed identity. A token
// without one is presented as signed out.
func (s Session) SignedIn() bool {
	return s.Token != "" && s.Identity != nil
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithScheduler sets how identity lookups are run. The default runs each
// lookup on its own goroutine.
func WithScheduler(schedule func(task func())) Option {
	return func(m *Manager) {
		if schedule != nil {
			m.schedule = schedule
		}
	}
}

// WithResolveTimeout bounds each identity lookup.
func WithResolveTimeout(d time.Duration) Option {
	return func(m *Manager) { m.resolveTimeout = d }
}

// Manager is the single owner of session state. All mutation goes through
// Login, Register, Logout, Restore and the identity lookups they trigger.
type Manager struct {
	backend        Backend
	slot           TokenSlot
	log            *zap.Logger
	schedule       func(task func())
	resolveTimeout time.Duration

	// notifyMu orders deliveries; each one reads the state current at the
	// time it is sent, so the last delivery always matches the final state.
	notifyMu sync.Mutex

	mu       sync.Mutex
	token    string
	identity *domain.Identity
	seq      uint64 // bumped on every token change
	nextSub  int
	subs     map[int]func(Session)
}

// New creates a Manager with an empty session. Call Restore to pick up a
// persisted token.
func New(backend Backend, slot TokenSlot, opts ...Option) *Manager {
	m := &Manager{
		backend:        backend,
		slot:           slot,
		log:            zap.NewNop(),
		schedule:       func(task func()) { go task() },
		resolveTimeout: DefaultResolveTimeout,
		subs:           make(map[int]func(Session)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Token returns the current token, or "" when signed out. It satisfies
// client.TokenSource.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Identity returns a copy of the resolved identity, or nil.
func (m *Manager) Identity() *domain.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyIdentity(m.identity)
}

// Snapshot returns the current session.
func (m *Manager) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Subscribe registers fn to be called after every session change. fn runs on
// the goroutine that made the change; it must not block or change the session.
// The returned func removes the subscription.
func (m *Manager) Subscribe(fn func(Session)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Restore loads the persisted token, or uses override when it is non-empty.
// An override is never written to the slot.
func (m *Manager) Restore(override string) error {
	token := override
	if token == "" {
		loaded, err := m.slot.Load()
		if err != nil {
			return err
		}
		token = loaded
	}
	if token == "" {
		return nil
	}
	m.setToken(token)
	return nil
}

// Login exchanges credentials for a token, persists it and schedules an
// identity lookup. The returned session may not have an identity yet.
// On failure the current session is unchanged and the error is an *AuthError.
func (m *Manager) Login(ctx context.Context, email, password string) (Session, error) {
	token, err := m.backend.Login(ctx, email, password)
	if err != nil {
		return m.Snapshot(), &AuthError{Op: "login", Err: err}
	}
	m.persist(token)
	return m.setToken(token), nil
}

// Register creates an account and signs in with the returned token. An empty
// role defaults to athlete. Validation failures reported by the backend come
// back as *AuthError.
func (m *Manager) Register(ctx context.Context, name, email, password string, role domain.Role) (Session, error) {
	if role == "" {
		role = domain.RoleAthlete
	}
	token, err := m.backend.Register(ctx, client.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
	})
	if err != nil {
		return m.Snapshot(), &AuthError{Op: "register", Err: err}
	}
	m.persist(token)
	return m.setToken(token), nil
}

// Logout clears the token, the identity and the persisted slot. It always
// succeeds; a failure to clear the slot is logged.
func (m *Manager) Logout() {
	if err := m.slot.Clear(); err != nil {
		m.log.Warn("clear persisted token", zap.Error(err))
	}
	m.mu.Lock()
	m.token = ""
	m.identity = nil
	m.seq++
	m.mu.Unlock()

	m.log.Debug("session cleared")
	m.publish()
}

// ResolveIdentity looks up the identity for the current token and waits for
// the answer. Failures leave the identity nil and are not returned. The result
// is dropped if the token changed while the lookup was in flight.
func (m *Manager) ResolveIdentity(ctx context.Context) Session {
	m.mu.Lock()
	token, seq := m.token, m.seq
	m.mu.Unlock()
	if token == "" {
		return m.Snapshot()
	}
	m.resolve(ctx, seq, token)
	return m.Snapshot()
}

func (m *Manager) persist(token string) {
	if err := m.slot.Save(token); err != nil {
		m.log.Warn("persist token", zap.Error(err))
	}
}

// setToken installs token, drops the identity that belonged to the previous
// token and schedules exactly one lookup for the new one.
func (m *Manager) setToken(token string) Session {
	m.mu.Lock()
	m.token = token
	m.identity = nil
	m.seq++
	seq := m.seq
	s := m.snapshotLocked()
	m.mu.Unlock()

	m.log.Debug("session token changed", zap.Uint64("seq", seq))
	m.publish()

	if token != "" {
		m.schedule(func() {
			ctx, cancel := context.WithTimeout(context.Background(), m.resolveTimeout)
			defer cancel()
			m.resolve(ctx, seq, token)
		})
	}
	return s
}

// resolve applies the /me answer only if seq is still the latest token change
// and the token is the one that was asked about.
func (m *Manager) resolve(ctx context.Context, seq uint64, token string) {
	id, err := m.backend.Me(ctx, token)

	m.mu.Lock()
	if m.seq != seq || m.token != token {
		current := m.seq
		m.mu.Unlock()
		m.log.Debug("discarding stale identity",
			zap.Uint64("seq", seq),
			zap.Uint64("current_seq", current),
		)
		return
	}
	if err != nil {
		m.identity = nil
	} else {
		m.identity = copyIdentity(id)
	}
	m.mu.Unlock()

	if err != nil {
		m.log.Warn("identity lookup failed", zap.Error(err))
	}
	m.publish()
}

// publish sends the current session to every subscriber.
func (m *Manager) publish() {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.mu.Lock()
	s := m.snapshotLocked()
	subs := m.subscribersLocked()
	m.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}

func (m *Manager) snapshotLocked() Session {
	return Session{Token: m.token, Identity: copyIdentity(m.identity)}
}

func (m *Manager) subscribersLocked() []func(Session) {
	subs := make([]func(Session), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	return subs
}

func copyIdentity(id *domain.Identity) *domain.Identity {
	if id == nil {
		return nil
	}
	cp := *id
	return &cp
}
