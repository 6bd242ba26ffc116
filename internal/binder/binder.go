// Package binder ties remote data to a view's lifecycle.
//
// A Binding fetches once per dependency change and applies only the newest
// answer: every fetch carries a sequence number, and results whose number is
// no longer current are dropped when they arrive. Nothing is cancelled at the
// transport level.
package binder

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// ErrNoSession is returned by guarded actions when no token is present.
var ErrNoSession = errors.New("binder: no session")

// State is the lifecycle state of a bound resource.
type State int

const (
	Idle State = iota
	Loading
	Ready
	Failed
	NoSession
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	case NoSession:
		return "no-session"
	default:
		return "unknown"
	}
}

// TokenSource reports the current session token; "" means signed out.
type TokenSource interface {
	Token() string
}

// Fetcher loads the resource for a dependency snapshot.
type Fetcher[D comparable, T any] func(ctx context.Context, deps D) (T, error)

// Result is the message a fetch or action produces. Site and Seq identify the
// binding and the request it answers.
type Result[T any] struct {
	Site string
	Seq  uint64
	Data T
	Err  error
}

// Option configures a Binding or an Action.
type Option func(*options)

type options struct {
	tokens TokenSource
	log    *zap.Logger
}

// RequireAuth makes the binding skip fetching, and report NoSession, while
// tokens has no token.
func RequireAuth(tokens TokenSource) Option {
	return func(o *options) { o.tokens = tokens }
}

// WithLogger logs discarded results.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Binding is one data-bound site in a view: Idle → Loading → Ready | Failed,
// back to Loading on every dependency change, until Unbind.
//
// A Binding is owned by a single bubbletea model and is only touched from its
// Update, so it needs no locking. Fetches run inside the returned commands.
type Binding[D comparable, T any] struct {
	site  string
	fetch Fetcher[D, T]
	opts  options

	bound bool
	deps  D
	seq   uint64
	state State
	data  T
	err   error
}

// New creates an unbound Binding. site must be unique among bindings that
// produce the same result type.
func New[D comparable, T any](site string, fetch Fetcher[D, T], opts ...Option) *Binding[D, T] {
	return &Binding[D, T]{
		site:  site,
		fetch: fetch,
		opts:  buildOptions(opts),
	}
}

// Bind sets the dependency snapshot. It fetches on the first call after New
// or Unbind and whenever deps differ from the last snapshot; otherwise it
// returns nil.
func (b *Binding[D, T]) Bind(deps D) tea.Cmd {
	if b.bound && deps == b.deps {
		return nil
	}
	b.bound = true
	b.deps = deps
	return b.issue()
}

// Refresh fetches again for the current snapshot, superseding any fetch in
// flight. It returns nil when the binding is not bound.
func (b *Binding[D, T]) Refresh() tea.Cmd {
	if !b.bound {
		return nil
	}
	return b.issue()
}

// Unbind abandons the binding: in-flight results are ignored from now on.
func (b *Binding[D, T]) Unbind() {
	b.bound = false
	b.seq++
	b.state = Idle
}

func (b *Binding[D, T]) issue() tea.Cmd {
	b.seq++
	if b.opts.tokens != nil && b.opts.tokens.Token() == "" {
		var zero T
		b.state = NoSession
		b.data = zero
		b.err = nil
		return nil
	}
	b.state = Loading
	seq, deps, site, fetch := b.seq, b.deps, b.site, b.fetch
	return func() tea.Msg {
		data, err := fetch(context.Background(), deps)
		return Result[T]{Site: site, Seq: seq, Data: data, Err: err}
	}
}

// Apply consumes msg if it is a result for this binding. It reports whether
// the result was current and therefore changed the binding's state.
func (b *Binding[D, T]) Apply(msg tea.Msg) bool {
	r, ok := msg.(Result[T])
	if !ok || r.Site != b.site {
		return false
	}
	if !b.bound || r.Seq != b.seq {
		b.opts.log.Debug("discarding stale result",
			zap.String("site", b.site),
			zap.Uint64("seq", r.Seq),
			zap.Uint64("current_seq", b.seq),
		)
		return false
	}
	if r.Err != nil {
		b.state = Failed
		b.err = r.Err
		return true
	}
	b.state = Ready
	b.data = r.Data
	b.err = nil
	return true
}

// Owns reports whether msg is a result addressed to this binding, current or
// not.
func (b *Binding[D, T]) Owns(msg tea.Msg) bool {
	r, ok := msg.(Result[T])
	return ok && r.Site == b.site
}

func (b *Binding[D, T]) State() State { return b.state }

// Data returns the last successfully applied data. It keeps the previous
// value while Loading or Failed.
func (b *Binding[D, T]) Data() T { return b.data }

// Err returns the error of the latest applied result when State is Failed.
func (b *Binding[D, T]) Err() error { return b.err }

// Deps returns the current dependency snapshot.
func (b *Binding[D, T]) Deps() D { return b.deps }

// Seq returns the sequence number of the latest issued fetch.
func (b *Binding[D, T]) Seq() uint64 { return b.seq }

// Bound reports whether the binding is active.
func (b *Binding[D, T]) Bound() bool { return b.bound }
