package binder

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Action is a user-triggered request such as registering for an event. Unlike
// a Binding its errors are meant to be shown, and a guarded Action refuses to
// run without a session instead of sending an unauthenticated request.
type Action[A any, T any] struct {
	site string
	run  func(ctx context.Context, arg A) (T, error)
	opts options
	seq  uint64
}

// NewAction creates an Action. Pass RequireAuth to guard it.
func NewAction[A any, T any](site string, run func(ctx context.Context, arg A) (T, error), opts ...Option) *Action[A, T] {
	return &Action[A, T]{site: site, run: run, opts: buildOptions(opts)}
}

// Do returns the command that performs the action. It returns ErrNoSession and
// a nil command when the action is guarded and no token is present.
func (a *Action[A, T]) Do(arg A) (tea.Cmd, error) {
	if a.opts.tokens != nil && a.opts.tokens.Token() == "" {
		return nil, ErrNoSession
	}
	a.seq++
	seq, site, run := a.seq, a.site, a.run
	return func() tea.Msg {
		data, err := run(context.Background(), arg)
		return Result[T]{Site: site, Seq: seq, Data: data, Err: err}
	}, nil
}

// Accept reports whether msg is the answer to the latest Do call and returns
// it. Earlier answers are dropped.
func (a *Action[A, T]) Accept(msg tea.Msg) (Result[T], bool) {
	r, ok := msg.(Result[T])
	if !ok || r.Site != a.site {
		return Result[T]{}, false
	}
	if r.Seq != a.seq {
		a.opts.log.Debug("discarding stale action result",
			zap.String("site", a.site),
			zap.Uint64("seq", r.Seq),
			zap.Uint64("current_seq", a.seq),
		)
		return Result[T]{}, false
	}
	return r, true
}

// Reset forgets pending answers, e.g. when the view that issued them closes.
func (a *Action[A, T]) Reset() {
	a.seq++
}
