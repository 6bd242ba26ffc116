package binder

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenVar string

func (t *tokenVar) Token() string { return string(*t) }

// echo returns a fetcher that answers with the deps and a call counter.
func echo(calls *atomic.Int32) Fetcher[string, string] {
	return func(_ context.Context, deps string) (string, error) {
		n := calls.Add(1)
		return fmt.Sprintf("%s#%d", deps, n), nil
	}
}

func TestBind_InitialFetch(t *testing.T) {
	var calls atomic.Int32
	b := New("athletes", echo(&calls))
	assert.Equal(t, Idle, b.State())

	cmd := b.Bind("soccer")
	require.NotNil(t, cmd)
	assert.Equal(t, Loading, b.State())

	assert.True(t, b.Apply(cmd()))
	assert.Equal(t, Ready, b.State())
	assert.Equal(t, "soccer#1", b.Data())
}

func TestBind_SameDepsNoRequest(t *testing.T) {
	var calls atomic.Int32
	b := New("athletes", echo(&calls))

	b.Apply(b.Bind("soccer")())
	assert.Nil(t, b.Bind("soccer"))
	assert.EqualValues(t, 1, calls.Load())
}

func TestBind_StaleResultDiscarded(t *testing.T) {
	var calls atomic.Int32
	b := New("athletes", echo(&calls))

	first := b.Bind("soccer")
	second := b.Bind("rugby")

	// The newer response arrives first; the older one lands afterwards.
	newer := second()
	older := first()

	assert.True(t, b.Apply(newer))
	assert.False(t, b.Apply(older))
	assert.Equal(t, Ready, b.State())
	assert.Equal(t, "rugby", b.Deps())
	assert.Contains(t, b.Data(), "rugby")
}

func TestRefresh_SameSnapshotLatestWins(t *testing.T) {
	var calls atomic.Int32
	b := New("events", echo(&calls))

	first := b.Bind("all")
	second := b.Refresh()
	require.NotNil(t, second)

	one := first()
	two := second()

	assert.True(t, b.Apply(two))
	assert.False(t, b.Apply(one))
	assert.Equal(t, two.(Result[string]).Data, b.Data())
}

func TestRefresh_Unbound(t *testing.T) {
	var calls atomic.Int32
	b := New("events", echo(&calls))
	assert.Nil(t, b.Refresh())
}

func TestBind_Failed(t *testing.T) {
	fail := false
	b := New("event", func(_ context.Context, id string) (string, error) {
		if fail {
			return "", errors.New("HTTP 500: boom")
		}
		return "event " + id, nil
	})

	b.Apply(b.Bind("e1")())
	fail = true
	b.Apply(b.Refresh()())

	assert.Equal(t, Failed, b.State())
	require.Error(t, b.Err())
	assert.Equal(t, "event e1", b.Data(), "last good data is kept")
}

func TestBind_RequireAuthWithoutToken(t *testing.T) {
	var calls atomic.Int32
	tok := tokenVar("")
	b := New("notifications", echo(&calls), RequireAuth(&tok))

	cmd := b.Bind("")
	assert.Nil(t, cmd)
	assert.Equal(t, NoSession, b.State())
	assert.EqualValues(t, 0, calls.Load())

	tok = "tok-1"
	cmd = b.Bind("tok-1")
	require.NotNil(t, cmd)
	assert.True(t, b.Apply(cmd()))
	assert.Equal(t, Ready, b.State())
}

func TestBind_LogoutWhileLoadingDropsResult(t *testing.T) {
	var calls atomic.Int32
	tok := tokenVar("tok-1")
	b := New("dashboard", echo(&calls), RequireAuth(&tok))

	pending := b.Bind("tok-1")
	require.NotNil(t, pending)

	tok = ""
	assert.Nil(t, b.Bind(""))
	assert.False(t, b.Apply(pending()))
	assert.Equal(t, NoSession, b.State())
	assert.Empty(t, b.Data())
}

func TestUnbind_IgnoresPending(t *testing.T) {
	var calls atomic.Int32
	b := New("events", echo(&calls))

	pending := b.Bind("all")
	b.Unbind()
	assert.False(t, b.Apply(pending()))
	assert.Equal(t, Idle, b.State())
	assert.False(t, b.Bound())

	// Binding again with the same deps fetches once more.
	cmd := b.Bind("all")
	require.NotNil(t, cmd)
	assert.True(t, b.Apply(cmd()))
}

func TestApply_OtherSiteIgnored(t *testing.T) {
	var calls atomic.Int32
	a := New("a", echo(&calls))
	b := New("b", echo(&calls))

	msg := a.Bind("x")()
	b.Bind("x")

	assert.False(t, b.Owns(msg))
	assert.False(t, b.Apply(msg))
	assert.True(t, a.Owns(msg))
	assert.False(t, a.Apply("not a result"))
}

func TestSeqMonotonic(t *testing.T) {
	var calls atomic.Int32
	b := New("athletes", echo(&calls))
	var last uint64
	for _, deps := range []string{"a", "b", "c"} {
		b.Bind(deps)
		assert.Greater(t, b.Seq(), last)
		last = b.Seq()
	}
}

func TestAction_GuardSuppressesRequest(t *testing.T) {
	var calls atomic.Int32
	tok := tokenVar("")
	a := NewAction("register", func(_ context.Context, id string) (string, error) {
		calls.Add(1)
		return "confirmed", nil
	}, RequireAuth(&tok))

	cmd, err := a.Do("e1")
	assert.Nil(t, cmd)
	assert.ErrorIs(t, err, ErrNoSession)
	assert.EqualValues(t, 0, calls.Load())
}

func TestAction_LatestAnswerAccepted(t *testing.T) {
	tok := tokenVar("tok")
	a := NewAction("register", func(_ context.Context, id string) (string, error) {
		return "ok " + id, nil
	}, RequireAuth(&tok))

	first, err := a.Do("e1")
	require.NoError(t, err)
	second, err := a.Do("e2")
	require.NoError(t, err)

	_, ok := a.Accept(first())
	assert.False(t, ok)
	r, ok := a.Accept(second())
	require.True(t, ok)
	assert.Equal(t, "ok e2", r.Data)
}

func TestAction_ResetDropsPending(t *testing.T) {
	a := NewAction("register", func(_ context.Context, _ struct{}) (string, error) {
		return "", errors.New("HTTP 401")
	})
	cmd, err := a.Do(struct{}{})
	require.NoError(t, err)
	a.Reset()
	_, ok := a.Accept(cmd())
	assert.False(t, ok)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "no-session", NoSession.String())
	assert.Equal(t, "ready", Ready.String())
}
