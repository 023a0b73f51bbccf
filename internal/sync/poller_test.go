package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReloader struct {
	changed bool
	err     error
	calls   chan struct{}
}

func (f *fakeReloader) Sync(_ context.Context) (bool, error) {
	select {
	case f.calls <- struct{}{}:
	default:
	}
	return f.changed, f.err
}

func newFake(changed bool, err error) *fakeReloader {
	return &fakeReloader{changed: changed, err: err, calls: make(chan struct{}, 8)}
}

func TestRefreshSendsReloadedMsg(t *testing.T) {
	target := newFake(true, nil)
	p := New(target, 0, nil)
	t.Cleanup(p.Stop)

	wait := p.Start()
	require.NotNil(t, wait)
	p.Refresh()

	msg := wait()
	assert.Equal(t, ReloadedMsg{Changed: true}, msg)
	assert.Len(t, target.calls, 1)

	status := p.Status()
	assert.Equal(t, SyncIdle, status.State)
	assert.False(t, status.LastSync.IsZero())
}

func TestReloadErrorIsReported(t *testing.T) {
	boom := errors.New("connection refused")
	p := New(newFake(false, boom), 0, nil)
	t.Cleanup(p.Stop)

	wait := p.Start()
	p.Refresh()

	msg, ok := wait().(ReloadedMsg)
	require.True(t, ok)
	assert.ErrorIs(t, msg.Err, boom)
	assert.Equal(t, SyncError, p.Status().State)
}

func TestIntervalTriggersReload(t *testing.T) {
	target := newFake(false, nil)
	p := New(target, 10*time.Millisecond, nil)
	t.Cleanup(p.Stop)

	wait := p.Start()
	assert.Equal(t, ReloadedMsg{}, wait())
	assert.Equal(t, ReloadedMsg{}, p.WaitForNextResult()())
}

func TestStartTwice(t *testing.T) {
	p := New(newFake(false, nil), 0, nil)
	t.Cleanup(p.Stop)

	require.NotNil(t, p.Start())
	assert.Nil(t, p.Start())
}

func TestUntilMidnight(t *testing.T) {
	now := time.Date(2024, time.June, 3, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, 30*time.Minute, untilMidnight(now))

	now = time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 24*time.Hour, untilMidnight(now))
}
