// Package sync keeps a running calendar current: it re-reads the shared
// store on an interval and reports when the local date rolls over.
package sync

import (
	"context"
	"log/slog"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/eventcal/internal/logger"
)

// SyncState represents the current state of the poller.
type SyncState int

const (
	SyncIdle SyncState = iota
	SyncRunning
	SyncError
)

// SyncStatus holds the outcome of the most recent reload.
type SyncStatus struct {
	State    SyncState
	LastSync time.Time
	Error    error
}

// Reloader re-reads a collection and reports whether it changed.
type Reloader interface {
	Sync(ctx context.Context) (bool, error)
}

// ReloadedMsg is a tea.Msg sent after every reload attempt.
type ReloadedMsg struct {
	Changed bool
	Err     error
}

// DayChangedMsg is a tea.Msg sent when the local date rolls over.
type DayChangedMsg struct {
	Today time.Time
}

// fetchTimeout is the maximum time allowed for a single reload.
const fetchTimeout = 10 * time.Second

// Poller reloads a Reloader in the background and feeds the results to the
// Bubble Tea runtime.
type Poller struct {
	target    Reloader
	log       *slog.Logger
	interval  time.Duration
	now       func() time.Time
	status    SyncStatus
	resultCh  chan tea.Msg
	triggerCh chan struct{}
	stopCh    chan struct{}
	mu        gosync.Mutex
	running   bool
}

// New creates a Poller for target. An interval of zero or less disables
// periodic reloads; manual refreshes and day rollover still work.
func New(target Reloader, interval time.Duration, log *slog.Logger) *Poller {
	if log == nil {
		log = logger.Discard()
	}
	return &Poller{
		target:    target,
		log:       log,
		interval:  interval,
		now:       time.Now,
		resultCh:  make(chan tea.Msg, 16),
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
}

// Start returns a tea.Cmd that starts the polling goroutine and waits for
// its first result.
func (p *Poller) Start() tea.Cmd {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.mu.Unlock()

	go p.loop()

	return p.waitForResult()
}

// Stop halts the polling goroutine.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	close(p.stopCh)
	p.running = false
}

// Refresh triggers an immediate reload.
func (p *Poller) Refresh() {
	select {
	case p.triggerCh <- struct{}{}:
	default:
		// A reload is already pending.
	}
}

// Status returns the outcome of the most recent reload.
func (p *Poller) Status() SyncStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *Poller) loop() {
	var tick <-chan time.Time
	if p.interval > 0 {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	midnight := time.NewTimer(untilMidnight(p.now()))
	defer midnight.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-tick:
			p.reload()
		case <-p.triggerCh:
			p.reload()
		case <-midnight.C:
			today := p.now()
			p.log.Debug("day changed", slog.String("today", today.Format(time.DateOnly)))
			p.sendResult(DayChangedMsg{Today: today})
			midnight.Reset(untilMidnight(today))
		}
	}
}

// reload performs a single Sync and sends a ReloadedMsg.
func (p *Poller) reload() {
	p.setStatus(SyncRunning, nil)

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	changed, err := p.target.Sync(ctx)
	if err != nil {
		p.log.Warn("reload failed", logger.Err(err))
		p.setStatus(SyncError, err)
		p.sendResult(ReloadedMsg{Err: err})
		return
	}

	p.setStatus(SyncIdle, nil)
	p.sendResult(ReloadedMsg{Changed: changed})
}

func (p *Poller) setStatus(state SyncState, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status.State = state
	p.status.Error = err
	if state == SyncIdle {
		p.status.LastSync = p.now()
	}
}

// sendResult sends msg on the result channel without blocking.
func (p *Poller) sendResult(msg tea.Msg) {
	select {
	case p.resultCh <- msg:
	default:
		// Drop if channel is full to avoid blocking the poller
	}
}

func (p *Poller) waitForResult() tea.Cmd {
	return func() tea.Msg {
		return <-p.resultCh
	}
}

// WaitForNextResult returns a tea.Cmd that waits for the next result. Call
// it after handling a ReloadedMsg or DayChangedMsg to keep listening.
func (p *Poller) WaitForNextResult() tea.Cmd {
	return p.waitForResult()
}

// untilMidnight returns the time from now to the next local midnight.
func untilMidnight(now time.Time) time.Duration {
	y, m, d := now.Date()
	next := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
	return next.Sub(now)
}
