package typing

import (
	"strings"
	"sync"
	"time"
)

const defaultQuietPeriod = 2 * time.Second

// Tracker turns raw input activity into typing reports. Non-empty input
// reports typing=true and arms a quiet timer that reports false once the
// input has been silent long enough. At most one timer is pending per
// tracker.
type Tracker struct {
	mu     sync.Mutex
	quiet  time.Duration
	timer  *time.Timer
	typing bool

	report func(isTyping bool)
}

type Option func(*Tracker)

func WithQuietPeriod(quiet time.Duration) Option {
	return func(t *Tracker) {
		t.quiet = quiet
	}
}

func New(report func(isTyping bool), opts ...Option) *Tracker {
	t := &Tracker{
		quiet:  defaultQuietPeriod,
		report: report,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// InputChanged is called on every edit of the input field. Every non-empty
// edit reports typing so the peer's activity timestamp stays fresh.
func (t *Tracker) InputChanged(text string) {
	if strings.TrimSpace(text) == "" {
		t.stopTyping()
		return
	}

	t.mu.Lock()
	t.typing = true
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.quiet, t.quietElapsed)
	t.mu.Unlock()

	t.report(true)
}

// MessageSent clears the typing state immediately, the input field is empty
// again.
func (t *Tracker) MessageSent() {
	t.stopTyping()
}

// Stop cancels any pending timer without reporting. Used on teardown.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.typing = false
}

func (t *Tracker) stopTyping() {
	t.mu.Lock()
	wasTyping := t.typing
	t.typing = false
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()

	if wasTyping {
		t.report(false)
	}
}

func (t *Tracker) quietElapsed() {
	t.mu.Lock()
	wasTyping := t.typing
	t.typing = false
	t.timer = nil
	t.mu.Unlock()

	if wasTyping {
		t.report(false)
	}
}
