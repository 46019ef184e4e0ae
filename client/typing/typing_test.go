package typing

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportLog struct {
	mu      sync.Mutex
	reports []bool
}

func (l *reportLog) record(isTyping bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reports = append(l.reports, isTyping)
}

func (l *reportLog) snapshot() []bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]bool, len(l.reports))
	copy(out, l.reports)
	return out
}

func (l *reportLog) last() (bool, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.reports) == 0 {
		return false, false
	}
	return l.reports[len(l.reports)-1], true
}

func TestTracker_ReportsFalseAfterQuietPeriod(t *testing.T) {
	log := &reportLog{}
	tr := New(log.record, WithQuietPeriod(200*time.Millisecond))
	defer tr.Stop()

	tr.InputChanged("h")
	time.Sleep(100 * time.Millisecond)
	tr.InputChanged("he") // rearms the timer

	// Quiet period restarted at 100ms, so no false report yet.
	time.Sleep(150 * time.Millisecond)
	for _, r := range log.snapshot() {
		assert.True(t, r, "no false report expected while still typing")
	}

	require.Eventually(t, func() bool {
		last, ok := log.last()
		return ok && !last
	}, time.Second, 10*time.Millisecond, "quiet period should report typing stopped")
}

func TestTracker_MessageSentStopsImmediately(t *testing.T) {
	log := &reportLog{}
	tr := New(log.record, WithQuietPeriod(time.Hour))
	defer tr.Stop()

	tr.InputChanged("hello")
	tr.MessageSent()

	assert.Equal(t, []bool{true, false}, log.snapshot())

	// Timer was cancelled, nothing further arrives.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, []bool{true, false}, log.snapshot())
}

func TestTracker_EmptyingInputStopsImmediately(t *testing.T) {
	log := &reportLog{}
	tr := New(log.record, WithQuietPeriod(time.Hour))
	defer tr.Stop()

	tr.InputChanged("hello")
	tr.InputChanged("")

	assert.Equal(t, []bool{true, false}, log.snapshot())
}

func TestTracker_BlankInputNeverReports(t *testing.T) {
	log := &reportLog{}
	tr := New(log.record, WithQuietPeriod(time.Hour))
	defer tr.Stop()

	tr.InputChanged("   ")
	tr.MessageSent()

	assert.Empty(t, log.snapshot())
}

func TestTracker_StopIsSilent(t *testing.T) {
	log := &reportLog{}
	tr := New(log.record, WithQuietPeriod(50*time.Millisecond))

	tr.InputChanged("x")
	tr.Stop()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, []bool{true}, log.snapshot())
}
