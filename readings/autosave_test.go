package readings

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saveRecorder struct {
	mu    sync.Mutex
	calls []string
	fail  bool
}

func (r *saveRecorder) save(unitID, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("save failed")
	}
	r.calls = append(r.calls, unitID+"="+value)
	return nil
}

func (r *saveRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func TestRapidKeystrokesCollapseToOneSave(t *testing.T) {
	rec := &saveRecorder{}
	a := NewAutoSaver(rec.save)
	a.SetDebounce(30*time.Millisecond, 100*time.Millisecond)

	a.Input("u1", "1")
	a.Input("u1", "12")
	a.Input("u1", "125")

	time.Sleep(80 * time.Millisecond)

	calls := rec.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, "u1=125", calls[0])
	assert.Equal(t, StateSaved, a.State("u1"))
}

func TestUnitsDebounceIndependently(t *testing.T) {
	rec := &saveRecorder{}
	a := NewAutoSaver(rec.save)
	a.SetDebounce(30*time.Millisecond, 100*time.Millisecond)

	a.Input("u1", "100")
	a.Input("u2", "200")

	time.Sleep(80 * time.Millisecond)

	calls := rec.snapshot()
	assert.Len(t, calls, 2)
	assert.Contains(t, calls, "u1=100")
	assert.Contains(t, calls, "u2=200")
}

func TestBlurFlushesImmediately(t *testing.T) {
	rec := &saveRecorder{}
	a := NewAutoSaver(rec.save)
	a.SetDebounce(10*time.Second, 100*time.Millisecond)

	a.Input("u1", "99")
	a.Blur("u1")

	calls := rec.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, "u1=99", calls[0])
}

func TestFailedSaveKeepsPendingValue(t *testing.T) {
	rec := &saveRecorder{fail: true}
	a := NewAutoSaver(rec.save)
	a.SetDebounce(10*time.Millisecond, 100*time.Millisecond)

	a.Input("u1", "55")
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, StateError, a.State("u1"))
	pending, ok := a.Pending("u1")
	require.True(t, ok)
	assert.Equal(t, "55", pending)

	// Once the backend recovers, a blur retries the same value.
	rec.mu.Lock()
	rec.fail = false
	rec.mu.Unlock()

	a.Blur("u1")
	calls := rec.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, "u1=55", calls[0])
	_, ok = a.Pending("u1")
	assert.False(t, ok)
}

type slowRecorder struct {
	saveRecorder
	delay time.Duration
}

func (r *slowRecorder) save(unitID, value string) error {
	time.Sleep(r.delay)
	return r.saveRecorder.save(unitID, value)
}

func TestKeystrokeDuringSlowSaveStillSaved(t *testing.T) {
	rec := &slowRecorder{delay: 100 * time.Millisecond}
	a := NewAutoSaver(rec.save)
	a.SetDebounce(10*time.Millisecond, time.Second)

	a.Input("u1", "1")
	// Let the first save start, then type again while it is in flight.
	time.Sleep(30 * time.Millisecond)
	a.Input("u1", "2")

	time.Sleep(400 * time.Millisecond)

	calls := rec.snapshot()
	assert.Contains(t, calls, "u1=2")
	_, dirty := a.Pending("u1")
	assert.False(t, dirty)
}

func TestSavedSettlesBackToIdle(t *testing.T) {
	rec := &saveRecorder{}
	a := NewAutoSaver(rec.save)
	a.SetDebounce(10*time.Millisecond, 40*time.Millisecond)

	a.Input("u1", "7")
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, StateSaved, a.State("u1"))

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, StateIdle, a.State("u1"))
}

func TestIdleForUnknownUnit(t *testing.T) {
	a := NewAutoSaver(func(string, string) error { return nil })
	assert.Equal(t, StateIdle, a.State("nope"))
}
