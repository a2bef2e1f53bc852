package readings

import (
	"sync"
	"time"
)

// Auto-save states for one unit's meter entry.
const (
	StateIdle    = "idle"
	StateEditing = "editing"
	StateSaving  = "saving"
	StateSaved   = "saved"
	StateError   = "error"
)

const (
	defaultDebounce = 1500 * time.Millisecond
	defaultSettle   = 3 * time.Second
)

// SaveFunc persists one unit's pending meter value.
type SaveFunc func(unitID, value string) error

// AutoSaver coalesces rapid keystrokes on bulk meter entry into one
// save per unit. Each unit debounces independently; a blur flushes
// immediately. A failed save keeps the pending value so the next edit
// or blur retries it.
type AutoSaver struct {
	mu       sync.Mutex
	save     SaveFunc
	debounce time.Duration
	settle   time.Duration
	units    map[string]*unitEntry
}

type unitEntry struct {
	state   string
	pending string
	dirty   bool
	timer   *time.Timer
}

func NewAutoSaver(save SaveFunc) *AutoSaver {
	return &AutoSaver{
		save:     save,
		debounce: defaultDebounce,
		settle:   defaultSettle,
		units:    make(map[string]*unitEntry),
	}
}

// SetDebounce overrides the timing windows. Tests use short values.
func (a *AutoSaver) SetDebounce(debounce, settle time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.debounce = debounce
	a.settle = settle
}

// Input records a keystroke for a unit and restarts its debounce
// timer. Only the final value when the timer fires gets saved.
func (a *AutoSaver) Input(unitID, value string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	e := a.entry(unitID)
	e.pending = value
	e.dirty = true
	if e.state != StateSaving {
		e.state = StateEditing
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(a.debounce, func() { a.flush(unitID) })
}

// Blur flushes the unit's pending value without waiting out the
// debounce window.
func (a *AutoSaver) Blur(unitID string) {
	a.mu.Lock()
	e, ok := a.units[unitID]
	if !ok || !e.dirty {
		a.mu.Unlock()
		return
	}
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	a.mu.Unlock()
	a.flush(unitID)
}

// State reports the unit's current auto-save state.
func (a *AutoSaver) State(unitID string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if e, ok := a.units[unitID]; ok {
		return e.state
	}
	return StateIdle
}

// States snapshots the save state of every unit seen on the sheet.
func (a *AutoSaver) States() map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string]string, len(a.units))
	for unitID, e := range a.units {
		out[unitID] = e.state
	}
	return out
}

// Pending returns the unsaved value for a unit, if any.
func (a *AutoSaver) Pending(unitID string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if e, ok := a.units[unitID]; ok && e.dirty {
		return e.pending, true
	}
	return "", false
}

func (a *AutoSaver) entry(unitID string) *unitEntry {
	e, ok := a.units[unitID]
	if !ok {
		e = &unitEntry{state: StateIdle}
		a.units[unitID] = e
	}
	return e
}

func (a *AutoSaver) flush(unitID string) {
	a.mu.Lock()
	e, ok := a.units[unitID]
	if !ok || !e.dirty || e.state == StateSaving {
		a.mu.Unlock()
		return
	}
	value := e.pending
	e.state = StateSaving
	a.mu.Unlock()

	err := a.save(unitID, value)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		// Keep the value dirty so the next edit or blur retries.
		e.state = StateError
		return
	}
	if e.pending == value {
		e.dirty = false
		e.state = StateSaved
		settle := a.settle
		time.AfterFunc(settle, func() { a.settleToIdle(unitID) })
		return
	}
	// A newer keystroke arrived mid-save. Its timer may already have
	// fired and bailed on the in-flight save, so re-arm one here.
	e.state = StateEditing
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(a.debounce, func() { a.flush(unitID) })
}

func (a *AutoSaver) settleToIdle(unitID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if e, ok := a.units[unitID]; ok && e.state == StateSaved {
		e.state = StateIdle
	}
}
