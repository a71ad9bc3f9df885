package persist

import (
	"errors"
	"sync"
)

// ErrSaveInFlight is returned when a save is requested while another is
// still running.
var ErrSaveInFlight = errors.New("save already in progress")

// SaveGuard serializes saves: at most one save runs at a time, and the
// document stays marked dirty when a save fails.
type SaveGuard struct {
	mu     sync.Mutex
	saving bool
}

// Saving reports whether a save is currently running.
func (g *SaveGuard) Saving() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.saving
}

// Do runs save unless one is already in flight. markClean is called only
// after save returns nil; a failed save leaves the dirty state alone so
// the user can retry.
func (g *SaveGuard) Do(save func() error, markClean func()) error {
	g.mu.Lock()
	if g.saving {
		g.mu.Unlock()
		return ErrSaveInFlight
	}
	g.saving = true
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.saving = false
		g.mu.Unlock()
	}()

	if err := save(); err != nil {
		return err
	}
	if markClean != nil {
		markClean()
	}
	return nil
}
