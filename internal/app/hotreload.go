package app

import (
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// HotReloader polls the running binary's mod time and fires a callback
// once a rebuild lands, so a development session can offer a restart.
type HotReloader struct {
	binary   string
	baseline time.Time
	interval time.Duration
	done     chan struct{}
	notify   func()
}

// NewHotReloader watches the current executable at the given interval.
// Returns nil when the executable cannot be resolved.
func NewHotReloader(interval time.Duration) *HotReloader {
	binary, err := os.Executable()
	if err != nil {
		return nil
	}
	// go build swaps the target of the symlink, not the link itself.
	if real, err := filepath.EvalSymlinks(binary); err == nil {
		binary = real
	}
	info, err := os.Stat(binary)
	if err != nil {
		return nil
	}
	return &HotReloader{
		binary:   binary,
		baseline: info.ModTime(),
		interval: interval,
		done:     make(chan struct{}),
	}
}

// OnNewBinary registers the callback fired from the watch goroutine when
// a newer binary appears. It fires at most once per Start.
func (h *HotReloader) OnNewBinary(fn func()) {
	h.notify = fn
}

// Start launches the watch goroutine.
func (h *HotReloader) Start() {
	h.done = make(chan struct{})
	go h.watch()
}

// Stop ends the watch goroutine.
func (h *HotReloader) Stop() {
	close(h.done)
}

func (h *HotReloader) watch() {
	tick := time.NewTicker(h.interval)
	defer tick.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-tick.C:
			if !h.rebuilt() {
				continue
			}
			if h.notify != nil {
				h.notify()
			}
			return
		}
	}
}

func (h *HotReloader) rebuilt() bool {
	info, err := os.Stat(h.binary)
	if err != nil {
		return false
	}
	return info.ModTime().After(h.baseline)
}

// ResetBaseline accepts the current binary as the new baseline. Used when
// the user declines a restart, so they are not prompted again for the
// same build.
func (h *HotReloader) ResetBaseline() {
	if info, err := os.Stat(h.binary); err == nil {
		h.baseline = info.ModTime()
	}
}

// Restart execs the new binary in place of the current process. Does not
// return on success.
func (h *HotReloader) Restart() error {
	return syscall.Exec(h.binary, os.Args, os.Environ())
}
