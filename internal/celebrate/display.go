// Package celebrate controls the short celebration clip that is played after a successful tally
package celebrate

import (
	"sync"
	"time"
)

// DefaultDuration is the time the celebration stays visible
const DefaultDuration = 1200 * time.Millisecond

// Player renders the celebration
type Player interface {
	// Show rewinds the clip, makes it visible and starts playback
	Show()
	// Hide pauses the clip and makes it invisible
	Hide()
}

// Display owns one display cycle of the celebration at a time. Starting a new cycle while one is running restarts
// it from the beginning and drops the pending hide of the previous cycle.
type Display struct {
	mu       sync.Mutex
	duration time.Duration
	player   Player
	pending  *time.Timer
	visible  bool
	// Counts started cycles. A timer only hides the cycle it has been scheduled for.
	cycle uint64
}

// New creates a display showing the celebration for the given duration (DefaultDuration if zero)
func New(duration time.Duration, player Player) *Display {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Display{duration: duration, player: player}
}

// Start begins a new display cycle
func (d *Display) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopPending()
	d.cycle++
	d.visible = true
	d.player.Show()
	cycle := d.cycle
	d.pending = time.AfterFunc(d.duration, func() {
		d.expire(cycle)
	})
}

// Cancel hides the celebration immediately if it is visible
func (d *Display) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopPending()
	if d.visible {
		d.visible = false
		d.player.Hide()
	}
}

// Visible reports whether a display cycle is currently running
func (d *Display) Visible() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.visible
}

// Cycles returns the number of display cycles started so far
func (d *Display) Cycles() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cycle
}

func (d *Display) expire(cycle uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if cycle != d.cycle || !d.visible {
		// Superseded by a newer cycle or cancelled
		return
	}
	d.pending = nil
	d.visible = false
	d.player.Hide()
}

func (d *Display) stopPending() {
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
}
