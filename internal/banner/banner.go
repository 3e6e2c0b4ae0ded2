// Package banner holds a transient status message that hides itself after a
// delay.
package banner

import (
	"sync"
	"time"
)

// DefaultDuration is how long a message stays visible.
const DefaultDuration = 3 * time.Second

// Banner is safe for concurrent use. The zero value is ready to use.
type Banner struct {
	mu      sync.Mutex
	message string
	visible bool
	timer   *time.Timer
	gen     uint64
}

// Show makes msg visible and schedules it to hide after d. A previous pending
// hide is cancelled. d <= 0 keeps the message until Hide or Stop.
func (b *Banner) Show(msg string, d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopLocked()
	b.gen++
	b.message = msg
	b.visible = true
	if d <= 0 {
		return
	}
	gen := b.gen
	b.timer = time.AfterFunc(d, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		// a later Show owns the banner now
		if b.gen == gen {
			b.visible = false
			b.timer = nil
		}
	})
}

// Hide clears the message immediately.
func (b *Banner) Hide() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopLocked()
	b.visible = false
}

// Stop cancels any pending hide without changing visibility.
func (b *Banner) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopLocked()
}

// Message returns the current message and whether it is visible.
func (b *Banner) Message() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.message, b.visible
}

func (b *Banner) stopLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
