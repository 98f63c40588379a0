package orchestration

import (
	"sync"
	"time"
)

// delayedCall is a rearmable single-purpose timer cell. Arming always
// cancels the previously pending call first, so at most one call per purpose
// is ever pending.
type delayedCall struct {
	mu    sync.Mutex
	timer *time.Timer
}

func (d *delayedCall) arm(delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(delay, fn)
}

func (d *delayedCall) cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
