// Package verification implements the email verification flow: a countdown
// over the validity window of a sent code, and the state machine that turns
// timer expiry, user input, and API results into the allowed next actions.
package verification

import (
	"sync"
	"time"
)

// Countdown emits a decreasing remaining-ticks value once per interval until
// it reaches zero, then signals expiry exactly once and stops.
//
// A Countdown owns at most one background goroutine. Start cancels any
// in-flight run before launching a fresh one; Stop cancels without
// restarting. Callbacks are invoked from the timer goroutine and carry the
// run number they belong to, so receivers can discard a delivery that raced
// a restart. Receivers must do their own locking.
type Countdown struct {
	interval time.Duration
	onTick   func(run, remaining int)
	onExpire func(run int)

	mu   sync.Mutex
	run  int
	stop chan struct{}
}

// NewCountdown builds a timer ticking once per interval. The interval is a
// parameter rather than a hardcoded second so tests do not sleep in real
// time; production callers pass time.Second.
func NewCountdown(interval time.Duration, onTick func(run, remaining int), onExpire func(run int)) *Countdown {
	return &Countdown{interval: interval, onTick: onTick, onExpire: onExpire}
}

// Start begins a fresh run of total ticks, cancelling any previous run, and
// returns the new run's number.
func (c *Countdown) Start(total int) int {
	c.mu.Lock()
	if c.stop != nil {
		close(c.stop)
	}
	stop := make(chan struct{})
	c.stop = stop
	c.run++
	run := c.run
	c.mu.Unlock()

	go c.loop(run, total, stop)
	return run
}

// Stop cancels the current run, releasing the background goroutine. A tick
// already being delivered may still complete; receivers identify it by its
// run number.
func (c *Countdown) Stop() {
	c.mu.Lock()
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
	c.mu.Unlock()
}

func (c *Countdown) loop(run, remaining int, stop chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			select {
			case <-stop:
				return
			default:
			}
			remaining--
			if remaining > 0 {
				c.onTick(run, remaining)
				continue
			}
			c.onTick(run, 0)
			c.onExpire(run)
			return
		}
	}
}
