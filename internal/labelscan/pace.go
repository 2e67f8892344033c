package labelscan

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const defaultScansPerMinute = 20

// pacer hands out start times for scans so that at most perMinute begin in
// any minute. An idle pacer lets a full minute's worth start at once.
type pacer struct {
	now      func() time.Time
	next     time.Time
	interval time.Duration
	burst    time.Duration
	mu       sync.Mutex
}

func newPacer(perMinute int) *pacer {
	if perMinute <= 0 {
		perMinute = defaultScansPerMinute
	}
	interval := time.Minute / time.Duration(perMinute)
	return &pacer{
		now:      time.Now,
		interval: interval,
		burst:    interval * time.Duration(perMinute-1),
	}
}

// reserve books the next start slot and returns how long until it opens.
func (p *pacer) reserve() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if floor := now.Add(-p.burst); p.next.Before(floor) {
		p.next = floor
	}
	slot := p.next
	p.next = p.next.Add(p.interval)

	if delay := slot.Sub(now); delay > 0 {
		return delay
	}
	return 0
}

// release returns an unused slot.
func (p *pacer) release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.next = p.next.Add(-p.interval)
}

// await blocks until a slot opens. A slot that would open after ctx's
// deadline is given back at once instead of being waited out.
func (p *pacer) await(ctx context.Context) error {
	delay := p.reserve()
	if delay == 0 {
		return nil
	}

	if deadline, ok := ctx.Deadline(); ok && p.now().Add(delay).After(deadline) {
		p.release()
		return fmt.Errorf("next scan slot opens in %s: %w", delay.Round(time.Millisecond), context.DeadlineExceeded)
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		p.release()
		return fmt.Errorf("waiting for a scan slot: %w", ctx.Err())
	}
}
