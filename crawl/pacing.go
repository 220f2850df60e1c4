package crawl

import (
	"context"
	"math/rand"
	"time"
)

// pacer inserts a randomized delay between page-driving operations. This
// is rate shaping to keep the crawl looking human and the load low, not a
// correctness mechanism; readiness is handled by explicit waits.
type pacer struct {
	min, max time.Duration
	rng      *rand.Rand
}

func newPacer(min, max time.Duration) *pacer {
	if max < min {
		max = min
	}
	return &pacer{
		min: min,
		max: max,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// pause sleeps for a random duration in [min, max], returning early with
// the context error on cancellation.
func (p *pacer) pause(ctx context.Context) error {
	d := p.min
	if span := p.max - p.min; span > 0 {
		d += time.Duration(p.rng.Int63n(int64(span) + 1))
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
