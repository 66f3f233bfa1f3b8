package feed

import (
	"math/rand"
	"time"
)

// backoff computes exponential reconnect delays with jitter.
type backoff struct {
	min    time.Duration
	max    time.Duration
	jitter float64
}

func newBackoff(min, max time.Duration) backoff {
	if min <= 0 {
		min = 250 * time.Millisecond
	}
	if max <= 0 {
		max = 5 * time.Second
	}
	return backoff{min: min, max: max, jitter: 0.2}
}

// next returns the delay for the given attempt, 1-based.
func (b backoff) next(attempt int) time.Duration {
	if attempt <= 0 {
		attempt = 1
	}
	wait := b.min
	for i := 1; i < attempt; i++ {
		wait *= 2
		if wait >= b.max {
			wait = b.max
			break
		}
	}
	delta := float64(wait) * b.jitter
	return wait - time.Duration(delta) + time.Duration(rand.Float64()*2*delta)
}
