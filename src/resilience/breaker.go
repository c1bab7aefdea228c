package resilience

import "sync/atomic"

// Breaker is the process-wide quota-exhaustion circuit breaker. Tripping is
// monotonic: once set, only an explicit Reset clears it. The daily quota
// window belongs to the remote account, not this process, so there is no
// timer-based auto reset.
type Breaker struct {
	exhausted atomic.Bool
}

func NewBreaker() *Breaker {
	return &Breaker{}
}

// Trip marks the remote quota as exhausted. Idempotent and safe for
// concurrent use.
func (b *Breaker) Trip() {
	b.exhausted.Store(true)
}

func (b *Breaker) Tripped() bool {
	return b.exhausted.Load()
}

// Reset clears the flag. Administrative operation, expected at the start of a
// new quota window.
func (b *Breaker) Reset() {
	b.exhausted.Store(false)
}
