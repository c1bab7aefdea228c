package resilience

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/casefile-ai/casefile/src/models"
)

const (
	DefaultMaxAttempts = 3

	maxExponentialWait = 16 * time.Second
	maxHintedWait      = 60 * time.Second
)

var (
	// ErrQuotaExhausted marks a daily-quota failure. The breaker trips and no
	// retry is attempted.
	ErrQuotaExhausted = errors.New("quota exhausted")

	// ErrRetryExhausted marks a call that failed on every attempt. It wraps
	// the last underlying error.
	ErrRetryExhausted = errors.New("retry attempts exhausted")
)

// RemoteCall is one attempt against the remote endpoint.
type RemoteCall func(ctx context.Context) (string, error)

// Outcome carries the text of a successful call and how many attempts were
// spent. Attempts is populated on failure too.
type Outcome struct {
	Text     string
	Attempts int
}

// Executor wraps a remote call with bounded retry, rate-limit-aware waits and
// the exhaustion breaker.
type Executor struct {
	breaker     *Breaker
	classifier  models.ErrorClassifier
	maxAttempts int
	timer       backoff.Timer
}

func NewExecutor(breaker *Breaker, classifier models.ErrorClassifier, maxAttempts int) *Executor {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Executor{
		breaker:     breaker,
		classifier:  classifier,
		maxAttempts: maxAttempts,
	}
}

// SetTimer replaces the wait timer so tests can observe backoff durations
// without sleeping. A nil timer means real time.
func (e *Executor) SetTimer(t backoff.Timer) {
	e.timer = t
}

// Execute runs the call with at most maxAttempts attempts. Quota-classified
// failures trip the breaker and stop immediately; rate-limited failures wait
// the server-suggested hint capped at maxHintedWait; everything else waits
// min(2^n, 16) seconds before the n-th retry.
func (e *Executor) Execute(ctx context.Context, call RemoteCall) (*Outcome, error) {
	outcome := &Outcome{}

	if e.breaker.Tripped() {
		return outcome, fmt.Errorf("%w: breaker is open, remote call skipped", ErrQuotaExhausted)
	}

	policy := &waitPolicy{}
	op := func() error {
		outcome.Attempts++
		text, err := call(ctx)
		if err == nil {
			outcome.Text = text
			return nil
		}

		switch e.classifier.Classify(err) {
		case models.FailureQuotaExhausted:
			e.breaker.Trip()
			return backoff.Permanent(fmt.Errorf("%w: %w", ErrQuotaExhausted, err))
		case models.FailureRateLimited:
			if hint, ok := WaitHint(err, time.Now()); ok {
				policy.setHint(hint)
			}
			return err
		default:
			return err
		}
	}

	notify := func(err error, wait time.Duration) {
		log.Printf("Remote call attempt %d/%d failed, retrying in %s: %v",
			outcome.Attempts, e.maxAttempts, wait, err)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(e.maxAttempts-1)), ctx)
	if err := backoff.RetryNotifyWithTimer(op, b, notify, e.timer); err != nil {
		if errors.Is(err, ErrQuotaExhausted) {
			return outcome, err
		}
		return outcome, fmt.Errorf("%w after %d attempts: %w", ErrRetryExhausted, outcome.Attempts, err)
	}

	return outcome, nil
}

// waitPolicy implements backoff.BackOff. Without a server hint the n-th
// retry (0-indexed) waits min(2^n, 16) seconds, monotonically non-decreasing.
// A hint set by the classifier overrides the next wait only.
type waitPolicy struct {
	attempt int
	hint    time.Duration
	hinted  bool
}

func (p *waitPolicy) setHint(d time.Duration) {
	if d < 0 {
		d = 0
	}
	p.hint = d
	p.hinted = true
}

func (p *waitPolicy) NextBackOff() time.Duration {
	defer func() {
		p.attempt++
		p.hint = 0
		p.hinted = false
	}()

	if p.hinted {
		if p.hint > maxHintedWait {
			return maxHintedWait
		}
		return p.hint
	}

	if p.attempt >= 4 {
		return maxExponentialWait
	}
	return time.Duration(1<<uint(p.attempt)) * time.Second
}

func (p *waitPolicy) Reset() {
	p.attempt = 0
	p.hint = 0
	p.hinted = false
}
